//go:build unit
// +build unit

package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/noise"
	"github.com/nqsim-project/nqsim/opcode"
	"github.com/nqsim-project/nqsim/recorder"
	"github.com/nqsim-project/nqsim/sampler"
)

func TestExecutor_BellStateOnlyMeasuresCorrelatedOutcomes(t *testing.T) {
	r := recorder.New(nil)
	r.Hadamard(0)
	r.CNOT(0, 1)
	r.Measure([]int{0, 1})

	e, err := New(r, 2, core.NewRNG(1))
	require.NoError(t, err)

	counts, err := e.MeasureShots(2000, nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(2000), counts.Total())
	assert.Zero(t, counts["01"])
	assert.Zero(t, counts["10"])
	assert.InDelta(t, 1000, int(counts["00"]), 150)
	assert.InDelta(t, 1000, int(counts["11"]), 150)
}

func TestExecutor_BitFlipOnGroundStateAlwaysReadsOne(t *testing.T) {
	store := noise.NewStore()
	require.NoError(t, store.LoadGlobal([]noise.Entry{{Kind: opcode.BitFlip, P: 1}}))

	r := recorder.New(store)
	r.Identity(0)
	r.Measure([]int{0})

	e, err := New(r, 1, core.NewRNG(2))
	require.NoError(t, err)

	counts, err := e.MeasureShots(500, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(500), counts["1"])
}

func TestExecutor_DepolarizingOnPlusStateStaysNormalized(t *testing.T) {
	store := noise.NewStore()
	require.NoError(t, store.LoadGateDependent(map[opcode.Kind][]noise.Entry{
		opcode.Hadamard: {{Kind: opcode.Depolarizing, P: 0.3}},
	}))

	r := recorder.New(store)
	r.Hadamard(0)
	r.Measure([]int{0})

	e, err := New(r, 1, core.NewRNG(3))
	require.NoError(t, err)

	counts, err := e.MeasureShots(1000, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), counts.Total())
}

func TestExecutor_ReadoutErrorOnlyFlipsGroundState(t *testing.T) {
	r := recorder.New(nil)
	r.Identity(0)
	r.Measure([]int{0})

	e, err := New(r, 1, core.NewRNG(4))
	require.NoError(t, err)

	readout := []sampler.ReadoutError{{P01: 1, P10: 0}}
	counts, err := e.MeasureShots(300, readout)
	require.NoError(t, err)
	assert.Equal(t, uint32(300), counts["1"])
}

func TestExecutor_TwoQubitDepolarizingStaysNormalized(t *testing.T) {
	store := noise.NewStore()
	require.NoError(t, store.LoadGateSpecific2Q(map[noise.GateQubitPairKey]noise.Entry{
		{Gate: opcode.CNOT, Qn1: 0, Qn2: 1}: {Kind: opcode.TwoQubitDepolarizing, P: 1},
	}))

	r := recorder.New(store)
	r.Hadamard(0)
	r.CNOT(0, 1)
	r.Measure([]int{0, 1})

	e, err := New(r, 2, core.NewRNG(5))
	require.NoError(t, err)

	counts, err := e.MeasureShots(1000, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), counts.Total())
}

func TestExecutor_DaggerIdentityReturnsToGroundState(t *testing.T) {
	r := recorder.New(nil)
	r.RX(0, 0.83)
	r.RX(0, 0.83, recorder.WithDagger())
	r.Measure([]int{0})

	e, err := New(r, 1, core.NewRNG(6))
	require.NoError(t, err)

	counts, err := e.MeasureShots(200, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(200), counts["0"])
}

func TestExecutor_ToffoliHasNoKernelDispatch(t *testing.T) {
	r := recorder.New(nil)
	r.Toffoli(0, 1, 2)
	r.Measure([]int{0, 1, 2})

	e, err := New(r, 3, core.NewRNG(7))
	require.NoError(t, err)

	_, err = e.ExecuteOnce()
	assert.ErrorIs(t, err, core.ErrUnsupportedGate)
}

func TestExecutor_MeasureShotsForOverridesRecorderSelection(t *testing.T) {
	r := recorder.New(nil)
	r.X(0)
	r.Measure([]int{0})

	e, err := New(r, 2, core.NewRNG(8))
	require.NoError(t, err)

	counts, err := e.MeasureShotsFor([]int{0, 1}, 50, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(50), counts["10"])
}

func TestExecutor_MeasureShotsWithoutMeasureCallReturnsFullOutcome(t *testing.T) {
	r := recorder.New(nil)
	r.X(0)
	// No r.Measure call: MeasureQubits stays empty, so MeasureShots must
	// fall back to the full n-bit outcome instead of collapsing every
	// shot into a single bucket.

	e, err := New(r, 2, core.NewRNG(10))
	require.NoError(t, err)

	counts, err := e.MeasureShots(50, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(50), counts["01"])
}

func TestExecutor_RejectsNonPositiveShots(t *testing.T) {
	r := recorder.New(nil)
	e, err := New(r, 1, core.NewRNG(9))
	require.NoError(t, err)

	_, err = e.MeasureShots(0, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
