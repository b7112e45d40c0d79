//go:build unit
// +build unit

package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
)

func TestSampleBasis_PicksTheOnlyNonzeroAmplitude(t *testing.T) {
	amps := []complex128{0, 1, 0, 0}
	outcome, err := SampleBasis(amps, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 1, outcome)
}

func TestSampleBasis_FailsOnUnnormalizedState(t *testing.T) {
	amps := []complex128{0.1, 0.1}
	_, err := SampleBasis(amps, core.NewRNG(1))
	assert.ErrorIs(t, err, core.ErrInternalInconsistency)
}

func TestSampleBasis_DistributesAcrossBasisStates(t *testing.T) {
	s := 1 / 1.4142135623730951
	amps := []complex128{complex(s, 0), complex(s, 0)}
	rng := core.NewRNG(123)

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		outcome, err := SampleBasis(amps, rng)
		require.NoError(t, err)
		counts[outcome]++
	}
	assert.InDelta(t, 1000, counts[0], 150)
	assert.InDelta(t, 1000, counts[1], 150)
}

func TestApplyReadoutError_NoErrorLeavesOutcomeUnchanged(t *testing.T) {
	table := []ReadoutError{{P01: 0, P10: 0}, {P01: 0, P10: 0}}
	outcome, err := ApplyReadoutError(0b10, 2, table, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 0b10, outcome)
}

func TestApplyReadoutError_CertainFlipOnSetBit(t *testing.T) {
	// qubit 0 is the least significant bit; outcome 0b10 has qubit 1
	// set, qubit 0 clear. Certain P10 on qubit 1 flips it off.
	table := []ReadoutError{{P01: 0, P10: 0}, {P01: 0, P10: 1}}
	outcome, err := ApplyReadoutError(0b10, 2, table, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 0b00, outcome)
}

func TestApplyReadoutError_CertainFlipOnUnsetBit(t *testing.T) {
	// qubit 0 is clear in outcome 0b00; certain P01 on qubit 0 sets it.
	table := []ReadoutError{{P01: 1, P10: 0}, {P01: 0, P10: 0}}
	outcome, err := ApplyReadoutError(0b00, 2, table, core.NewRNG(1))
	require.NoError(t, err)
	assert.Equal(t, 0b01, outcome)
}

func TestApplyReadoutError_RejectsTableLengthMismatch(t *testing.T) {
	table := []ReadoutError{{P01: 0, P10: 0}}
	_, err := ApplyReadoutError(0, 2, table, core.NewRNG(1))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestMeasureMap_ProjectsSelectedQubitsInOrder(t *testing.T) {
	m := BuildMeasureMap([]int{2, 0}, 3)
	// outcome 0b101: qubit0=1, qubit1=0, qubit2=1
	projected := m.Project(0b101)
	// selected = [qubit2, qubit0] = [1, 1] -> 0b11
	assert.Equal(t, 0b11, projected)
	assert.Equal(t, 2, m.Width())
}

func TestMeasureMap_SingleQubitProjection(t *testing.T) {
	m := BuildMeasureMap([]int{1}, 2)
	assert.Equal(t, 1, m.Project(0b10))
	assert.Equal(t, 0, m.Project(0b01))
}

func TestMeasureMap_EmptySelectionMeasuresEveryQubit(t *testing.T) {
	m := BuildMeasureMap(nil, 3)
	assert.Equal(t, 3, m.Width())
	for outcome := 0; outcome < 8; outcome++ {
		assert.Equal(t, outcome, m.Project(outcome))
	}
}
