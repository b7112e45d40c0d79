//go:build unit
// +build unit

package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/opcode"
)

func TestApplyNoise_RejectsUnknownKind(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)

	err = k.ApplyNoise(opcode.Hadamard, []int{0}, 0.1)
	assert.ErrorIs(t, err, core.ErrUnknownOpcode)
}

func TestApplyNoise_RejectsWrongQubitCount(t *testing.T) {
	k, err := New(2, core.NewRNG(1))
	require.NoError(t, err)

	err = k.ApplyNoise(opcode.Depolarizing, []int{0, 1}, 0.1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	err = k.ApplyNoise(opcode.TwoQubitDepolarizing, []int{0}, 0.1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestDepolarizing_NoOpAtZeroProbability(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)

	require.NoError(t, k.depolarizing(0, 0))

	amps := k.Amplitudes()
	assert.Equal(t, complex(1, 0), amps[0])
	assert.Equal(t, complex(0, 0), amps[1])
}

func TestDepolarizing_RejectsOutOfRangeProbability(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)

	err = k.depolarizing(0, 1.5)
	assert.ErrorIs(t, err, core.ErrInvalidNoise)
}

func TestDepolarizing_StaysNormalized(t *testing.T) {
	k, err := New(1, core.NewRNG(42))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.NoError(t, k.depolarizing(0, 0.5))
		var sumSq float64
		for _, a := range k.Amplitudes() {
			sumSq += real(a)*real(a) + imag(a)*imag(a)
		}
		assert.InDelta(t, 1, sumSq, 1e-9)
	}
}

func TestBitFlip_AlwaysFlipsAtProbabilityOne(t *testing.T) {
	k, err := New(1, core.NewRNG(7))
	require.NoError(t, err)

	require.NoError(t, k.bitflip(0, 1))

	amps := k.Amplitudes()
	assert.Equal(t, complex(0, 0), amps[0])
	assert.Equal(t, complex(1, 0), amps[1])
}

func TestBitFlip_NoOpAtZeroProbability(t *testing.T) {
	k, err := New(1, core.NewRNG(7))
	require.NoError(t, err)

	require.NoError(t, k.bitflip(0, 0))

	amps := k.Amplitudes()
	assert.Equal(t, complex(1, 0), amps[0])
}

func TestPhaseFlip_AlwaysAppliesZAtProbabilityOne(t *testing.T) {
	k, err := New(1, core.NewRNG(7))
	require.NoError(t, err)
	require.NoError(t, k.ApplyUnitary1Q(0, XMatrix(), nil, false)) // -> |1>

	require.NoError(t, k.phaseflip(0, 1))

	amps := k.Amplitudes()
	assert.InDelta(t, -1, real(amps[1]), 1e-12)
}

func TestTwoQubitDepolarizing_NoOpAtZeroProbability(t *testing.T) {
	k, err := New(2, core.NewRNG(3))
	require.NoError(t, err)

	require.NoError(t, k.twoQubitDepolarizing(0, 1, 0))

	amps := k.Amplitudes()
	assert.Equal(t, complex(1, 0), amps[0])
}

func TestTwoQubitDepolarizing_StaysNormalized(t *testing.T) {
	k, err := New(2, core.NewRNG(99))
	require.NoError(t, err)
	require.NoError(t, k.ApplyUnitary1Q(0, HadamardMatrix(), nil, false))
	require.NoError(t, k.ApplyUnitary2Q(0, 1, CNOTMatrix(), nil, false))

	for i := 0; i < 200; i++ {
		require.NoError(t, k.twoQubitDepolarizing(0, 1, 0.3))
		var sumSq float64
		for _, a := range k.Amplitudes() {
			sumSq += real(a)*real(a) + imag(a)*imag(a)
		}
		assert.InDelta(t, 1, sumSq, 1e-9)
	}
}

func TestDamping_FullDecayMovesExcitedPopulationToGround(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)
	require.NoError(t, k.ApplyUnitary1Q(0, XMatrix(), nil, false)) // -> |1>

	require.NoError(t, k.damping(0, 1))

	amps := k.Amplitudes()
	assert.InDelta(t, 1, real(amps[0]), 1e-12)
	assert.InDelta(t, 0, real(amps[1]), 1e-12)
}

func TestDamping_NoOpAtZeroGamma(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)
	require.NoError(t, k.ApplyUnitary1Q(0, XMatrix(), nil, false)) // -> |1>

	require.NoError(t, k.damping(0, 0))

	amps := k.Amplitudes()
	assert.InDelta(t, 1, real(amps[1]), 1e-12)
}

func TestDamping_RejectsOutOfRangeParameter(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)

	err = k.damping(0, -0.2)
	assert.ErrorIs(t, err, core.ErrInvalidNoise)
}

// TestResetQubit_OverwritesWithSquaredModulus pins the reference bug
// preserved in resetQubit: the ground slot receives the excited
// amplitude's squared modulus rather than the amplitude itself.
func TestResetQubit_OverwritesWithSquaredModulus(t *testing.T) {
	k, err := New(1, core.NewRNG(1))
	require.NoError(t, err)

	half := complex(1/math.Sqrt2, 1/math.Sqrt2) // |amplitude|^2 = 1
	k.amplitudes[0] = 0
	k.amplitudes[1] = half

	require.NoError(t, k.resetQubit(0))

	amps := k.Amplitudes()
	assert.InDelta(t, 1, real(amps[0]), 1e-12) // squared modulus, not the amplitude itself
	assert.InDelta(t, 0, imag(amps[0]), 1e-12)
	assert.Equal(t, complex(0, 0), amps[1])
}
