//go:build unit
// +build unit

package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
)

func TestParseGateKind_RecognizesEveryExternalName(t *testing.T) {
	cases := map[string]Kind{
		"IDENTITY": Identity,
		"HADAMARD": Hadamard,
		"X":        GateX,
		"Y":        GateY,
		"Z":        GateZ,
		"SX":       SX,
		"U22":      U22,
		"RX":       RX,
		"RY":       RY,
		"RZ":       RZ,
		"RPHI90":   RPhi90,
		"RPHI180":  RPhi180,
		"RPHI":     RPhi,
		"CZ":       CZ,
		"CNOT":     CNOT,
		"SWAP":     SWAP,
		"ISWAP":    ISwap,
		"XY":       XY,
		"TOFFOLI":  Toffoli,
		"CSWAP":    CSwap,
	}
	for name, want := range cases {
		got, err := ParseGateKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseGateKind_RejectsUnknownName(t *testing.T) {
	_, err := ParseGateKind("NOT_A_GATE")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestParseNoiseKind_RecognizesEveryExternalName(t *testing.T) {
	cases := map[string]Kind{
		"depolarizing":           Depolarizing,
		"damping":                Damping,
		"bitflip":                BitFlip,
		"phaseflip":              PhaseFlip,
		"two_qubit_depolarizing": TwoQubitDepolarizing,
	}
	for name, want := range cases {
		got, err := ParseNoiseKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseNoiseKind_RejectsUnknownName(t *testing.T) {
	_, err := ParseNoiseKind("not_a_noise_kind")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestIsGateKind_PartitionsFromIsNoiseKind(t *testing.T) {
	assert.True(t, IsGateKind(Hadamard))
	assert.False(t, IsNoiseKind(Hadamard))
	assert.True(t, IsNoiseKind(Damping))
	assert.False(t, IsGateKind(Damping))
}

func TestGateQubitCount_MatchesGateArity(t *testing.T) {
	assert.Equal(t, 1, GateQubitCount(Hadamard))
	assert.Equal(t, 2, GateQubitCount(CNOT))
	assert.Equal(t, 3, GateQubitCount(Toffoli))
	assert.Equal(t, 0, GateQubitCount(Damping))
}

func TestProgram_AppendAndIterate(t *testing.T) {
	var p Program
	p.Append(Opcode{Kind: Hadamard, Qubits: []int{0}})
	p.Append(Opcode{Kind: CNOT, Qubits: []int{0, 1}})

	require.Equal(t, 2, p.Len())
	assert.Equal(t, Hadamard, p.At(0).Kind)
	assert.Equal(t, CNOT, p.At(1).Kind)
	assert.Len(t, p.All(), 2)
}

func TestProgram_DeepCopyIsIndependentOfOriginal(t *testing.T) {
	var p Program
	p.Append(Opcode{Kind: Hadamard, Qubits: []int{0}})

	cloned := p.DeepCopy().(Program)
	cloned.Append(Opcode{Kind: CNOT, Qubits: []int{0, 1}})

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, cloned.Len())
	assert.Equal(t, Hadamard, cloned.At(0).Kind)
}
