// Package opcode defines the closed vocabulary of gate and noise kinds
// an opcode.Program can hold, and the Opcode/Program types themselves.
package opcode

import (
	"fmt"

	"github.com/nqsim-project/nqsim/core"
)

// Kind is the closed enumeration unioning unitary-gate kinds and
// noise-channel kinds into one integer namespace, matching the
// reference opcode encoding's single "op" field. IsGateKind/IsNoiseKind
// partition the space; the Opcode type itself stays a flat, homogeneous
// struct rather than a tagged union so Program remains the simple
// append-only slice the spec requires.
type Kind uint32

const (
	// Unitary gate kinds.
	Identity Kind = iota + 1
	Hadamard
	GateX
	GateY
	GateZ
	SX
	U22
	RX
	RY
	RZ
	RPhi90
	RPhi180
	RPhi
	CZ
	CNOT
	SWAP
	ISwap
	XY
	Toffoli
	CSwap

	// Noise channel kinds.
	Depolarizing
	Damping
	BitFlip
	PhaseFlip
	TwoQubitDepolarizing
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "IDENTITY"
	case Hadamard:
		return "HADAMARD"
	case GateX:
		return "X"
	case GateY:
		return "Y"
	case GateZ:
		return "Z"
	case SX:
		return "SX"
	case U22:
		return "U22"
	case RX:
		return "RX"
	case RY:
		return "RY"
	case RZ:
		return "RZ"
	case RPhi90:
		return "RPHI90"
	case RPhi180:
		return "RPHI180"
	case RPhi:
		return "RPHI"
	case CZ:
		return "CZ"
	case CNOT:
		return "CNOT"
	case SWAP:
		return "SWAP"
	case ISwap:
		return "ISWAP"
	case XY:
		return "XY"
	case Toffoli:
		return "TOFFOLI"
	case CSwap:
		return "CSWAP"
	case Depolarizing:
		return "depolarizing"
	case Damping:
		return "damping"
	case BitFlip:
		return "bitflip"
	case PhaseFlip:
		return "phaseflip"
	case TwoQubitDepolarizing:
		return "two_qubit_depolarizing"
	default:
		return "UNKNOWN"
	}
}

// IsGateKind reports whether k is one of the unitary-gate kinds.
func IsGateKind(k Kind) bool {
	return k >= Identity && k <= CSwap
}

// IsNoiseKind reports whether k is one of the noise-channel kinds.
func IsNoiseKind(k Kind) bool {
	return k >= Depolarizing && k <= TwoQubitDepolarizing
}

// GateQubitCount returns how many target qubits a gate kind of this
// shape takes, used by the noise model store to reject >2-qubit entries
// in the gate-specific tables at load time.
func GateQubitCount(k Kind) int {
	switch k {
	case Identity, Hadamard, GateX, GateY, GateZ, SX, U22, RX, RY, RZ, RPhi90, RPhi180, RPhi:
		return 1
	case CZ, CNOT, SWAP, ISwap, XY:
		return 2
	case Toffoli, CSwap:
		return 3
	default:
		return 0
	}
}

// ParseGateKind resolves the external gate-name spelling from §6 to a
// Kind, failing with core.ErrInvalidArgument on an unrecognized name —
// grounded on string_to_SupportOperationType in the reference
// implementation.
func ParseGateKind(name string) (Kind, error) {
	switch name {
	case "IDENTITY":
		return Identity, nil
	case "HADAMARD":
		return Hadamard, nil
	case "X":
		return GateX, nil
	case "Y":
		return GateY, nil
	case "Z":
		return GateZ, nil
	case "SX":
		return SX, nil
	case "U22":
		return U22, nil
	case "RX":
		return RX, nil
	case "RY":
		return RY, nil
	case "RZ":
		return RZ, nil
	case "RPHI90":
		return RPhi90, nil
	case "RPHI180":
		return RPhi180, nil
	case "RPHI":
		return RPhi, nil
	case "CZ":
		return CZ, nil
	case "CNOT":
		return CNOT, nil
	case "SWAP":
		return SWAP, nil
	case "ISWAP":
		return ISwap, nil
	case "XY":
		return XY, nil
	case "TOFFOLI":
		return Toffoli, nil
	case "CSWAP":
		return CSwap, nil
	default:
		return 0, fmt.Errorf("%q is not a recognized gate name: %w", name, core.ErrInvalidArgument)
	}
}

// ParseNoiseKind resolves the external noise-name spelling from §6 to a
// Kind, failing with core.ErrInvalidArgument on an unrecognized name.
func ParseNoiseKind(name string) (Kind, error) {
	switch name {
	case "depolarizing":
		return Depolarizing, nil
	case "damping":
		return Damping, nil
	case "bitflip":
		return BitFlip, nil
	case "phaseflip":
		return PhaseFlip, nil
	case "two_qubit_depolarizing":
		return TwoQubitDepolarizing, nil
	default:
		return 0, fmt.Errorf("%q is not a recognized noise name: %w", name, core.ErrInvalidArgument)
	}
}

// Opcode is one recorded instruction, gate or noise, immutable once
// appended to a Program.
type Opcode struct {
	Kind        Kind
	Qubits      []int
	Params      []float64
	Dagger      bool
	Controllers []int
}

func (o Opcode) String() string {
	return fmt.Sprintf("%s(qubits=%v params=%v dagger=%v controllers=%v)",
		o.Kind, o.Qubits, o.Params, o.Dagger, o.Controllers)
}

// Program is an ordered, append-only sequence of opcodes. A Program is
// read-only from the run-time perspective; only Append ever mutates it.
type Program struct {
	opcodes []Opcode
}

// Append records o at the end of the program.
func (p *Program) Append(o Opcode) {
	p.opcodes = append(p.opcodes, o)
}

// Len returns the number of recorded opcodes.
func (p *Program) Len() int {
	return len(p.opcodes)
}

// At returns the i-th opcode.
func (p *Program) At(i int) Opcode {
	return p.opcodes[i]
}

// All returns the underlying opcode slice for iteration. Callers must
// not mutate the returned slice.
func (p *Program) All() []Opcode {
	return p.opcodes
}

// DeepCopy implements deepcopy.Interface. opcodes is unexported, so
// without this hook mohae/deepcopy's generic struct walk skips it and
// a cloned Program loses every opcode it had recorded.
func (p Program) DeepCopy() interface{} {
	opcodes := make([]Opcode, len(p.opcodes))
	for i, op := range p.opcodes {
		opcodes[i] = Opcode{
			Kind:        op.Kind,
			Qubits:      append([]int(nil), op.Qubits...),
			Params:      append([]float64(nil), op.Params...),
			Dagger:      op.Dagger,
			Controllers: append([]int(nil), op.Controllers...),
		}
	}
	return Program{opcodes: opcodes}
}
