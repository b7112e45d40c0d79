// Package kernel implements the dense state-vector core: allocation,
// unitary gate application, Kraus noise channels, and normalization.
package kernel

import (
	"fmt"
	"math"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/opcode"
)

// MaxQubits is the largest qubit count a Kernel will allocate; beyond
// this the dense 2^n amplitude array is no longer a reasonable
// in-memory representation.
const MaxQubits = 30

// Kernel holds a dense complex state vector for n qubits and applies
// unitary gates and noise channels to it in place. The k-th bit of a
// basis index is the state of qubit k, i.e. qubit 0 is the least
// significant bit.
type Kernel struct {
	amplitudes []complex128
	n          int
	rng        *core.RNG
}

// New allocates a Kernel for n qubits, initialized to |0...0>.
func New(n int, rng *core.RNG) (*Kernel, error) {
	if n <= 0 || n > MaxQubits {
		return nil, fmt.Errorf("qubit count %d out of [1,%d]: %w", n, MaxQubits, core.ErrInvalidArgument)
	}
	k := &Kernel{n: n, rng: rng}
	k.Reset()
	return k, nil
}

// N returns the qubit count this Kernel was allocated for.
func (k *Kernel) N() int {
	return k.n
}

// Reset reinitializes the state vector to |0...0>, discarding whatever
// it held before.
func (k *Kernel) Reset() {
	k.amplitudes = make([]complex128, 1<<k.n)
	k.amplitudes[0] = 1
}

// Amplitudes returns the live amplitude slice. Callers must not retain
// it across a later call that mutates the Kernel.
func (k *Kernel) Amplitudes() []complex128 {
	return k.amplitudes
}

func (k *Kernel) checkQubit(qn int) error {
	if qn < 0 || qn >= k.n {
		return fmt.Errorf("qubit %d out of range [0,%d): %w", qn, k.n, core.ErrOutOfRange)
	}
	return nil
}

func (k *Kernel) bitOf(qn int) int {
	return 1 << qn
}

func (k *Kernel) controllerMask(controllers []int) (int, error) {
	mask := 0
	for _, c := range controllers {
		if err := k.checkQubit(c); err != nil {
			return 0, err
		}
		mask |= k.bitOf(c)
	}
	return mask, nil
}

// ApplyUnitary1Q applies a single-qubit unitary to qn. A non-empty
// controllers list restricts the gate to basis indices whose every
// controller bit is 1; every other amplitude passes through unchanged.
func (k *Kernel) ApplyUnitary1Q(qn int, u Matrix2, controllers []int, dagger bool) error {
	if err := k.checkQubit(qn); err != nil {
		return err
	}
	mask, err := k.controllerMask(controllers)
	if err != nil {
		return err
	}
	if dagger {
		u = dagger2(u)
	}
	bit := k.bitOf(qn)
	for i := 0; i < len(k.amplitudes); i++ {
		if i&bit != 0 {
			continue
		}
		if mask != 0 && i&mask != mask {
			continue
		}
		j := i | bit
		a0, a1 := k.amplitudes[i], k.amplitudes[j]
		k.amplitudes[i] = u[0]*a0 + u[1]*a1
		k.amplitudes[j] = u[2]*a0 + u[3]*a1
	}
	return nil
}

// ApplyUnitary2Q applies a two-qubit unitary over the canonical
// (qn1,qn2) basis order. Controller semantics match ApplyUnitary1Q.
func (k *Kernel) ApplyUnitary2Q(qn1, qn2 int, u Matrix4, controllers []int, dagger bool) error {
	if err := k.checkQubit(qn1); err != nil {
		return err
	}
	if err := k.checkQubit(qn2); err != nil {
		return err
	}
	if qn1 == qn2 {
		return fmt.Errorf("two-qubit gate needs distinct qubits, got %d and %d: %w", qn1, qn2, core.ErrInvalidArgument)
	}
	mask, err := k.controllerMask(controllers)
	if err != nil {
		return err
	}
	if dagger {
		u = dagger4(u)
	}
	bit1, bit2 := k.bitOf(qn1), k.bitOf(qn2)
	both := bit1 | bit2
	for i := 0; i < len(k.amplitudes); i++ {
		if i&both != 0 {
			continue
		}
		if mask != 0 && i&mask != mask {
			continue
		}
		i00, i01, i10, i11 := i, i|bit2, i|bit1, i|bit1|bit2
		a00, a01, a10, a11 := k.amplitudes[i00], k.amplitudes[i01], k.amplitudes[i10], k.amplitudes[i11]
		k.amplitudes[i00] = u[0]*a00 + u[1]*a01 + u[2]*a10 + u[3]*a11
		k.amplitudes[i01] = u[4]*a00 + u[5]*a01 + u[6]*a10 + u[7]*a11
		k.amplitudes[i10] = u[8]*a00 + u[9]*a01 + u[10]*a10 + u[11]*a11
		k.amplitudes[i11] = u[12]*a00 + u[13]*a01 + u[14]*a10 + u[15]*a11
	}
	return nil
}

// Normalize rescales the amplitude vector so its squared magnitudes sum
// to 1. A zero vector is left untouched.
func (k *Kernel) Normalize() {
	var sumSq float64
	for _, a := range k.amplitudes {
		sumSq += real(a)*real(a) + imag(a)*imag(a)
	}
	if sumSq == 0 {
		return
	}
	scale := complex(1/math.Sqrt(sumSq), 0)
	for i := range k.amplitudes {
		k.amplitudes[i] *= scale
	}
}

// ApplyNoise dispatches a recorded noise opcode kind to its Kraus
// channel implementation. qubits must have the shape the channel
// expects: one qubit for Depolarizing/Damping/BitFlip/PhaseFlip, two
// for TwoQubitDepolarizing.
func (k *Kernel) ApplyNoise(kind opcode.Kind, qubits []int, p float64) error {
	switch kind {
	case opcode.Depolarizing:
		if len(qubits) != 1 {
			return fmt.Errorf("depolarizing noise needs exactly 1 qubit, got %d: %w", len(qubits), core.ErrInvalidArgument)
		}
		return k.depolarizing(qubits[0], p)
	case opcode.Damping:
		if len(qubits) != 1 {
			return fmt.Errorf("damping noise needs exactly 1 qubit, got %d: %w", len(qubits), core.ErrInvalidArgument)
		}
		// Renormalize first so accumulated drift does not trip damping's
		// 1e-10 mass check.
		k.Normalize()
		return k.damping(qubits[0], p)
	case opcode.BitFlip:
		if len(qubits) != 1 {
			return fmt.Errorf("bitflip noise needs exactly 1 qubit, got %d: %w", len(qubits), core.ErrInvalidArgument)
		}
		return k.bitflip(qubits[0], p)
	case opcode.PhaseFlip:
		if len(qubits) != 1 {
			return fmt.Errorf("phaseflip noise needs exactly 1 qubit, got %d: %w", len(qubits), core.ErrInvalidArgument)
		}
		return k.phaseflip(qubits[0], p)
	case opcode.TwoQubitDepolarizing:
		if len(qubits) != 2 {
			return fmt.Errorf("two-qubit depolarizing noise needs exactly 2 qubits, got %d: %w", len(qubits), core.ErrInvalidArgument)
		}
		return k.twoQubitDepolarizing(qubits[0], qubits[1], p)
	default:
		return fmt.Errorf("opcode kind %v is not a noise kind: %w", kind, core.ErrUnknownOpcode)
	}
}
