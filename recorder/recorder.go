// Package recorder turns a sequence of gate calls into two parallel
// opcode programs: the gates alone, and the gates interleaved with
// whatever noise the configured Store resolves for each one.
package recorder

import (
	"fmt"

	"github.com/mohae/deepcopy"

	"github.com/nqsim-project/nqsim/noise"
	"github.com/nqsim-project/nqsim/opcode"
)

// Recorder accumulates a noiseless program (the gates as called) and a
// noisy program (the gates plus every noise opcode the Store resolves
// for them), and remembers which qubits a caller asked to measure.
type Recorder struct {
	Noiseless     opcode.Program
	Noisy         opcode.Program
	Store         *noise.Store
	MeasureQubits []int
}

// New returns a Recorder backed by store. A nil store is equivalent to
// an empty one: every gate is recorded noiselessly and noisily with no
// noise opcodes interleaved.
func New(store *noise.Store) *Recorder {
	if store == nil {
		store = noise.NewStore()
	}
	return &Recorder{Store: store}
}

// options are per-call modifiers collected by the GateOption functions,
// collapsing what the reference implementation spells out as a
// separate "_cont" method per gate into a single call taking options.
type options struct {
	dagger      bool
	controllers []int
}

// GateOption customizes a single recording call.
type GateOption func(*options)

// WithDagger records the gate's conjugate-transpose instead of itself.
func WithDagger() GateOption {
	return func(o *options) { o.dagger = true }
}

// WithControllers restricts the gate to fire only when every qubit in
// controllers is set, matching the kernel's controller-mask semantics.
func WithControllers(controllers ...int) GateOption {
	return func(o *options) { o.controllers = controllers }
}

func resolveOptions(opts []GateOption) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (r *Recorder) record(kind opcode.Kind, qubits []int, params []float64, opts []GateOption) {
	o := resolveOptions(opts)
	op := opcode.Opcode{
		Kind:        kind,
		Qubits:      qubits,
		Params:      params,
		Dagger:      o.dagger,
		Controllers: o.controllers,
	}
	r.Noiseless.Append(op)
	r.Noisy.Append(op)
	for _, noiseOp := range r.Store.Resolve(kind, qubits) {
		r.Noisy.Append(noiseOp)
	}
}

// Identity records a no-op gate on qn.
func (r *Recorder) Identity(qn int, opts ...GateOption) {
	r.record(opcode.Identity, []int{qn}, nil, opts)
}

// Hadamard records a Hadamard gate on qn.
func (r *Recorder) Hadamard(qn int, opts ...GateOption) {
	r.record(opcode.Hadamard, []int{qn}, nil, opts)
}

// X records a Pauli X gate on qn.
func (r *Recorder) X(qn int, opts ...GateOption) {
	r.record(opcode.GateX, []int{qn}, nil, opts)
}

// Y records a Pauli Y gate on qn.
func (r *Recorder) Y(qn int, opts ...GateOption) {
	r.record(opcode.GateY, []int{qn}, nil, opts)
}

// Z records a Pauli Z gate on qn.
func (r *Recorder) Z(qn int, opts ...GateOption) {
	r.record(opcode.GateZ, []int{qn}, nil, opts)
}

// SX records a sqrt(X) gate on qn.
func (r *Recorder) SX(qn int, opts ...GateOption) {
	r.record(opcode.SX, []int{qn}, nil, opts)
}

// U22 records an arbitrary single-qubit unitary given as 8 floats,
// (re,im) pairs in row-major order.
func (r *Recorder) U22(qn int, params []float64, opts ...GateOption) {
	r.record(opcode.U22, []int{qn}, params, opts)
}

// RX records a rotation about X by theta.
func (r *Recorder) RX(qn int, theta float64, opts ...GateOption) {
	r.record(opcode.RX, []int{qn}, []float64{theta}, opts)
}

// RY records a rotation about Y by theta.
func (r *Recorder) RY(qn int, theta float64, opts ...GateOption) {
	r.record(opcode.RY, []int{qn}, []float64{theta}, opts)
}

// RZ records a rotation about Z by theta.
func (r *Recorder) RZ(qn int, theta float64, opts ...GateOption) {
	r.record(opcode.RZ, []int{qn}, []float64{theta}, opts)
}

// RPhi90 records a pi/2 rotation about the axis cos(phi)X+sin(phi)Y.
func (r *Recorder) RPhi90(qn int, phi float64, opts ...GateOption) {
	r.record(opcode.RPhi90, []int{qn}, []float64{phi}, opts)
}

// RPhi180 records a pi rotation about the axis cos(phi)X+sin(phi)Y.
func (r *Recorder) RPhi180(qn int, phi float64, opts ...GateOption) {
	r.record(opcode.RPhi180, []int{qn}, []float64{phi}, opts)
}

// RPhi records a theta rotation about the axis cos(phi)X+sin(phi)Y.
func (r *Recorder) RPhi(qn int, phi, theta float64, opts ...GateOption) {
	r.record(opcode.RPhi, []int{qn}, []float64{phi, theta}, opts)
}

// CZ records a controlled-Z gate between qn1 and qn2.
func (r *Recorder) CZ(qn1, qn2 int, opts ...GateOption) {
	r.record(opcode.CZ, []int{qn1, qn2}, nil, opts)
}

// CNOT records a controlled-X gate, qn1 controlling qn2.
func (r *Recorder) CNOT(qn1, qn2 int, opts ...GateOption) {
	r.record(opcode.CNOT, []int{qn1, qn2}, nil, opts)
}

// SWAP records a SWAP gate between qn1 and qn2.
func (r *Recorder) SWAP(qn1, qn2 int, opts ...GateOption) {
	r.record(opcode.SWAP, []int{qn1, qn2}, nil, opts)
}

// ISwap records an iSWAP gate between qn1 and qn2.
func (r *Recorder) ISwap(qn1, qn2 int, opts ...GateOption) {
	r.record(opcode.ISwap, []int{qn1, qn2}, nil, opts)
}

// XY records a parametric XY(theta) gate between qn1 and qn2.
func (r *Recorder) XY(qn1, qn2 int, theta float64, opts ...GateOption) {
	r.record(opcode.XY, []int{qn1, qn2}, []float64{theta}, opts)
}

// Toffoli records a CCX gate. The kernel does not implement a 3-qubit
// dispatch for it; recording is allowed, execution is not.
func (r *Recorder) Toffoli(qn1, qn2, qn3 int, opts ...GateOption) {
	r.record(opcode.Toffoli, []int{qn1, qn2, qn3}, nil, opts)
}

// CSwap records a controlled-SWAP gate. Same execution caveat as
// Toffoli.
func (r *Recorder) CSwap(qn1, qn2, qn3 int, opts ...GateOption) {
	r.record(opcode.CSwap, []int{qn1, qn2, qn3}, nil, opts)
}

// LoadOpcode records a gate by its external string name rather than
// through a dedicated method, resolving name via opcode.ParseGateKind.
func (r *Recorder) LoadOpcode(name string, qubits []int, params []float64, opts ...GateOption) error {
	kind, err := opcode.ParseGateKind(name)
	if err != nil {
		return fmt.Errorf("loading opcode %q: %w", name, err)
	}
	r.record(kind, qubits, params, opts)
	return nil
}

// Measure records which qubits a later sampling pass should read out.
// Unlike a gate call, this appends no opcode to either program.
func (r *Recorder) Measure(qubits []int) {
	r.MeasureQubits = qubits
}

// Clone returns a deep copy of r: mutating the clone's programs never
// affects the original, and vice versa.
func (r *Recorder) Clone() *Recorder {
	clone := deepcopy.Copy(r)
	cloned, ok := clone.(*Recorder)
	if !ok {
		panic(fmt.Sprintf("recorder: deepcopy returned %T, not *Recorder", clone))
	}
	return cloned
}
