// Package noise holds the layered noise model that tells the recorder
// what Kraus channel opcodes to emit alongside a recorded gate. Layers
// compose in a fixed order — global, then gate-type, then
// gate+qubit-specific — matching a noise description that was built up
// incrementally from a device characterization pass.
package noise

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/opcode"
)

// Entry is one noise-channel parameterization: a kind (depolarizing,
// damping, bitflip, phaseflip, two_qubit_depolarizing) and the single
// probability parameter it takes.
type Entry struct {
	Kind opcode.Kind
	P    float64
}

// GateQubitKey identifies a single qubit's gate-specific noise entry.
type GateQubitKey struct {
	Gate  opcode.Kind
	Qubit int
}

// GateQubitPairKey identifies a two-qubit gate's gate-specific noise
// entry, or a crosstalk entry when the two qubits didn't act together
// under the same gate kind.
type GateQubitPairKey struct {
	Gate opcode.Kind
	Qn1  int
	Qn2  int
}

// Injector is the seam the layered resolution order is built from: each
// layer knows how to turn one recorded gate invocation into zero or
// more noise opcodes, independent of how the other layers behave.
type Injector interface {
	EmitNoiseOpcodes(gate opcode.Kind, qubits []int) []opcode.Opcode
}

func entryOpcode(qubits []int, e Entry) opcode.Opcode {
	return opcode.Opcode{Kind: e.Kind, Qubits: qubits, Params: []float64{e.P}}
}

// globalInjector fires the same entries after every gate, regardless of
// which gate it was or which qubits it touched.
type globalInjector struct {
	entries []Entry
}

func (g *globalInjector) EmitNoiseOpcodes(_ opcode.Kind, qubits []int) []opcode.Opcode {
	out := make([]opcode.Opcode, 0, len(g.entries))
	for _, e := range g.entries {
		out = append(out, entryOpcode(qubits, e))
	}
	return out
}

// gateDependentInjector fires entries keyed only by gate kind, on top of
// whatever the global layer already emitted.
type gateDependentInjector struct {
	byGate map[opcode.Kind][]Entry
}

func (g *gateDependentInjector) EmitNoiseOpcodes(gate opcode.Kind, qubits []int) []opcode.Opcode {
	entries := g.byGate[gate]
	out := make([]opcode.Opcode, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryOpcode(qubits, e))
	}
	return out
}

// gateSpecificInjector fires entries keyed by the exact (gate, qubit)
// or (gate, qn1, qn2) tuple that acted, plus a crosstalk scan: for a
// single-qubit gate on qn, any two-qubit table entry keyed by the same
// gate kind whose first qubit is qn contributes its noise against qn and
// that entry's second qubit, even though the two never acted together. This
// partial-key scan is how the acting qubit picks up noise caused by a
// neighbor it was never explicitly paired with in the table.
type gateSpecificInjector struct {
	oneQubit map[GateQubitKey]Entry
	twoQubit map[GateQubitPairKey]Entry
}

func (g *gateSpecificInjector) EmitNoiseOpcodes(gate opcode.Kind, qubits []int) []opcode.Opcode {
	var out []opcode.Opcode
	switch len(qubits) {
	case 1:
		qn := qubits[0]
		if e, ok := g.oneQubit[GateQubitKey{Gate: gate, Qubit: qn}]; ok {
			out = append(out, entryOpcode(qubits, e))
		}
		for key, e := range g.twoQubit {
			if key.Gate != gate || key.Qn1 != qn {
				continue
			}
			out = append(out, entryOpcode([]int{key.Qn1, key.Qn2}, e))
		}
	case 2:
		qn1, qn2 := qubits[0], qubits[1]
		if e, ok := g.twoQubit[GateQubitPairKey{Gate: gate, Qn1: qn1, Qn2: qn2}]; ok {
			out = append(out, entryOpcode(qubits, e))
		}
		for _, qn := range qubits {
			if e, ok := g.oneQubit[GateQubitKey{Gate: gate, Qubit: qn}]; ok {
				out = append(out, entryOpcode([]int{qn}, e))
			}
		}
	}
	return out
}

// Store composes the three noise layers in the fixed resolution order
// global -> gate-dependent -> gate-specific, and validates every table
// at load time.
type Store struct {
	global        *globalInjector
	gateDependent *gateDependentInjector
	gateSpecific  *gateSpecificInjector
}

// NewStore returns an empty Store: every layer present but inert.
func NewStore() *Store {
	return &Store{
		global:        &globalInjector{},
		gateDependent: &gateDependentInjector{byGate: map[opcode.Kind][]Entry{}},
		gateSpecific: &gateSpecificInjector{
			oneQubit: map[GateQubitKey]Entry{},
			twoQubit: map[GateQubitPairKey]Entry{},
		},
	}
}

// LoadGlobal replaces the global layer's entries, validating each
// kind/probability pair and aggregating every failure with multierr so
// a caller sees every bad entry in one pass rather than just the first.
func (s *Store) LoadGlobal(entries []Entry) error {
	var errs error
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("global noise entry %d: %w", i, err))
		}
	}
	if errs != nil {
		return errs
	}
	s.global.entries = entries
	return nil
}

// LoadGateDependent replaces the gate-type-keyed layer's table.
func (s *Store) LoadGateDependent(table map[opcode.Kind][]Entry) error {
	var errs error
	for gate, entries := range table {
		for i, e := range entries {
			if err := validateEntry(e); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("gate-dependent noise entry %s[%d]: %w", gate, i, err))
			}
		}
	}
	if errs != nil {
		return errs
	}
	s.gateDependent.byGate = table
	return nil
}

// LoadGateSpecific1Q replaces the single-qubit gate-specific table.
func (s *Store) LoadGateSpecific1Q(table map[GateQubitKey]Entry) error {
	var errs error
	for key, e := range table {
		if opcode.GateQubitCount(key.Gate) > 2 {
			errs = multierr.Append(errs, fmt.Errorf("gate %s takes more than 2 qubits, not valid in a 1-qubit noise table: %w", key.Gate, core.ErrInvalidArgument))
			continue
		}
		if err := validateEntry(e); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("1-qubit gate-specific noise entry %+v: %w", key, err))
		}
	}
	if errs != nil {
		return errs
	}
	s.gateSpecific.oneQubit = table
	return nil
}

// LoadGateSpecific2Q replaces the two-qubit (and crosstalk) gate-specific
// table. Entries naming a gate with more than 2 qubits are rejected,
// matching the reference table loader's rejection of unsupported gate
// shapes.
func (s *Store) LoadGateSpecific2Q(table map[GateQubitPairKey]Entry) error {
	var errs error
	for key, e := range table {
		if opcode.GateQubitCount(key.Gate) > 2 {
			errs = multierr.Append(errs, fmt.Errorf("gate %s takes more than 2 qubits, not valid in a 2-qubit noise table: %w", key.Gate, core.ErrInvalidArgument))
			continue
		}
		if err := validateEntry(e); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("2-qubit gate-specific noise entry %+v: %w", key, err))
		}
	}
	if errs != nil {
		return errs
	}
	s.gateSpecific.twoQubit = table
	return nil
}

func validateEntry(e Entry) error {
	if !opcode.IsNoiseKind(e.Kind) {
		return fmt.Errorf("%s is not a noise kind: %w", e.Kind, core.ErrInvalidArgument)
	}
	if e.P < 0 || e.P > 1 {
		return fmt.Errorf("probability %v out of [0,1]: %w", e.P, core.ErrInvalidNoise)
	}
	return nil
}

// Resolve returns every noise opcode that should follow a recording of
// gate on qubits, composing the three layers in the fixed order global,
// then gate-dependent, then gate-specific.
func (s *Store) Resolve(gate opcode.Kind, qubits []int) []opcode.Opcode {
	out := s.global.EmitNoiseOpcodes(gate, qubits)
	out = append(out, s.gateDependent.EmitNoiseOpcodes(gate, qubits)...)
	out = append(out, s.gateSpecific.EmitNoiseOpcodes(gate, qubits)...)
	return out
}

// DeepCopy implements deepcopy.Interface. The three injector layers are
// unexported pointers, so without this hook mohae/deepcopy's generic
// struct walk leaves a cloned Store with all three nil — the next
// Resolve call on the clone would dereference a nil *globalInjector.
func (s *Store) DeepCopy() interface{} {
	global := make([]Entry, len(s.global.entries))
	copy(global, s.global.entries)

	byGate := make(map[opcode.Kind][]Entry, len(s.gateDependent.byGate))
	for gate, entries := range s.gateDependent.byGate {
		cloned := make([]Entry, len(entries))
		copy(cloned, entries)
		byGate[gate] = cloned
	}

	oneQubit := make(map[GateQubitKey]Entry, len(s.gateSpecific.oneQubit))
	for k, v := range s.gateSpecific.oneQubit {
		oneQubit[k] = v
	}
	twoQubit := make(map[GateQubitPairKey]Entry, len(s.gateSpecific.twoQubit))
	for k, v := range s.gateSpecific.twoQubit {
		twoQubit[k] = v
	}

	return &Store{
		global:        &globalInjector{entries: global},
		gateDependent: &gateDependentInjector{byGate: byGate},
		gateSpecific:  &gateSpecificInjector{oneQubit: oneQubit, twoQubit: twoQubit},
	}
}
