package core

import "errors"

// Sentinel errors forming the simulator's error taxonomy. Call sites wrap
// these with fmt.Errorf("...: %w", ErrX) so callers can still use
// errors.Is against the category while getting a situated message.
var (
	// ErrOutOfRange is returned when a qubit index is >= n.
	ErrOutOfRange = errors.New("qubit index out of range")

	// ErrInvalidArgument is returned for unknown opcode/noise names,
	// malformed opcode shapes, or a gate-specific noise table entry
	// naming a gate with more than two qubits.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidNoise is returned when a Kraus channel's probabilities
	// are outside [0,1] or its branch masses drift from 1 by more than
	// the 1e-10 tolerance.
	ErrInvalidNoise = errors.New("invalid noise parameter")

	// ErrUnknownOpcode is fatal: the dispatcher reached an opcode kind
	// it has no handler for.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrInternalInconsistency is fatal: the sampler walked past the
	// end of the amplitude array, meaning the state was unnormalized.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrUnsupportedGate marks a deliberately stubbed gate: the opcode
	// is recordable but the kernel has no >2-qubit unitary dispatch.
	ErrUnsupportedGate = errors.New("gate not implemented by this kernel")
)
