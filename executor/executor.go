// Package executor replays a recorded noisy program against a fresh
// kernel once per shot and folds the sampled, readout-perturbed outcome
// into a histogram.
package executor

import (
	"fmt"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/kernel"
	"github.com/nqsim-project/nqsim/opcode"
	"github.com/nqsim-project/nqsim/recorder"
	"github.com/nqsim-project/nqsim/sampler"
)

// Executor owns the recorded program it replays and the RNG stream
// every shot's noise draws and sampling draws pull from, in call order.
type Executor struct {
	recorder *recorder.Recorder
	n        int
	rng      *core.RNG
}

// New returns an Executor that will replay r's noisy program against
// an n-qubit kernel, one fresh reset per shot.
func New(r *recorder.Recorder, n int, rng *core.RNG) (*Executor, error) {
	if r == nil {
		return nil, fmt.Errorf("executor needs a non-nil recorder: %w", core.ErrInvalidArgument)
	}
	return &Executor{recorder: r, n: n, rng: rng}, nil
}

func gateMatrix1Q(kind opcode.Kind, params []float64) (kernel.Matrix2, error) {
	switch kind {
	case opcode.Identity:
		return kernel.Matrix2{1, 0, 0, 1}, nil
	case opcode.Hadamard:
		return kernel.HadamardMatrix(), nil
	case opcode.GateX:
		return kernel.XMatrix(), nil
	case opcode.GateY:
		return kernel.YMatrix(), nil
	case opcode.GateZ:
		return kernel.ZMatrix(), nil
	case opcode.SX:
		return kernel.SXMatrix(), nil
	case opcode.U22:
		return kernel.U22Matrix(params), nil
	case opcode.RX:
		return kernel.RXMatrix(params[0]), nil
	case opcode.RY:
		return kernel.RYMatrix(params[0]), nil
	case opcode.RZ:
		return kernel.RZMatrix(params[0]), nil
	case opcode.RPhi90:
		return kernel.RPhi90Matrix(params[0]), nil
	case opcode.RPhi180:
		return kernel.RPhi180Matrix(params[0]), nil
	case opcode.RPhi:
		return kernel.RPhiMatrix(params[0], params[1]), nil
	default:
		return kernel.Matrix2{}, fmt.Errorf("%s is not a 1-qubit gate: %w", kind, core.ErrUnknownOpcode)
	}
}

func gateMatrix2Q(kind opcode.Kind, params []float64) (kernel.Matrix4, error) {
	switch kind {
	case opcode.CZ:
		return kernel.CZMatrix(), nil
	case opcode.CNOT:
		return kernel.CNOTMatrix(), nil
	case opcode.SWAP:
		return kernel.SWAPMatrix(), nil
	case opcode.ISwap:
		return kernel.ISwapMatrix(), nil
	case opcode.XY:
		return kernel.XYMatrix(params[0]), nil
	default:
		return kernel.Matrix4{}, fmt.Errorf("%s is not a 2-qubit gate: %w", kind, core.ErrUnknownOpcode)
	}
}

// dispatch applies a single opcode to k. It is the one place that
// switches over every Kind the simulator knows about; reaching the
// default case means Program holds a Kind this executor was never
// taught to run.
func dispatch(k *kernel.Kernel, op opcode.Opcode) error {
	switch {
	case opcode.IsNoiseKind(op.Kind):
		if len(op.Params) != 1 {
			return fmt.Errorf("noise opcode %s needs exactly 1 parameter, got %d: %w", op.Kind, len(op.Params), core.ErrInvalidArgument)
		}
		return k.ApplyNoise(op.Kind, op.Qubits, op.Params[0])
	case op.Kind == opcode.Toffoli, op.Kind == opcode.CSwap:
		return fmt.Errorf("%s has no kernel dispatch: %w", op.Kind, core.ErrUnsupportedGate)
	case opcode.GateQubitCount(op.Kind) == 1:
		if len(op.Qubits) != 1 {
			return fmt.Errorf("gate %s needs exactly 1 qubit, got %d: %w", op.Kind, len(op.Qubits), core.ErrInvalidArgument)
		}
		u, err := gateMatrix1Q(op.Kind, op.Params)
		if err != nil {
			return err
		}
		return k.ApplyUnitary1Q(op.Qubits[0], u, op.Controllers, op.Dagger)
	case opcode.GateQubitCount(op.Kind) == 2:
		if len(op.Qubits) != 2 {
			return fmt.Errorf("gate %s needs exactly 2 qubits, got %d: %w", op.Kind, len(op.Qubits), core.ErrInvalidArgument)
		}
		u, err := gateMatrix2Q(op.Kind, op.Params)
		if err != nil {
			return err
		}
		return k.ApplyUnitary2Q(op.Qubits[0], op.Qubits[1], u, op.Controllers, op.Dagger)
	default:
		return fmt.Errorf("opcode kind %v has no dispatch: %w", op.Kind, core.ErrUnknownOpcode)
	}
}

// ExecuteOnce replays the recorder's noisy program against a freshly
// reset kernel and samples one basis outcome from the resulting state.
// It does not apply readout error or qubit projection.
func (e *Executor) ExecuteOnce() (int, error) {
	k, err := kernel.New(e.n, e.rng)
	if err != nil {
		return 0, err
	}
	for _, op := range e.recorder.Noisy.All() {
		if err := dispatch(k, op); err != nil {
			return 0, err
		}
	}
	return sampler.SampleBasis(k.Amplitudes(), e.rng)
}

// GetMeasure runs ExecuteOnce, applies independent per-qubit readout
// error, and projects the result onto the recorder's measured qubits.
// A nil readout table skips the error step.
func (e *Executor) GetMeasure(readout []sampler.ReadoutError) (int, error) {
	outcome, err := e.ExecuteOnce()
	if err != nil {
		return 0, err
	}
	if readout != nil {
		outcome, err = sampler.ApplyReadoutError(outcome, e.n, readout, e.rng)
		if err != nil {
			return 0, err
		}
	}
	m := sampler.BuildMeasureMap(e.recorder.MeasureQubits, e.n)
	return m.Project(outcome), nil
}

func bitstring(value, width int) string {
	return fmt.Sprintf("%0*b", width, value)
}

// MeasureShots runs shots independent GetMeasure calls and folds them
// into a histogram keyed by zero-padded binary string.
func (e *Executor) MeasureShots(shots int, readout []sampler.ReadoutError) (core.Counts, error) {
	return e.measureShots(e.recorder.MeasureQubits, shots, readout)
}

// MeasureShotsFor is MeasureShots but measuring measureList instead of
// whatever the recorder's Measure call selected.
func (e *Executor) MeasureShotsFor(measureList []int, shots int, readout []sampler.ReadoutError) (core.Counts, error) {
	return e.measureShots(measureList, shots, readout)
}

func (e *Executor) measureShots(measureList []int, shots int, readout []sampler.ReadoutError) (core.Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shot count %d must be positive: %w", shots, core.ErrInvalidArgument)
	}
	m := sampler.BuildMeasureMap(measureList, e.n)
	counts := core.Counts{}
	for i := 0; i < shots; i++ {
		outcome, err := e.ExecuteOnce()
		if err != nil {
			return nil, err
		}
		if readout != nil {
			outcome, err = sampler.ApplyReadoutError(outcome, e.n, readout, e.rng)
			if err != nil {
				return nil, err
			}
		}
		key := bitstring(m.Project(outcome), m.Width())
		counts[key]++
	}
	return counts, nil
}
