package main

import (
	"encoding/json"
	"fmt"

	"github.com/nqsim-project/nqsim/common"
	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/recorder"
)

// gateCall is one JSON-encoded gate invocation in a circuit file.
type gateCall struct {
	Kind        string    `json:"kind"`
	Qubits      []int     `json:"qubits"`
	Params      []float64 `json:"params,omitempty"`
	Dagger      bool      `json:"dagger,omitempty"`
	Controllers []int     `json:"controllers,omitempty"`
}

// circuitFile is the JSON shape a caller hands nqsim in place of driving
// a recorder.Recorder through library calls directly.
type circuitFile struct {
	NQubit  int        `json:"n_qubit"`
	Shots   int        `json:"shots,omitempty"`
	Measure []int      `json:"measure"`
	Gates   []gateCall `json:"gates"`
}

// demoCircuit is what runs when no --circuit file is given: a two-qubit
// Bell pair, measured on both qubits.
func demoCircuit() *circuitFile {
	return &circuitFile{
		NQubit:  2,
		Measure: []int{0, 1},
		Gates: []gateCall{
			{Kind: "HADAMARD", Qubits: []int{0}},
			{Kind: "CNOT", Qubits: []int{0, 1}},
		},
	}
}

// loadCircuitFile reads and JSON-decodes path into a circuitFile.
func loadCircuitFile(path string) (*circuitFile, error) {
	blob, err := common.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading circuit file %s: %w", path, err)
	}
	var cf circuitFile
	if err := json.Unmarshal([]byte(blob), &cf); err != nil {
		return nil, fmt.Errorf("decoding circuit file %s: %w", path, err)
	}
	return &cf, nil
}

// buildRecorder replays cf's gate calls into r in order, resolving each
// gate name through recorder.LoadOpcode.
func buildRecorder(cf *circuitFile, r *recorder.Recorder) error {
	for i, g := range cf.Gates {
		var opts []recorder.GateOption
		if g.Dagger {
			opts = append(opts, recorder.WithDagger())
		}
		if len(g.Controllers) > 0 {
			opts = append(opts, recorder.WithControllers(g.Controllers...))
		}
		if err := r.LoadOpcode(g.Kind, g.Qubits, g.Params, opts...); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	r.Measure(cf.Measure)
	return nil
}

func (cf *circuitFile) validate(maxQubits int) error {
	if cf.NQubit <= 0 || cf.NQubit > maxQubits {
		return fmt.Errorf("n_qubit %d is outside [1, %d]: %w", cf.NQubit, maxQubits, core.ErrInvalidArgument)
	}
	return nil
}
