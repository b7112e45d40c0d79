// Package noiseconfig loads a noise model description from a TOML
// file into the types the noise and sampler packages operate on.
package noiseconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/nqsim-project/nqsim/common"
	"github.com/nqsim-project/nqsim/noise"
	"github.com/nqsim-project/nqsim/opcode"
	"github.com/nqsim-project/nqsim/sampler"
)

// NoiseEntry is one TOML-decoded noise channel parameterization.
type NoiseEntry struct {
	Kind string  `toml:"kind"`
	P    float64 `toml:"p"`
}

// GateNoiseEntry is a NoiseEntry scoped to one gate kind.
type GateNoiseEntry struct {
	Gate string  `toml:"gate"`
	Kind string  `toml:"kind"`
	P    float64 `toml:"p"`
}

// GateError1Q is a gate-specific single-qubit noise table entry.
type GateError1Q struct {
	Gate  string  `toml:"gate"`
	Qubit int     `toml:"qubit"`
	Kind  string  `toml:"kind"`
	P     float64 `toml:"p"`
}

// GateError2Q is a gate-specific two-qubit (or crosstalk) noise table
// entry.
type GateError2Q struct {
	Gate string  `toml:"gate"`
	Qn1  int     `toml:"qn1"`
	Qn2  int     `toml:"qn2"`
	Kind string  `toml:"kind"`
	P    float64 `toml:"p"`
}

// MeasurementErrorEntry is one qubit's independent readout error model.
type MeasurementErrorEntry struct {
	Qubit int     `toml:"qubit"`
	P01   float64 `toml:"p01"`
	P10   float64 `toml:"p10"`
}

// NoiseModelFile is the decoded shape of a noise model TOML file,
// covering the construction inputs a simulator needs: qubit count, and
// the four noise layers plus the readout error table.
type NoiseModelFile struct {
	NQubit                 int                     `toml:"n_qubit"`
	NoiseDescription       []NoiseEntry            `toml:"noise_description"`
	GateNoiseDescription   []GateNoiseEntry        `toml:"gate_noise_description"`
	GateError1QDescription []GateError1Q           `toml:"gate_error1q_description"`
	GateError2QDescription []GateError2Q           `toml:"gate_error2q_description"`
	MeasurementError       []MeasurementErrorEntry `toml:"measurement_error"`
}

// NewNoiseModelFile returns a noiseless default: a single-qubit model
// with no noise entries and no readout error, used when a file can't
// be read.
func NewNoiseModelFile() *NoiseModelFile {
	return &NoiseModelFile{NQubit: 1}
}

// LoadNoiseModelFile reads and TOML-decodes path. If the file can't be
// read, common.ReadSettingsFile logs why (including the resolved
// absolute path, to help track down a bad working directory) and this
// falls back to NewNoiseModelFile's defaults rather than failing — a
// missing noise model file means "run noiseless", not "refuse to run".
func LoadNoiseModelFile(path string) (*NoiseModelFile, error) {
	blob, readErr := common.ReadSettingsFile(path)
	nm := NewNoiseModelFile()
	if readErr != nil {
		return nm, nil
	}
	if _, err := toml.Decode(blob, nm); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode noise model file:%s", path))
		return nil, err
	}
	return nm, nil
}

// BuildStore converts the decoded noise layers into a populated
// noise.Store, validating every entry in the process.
func (nm *NoiseModelFile) BuildStore() (*noise.Store, error) {
	store := noise.NewStore()

	global := make([]noise.Entry, 0, len(nm.NoiseDescription))
	for _, e := range nm.NoiseDescription {
		kind, err := opcode.ParseNoiseKind(e.Kind)
		if err != nil {
			return nil, err
		}
		global = append(global, noise.Entry{Kind: kind, P: e.P})
	}
	if err := store.LoadGlobal(global); err != nil {
		return nil, err
	}

	gateDependent := map[opcode.Kind][]noise.Entry{}
	for _, e := range nm.GateNoiseDescription {
		gate, err := opcode.ParseGateKind(e.Gate)
		if err != nil {
			return nil, err
		}
		kind, err := opcode.ParseNoiseKind(e.Kind)
		if err != nil {
			return nil, err
		}
		gateDependent[gate] = append(gateDependent[gate], noise.Entry{Kind: kind, P: e.P})
	}
	if err := store.LoadGateDependent(gateDependent); err != nil {
		return nil, err
	}

	oneQubit := map[noise.GateQubitKey]noise.Entry{}
	for _, e := range nm.GateError1QDescription {
		gate, err := opcode.ParseGateKind(e.Gate)
		if err != nil {
			return nil, err
		}
		kind, err := opcode.ParseNoiseKind(e.Kind)
		if err != nil {
			return nil, err
		}
		oneQubit[noise.GateQubitKey{Gate: gate, Qubit: e.Qubit}] = noise.Entry{Kind: kind, P: e.P}
	}
	if err := store.LoadGateSpecific1Q(oneQubit); err != nil {
		return nil, err
	}

	twoQubit := map[noise.GateQubitPairKey]noise.Entry{}
	for _, e := range nm.GateError2QDescription {
		gate, err := opcode.ParseGateKind(e.Gate)
		if err != nil {
			return nil, err
		}
		kind, err := opcode.ParseNoiseKind(e.Kind)
		if err != nil {
			return nil, err
		}
		twoQubit[noise.GateQubitPairKey{Gate: gate, Qn1: e.Qn1, Qn2: e.Qn2}] = noise.Entry{Kind: kind, P: e.P}
	}
	if err := store.LoadGateSpecific2Q(twoQubit); err != nil {
		return nil, err
	}

	return store, nil
}

// BuildReadoutErrorTable converts the decoded measurement error entries
// into a dense, qubit-indexed table sized for an n-qubit device. Qubits
// with no entry default to a zero-error ReadoutError.
func (nm *NoiseModelFile) BuildReadoutErrorTable(n int) []sampler.ReadoutError {
	table := make([]sampler.ReadoutError, n)
	for _, e := range nm.MeasurementError {
		if e.Qubit < 0 || e.Qubit >= n {
			continue
		}
		table[e.Qubit] = sampler.ReadoutError{P01: e.P01, P10: e.P10}
	}
	return table
}
