// Package sampler turns a kernel's amplitude vector into measurement
// outcomes: walk-and-subtract basis sampling, independent per-qubit
// readout error, and projection onto a chosen subset of qubits.
package sampler

import (
	"fmt"

	"github.com/nqsim-project/nqsim/core"
)

// ReadoutError is one qubit's independent measurement error model:
// P01 is the probability a true 0 reads out as 1, P10 is the
// probability a true 1 reads out as 0.
type ReadoutError struct {
	P01 float64
	P10 float64
}

// SampleBasis draws one basis index from amps's probability
// distribution |amp_i|^2 by walking the cumulative distribution and
// subtracting as it goes. It fails with core.ErrInternalInconsistency
// if the walk runs past the end of amps, which only happens when the
// state vector wasn't normalized.
func SampleBasis(amps []complex128, rng *core.RNG) (int, error) {
	r := rng.Float64()
	for i, a := range amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if r < p {
			return i, nil
		}
		r -= p
	}
	return 0, fmt.Errorf("sampling walk exhausted the amplitude vector without selecting an outcome: %w", core.ErrInternalInconsistency)
}

// ApplyReadoutError perturbs a true basis outcome bit by bit: for each
// qubit qn, table[qn] gives the independent probability of that
// qubit's bit flipping on readout. n is the total qubit count; qubit 0
// is the least significant bit, matching the kernel's convention. An
// empty table disables readout error and returns outcome unchanged;
// otherwise table must have exactly n entries.
func ApplyReadoutError(outcome, n int, table []ReadoutError, rng *core.RNG) (int, error) {
	if len(table) == 0 {
		return outcome, nil
	}
	if len(table) != n {
		return 0, fmt.Errorf("readout error table has %d entries, want %d: %w", len(table), n, core.ErrInvalidArgument)
	}
	result := outcome
	for qn := 0; qn < n; qn++ {
		bit := 1 << qn
		set := outcome&bit != 0
		var flipProb float64
		if set {
			flipProb = table[qn].P10
		} else {
			flipProb = table[qn].P01
		}
		if rng.Float64() < flipProb {
			result ^= bit
		}
	}
	return result, nil
}

// MeasureMap projects a full n-qubit basis outcome down to the bit
// positions of a chosen subset of qubits, gathering them in the order
// given to BuildMeasureMap.
type MeasureMap struct {
	n        int
	selected []int
}

// BuildMeasureMap returns a MeasureMap that projects an n-qubit outcome
// onto selected, preserving selected's order in the projected result's
// bit positions (selected[0] becomes the most significant bit of the
// projection). An empty selected measures every qubit, highest index
// first, so Project returns the full n-bit outcome unchanged.
func BuildMeasureMap(selected []int, n int) MeasureMap {
	if len(selected) == 0 {
		selected = make([]int, n)
		for i := range selected {
			selected[i] = n - 1 - i
		}
	}
	return MeasureMap{n: n, selected: selected}
}

// Project gathers the bits of outcome named by the MeasureMap's
// selected qubits into a dense integer, most significant selected
// qubit first.
func (m MeasureMap) Project(outcome int) int {
	result := 0
	for _, qn := range m.selected {
		bit := 1 << qn
		result <<= 1
		if outcome&bit != 0 {
			result |= 1
		}
	}
	return result
}

// Width returns how many qubits this MeasureMap projects onto.
func (m MeasureMap) Width() int {
	return len(m.selected)
}
