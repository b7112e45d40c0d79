package core

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Counts is a measurement histogram: outcome bitstring -> shot count.
// Keys are zero-padded binary strings (most significant qubit first)
// rather than integers so the JSON form is stable and greppable.
type Counts map[string]uint32

func (c Counts) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		zap.L().Error("failed to marshal core.Counts")
		return ""
	}
	return string(b)
}

// Total returns the sum of all bucket counts, i.e. the number of shots
// folded into the histogram so far.
func (c Counts) Total() uint32 {
	var total uint32
	for _, v := range c {
		total += v
	}
	return total
}
