// Package batch runs recorded programs as jobs against a bounded
// worker pool, independent of whatever is driving job submission
// (the CLI, a future server, a test harness).
package batch

import (
	conq "github.com/enriquebris/goconcurrentqueue"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/sampler"
)

// ShotRunner is the slice of executor.Executor the batch runner needs,
// kept as an interface so tests can supply a fake without constructing
// a full kernel/recorder pipeline.
type ShotRunner interface {
	MeasureShots(shots int, readout []sampler.ReadoutError) (core.Counts, error)
}

// Job is one unit of batch work: replay Exec's noisy program for Shots
// shots, with readout perturbed per Readout's per-qubit table.
type Job struct {
	ID      string
	Exec    ShotRunner
	Shots   int
	Readout []sampler.ReadoutError
}

// conqFIFO wraps goconcurrentqueue.FIFO to dequeue *Job directly rather
// than the bare interface{} the underlying queue stores.
type conqFIFO struct {
	conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{FIFO: *conq.NewFIFO()}
}

func (c *conqFIFO) Enqueue(j *Job) error {
	return c.FIFO.Enqueue(j)
}

func (c *conqFIFO) DequeueOrWaitForNextElement() (*Job, error) {
	tmp, err := c.FIFO.DequeueOrWaitForNextElement()
	if err != nil {
		return nil, err
	}
	return tmp.(*Job), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}
