//go:build unit
// +build unit

package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/sampler"
)

type fakeShotRunner struct {
	counts core.Counts
	err    error
	delay  time.Duration
}

func (f *fakeShotRunner) MeasureShots(shots int, readout []sampler.ReadoutError) (core.Counts, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func testConf() *core.Conf {
	return &core.Conf{BatchWorkers: 2, BatchQueueMaxSize: 10}
}

func TestRunner_SubmitAndRunDeliversResult(t *testing.T) {
	r := NewRunner(testConf(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	id, err := r.Submit(&fakeShotRunner{counts: core.Counts{"00": 10}}, 10, nil)
	require.NoError(t, err)

	select {
	case result := <-r.Results():
		assert.Equal(t, id, result.JobID)
		assert.NoError(t, result.Err)
		assert.Equal(t, uint32(10), result.Counts["00"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job result")
	}

	cancel()
	<-done
}

func TestRunner_PropagatesJobError(t *testing.T) {
	r := NewRunner(testConf(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	_, err := r.Submit(&fakeShotRunner{err: errors.New("boom")}, 10, nil)
	require.NoError(t, err)

	select {
	case result := <-r.Results():
		assert.Error(t, result.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job result")
	}

	cancel()
	<-done
}

func TestRunner_RejectsSubmissionPastQueueCapacity(t *testing.T) {
	conf := testConf()
	conf.BatchWorkers = 0 // no workers drain the queue, so it stays full
	conf.BatchQueueMaxSize = 1
	r := NewRunner(conf, nil)

	_, err := r.Submit(&fakeShotRunner{counts: core.Counts{}}, 10, nil)
	require.NoError(t, err)

	_, err = r.Submit(&fakeShotRunner{counts: core.Counts{}}, 10, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
