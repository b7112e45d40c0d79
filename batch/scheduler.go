package batch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/oklog/run"
	"go.uber.org/zap"

	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/sampler"
	"github.com/nqsim-project/nqsim/simlog"
)

// Result is what a completed Job produced, or the error it failed
// with.
type Result struct {
	JobID       string
	Counts      core.Counts
	SubmittedAt strfmt.DateTime
	CompletedAt strfmt.DateTime
	Err         error
}

// Runner fans a bounded FIFO queue of Jobs out across a fixed pool of
// worker goroutines, each pulling and running one Job to completion
// before dequeuing the next. Results are delivered on a channel rather
// than written back onto the Job, since nothing about a Job's identity
// needs to survive past submission.
type Runner struct {
	queue   *conqFIFO
	workers int
	maxSize int
	results chan Result
	metrics *simlog.MetricsSink
}

// NewRunner returns a Runner sized per conf. metrics may be nil, in
// which case throughput samples are simply not recorded.
func NewRunner(conf *core.Conf, metrics *simlog.MetricsSink) *Runner {
	return &Runner{
		queue:   newConqFIFO(),
		workers: conf.BatchWorkers,
		maxSize: conf.BatchQueueMaxSize,
		results: make(chan Result, conf.BatchQueueMaxSize),
		metrics: metrics,
	}
}

// Submit enqueues a job to run exec for shots shots, returning the
// generated job ID. It fails with core.ErrInvalidArgument once the
// queue is at capacity.
func (r *Runner) Submit(exec ShotRunner, shots int, readout []sampler.ReadoutError) (string, error) {
	if r.queue.GetLen() >= r.maxSize {
		return "", fmt.Errorf("batch queue is full (max %d): %w", r.maxSize, core.ErrInvalidArgument)
	}
	id := uuid.NewString()
	job := &Job{ID: id, Exec: exec, Shots: shots, Readout: readout}
	if err := r.queue.Enqueue(job); err != nil {
		return "", fmt.Errorf("enqueueing job %s: %w", id, err)
	}
	zap.L().Debug(fmt.Sprintf("submitted job %s for %d shots", id, shots))
	return id, nil
}

// Results returns the channel completed jobs are published to. Callers
// should drain it for as long as the Runner is running.
func (r *Runner) Results() <-chan Result {
	return r.results
}

// QueueLen reports how many jobs are currently waiting to run.
func (r *Runner) QueueLen() int {
	return r.queue.GetLen()
}

// Run starts the worker pool and the interrupt handler, blocking until
// ctx is canceled or a worker returns a fatal error. Every worker
// shares the bounded queue; shutting one down via the actor group's
// interrupt unblocks it out of a pending dequeue.
func (r *Runner) Run(ctx context.Context) error {
	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt))
	for i := 0; i < r.workers; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error { return r.workerLoop(workerCtx) },
			func(error) { cancel() },
		)
	}
	return g.Run()
}

func (r *Runner) workerLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		tmp, err := r.queue.FIFO.DequeueOrWaitForNextElementWithContext(ctx)
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				continue
			}
		}
		r.runJob(tmp.(*Job))
	}
}

func (r *Runner) runJob(job *Job) {
	submittedAt := time.Now()
	counts, err := job.Exec.MeasureShots(job.Shots, job.Readout)
	completedAt := time.Now()
	result := Result{
		JobID:       job.ID,
		SubmittedAt: strfmt.DateTime(submittedAt),
		CompletedAt: strfmt.DateTime(completedAt),
		Err:         err,
	}
	if err != nil {
		zap.L().Error(fmt.Sprintf("job %s failed: %s", job.ID, err))
	} else {
		result.Counts = counts
		if r.metrics != nil {
			r.metrics.LogShotThroughput(job.ID, job.Shots, completedAt.Sub(submittedAt), len(counts))
		}
	}
	r.results <- result
}
