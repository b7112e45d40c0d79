package simlog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nqsim-project/nqsim/common"
)

// MetricsSink logs each batch job's shot throughput to a single
// append-only JSON log file and tracks a running min/mean/max of
// shots-per-second across every job it has seen, so a batch session
// can report whether throughput degraded as jobs piled up.
type MetricsSink struct {
	mu      sync.Mutex
	logger  *slog.Logger
	file    *os.File
	samples int
	sumRate float64
	minRate float64
	maxRate float64
}

// NewMetricsSink opens one metrics log file under fileDir, named by
// this process's PID, and returns a sink ready to log shot-throughput
// samples to it. One file per process is enough for a batch-style CLI
// tool; it doesn't run long enough to need day-boundary rotation.
func NewMetricsSink(fileDir string) (*MetricsSink, error) {
	if err := common.IsDirWritable(fileDir); err != nil {
		return nil, fmt.Errorf("failed to write to %s: %w", fileDir, err)
	}
	path := filepath.Join(fileDir, fmt.Sprintf("metrics-%d.log", os.Getpid()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &MetricsSink{
		logger: slog.New(slog.NewJSONHandler(f, nil)),
		file:   f,
	}, nil
}

// LogShotThroughput records one batch job's shot count, elapsed wall
// time, and the resulting histogram's distinct-bucket count, folding
// its shots-per-second rate into the sink's running aggregate.
func (m *MetricsSink) LogShotThroughput(jobID string, shots int, elapsed time.Duration, buckets int) {
	rate := float64(shots) / elapsed.Seconds()

	m.mu.Lock()
	if m.samples == 0 || rate < m.minRate {
		m.minRate = rate
	}
	if rate > m.maxRate {
		m.maxRate = rate
	}
	m.sumRate += rate
	m.samples++
	mean := m.sumRate / float64(m.samples)
	m.mu.Unlock()

	m.logger.Info("shot throughput",
		slog.String("job_id", jobID),
		slog.Int("shots", shots),
		slog.Float64("shots_per_sec", rate),
		slog.Int("histogram_buckets", buckets),
		slog.Float64("mean_shots_per_sec", mean),
	)
}

// Summary returns the min, mean, and max shots-per-second observed
// across every job LogShotThroughput has recorded so far. It returns
// all zeros if no job has been logged yet.
func (m *MetricsSink) Summary() (min, mean, max float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.samples == 0 {
		return 0, 0, 0
	}
	return m.minRate, m.sumRate / float64(m.samples), m.maxRate
}

// Close releases the underlying file handle.
func (m *MetricsSink) Close() error {
	return m.file.Close()
}
