// Package simlog wires up the structured logger the rest of the
// simulator logs through, plus a metrics sink used by the batch
// runner's throughput task.
package simlog

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nqsim-project/nqsim/common"
	"github.com/nqsim-project/nqsim/core"
)

// New builds a *zap.Logger from conf: a console-friendly development
// encoder or a JSON production encoder, tee'd across stdout and a log
// file depending on which outputs conf enables. nqsim runs as a
// batch-style CLI invocation rather than a long-running daemon, so
// unlike the edge service this is grounded on, there's no day boundary
// worth rotating a log file across: one append-only file per process
// is enough.
func New(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}

	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if conf.EnableFileLog {
		f, err := openAppendFile(conf.LogDir, "nqsim.log")
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), level))
	}
	if !conf.DisableStdoutLog {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func openAppendFile(dirPath, name string) (*os.File, error) {
	if err := common.IsDirWritable(dirPath); err != nil {
		return nil, fmt.Errorf("log directory %s is not usable: %w", dirPath, err)
	}
	return os.OpenFile(filepath.Join(dirPath, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Install builds a logger from conf and replaces the zap globals with
// it, so every package can log through zap.L() without being handed
// the logger explicitly.
func Install(conf *core.Conf) (*zap.Logger, error) {
	logger, err := New(conf)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("starting logger")
	zap.L().Info(fmt.Sprintf("dev mode is %t", conf.DevMode))
	return logger, nil
}
