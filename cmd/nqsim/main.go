package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"github.com/oklog/run"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/nqsim-project/nqsim/batch"
	"github.com/nqsim-project/nqsim/core"
	"github.com/nqsim-project/nqsim/executor"
	"github.com/nqsim-project/nqsim/noiseconfig"
	"github.com/nqsim-project/nqsim/recorder"
	"github.com/nqsim-project/nqsim/simlog"
)

var versionByBuildFlag string

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Using only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables take priority over it.")
	}
}

func main() {
	conf := &core.Conf{}
	parser := flags.NewParser(conf, flags.Default)
	parser.ShortDescription = "nqsim"
	parser.LongDescription = "noisy quantum circuit simulator"
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			code = 0
		}
		os.Exit(code)
	}

	if _, err := simlog.Install(conf); err != nil {
		fmt.Printf("failed to set up logger, reason:%s\n", err)
		os.Exit(1)
	}
	core.SetVersion(conf, versionByBuildFlag)
	simlog.LogVersion()

	if err := run_(conf); err != nil {
		zap.L().Error(fmt.Sprintf("nqsim exited with error: %s", err))
		os.Exit(1)
	}
}

func run_(conf *core.Conf) error {
	cf := demoCircuit()
	if conf.CircuitPath != "" {
		loaded, err := loadCircuitFile(conf.CircuitPath)
		if err != nil {
			return err
		}
		cf = loaded
	}
	if err := cf.validate(conf.MaxQubits); err != nil {
		return err
	}

	nm, err := noiseconfig.LoadNoiseModelFile(conf.NoiseModelPath)
	if err != nil {
		return fmt.Errorf("loading noise model: %w", err)
	}
	store, err := nm.BuildStore()
	if err != nil {
		return fmt.Errorf("building noise store: %w", err)
	}
	readout := nm.BuildReadoutErrorTable(cf.NQubit)

	rec := recorder.New(store)
	if err := buildRecorder(cf, rec); err != nil {
		return fmt.Errorf("building circuit: %w", err)
	}

	rng := core.NewRNG(conf.Seed)
	exec, err := executor.New(rec, cf.NQubit, rng)
	if err != nil {
		return fmt.Errorf("constructing executor: %w", err)
	}

	shots := conf.Shots
	if shots <= 0 {
		shots = cf.Shots
	}
	if shots <= 0 {
		shots = conf.DefaultShots
	}

	var metrics *simlog.MetricsSink
	if conf.EnableMetrics {
		metrics, err = simlog.NewMetricsSink(conf.MetricsDir)
		if err != nil {
			return fmt.Errorf("setting up metrics sink: %w", err)
		}
		defer metrics.Close()
	}

	runner := batch.NewRunner(conf, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var result batch.Result
	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt))
	g.Add(
		func() error { return runner.Run(ctx) },
		func(error) { cancel() },
	)
	g.Add(
		func() error {
			id, err := runner.Submit(exec, shots, readout)
			if err != nil {
				return err
			}
			zap.L().Debug(fmt.Sprintf("submitted job %s for %d shots", id, shots))
			select {
			case result = <-runner.Results():
				cancel()
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(error) { cancel() },
	)

	if err := g.Run(); err != nil {
		if _, ok := err.(run.SignalError); !ok {
			return err
		}
	}
	if result.Err != nil {
		return fmt.Errorf("job %s failed: %w", result.JobID, result.Err)
	}

	return printHistogram(conf, result)
}

func printHistogram(conf *core.Conf, result batch.Result) error {
	b, err := json.Marshal(result.Counts)
	if err != nil {
		return fmt.Errorf("marshaling histogram: %w", err)
	}
	if conf.Pretty {
		b = pretty.Pretty(b)
	}
	fmt.Println(string(b))
	return nil
}
