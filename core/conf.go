package core

// Conf holds the process-wide configuration for the nqsim CLI and any
// embedder that wants go-flags/env-var driven setup instead of wiring
// options by hand.
type Conf struct {
	Version            string `long:"version" description:"version of nqsim" env:"NQSIM_VERSION"`
	DevMode            bool   `long:"dev-mode" description:"run in dev mode" env:"NQSIM_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"NQSIM_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"also write logs to an append-only nqsim.log file under log-dir" env:"NQSIM_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"log file dir" default:"./shares/logs" env:"NQSIM_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"NQSIM_LOG_LEVEL"`
	MaxQubits          int    `long:"max-qubits" description:"ceiling on n_qubit accepted by a simulator" default:"30" env:"NQSIM_MAX_QUBITS"`
	DefaultShots       int    `long:"default-shots" description:"shot count used when neither --shots nor the circuit file sets one" default:"1000" env:"NQSIM_DEFAULT_SHOTS"`
	NoiseModelPath     string `long:"noise-model-path" description:"noise model TOML file path" default:"./noise_model.toml" env:"NQSIM_NOISE_MODEL_PATH"`
	Seed               int64  `long:"seed" description:"RNG seed, 0 means derive from current time" default:"0" env:"NQSIM_SEED"`
	BatchWorkers       int    `long:"batch-workers" description:"number of goroutines draining the batch job queue" default:"4" env:"NQSIM_BATCH_WORKERS"`
	BatchQueueMaxSize  int    `long:"batch-queue-max-size" description:"batch job queue max size" default:"100" env:"NQSIM_BATCH_QUEUE_MAX_SIZE"`
	Pretty             bool   `long:"pretty" description:"pretty-print histogram JSON output" env:"NQSIM_PRETTY"`
	CircuitPath        string `long:"circuit" description:"JSON circuit file to run; a built-in Bell-pair demo runs when omitted" env:"NQSIM_CIRCUIT_PATH"`
	Shots              int    `long:"shots" description:"shot count, overrides default-shots and any count set in the circuit file" default:"0" env:"NQSIM_SHOTS"`
	MetricsDir         string `long:"metrics-dir" description:"directory for the shot-throughput metrics log" default:"./shares/metrics" env:"NQSIM_METRICS_DIR"`
	EnableMetrics      bool   `long:"enable-metrics" description:"enable the shot-throughput metrics sink" env:"NQSIM_ENABLE_METRICS"`
}
