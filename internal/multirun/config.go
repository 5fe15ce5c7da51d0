package multirun

// Config carries the multi-run execution settings. It is passed explicitly
// to NewRunner; there is no package-level mutable default state.
type Config struct {
	// Workers bounds the number of runs executing concurrently. Values <= 1
	// mean strictly sequential execution in request order.
	Workers int

	// LogDir, when non-empty, is the directory that receives one
	// run-<index>.log file per run with everything the run logged. An empty
	// LogDir disables per-run log files; runs then log to the logger already
	// carried by the caller's context.
	LogDir string

	// LogFormat and LogLevel configure the per-run loggers, with the same
	// accepted values as the application logger ("text"/"json",
	// "debug"/"info"/"warn"/"error").
	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the documented defaults: sequential execution, no
// per-run log files, text logs at info level.
func DefaultConfig() Config {
	return Config{
		Workers:   1,
		LogFormat: "text",
		LogLevel:  "info",
	}
}
