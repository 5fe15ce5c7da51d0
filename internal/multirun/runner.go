package multirun

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/executor"
	"github.com/vk/taskgrid/internal/workflow"
)

// Outcome is the per-slot result of one requested run: either a successful
// Results or the error that failed the run. Exactly one of Results / Err is
// set.
type Outcome struct {
	// Index is the run's position in the request list.
	Index int
	// Results is set when the run succeeded.
	Results *executor.Results
	// Err is set when the run failed; for task failures it is a
	// *executor.ExecutionError carrying the failing task and partial timing.
	Err error
	// LogPath is the per-run log file, when log capture is enabled.
	LogPath string
}

// Failed reports whether this run's slot holds a failure.
func (o Outcome) Failed() bool { return o.Err != nil }

// Summary aggregates one RunAll invocation: the ordered outcomes plus the
// execution id that names its artifacts.
type Summary struct {
	// ExecutionID uniquely identifies this batch of runs; the report and the
	// log directory are addressed by it.
	ExecutionID string
	Outcomes    []Outcome
}

// Succeeded returns the number of successful runs.
func (s *Summary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed runs.
func (s *Summary) Failed() int { return len(s.Outcomes) - s.Succeeded() }

// Runner executes batches of independent runs against one immutable
// workflow.
type Runner struct {
	wf  *workflow.Workflow
	cfg Config
}

// NewRunner binds a runner to a workflow and explicit configuration.
func NewRunner(wf *workflow.Workflow, cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{wf: wf, cfg: cfg}
}

// RunAll executes one run per entry of argSets and returns the outcomes in
// request order, one slot per requested run, regardless of how the workers
// were scheduled. A failing run records its error in its own slot and does
// not cancel, abort or otherwise affect any other run.
func (r *Runner) RunAll(ctx context.Context, argSets []executor.Args) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	summary := &Summary{
		ExecutionID: uuid.NewString(),
		Outcomes:    make([]Outcome, len(argSets)),
	}
	if len(argSets) == 0 {
		return summary, nil
	}

	if r.cfg.LogDir != "" {
		if err := os.MkdirAll(r.cfg.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", r.cfg.LogDir, err)
		}
	}

	logger.Info("Starting multi-run execution.",
		"executionID", summary.ExecutionID,
		"runs", len(argSets),
		"workers", r.cfg.Workers,
	)

	// Each goroutine owns exactly one slot of the outcome slice, so the
	// slice needs no locking. The group's context is deliberately not used
	// for the runs themselves: a failed run must never cancel its siblings.
	group := &errgroup.Group{}
	group.SetLimit(r.cfg.Workers)

	for i, args := range argSets {
		i, args := i, args
		group.Go(func() error {
			summary.Outcomes[i] = r.runOne(ctx, i, args)
			return nil
		})
	}

	// Workers never return errors; failures live in the outcome slots.
	_ = group.Wait()

	logger.Info("Multi-run execution finished.",
		"executionID", summary.ExecutionID,
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
	)
	return summary, nil
}

// runOne executes a single run with a private logger and returns its
// outcome. A panic inside a task body is contained here so that one
// misbehaving run cannot take down the whole batch.
func (r *Runner) runOne(ctx context.Context, index int, args executor.Args) (out Outcome) {
	out.Index = index

	runCtx := ctx
	if r.cfg.LogDir != "" {
		logPath := filepath.Join(r.cfg.LogDir, fmt.Sprintf("run-%d.log", index))
		file, err := os.Create(logPath)
		if err != nil {
			out.Err = fmt.Errorf("failed to create run log %s: %w", logPath, err)
			return out
		}
		defer file.Close()
		out.LogPath = logPath
		runCtx = ctxlog.WithLogger(ctx, newRunLogger(file, r.cfg.LogFormat, r.cfg.LogLevel, index))
	}

	defer func() {
		if rec := recover(); rec != nil {
			out.Results = nil
			out.Err = fmt.Errorf("run %d panicked: %v", index, rec)
		}
	}()

	results, err := executor.Execute(runCtx, r.wf, args)
	out.Results = results
	out.Err = err
	return out
}

// newRunLogger builds the private slog.Logger for one run.
func newRunLogger(w io.Writer, format, levelStr string, index int) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run", index)
}
