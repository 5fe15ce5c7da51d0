package report

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/executor"
	"github.com/vk/taskgrid/internal/multirun"
	"github.com/vk/taskgrid/internal/workflow"
)

// FileName is the name of the rendered report inside the output directory.
const FileName = "report.html"

// taskRow is one task's timing within a run.
type taskRow struct {
	Name    string
	Elapsed time.Duration
}

// runRow is the view model for one run of the batch.
type runRow struct {
	Index      int
	Succeeded  bool
	StartedAt  string
	FinishedAt string
	Elapsed    time.Duration
	FailedTask string
	Error      string
	LogFile    string
	Tasks      []taskRow
}

// dependencyRow is one node of the topology listing.
type dependencyRow struct {
	Task  string
	Needs []string
}

// reportData is the root view model handed to the template.
type reportData struct {
	ExecutionID  string
	GeneratedAt  string
	TotalRuns    int
	Succeeded    int
	Failed       int
	TotalWall    time.Duration
	AverageWall  time.Duration
	Runs         []runRow
	Dependencies []dependencyRow
}

// Write renders the execution report for one batch into dir/report.html and
// returns the path of the rendered file.
func Write(ctx context.Context, wf *workflow.Workflow, summary *multirun.Summary, dir string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if summary == nil {
		return "", errors.New("cannot render report: nil summary")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	data := buildData(wf, summary)
	path := filepath.Join(dir, FileName)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	logger.Info("Execution report written.", "path", path)
	return path, nil
}

// buildData flattens the workflow topology and the run outcomes into the
// template's view model.
func buildData(wf *workflow.Workflow, summary *multirun.Summary) reportData {
	data := reportData{
		ExecutionID: summary.ExecutionID,
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalRuns:   len(summary.Outcomes),
		Succeeded:   summary.Succeeded(),
		Failed:      summary.Failed(),
	}

	for _, outcome := range summary.Outcomes {
		row := runRow{Index: outcome.Index}
		if outcome.LogPath != "" {
			row.LogFile = filepath.Base(outcome.LogPath)
		}

		switch {
		case outcome.Err == nil && outcome.Results != nil:
			row.Succeeded = true
			row.StartedAt = outcome.Results.StartedAt.Format(time.RFC3339)
			row.FinishedAt = outcome.Results.FinishedAt.Format(time.RFC3339)
			row.Elapsed = outcome.Results.Elapsed()
			row.Tasks = taskRows(outcome.Results.Stats)
		default:
			row.Error = "run produced no results"
			var execErr *executor.ExecutionError
			if errors.As(outcome.Err, &execErr) {
				row.FailedTask = execErr.Task
				row.Error = execErr.Err.Error()
				row.StartedAt = execErr.StartedAt.Format(time.RFC3339)
				row.FinishedAt = execErr.FailedAt.Format(time.RFC3339)
				row.Elapsed = execErr.FailedAt.Sub(execErr.StartedAt)
				row.Tasks = taskRows(execErr.Stats)
			} else if outcome.Err != nil {
				row.Error = outcome.Err.Error()
			}
		}

		data.TotalWall += row.Elapsed
		data.Runs = append(data.Runs, row)
	}

	if data.TotalRuns > 0 {
		data.AverageWall = data.TotalWall / time.Duration(data.TotalRuns)
	}

	if wf != nil {
		for _, name := range wf.Topology().Nodes {
			deps, _ := wf.DependenciesOf(name)
			row := dependencyRow{Task: name}
			for _, dep := range deps {
				row.Needs = append(row.Needs, dep.Name())
			}
			data.Dependencies = append(data.Dependencies, row)
		}
	}

	return data
}

// taskRows sorts per-task stats by start time so the report reads in
// execution order.
func taskRows(stats map[string]executor.TaskStat) []taskRow {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats[names[i]].StartedAt.Before(stats[names[j]].StartedAt)
	})

	rows := make([]taskRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, taskRow{Name: name, Elapsed: stats[name].Elapsed})
	}
	return rows
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>taskgrid execution report {{.ExecutionID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #bbb; padding: 0.35rem 0.7rem; text-align: left; vertical-align: top; }
th { background: #eee; }
.ok { color: #1a7f37; font-weight: bold; }
.fail { color: #b42318; font-weight: bold; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>Execution report</h1>
<p>Execution <code>{{.ExecutionID}}</code>, generated {{.GeneratedAt}}.</p>

<h2>Summary</h2>
<table>
<tr><th>Runs</th><th>Succeeded</th><th>Failed</th><th>Total wall time</th><th>Average wall time</th></tr>
<tr><td>{{.TotalRuns}}</td><td>{{.Succeeded}}</td><td>{{.Failed}}</td><td>{{.TotalWall}}</td><td>{{.AverageWall}}</td></tr>
</table>

<h2>Runs</h2>
<table>
<tr><th>#</th><th>Status</th><th>Started</th><th>Finished</th><th>Elapsed</th><th>Task timings</th><th>Failure</th><th>Log</th></tr>
{{range .Runs}}
<tr>
<td>{{.Index}}</td>
<td>{{if .Succeeded}}<span class="ok">success</span>{{else}}<span class="fail">failure</span>{{end}}</td>
<td>{{.StartedAt}}</td>
<td>{{.FinishedAt}}</td>
<td>{{.Elapsed}}</td>
<td>{{range .Tasks}}<code>{{.Name}}</code> {{.Elapsed}}<br>{{end}}</td>
<td>{{if .FailedTask}}<code>{{.FailedTask}}</code>: {{.Error}}{{else if .Error}}{{.Error}}{{end}}</td>
<td>{{if .LogFile}}<a href="{{.LogFile}}">{{.LogFile}}</a>{{end}}</td>
</tr>
{{end}}
</table>

<h2>Workflow topology</h2>
<table>
<tr><th>Task (topological order)</th><th>Depends on</th></tr>
{{range .Dependencies}}
<tr><td><code>{{.Task}}</code></td><td>{{range .Needs}}<code>{{.}}</code> {{end}}</td></tr>
{{end}}
</table>
</body>
</html>
`))
