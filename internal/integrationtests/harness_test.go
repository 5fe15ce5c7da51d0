// Package integrationtests drives the full application end to end: grid
// files on disk, workflow construction, multi-run execution, report and log
// artifacts.
package integrationtests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/app"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	ReportDir string
}

// runIntegrationTest writes the given grid files into a temporary directory,
// starts the full application against them, executes every declared run and
// returns the captured logs, artifacts location and error.
func runIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *harnessResult {
	t.Helper()
	return runIntegrationTestWithContext(context.Background(), t, files, modules...)
}

func runIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *harnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	gridDir := filepath.Join(tmpDir, "grid")
	reportDir := filepath.Join(tmpDir, "report")
	require.NoError(t, os.Mkdir(gridDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(gridDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig, err := app.NewConfig(app.Config{
		GridPath:  gridDir,
		ReportDir: reportDir,
		LogLevel:  "debug",
		LogFormat: "text",
		Workers:   4,
	})
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, modules...)
	}()

	if panicErr != nil {
		return &harnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			ReportDir: reportDir,
		}
	}

	runErr := testApp.Run(ctx, appConfig)

	return &harnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		ReportDir: reportDir,
	}
}
