// Package http_request provides the built-in 'http_request' task: it
// performs a single HTTP request and returns the status code and body.
package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the task type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("http_request", New)
}

// maxBodyBytes caps how much of a response body a task will buffer.
const maxBodyBytes = 1 << 20

// New builds an http_request task. Static configuration: required "url",
// optional "method" (default GET) and "timeout" duration string (default
// 30s). The URL may be overridden per run with a "url" external argument.
func New(name string, static map[string]any) (task.Task, error) {
	t := &requestTask{
		name:    name,
		method:  http.MethodGet,
		timeout: 30 * time.Second,
	}

	if raw, ok := static["url"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("'url' must be a string, got %T", raw)
		}
		t.url = s
	}
	if raw, ok := static["method"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("'method' must be a string, got %T", raw)
		}
		t.method = s
	}
	if raw, ok := static["timeout"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("'timeout' must be a duration string, got %T", raw)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid 'timeout': %w", err)
		}
		t.timeout = d
	}

	return t, nil
}

type requestTask struct {
	name    string
	url     string
	method  string
	timeout time.Duration
}

func (t *requestTask) Name() string { return t.name }

func (t *requestTask) Run(ctx context.Context, in *task.Invocation) (any, error) {
	logger := ctxlog.FromContext(ctx)

	url := t.url
	if override, ok := in.Named["url"].(string); ok && override != "" {
		url = override
	}
	if url == "" {
		return nil, fmt.Errorf("http_request task %q has no url (set it statically or pass a 'url' argument)", t.name)
	}

	reqCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, t.method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	logger.Debug("Sending HTTP request.", "task", t.name, "method", t.method, "url", url)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return map[string]any{
		"status": resp.StatusCode,
		"body":   string(body),
	}, nil
}
