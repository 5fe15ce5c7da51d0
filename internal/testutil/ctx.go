package testutil

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/ctxlog"
)

// Context returns a background context carrying a logger that discards
// everything. Unit tests that do not assert on log output use it.
func Context() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ContextWithBuffer returns a context whose logger writes debug-level text
// logs into the returned buffer.
func ContextWithBuffer() (context.Context, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}
