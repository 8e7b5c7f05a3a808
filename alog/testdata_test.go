package alog_test

import (
	"context"
	"log/slog"
	"time"
)

const applicationMsg = "application message"

var time0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // fixture

type failingHandler struct{}

var _ slog.Handler = (*failingHandler)(nil)

func (f failingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (f failingHandler) Handle(_ context.Context, _ slog.Record) error {
	return errSomething
}

func (f failingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return f
}

func (f failingHandler) WithGroup(_ string) slog.Handler {
	return f
}
