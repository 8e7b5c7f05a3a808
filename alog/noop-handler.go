package alog

import (
	"context"
	"log/slog"
)

// NewNoop returns a logger that discards every record.
// The container uses it in the test environment, so use case tests stay quiet.
func NewNoop() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler is disabled for all levels, so slog does not even build the records.
type discardHandler struct{}

var _ slog.Handler = discardHandler{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h discardHandler) WithGroup(string) slog.Handler            { return h }
