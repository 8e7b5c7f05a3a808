package alog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(logger *handler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *handler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use Unwrap(logger).SetLevel(LevelInfo).
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *handler) {
		l.level.Set(level)
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own loggers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newHandler(opts...))
}

// NewDevelopment returns a logger ready for local development purposes.
// It logs human-readable text to w. If lokiURL is not empty, all records are pushed to loki as well.
func NewDevelopment(w io.Writer, lokiURL string) *slog.Logger {
	config := []LoggerOpt{
		WithLevel(slog.LevelDebug),
		WithHandler(slog.NewTextHandler(w, getDebugHandlerOptions())),
	}

	if lokiURL != "" {
		config = append(config, WithHandler(NewLokiHandler(&LokiHandlerOptions{PushURL: lokiURL, Labels: nil})))
	}

	return New(config...)
}

func newHandler(opts ...LoggerOpt) *handler {
	h := &handler{
		handlers: []slog.Handler{},
		level:    &slog.LevelVar{},
	}
	h.level.Set(slog.LevelInfo)

	for _, opt := range opts {
		opt(h)
	}

	if len(h.handlers) == 0 {
		h.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return h
}

// handler fans a record out to multiple handlers and
// correlates it with the span in the context.
type handler struct {
	// level is shared by all copies created via WithAttrs and WithGroup.
	// The level of individual handlers set via WithHandler is ignored.
	level *slog.LevelVar

	handlers []slog.Handler
}

var (
	_ slog.Handler = (*handler)(nil)
	_ Leveler      = (*handler)(nil)
)

func (l *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

func (l *handler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)

	record = addTraceAndSpanIDs(span, record)

	record.AddAttrs(FromContext(ctx)...)

	addRecordToSpan(span, record)

	var retErr error

	for _, h := range l.handlers {
		retErr = errors.Join(retErr, h.Handle(ctx, record))
	}

	return retErr
}

func (l *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &handler{level: l.level, handlers: handlers}
}

func (l *handler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &handler{level: l.level, handlers: handlers}
}

// SetLevel changes the level for all handlers set with WithHandler.
// Even the ones "copied" via any WithX method.
func (l *handler) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the log level of the handler.
func (l *handler) Level() slog.Level {
	return l.level.Level()
}

func addTraceAndSpanIDs(span trace.Span, record slog.Record) slog.Record {
	sCtx := span.SpanContext()

	if sCtx.HasTraceID() {
		record.AddAttrs(slog.String("traceID", sCtx.TraceID().String()))
	}

	if sCtx.HasSpanID() {
		record.AddAttrs(slog.String("spanID", sCtx.SpanID().String()))
	}

	return record
}

func addRecordToSpan(span trace.Span, record slog.Record) {
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	}

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))

		return true
	})

	span.AddEvent("log", trace.WithAttributes(attrs...))

	if record.Level >= slog.LevelError {
		span.SetStatus(codes.Error, record.Message)
	}
}

// Leveler offers control over the level of a logger at run time.
// Unwrap a logger to get access to it.
type Leveler interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// Unwrap returns the Leveler of a logger created by this package.
// In case of any other implementation of Logger, it returns nil.
func Unwrap(logger Logger) Leveler { //nolint:ireturn // interface required to return a TestLogger and handler
	if l, ok := logger.(*TestLogger); ok {
		return l
	}

	sl, ok := logger.(*slog.Logger)
	if !ok {
		return nil
	}

	if l, ok := sl.Handler().(*handler); ok {
		return l
	}

	return nil
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   true,
		Level:       LevelDebug, // filtering is done by handler, so all records reaching a child are written.
		ReplaceAttr: MapLogLevelsToName,
	}
}

// getDebugHandlerOptions is to keep the log output more readable, by removing not essential keys.
func getDebugHandlerOptions() *slog.HandlerOptions {
	opt := getDefaultHandlerOptions()
	opt.AddSource = false

	return opt
}
