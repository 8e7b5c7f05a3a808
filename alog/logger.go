// Package alog offers structured logging on top of log/slog.
//
// Every record is correlated with the active OpenTelemetry span:
// trace and span ids are added as attributes and the record is added to the span as an event.
package alog

import (
	"context"
	"log/slog"
)

// Logger interface is a subset of slog.Logger, with the aim to:
//  1. encourage the use of the methods offering context.Context, so that tracing information can be correlated.
//  2. encourage the use of the levels `DEBUG` and `INFO` over others, but without preventing them, see:
//     https://dave.cheney.net/2015/11/05/lets-talk-about-logging
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

const (
	// LevelInfo is used to see what is going on inside the records framework.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used by framework developers, if you really want to know what is going on.
	LevelDebug = slog.Level(-12)
)

// MapLogLevelsToName replaces the default name of a custom log level with a speaking name.
func MapLogLevelsToName(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}

	level, _ := attr.Value.Any().(slog.Level)

	switch level {
	case LevelInfo:
		attr.Value = slog.StringValue("RECORDS:INFO")
	case LevelDebug:
		attr.Value = slog.StringValue("RECORDS:DEBUG")
	default:
		attr.Value = slog.StringValue(level.String())
	}

	return attr
}

// ParseLevel maps a configured level name to a slog.Level.
// Unknown names return slog.LevelInfo and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch name {
	case "records:debug", "RECORDS:DEBUG":
		return LevelDebug, true
	case "records:info", "RECORDS:INFO":
		return LevelInfo, true
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return slog.LevelInfo, false
	}

	return level, true
}

type ctxAttrsKey struct{}

// AddAttr returns a copy of ctx with attr added.
// All attributes in ctx are logged with every record logged with that context.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs returns a copy of ctx with all attrs added.
func AddAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := FromContext(ctx)

	newAttrs := make([]slog.Attr, 0, len(existing)+len(attrs))
	newAttrs = append(newAttrs, existing...)
	newAttrs = append(newAttrs, attrs...)

	return context.WithValue(ctx, ctxAttrsKey{}, newAttrs)
}

// ClearAttrs returns a copy of ctx without any attributes.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttrsKey{}, []slog.Attr{})
}

// FromContext returns all attributes added with AddAttr.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}

// Error returns an attribute for err with the conventional key "err".
func Error(err error) slog.Attr {
	return slog.Any("err", err)
}
