// Package app provides common decorators for use cases in the application layer.
//
// A use case is a struct with a single method H. Its input type names the use case:
// ListPatientsQuery is logged, traced and metered as "list patients".
package app

import (
	"context"
	"reflect"
	"strings"

	"github.com/fatih/camelcase"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/records/alog"
)

// Request can produce side effects and return data.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
// It has the same shape as Request, so all Request decorators apply to it.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// NewInstrumentedRequest is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedRequest[Req any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	req Request[Req, Res],
) Request[Req, Res] {
	return NewTracedRequest(traceProvider, NewMeteredRequest(meterProvider, NewLoggedRequest(logger, req)))
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedCommand[C any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	cmd Command[C],
) Command[C] {
	return NewTracedCommand(traceProvider, NewMeteredCommand(meterProvider, NewLoggedCommand(logger, cmd)))
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	query Query[Q, Res],
) Query[Q, Res] {
	return NewInstrumentedRequest[Q, Res](traceProvider, meterProvider, logger, query)
}

// commandFunc adapts a Command to a Request, so every decorator is only implemented once.
type commandFunc[C any] struct {
	cmd Command[C]
}

func (c commandFunc[C]) H(ctx context.Context, cmd C) (struct{}, error) {
	return struct{}{}, c.cmd.H(ctx, cmd) //nolint:wrapcheck // decorate but not change anything
}

// requestCommand adapts a decorated Request back to a Command.
type requestCommand[C any] struct {
	req Request[C, struct{}]
}

func (r requestCommand[C]) H(ctx context.Context, cmd C) error {
	_, err := r.req.H(ctx, cmd)

	return err //nolint:wrapcheck // decorate but not change anything
}

func decorateCommand[C any](cmd Command[C], decorate func(Request[C, struct{}]) Request[C, struct{}]) Command[C] {
	return requestCommand[C]{req: decorate(commandFunc[C]{cmd: cmd})}
}

// commandName extracts a printable name from the input of a use case in the format of:
// context.TypeName, e.g. health.ListPatientsQuery.
// The use case function can not be used, as it is anonymous / a closure returned by the use case constructor.
func commandName(cmd any) string {
	t := reflect.TypeOf(cmd)
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// example: github.com/go-arrower/records/contexts/health/internal/application
	// take string after /contexts/ and then take string before /
	// generic types carry their type arguments in the name, e.g. AddItemCommand[...ElectronicItem]
	name, _, _ := strings.Cut(t.Name(), "[")

	if _, after, found := strings.Cut(t.PkgPath(), "/contexts/"); found {
		context, _, _ := strings.Cut(after, "/")

		return context + "." + name
	}

	// fallback: if the use case is not called from a proper context => packageName.TypeName
	if pkg, _, _ := strings.Cut(t.String(), "."); name != "" && !strings.ContainsAny(pkg, "[{ ") {
		return pkg + "." + name
	}

	return t.String()
}

// UseCaseName returns a human-readable name of the use case handling cmd,
// e.g. ListPatientsQuery becomes "list patients".
func UseCaseName(cmd any) string {
	name := commandName(cmd)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	words := camelcase.Split(name)

	if n := len(words); n > 1 {
		switch words[n-1] {
		case "Command", "Query", "Request":
			words = words[:n-1]
		}
	}

	return strings.ToLower(strings.Join(words, " "))
}
