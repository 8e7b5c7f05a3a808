package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func NewTracedRequest[Req any, Res any](traceProvider trace.TracerProvider, req Request[Req, Res]) Request[Req, Res] {
	return &tracingDecorator[Req, Res]{
		tracer: traceProvider.Tracer("records.application"),
		base:   req,
	}
}

func NewTracedQuery[Q any, Res any](traceProvider trace.TracerProvider, query Query[Q, Res]) Query[Q, Res] {
	return NewTracedRequest[Q, Res](traceProvider, query)
}

func NewTracedCommand[C any](traceProvider trace.TracerProvider, cmd Command[C]) Command[C] {
	return decorateCommand(cmd, func(req Request[C, struct{}]) Request[C, struct{}] {
		return NewTracedRequest(traceProvider, req)
	})
}

type tracingDecorator[Req any, Res any] struct {
	tracer trace.Tracer
	base   Request[Req, Res]
}

func (d *tracingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	newCtx, span := d.tracer.Start(ctx, "usecase",
		trace.WithAttributes(
			attribute.String("command", commandName(req)),
			attribute.String("usecase", UseCaseName(req)),
		),
	)
	defer span.End()

	result, err := d.base.H(newCtx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err //nolint:wrapcheck // decorate but not change anything
}
