package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func NewMeteredRequest[Req any, Res any](meterProvider metric.MeterProvider, req Request[Req, Res]) Request[Req, Res] {
	meter := meterProvider.Meter("records.application")

	counter, _ := meter.Int64Counter("usecases", metric.WithDescription("calls per use case"))
	duration, _ := meter.Float64Histogram("usecases_duration_seconds",
		metric.WithDescription("duration per use case"),
		metric.WithUnit("s"),
	)

	return &meteringDecorator[Req, Res]{
		counter:  counter,
		duration: duration,
		base:     req,
	}
}

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	return NewMeteredRequest[Q, Res](meterProvider, query)
}

func NewMeteredCommand[C any](meterProvider metric.MeterProvider, cmd Command[C]) Command[C] {
	return decorateCommand(cmd, func(req Request[C, struct{}]) Request[C, struct{}] {
		return NewMeteredRequest(meterProvider, req)
	})
}

type meteringDecorator[Req any, Res any] struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	base     Request[Req, Res]
}

func (d *meteringDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	start := time.Now()

	result, err := d.base.H(ctx, req)

	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", commandName(req)),
		attribute.String("status", status),
	)

	d.counter.Add(ctx, 1, opt)
	d.duration.Record(ctx, time.Since(start).Seconds(), opt)

	return result, err //nolint:wrapcheck // decorate but not change anything
}
