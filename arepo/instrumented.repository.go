package arepo

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NewTracedRepository decorates repo, so that every call is recorded as a span.
// name identifies the repository in the span attributes, e.g. "patients".
func NewTracedRepository[E any, ID PrimaryKey](
	repo Repository[E, ID],
	traceProvider trace.TracerProvider,
	name string,
) *TracedRepository[E, ID] {
	return &TracedRepository[E, ID]{
		repo:   repo,
		tracer: traceProvider.Tracer("records.arepo"),
		name:   name,
	}
}

type TracedRepository[E any, ID PrimaryKey] struct {
	repo   Repository[E, ID]
	tracer trace.Tracer
	name   string
}

var _ Repository[struct{ ID string }, string] = (*TracedRepository[struct{ ID string }, string])(nil)

func (repo *TracedRepository[E, ID]) start(ctx context.Context, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) { //nolint:lll
	attrs = append(attrs,
		attribute.String("repository", repo.name),
		attribute.String("method", method),
	)

	return repo.tracer.Start(ctx, "repo", trace.WithAttributes(attrs...))
}

func idAttr[ID PrimaryKey](id ID) attribute.KeyValue {
	return attribute.String("id", fmt.Sprint(id))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func (repo *TracedRepository[E, ID]) NextID(ctx context.Context) (ID, error) { //nolint:ireturn // valid use of generics
	ctx, span := repo.start(ctx, "NextID")

	id, err := repo.repo.NextID(ctx)
	endSpan(span, err)

	return id, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) Insert(ctx context.Context, entity E) error {
	ctx, span := repo.start(ctx, "Insert")

	err := repo.repo.Insert(ctx, entity)
	endSpan(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) InsertAll(ctx context.Context, entities []E) error {
	ctx, span := repo.start(ctx, "InsertAll", attribute.Int("entities", len(entities)))

	err := repo.repo.InsertAll(ctx, entities)
	endSpan(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) GetByID(ctx context.Context, id ID) (E, error) { //nolint:ireturn // valid use of generics
	ctx, span := repo.start(ctx, "GetByID", idAttr(id))

	e, err := repo.repo.GetByID(ctx, id)
	endSpan(span, err)

	return e, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) TryGetByID(ctx context.Context, id ID) (E, bool) { //nolint:ireturn // valid use of generics
	ctx, span := repo.start(ctx, "TryGetByID", idAttr(id))

	e, ok := repo.repo.TryGetByID(ctx, id)
	span.SetAttributes(attribute.Bool("found", ok))
	endSpan(span, nil)

	return e, ok
}

func (repo *TracedRepository[E, ID]) Remove(ctx context.Context, id ID) error {
	ctx, span := repo.start(ctx, "Remove", idAttr(id))

	err := repo.repo.Remove(ctx, id)
	endSpan(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) UpdateField(ctx context.Context, id ID, mutate func(entity *E) error) error {
	ctx, span := repo.start(ctx, "UpdateField", idAttr(id))

	err := repo.repo.UpdateField(ctx, id, mutate)
	endSpan(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) GetAll(ctx context.Context) ([]E, error) {
	ctx, span := repo.start(ctx, "GetAll")

	all, err := repo.repo.GetAll(ctx)
	span.SetAttributes(attribute.Int("entities", len(all)))
	endSpan(span, err)

	return all, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) Exists(ctx context.Context, id ID) (bool, error) {
	ctx, span := repo.start(ctx, "Exists", idAttr(id))

	ok, err := repo.repo.Exists(ctx, id)
	endSpan(span, err)

	return ok, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) Count(ctx context.Context) (int, error) {
	ctx, span := repo.start(ctx, "Count")

	c, err := repo.repo.Count(ctx)
	endSpan(span, err)

	return c, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedRepository[E, ID]) Clear(ctx context.Context) error {
	ctx, span := repo.start(ctx, "Clear")

	err := repo.repo.Clear(ctx)
	endSpan(span, err)

	return err //nolint:wrapcheck // this is decorator
}

// NewMeteredRepository decorates repo with a counter and a duration histogram per operation.
func NewMeteredRepository[E any, ID PrimaryKey](
	repo Repository[E, ID],
	meterProvider metric.MeterProvider,
	name string,
) *MeteredRepository[E, ID] {
	meter := meterProvider.Meter("records.arepo")

	counter, _ := meter.Int64Counter("repository_operations", metric.WithDescription("calls per repository operation"))
	duration, _ := meter.Float64Histogram("repository_operation_duration_seconds",
		metric.WithDescription("duration per repository operation"),
		metric.WithUnit("s"),
	)

	return &MeteredRepository[E, ID]{
		repo:     repo,
		counter:  counter,
		duration: duration,
		name:     name,
	}
}

type MeteredRepository[E any, ID PrimaryKey] struct {
	repo     Repository[E, ID]
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	name     string
}

var _ Repository[struct{ ID string }, string] = (*MeteredRepository[struct{ ID string }, string])(nil)

// measure returns a func to be deferred, that records the call with the outcome of err.
func (repo *MeteredRepository[E, ID]) measure(ctx context.Context, method string) func(err *error) {
	start := time.Now()

	return func(err *error) {
		status := "success"
		if err != nil && *err != nil {
			status = "failure"
		}

		opt := metric.WithAttributes(
			attribute.String("repository", repo.name),
			attribute.String("method", method),
			attribute.String("status", status),
		)

		repo.counter.Add(ctx, 1, opt)
		repo.duration.Record(ctx, time.Since(start).Seconds(), opt)
	}
}

func (repo *MeteredRepository[E, ID]) NextID(ctx context.Context) (_ ID, err error) { //nolint:ireturn,nonamedreturns,lll // named to record err
	defer repo.measure(ctx, "NextID")(&err)

	return repo.repo.NextID(ctx) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) Insert(ctx context.Context, entity E) (err error) { //nolint:nonamedreturns // named to record err
	defer repo.measure(ctx, "Insert")(&err)

	return repo.repo.Insert(ctx, entity) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) InsertAll(ctx context.Context, entities []E) (err error) { //nolint:nonamedreturns,lll // named to record err
	defer repo.measure(ctx, "InsertAll")(&err)

	return repo.repo.InsertAll(ctx, entities) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) GetByID(ctx context.Context, id ID) (_ E, err error) { //nolint:ireturn,nonamedreturns,lll // named to record err
	defer repo.measure(ctx, "GetByID")(&err)

	return repo.repo.GetByID(ctx, id) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) TryGetByID(ctx context.Context, id ID) (E, bool) { //nolint:ireturn // valid use of generics
	defer repo.measure(ctx, "TryGetByID")(nil)

	return repo.repo.TryGetByID(ctx, id)
}

func (repo *MeteredRepository[E, ID]) Remove(ctx context.Context, id ID) (err error) { //nolint:nonamedreturns // named to record err
	defer repo.measure(ctx, "Remove")(&err)

	return repo.repo.Remove(ctx, id) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) UpdateField(ctx context.Context, id ID, mutate func(entity *E) error) (err error) { //nolint:nonamedreturns,lll // named to record err
	defer repo.measure(ctx, "UpdateField")(&err)

	return repo.repo.UpdateField(ctx, id, mutate) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) GetAll(ctx context.Context) (_ []E, err error) { //nolint:nonamedreturns // named to record err
	defer repo.measure(ctx, "GetAll")(&err)

	return repo.repo.GetAll(ctx) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) Exists(ctx context.Context, id ID) (_ bool, err error) { //nolint:nonamedreturns,lll // named to record err
	defer repo.measure(ctx, "Exists")(&err)

	return repo.repo.Exists(ctx, id) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) Count(ctx context.Context) (_ int, err error) { //nolint:nonamedreturns // named to record err
	defer repo.measure(ctx, "Count")(&err)

	return repo.repo.Count(ctx) //nolint:wrapcheck // this is decorator
}

func (repo *MeteredRepository[E, ID]) Clear(ctx context.Context) (err error) { //nolint:nonamedreturns // named to record err
	defer repo.measure(ctx, "Clear")(&err)

	return repo.repo.Clear(ctx) //nolint:wrapcheck // this is decorator
}
