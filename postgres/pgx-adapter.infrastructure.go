package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type spanKey struct{}

var _ pgx.QueryTracer = (*pgxTraceAdapter)(nil)

// pgxTraceAdapter records every query pgx sends as a span.
type pgxTraceAdapter struct {
	tracer trace.Tracer
}

func (p pgxTraceAdapter) TraceQueryStart(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	ctx, span := p.tracer.Start(ctx, "pgx", trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("db_host", conn.Config().Host),
		attribute.Int("db_port", int(conn.Config().Port)),
		attribute.String("db_database", conn.Config().Database),
		attribute.String("sql", data.SQL),
		attribute.StringSlice("sql_args", argsToStrings(data.Args)),
	))

	return context.WithValue(ctx, spanKey{}, span)
}

func (p pgxTraceAdapter) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(spanKey{}).(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int64("sql_rows_affected", data.CommandTag.RowsAffected()))

	if data.Err != nil {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	}

	span.End()
}

// argsToStrings renders query arguments. Byte slices, e.g. jsonb documents, are shortened to their size.
func argsToStrings(in []any) []string {
	s := make([]string, len(in))

	for i, arg := range in {
		if b, ok := arg.([]byte); ok {
			s[i] = fmt.Sprintf("[%d bytes]", len(b))
			continue
		}

		s[i] = fmt.Sprintf("%v", arg)
	}

	return s
}
