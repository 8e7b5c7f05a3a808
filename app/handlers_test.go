package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/records/alog"
	"github.com/go-arrower/records/app"
)

func TestUseCaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{ListPatientsQuery{}, "list patients"},
		{&SeedDataCommand{}, "seed data"},
		{response{}, "response"},
		{genericCommand[ListPatientsQuery]{}, "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, app.UseCaseName(tt.in))
		})
	}
}

func TestNewInstrumentedQuery(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)
	inner := app.TestSuccessHandler[ListPatientsQuery](response{Count: 3})

	query := app.NewInstrumentedQuery[ListPatientsQuery, response](
		tracenoop.NewTracerProvider(),
		metricnoop.NewMeterProvider(),
		logger,
		inner,
	)

	res, err := query.H(ctx, ListPatientsQuery{Name: "Ama"})
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []ListPatientsQuery{{Name: "Ama"}}, inner.Calls())
	logger.Contains("command=app_test.ListPatientsQuery")
}

func TestNewInstrumentedCommand(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)
	inner := app.TestFailureHandler[SeedDataCommand, struct{}]()

	cmd := app.NewInstrumentedCommand[SeedDataCommand](
		tracenoop.NewTracerProvider(),
		metricnoop.NewMeterProvider(),
		logger,
		inner.Command(),
	)

	err := cmd.H(ctx, SeedDataCommand{Count: 5})
	assert.ErrorIs(t, err, app.ErrUseCaseFailed)
	assert.Len(t, inner.Calls(), 1)
	logger.Contains(`msg="failed to execute command"`)
}
