package app_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/records/app"
)

type assertValidated struct{ t *testing.T }

func (h assertValidated) H(ctx context.Context, _ SeedDataCommand) error {
	assert.True(h.t, app.PassedValidation(ctx))

	return nil
}

func TestValidatingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("valid query", func(t *testing.T) {
		t.Parallel()

		inner := app.TestSuccessHandler[ListPatientsQuery](response{Count: 1})
		handler := app.NewValidatedQuery[ListPatientsQuery, response](nil, inner)

		res, err := handler.H(ctx, ListPatientsQuery{Name: "Kwame"})
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("invalid query", func(t *testing.T) {
		t.Parallel()

		inner := app.TestSuccessHandler[ListPatientsQuery](response{Count: 1})
		handler := app.NewValidatedQuery[ListPatientsQuery, response](validator.New(), inner)

		res, err := handler.H(ctx, ListPatientsQuery{Name: "A"})
		assert.ErrorIs(t, err, app.ErrValidation)
		assert.Empty(t, res)
		assert.Empty(t, inner.Calls(), "use case should not be called")

		var vErr validator.ValidationErrors
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("valid command passes validation", func(t *testing.T) {
		t.Parallel()

		handler := app.NewValidatedCommand[SeedDataCommand](nil, assertValidated{t: t})

		err := handler.H(ctx, SeedDataCommand{Count: 1})
		assert.NoError(t, err)
	})

	t.Run("invalid command", func(t *testing.T) {
		t.Parallel()

		handler := app.NewValidatedCommand[SeedDataCommand](nil, assertValidated{t: t})

		err := handler.H(ctx, SeedDataCommand{Count: -1})
		assert.ErrorIs(t, err, app.ErrValidation)
	})

	t.Run("not validated", func(t *testing.T) {
		t.Parallel()

		assert.False(t, app.PassedValidation(ctx))
	})
}
