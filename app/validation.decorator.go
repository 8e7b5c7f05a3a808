package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ctxValidatedKey struct{}

// PassedValidation is a helper giving you feedback, if a request passed validation of this decorator.
// Use it in case you want to ensure that this decorator was called before continuing with your business logic.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(ctxValidatedKey{}).(bool); ok {
		return v
	}

	return false
}

// ErrValidation wraps the validator.ValidationErrors of an invalid request.
var ErrValidation = errors.New("validation failed")

func NewValidatedRequest[Req any, Res any](validate *validator.Validate, req Request[Req, Res]) Request[Req, Res] {
	if validate == nil {
		validate = validator.New()
	}

	return &validatingDecorator[Req, Res]{
		validate: validate,
		base:     req,
	}
}

func NewValidatedQuery[Q any, Res any](validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	return NewValidatedRequest[Q, Res](validate, query)
}

func NewValidatedCommand[C any](validate *validator.Validate, cmd Command[C]) Command[C] {
	return decorateCommand(cmd, func(req Request[C, struct{}]) Request[C, struct{}] {
		return NewValidatedRequest(validate, req)
	})
}

type validatingDecorator[Req any, Res any] struct {
	validate *validator.Validate
	base     Request[Req, Res]
}

func (d *validatingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	err := d.validate.Struct(req)
	if err != nil {
		return *new(Res), fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return d.base.H(context.WithValue(ctx, ctxValidatedKey{}, true), req) //nolint:wrapcheck // decorate but not change anything
}
