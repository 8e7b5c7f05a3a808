package app_test

import (
	"context"
	"errors"
)

var (
	ctx = context.Background()

	errSomething = errors.New("some-error")
)

type (
	ListPatientsQuery struct {
		Name string `validate:"omitempty,min=2"`
	}
	response struct{ Count int }

	SeedDataCommand struct {
		Count int `validate:"gte=0"`
	}
)

type genericCommand[T any] struct{ Item T }
