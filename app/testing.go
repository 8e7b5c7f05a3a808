package app

import (
	"context"
	"errors"
	"sync"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this use case pattern.
//

var ErrUseCaseFailed = errors.New("usecase failed")

// TestHandler is a use case that records every call and answers with a fixed result.
// It can be used as Request, Query and, via Command, as Command.
type TestHandler[Req any, Res any] struct {
	mu    sync.Mutex
	calls []Req

	res Res
	err error
}

// TestSuccessHandler returns a TestHandler that always succeeds with res.
func TestSuccessHandler[Req any, Res any](res Res) *TestHandler[Req, Res] {
	return &TestHandler[Req, Res]{res: res}
}

// TestFailureHandler returns a TestHandler that always fails with ErrUseCaseFailed.
func TestFailureHandler[Req any, Res any]() *TestHandler[Req, Res] {
	return &TestHandler[Req, Res]{err: ErrUseCaseFailed}
}

func (h *TestHandler[Req, Res]) H(_ context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, req)

	return h.res, h.err
}

// Calls returns all requests the handler was called with.
func (h *TestHandler[Req, Res]) Calls() []Req {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Req{}, h.calls...)
}

// Command returns h as a Command, ignoring its result.
func (h *TestHandler[Req, Res]) Command() Command[Req] {
	return testCommand[Req, Res]{h: h}
}

type testCommand[Req any, Res any] struct {
	h *TestHandler[Req, Res]
}

func (c testCommand[Req, Res]) H(ctx context.Context, cmd Req) error {
	_, err := c.h.H(ctx, cmd)

	return err
}
