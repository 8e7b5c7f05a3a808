package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/records/alog"
)

// NewLoggedRequest logs the start and the outcome of each call on debug level.
func NewLoggedRequest[Req any, Res any](logger alog.Logger, req Request[Req, Res]) Request[Req, Res] {
	return &loggingDecorator[Req, Res]{
		logger: logger,
		kind:   "request",
		base:   req,
	}
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, query Query[Q, Res]) Query[Q, Res] {
	return &loggingDecorator[Q, Res]{
		logger: logger,
		kind:   "query",
		base:   query,
	}
}

func NewLoggedCommand[C any](logger alog.Logger, cmd Command[C]) Command[C] {
	return decorateCommand(cmd, func(req Request[C, struct{}]) Request[C, struct{}] {
		return &loggingDecorator[C, struct{}]{
			logger: logger,
			kind:   "command",
			base:   req,
		}
	})
}

type loggingDecorator[Req any, Res any] struct {
	logger alog.Logger
	kind   string
	base   Request[Req, Res]
}

func (d *loggingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	cmdName := commandName(req)

	d.logger.DebugContext(ctx, "executing "+d.kind,
		slog.String("command", cmdName),
	)

	res, err := d.base.H(ctx, req)

	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute "+d.kind,
			slog.String("command", cmdName),
			alog.Error(err),
		)
	} else {
		d.logger.DebugContext(ctx, d.kind+" executed successfully",
			slog.String("command", cmdName))
	}

	return res, err //nolint:wrapcheck // decorate but not change anything
}
