package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rechat/pkg/domain"
)

// LogHooks returns hooks that write every event to logger.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn", "mode", e.Mode, "action", e.Action, "command", e.Command)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition", "from", e.From, "to", e.To)
		},
		OnReject: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "invalid command", "mode", e.Mode, "command", e.Command)
		},
	}
}

// Combine fans every event out to all hook sets in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnTurn = chain(out.OnTurn, h.OnTurn)
		out.OnTransition = chain(out.OnTransition, h.OnTransition)
		out.OnReject = chain(out.OnReject, h.OnReject)
	}
	return out
}

func chain[E any](first, second func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
