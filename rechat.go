package rechat

import (
	"context"
	"log/slog"

	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/internal/runtime"
	"github.com/aretw0/rechat/pkg/domain"
)

// Engine is the high-level entry point for the rechat library.
// It wraps the internal runtime and adds the session bootstrap rule.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng
}

// HandleTurn interprets one input line for a session.
//
// prev is the record returned by the previous turn, or nil for a new session.
// A new session that sends an empty line is greeted without interpreting the
// line. Otherwise the record is decoded (malformed fields fall back to the
// command state), the line is interpreted, and the successor is encoded.
func (e *Engine) HandleTurn(ctx context.Context, prev domain.Record, line string) (domain.Action, domain.Record) {
	if prev == nil && line == "" {
		e.logger.Debug("greeting new session")
		return domain.Greeting{}, domain.CommandState().Record()
	}

	act, next := e.Step(ctx, domain.StateFromRecord(prev), line)
	return act, next.Record()
}

// Step interprets line against state and returns the action and the
// successor state. It does not apply the greeting rule.
func (e *Engine) Step(ctx context.Context, state domain.ConversationState, line string) (domain.Action, domain.ConversationState) {
	return e.runtime.Step(ctx, state, line)
}

// Decide returns the action for line without computing the successor.
func (e *Engine) Decide(state domain.ConversationState, line string) domain.Action {
	return e.runtime.Decide(state, line)
}

// Advance returns the successor state for line.
func (e *Engine) Advance(state domain.ConversationState, line string) domain.ConversationState {
	return e.runtime.Advance(state, line)
}

// Rules returns the command table for introspection.
func (e *Engine) Rules() []domain.CommandRule {
	return e.runtime.Rules()
}
