package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/pkg/domain"
)

// Engine interprets input lines against a conversation state.
// It holds no per-session data and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide returns the action for line in state.
func (e *Engine) Decide(state domain.ConversationState, line string) domain.Action {
	act, _ := interpret(state, classify(line))
	return act
}

// Advance returns the state that follows line. An invalid command returns
// state unchanged.
func (e *Engine) Advance(state domain.ConversationState, line string) domain.ConversationState {
	_, next := interpret(state, classify(line))
	return next
}

// Step classifies line once and returns both the action and the successor
// state, firing lifecycle hooks along the way.
func (e *Engine) Step(ctx context.Context, state domain.ConversationState, line string) (domain.Action, domain.ConversationState) {
	in := classify(line)
	act, next := interpret(state, in)

	event := &domain.TurnEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventTurn},
		Mode:      state.Mode(),
		Action:    act.Kind(),
		Command:   in.verb,
	}

	if domain.IsInvalid(act) {
		e.logger.Debug("input rejected", "mode", state.Mode(), "command", in.verb, "is_command", in.command)
		if e.hooks.OnReject != nil {
			rejected := *event
			rejected.Type = domain.EventReject
			e.hooks.OnReject(ctx, &rejected)
		}
	} else {
		e.logger.Debug("input accepted", "mode", state.Mode(), "action", act.Kind())
	}

	if e.hooks.OnTurn != nil {
		e.hooks.OnTurn(ctx, event)
	}

	if next.Mode() != state.Mode() {
		e.logger.Debug("mode transition", "from", state, "to", next)
		if e.hooks.OnTransition != nil {
			e.hooks.OnTransition(ctx, &domain.TransitionEvent{
				EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventTransition},
				From:      state,
				To:        next,
			})
		}
	}

	return act, next
}

// Rules returns the command table.
func (e *Engine) Rules() []domain.CommandRule {
	out := make([]domain.CommandRule, len(commandRules))
	for i, r := range commandRules {
		out[i] = r.CommandRule
	}
	return out
}

// interpret is the pure transition function. It never modifies state when
// the resulting action is InvalidCommand.
func interpret(state domain.ConversationState, in inputLine) (domain.Action, domain.ConversationState) {
	if in.command {
		apply, found := ruleIndex[ruleKey{mode: state.Mode(), verb: in.verb}]
		if !found {
			return domain.InvalidCommand{}, state
		}
		act, next, ok := apply(state, in)
		if !ok {
			return domain.InvalidCommand{}, state
		}
		return act, next
	}

	switch state.Mode() {
	case domain.ModeChannel:
		ch, _ := state.Channel()
		return domain.PostChannel{
			Channel:  ch,
			Message:  in.raw,
			Mentions: domain.ExtractMentions(in.raw),
		}, state
	case domain.ModeDirectMessage:
		peer, _ := state.Peer()
		return domain.PostDM{
			User:     peer,
			Message:  in.raw,
			Mentions: domain.ExtractMentions(in.raw),
		}, state
	default:
		return domain.InvalidCommand{}, state
	}
}
