package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/google/uuid"
)

// Sessions is the part of session.Manager the runner needs.
type Sessions interface {
	Turn(ctx context.Context, sessionID, line string) (domain.Action, domain.ConversationState, error)
	Load(ctx context.Context, sessionID string) (domain.ConversationState, error)
}

// Runner drives one chat session from an IOHandler until quit or end of input.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// SessionID identifies the persisted conversation.
	SessionID string

	// Sanitizer cleans every line before interpretation.
	Sanitizer Sanitizer
}

// NewRunner creates a Runner with a text handler and a random session ID.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	return r
}

// Run executes the turn loop and returns the last known state.
// End of input and a Quit action both end the loop without error.
func (r *Runner) Run(ctx context.Context, sessions Sessions) (domain.ConversationState, error) {
	state, err := r.start(ctx, sessions)
	if err != nil {
		return state, err
	}

	for {
		line, err := r.Handler.Input(ctx, state)
		if errors.Is(err, io.EOF) {
			r.Logger.Debug("input closed", "session_id", r.SessionID)
			return state, nil
		}
		if err != nil {
			return state, err
		}

		clean, err := r.Sanitizer.Clean(line)
		if err != nil {
			r.Logger.Warn("rejected input", "session_id", r.SessionID, "err", err)
			if err := r.Handler.SystemOutput(ctx, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
				return state, err
			}
			continue
		}

		act, next, err := sessions.Turn(ctx, r.SessionID, clean)
		if err != nil {
			return state, err
		}
		state = next

		if err := r.Handler.Output(ctx, act, state); err != nil {
			return state, err
		}
		if act.Kind() == domain.KindQuit {
			return state, nil
		}
	}
}

// start greets a new session or announces a resumed one.
func (r *Runner) start(ctx context.Context, sessions Sessions) (domain.ConversationState, error) {
	state, err := sessions.Load(ctx, r.SessionID)
	switch {
	case err == nil:
		r.Logger.Info("resuming session", "session_id", r.SessionID, "state", state)
		msg := fmt.Sprintf("Resumed session %s (%s)", r.SessionID, state)
		return state, r.Handler.SystemOutput(ctx, msg)
	case errors.Is(err, domain.ErrSessionNotFound):
	default:
		return domain.CommandState(), fmt.Errorf("failed to load session: %w", err)
	}

	act, state, err := sessions.Turn(ctx, r.SessionID, "")
	if err != nil {
		return domain.CommandState(), err
	}
	return state, r.Handler.Output(ctx, act, state)
}
