package ports

import (
	"context"

	"github.com/aretw0/rechat/pkg/domain"
)

// Interpreter is the engine surface consumed by adapters (HTTP, MCP, runner).
// Implementations hold no session data; state travels with every call.
type Interpreter interface {
	// HandleTurn interprets one line. prev is nil for a new session.
	HandleTurn(ctx context.Context, prev domain.Record, line string) (domain.Action, domain.Record)

	// Rules returns the command table for introspection.
	Rules() []domain.CommandRule
}
