package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/rechat/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next raw line. state is the conversation the line will
	// be interpreted in, so interactive handlers can reflect it in a prompt.
	Input(ctx context.Context, state domain.ConversationState) (string, error)

	// Output presents the outcome of one turn.
	Output(ctx context.Context, act domain.Action, state domain.ConversationState) error

	// SystemOutput reports messages that do not come from the engine.
	SystemOutput(ctx context.Context, msg string) error
}

const greetingText = `Welcome to rechat. Commands: \list channels, \list users, \join #channel, \dm @user, \quit`

// Describe renders an action as a single human readable line.
func Describe(act domain.Action) string {
	switch a := act.(type) {
	case domain.Greeting:
		return greetingText
	case domain.Quit:
		return "Goodbye."
	case domain.ListChannels:
		return "Listing channels"
	case domain.ListUsers:
		return "Listing users"
	case domain.JoinChannel:
		return fmt.Sprintf("Joined %s", a.Channel)
	case domain.LeaveChannel:
		return fmt.Sprintf("Left %s", a.Channel)
	case domain.ReadChannel:
		return fmt.Sprintf("Reading %s", a.Channel)
	case domain.PostChannel:
		return postLine(string(a.Channel), a.Message, a.Mentions)
	case domain.StartDM:
		return fmt.Sprintf("Direct messages with %s", a.User)
	case domain.LeaveDM:
		return fmt.Sprintf("Closed direct messages with %s", a.User)
	case domain.ReadDM:
		return fmt.Sprintf("Reading direct messages with %s", a.User)
	case domain.PostDM:
		return postLine(string(a.User), a.Message, a.Mentions)
	default:
		return domain.ErrInvalidCommand.Error()
	}
}

func postLine(target, message string, mentions domain.MentionSet) string {
	line := fmt.Sprintf("%s <- %s", target, message)
	if mentions.Len() > 0 {
		line += fmt.Sprintf(" (mentions: %s)", strings.Join(mentions.Strings(), ", "))
	}
	return line
}

// Prompt returns the input prompt for a conversation state.
func Prompt(state domain.ConversationState) string {
	if ch, ok := state.Channel(); ok {
		return string(ch) + "> "
	}
	if peer, ok := state.Peer(); ok {
		return string(peer) + "> "
	}
	return "> "
}
