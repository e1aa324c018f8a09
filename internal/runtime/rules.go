package runtime

import (
	"github.com/aretw0/rechat/pkg/domain"
)

// applyFunc resolves a command against the current state. ok is false when
// the argument is missing or malformed.
type applyFunc func(state domain.ConversationState, in inputLine) (act domain.Action, next domain.ConversationState, ok bool)

type rule struct {
	domain.CommandRule
	apply applyFunc
}

type ruleKey struct {
	mode domain.Mode
	verb string
}

// commandRules is the full command table. A verb that is not listed for the
// current mode is an invalid command.
var commandRules = []rule{
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeCommand, Command: "list", Argument: "channels|users", Next: domain.ModeCommand},
		apply: applyList,
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeCommand, Command: "quit", Next: domain.ModeCommand},
		apply: func(state domain.ConversationState, _ inputLine) (domain.Action, domain.ConversationState, bool) {
			return domain.Quit{}, state, true
		},
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeCommand, Command: "join", Argument: "#channel", Next: domain.ModeChannel},
		apply: applyJoin,
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeCommand, Command: "dm", Argument: "@user", Next: domain.ModeDirectMessage},
		apply: applyDM,
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeChannel, Command: "leave", Next: domain.ModeCommand},
		apply: func(state domain.ConversationState, _ inputLine) (domain.Action, domain.ConversationState, bool) {
			ch, _ := state.Channel()
			return domain.LeaveChannel{Channel: ch}, domain.CommandState(), true
		},
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeChannel, Command: "read", Next: domain.ModeChannel},
		apply: func(state domain.ConversationState, _ inputLine) (domain.Action, domain.ConversationState, bool) {
			ch, _ := state.Channel()
			return domain.ReadChannel{Channel: ch}, state, true
		},
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeDirectMessage, Command: "leave", Next: domain.ModeCommand},
		apply: func(state domain.ConversationState, _ inputLine) (domain.Action, domain.ConversationState, bool) {
			peer, _ := state.Peer()
			return domain.LeaveDM{User: peer}, domain.CommandState(), true
		},
	},
	{
		CommandRule: domain.CommandRule{Mode: domain.ModeDirectMessage, Command: "read", Next: domain.ModeDirectMessage},
		apply: func(state domain.ConversationState, _ inputLine) (domain.Action, domain.ConversationState, bool) {
			peer, _ := state.Peer()
			return domain.ReadDM{User: peer}, state, true
		},
	},
}

var ruleIndex = func() map[ruleKey]applyFunc {
	idx := make(map[ruleKey]applyFunc, len(commandRules))
	for _, r := range commandRules {
		idx[ruleKey{mode: r.Mode, verb: r.Command}] = r.apply
	}
	return idx
}()

func applyList(state domain.ConversationState, in inputLine) (domain.Action, domain.ConversationState, bool) {
	if !in.hasArg {
		return nil, state, false
	}
	switch in.arg {
	case domain.ListParamChannels:
		return domain.ListChannels{}, state, true
	case domain.ListParamUsers:
		return domain.ListUsers{}, state, true
	}
	return nil, state, false
}

func applyJoin(state domain.ConversationState, in inputLine) (domain.Action, domain.ConversationState, bool) {
	if !in.hasArg {
		return nil, state, false
	}
	ch, err := domain.ParseChannel(in.arg)
	if err != nil {
		return nil, state, false
	}
	return domain.JoinChannel{Channel: ch}, domain.ChannelState(ch), true
}

func applyDM(state domain.ConversationState, in inputLine) (domain.Action, domain.ConversationState, bool) {
	if !in.hasArg {
		return nil, state, false
	}
	peer, err := domain.ParseUser(in.arg)
	if err != nil {
		return nil, state, false
	}
	return domain.StartDM{User: peer}, domain.DirectState(peer), true
}
