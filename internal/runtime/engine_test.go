package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/rechat/internal/runtime"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	channel = domain.ChannelID("#abc12")
	peer    = domain.UserID("@bob@x.com")
)

func TestEngine_Step(t *testing.T) {
	engine := runtime.NewEngine()
	ctx := context.Background()

	tests := []struct {
		name       string
		state      domain.ConversationState
		line       string
		wantAction domain.Action
		wantState  domain.ConversationState
	}{
		// Command mode
		{"list channels", domain.CommandState(), `\list channels`, domain.ListChannels{}, domain.CommandState()},
		{"list users", domain.CommandState(), `\list users`, domain.ListUsers{}, domain.CommandState()},
		{"list verb case-insensitive", domain.CommandState(), `\LIST users`, domain.ListUsers{}, domain.CommandState()},
		{"list missing arg", domain.CommandState(), `\list`, domain.InvalidCommand{}, domain.CommandState()},
		{"list bad arg", domain.CommandState(), `\list rooms`, domain.InvalidCommand{}, domain.CommandState()},
		{"list arg is case-sensitive", domain.CommandState(), `\list Channels`, domain.InvalidCommand{}, domain.CommandState()},
		{"quit", domain.CommandState(), `\quit`, domain.Quit{}, domain.CommandState()},
		{"quit ignores argument", domain.CommandState(), `\quit now`, domain.Quit{}, domain.CommandState()},
		{"join", domain.CommandState(), `\join #abc12`, domain.JoinChannel{Channel: channel}, domain.ChannelState(channel)},
		{"join unicode channel", domain.CommandState(), `\join #café1`, domain.JoinChannel{Channel: "#café1"}, domain.ChannelState("#café1")},
		{"join tab separator", domain.CommandState(), "\\join\t#abc12", domain.JoinChannel{Channel: channel}, domain.ChannelState(channel)},
		{"join missing arg", domain.CommandState(), `\join`, domain.InvalidCommand{}, domain.CommandState()},
		{"join bad channel", domain.CommandState(), `\join abc`, domain.InvalidCommand{}, domain.CommandState()},
		{"join channel with digit first", domain.CommandState(), `\join #1abc`, domain.InvalidCommand{}, domain.CommandState()},
		{"dm", domain.CommandState(), `\dm @bob@x.com`, domain.StartDM{User: peer}, domain.DirectState(peer)},
		{"dm not an email", domain.CommandState(), `\dm notanemail`, domain.InvalidCommand{}, domain.CommandState()},
		{"dm missing sigil", domain.CommandState(), `\dm bob@x.com`, domain.InvalidCommand{}, domain.CommandState()},
		{"post in command mode", domain.CommandState(), "hello", domain.InvalidCommand{}, domain.CommandState()},
		{"leave in command mode", domain.CommandState(), `\leave`, domain.InvalidCommand{}, domain.CommandState()},
		{"unknown verb", domain.CommandState(), `\foo`, domain.InvalidCommand{}, domain.CommandState()},

		// Channel mode
		{"channel leave", domain.ChannelState(channel), `\leave`, domain.LeaveChannel{Channel: channel}, domain.CommandState()},
		{"channel read", domain.ChannelState(channel), `\read`, domain.ReadChannel{Channel: channel}, domain.ChannelState(channel)},
		{"channel quit is invalid", domain.ChannelState(channel), `\quit`, domain.InvalidCommand{}, domain.ChannelState(channel)},
		{"channel join is invalid", domain.ChannelState(channel), `\join #other`, domain.InvalidCommand{}, domain.ChannelState(channel)},
		{"channel unknown verb", domain.ChannelState(channel), `\foo`, domain.InvalidCommand{}, domain.ChannelState(channel)},
		{
			"channel post", domain.ChannelState(channel), "hi @bob@x.com",
			domain.PostChannel{Channel: channel, Message: "hi @bob@x.com", Mentions: domain.NewMentionSet(peer)},
			domain.ChannelState(channel),
		},
		{
			"channel empty post", domain.ChannelState(channel), "",
			domain.PostChannel{Channel: channel, Message: "", Mentions: domain.NewMentionSet()},
			domain.ChannelState(channel),
		},

		// Direct message mode
		{"dm leave", domain.DirectState(peer), `\leave`, domain.LeaveDM{User: peer}, domain.CommandState()},
		{"dm read", domain.DirectState(peer), `\read`, domain.ReadDM{User: peer}, domain.DirectState(peer)},
		{"dm list is invalid", domain.DirectState(peer), `\list users`, domain.InvalidCommand{}, domain.DirectState(peer)},
		{
			"dm post", domain.DirectState(peer), "ping @a@y.org @a@y.org",
			domain.PostDM{User: peer, Message: "ping @a@y.org @a@y.org", Mentions: domain.NewMentionSet("@a@y.org")},
			domain.DirectState(peer),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, next := engine.Step(ctx, tt.state, tt.line)
			assert.Equal(t, tt.wantAction, act)
			assert.Equal(t, tt.wantState, next)

			assert.Equal(t, tt.wantAction, engine.Decide(tt.state, tt.line))
			assert.Equal(t, tt.wantState, engine.Advance(tt.state, tt.line))
		})
	}
}

func TestEngine_InvalidNeverMutates(t *testing.T) {
	engine := runtime.NewEngine()
	states := []domain.ConversationState{
		domain.CommandState(),
		domain.ChannelState(channel),
		domain.DirectState(peer),
	}
	lines := []string{
		`\`, `\ `, `\foo`, `\list`, `\list all`, `\join`, `\join #`, `\join # a`,
		`\dm`, `\dm @`, `\dm @bob`, `\leave`, `\read`, `\quit`, "text", "", `\\join #a`,
	}

	for _, s := range states {
		for _, line := range lines {
			act, next := engine.Step(context.Background(), s, line)
			if domain.IsInvalid(act) {
				assert.True(t, s.Equal(next), "state %s changed on %q", s, line)
			}
			assertInvariant(t, next)
		}
	}
}

func TestEngine_Scenario(t *testing.T) {
	engine := runtime.NewEngine()
	ctx := context.Background()
	state := domain.CommandState()

	script := []struct {
		line string
		kind domain.ActionKind
		mode domain.Mode
	}{
		{`\list channels`, domain.KindListChannels, domain.ModeCommand},
		{`\join #abc12`, domain.KindJoinChannel, domain.ModeChannel},
		{"hi @bob@x.com", domain.KindPostChannel, domain.ModeChannel},
		{`\read`, domain.KindReadChannel, domain.ModeChannel},
		{`\leave`, domain.KindLeaveChannel, domain.ModeCommand},
		{`\dm notanemail`, domain.KindInvalidCommand, domain.ModeCommand},
		{`\dm @bob@x.com`, domain.KindStartDM, domain.ModeDirectMessage},
		{"hey", domain.KindPostDM, domain.ModeDirectMessage},
		{`\leave`, domain.KindLeaveDM, domain.ModeCommand},
		{`\quit`, domain.KindQuit, domain.ModeCommand},
	}

	for _, step := range script {
		var act domain.Action
		act, state = engine.Step(ctx, state, step.line)
		require.Equal(t, step.kind, act.Kind(), step.line)
		require.Equal(t, step.mode, state.Mode(), step.line)
		assertInvariant(t, state)
	}
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var turns []domain.ActionKind
	var rejects []string
	var transitions []string

	hooks := domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			turns = append(turns, e.Action)
		},
		OnReject: func(ctx context.Context, e *domain.TurnEvent) {
			assert.Equal(t, domain.EventReject, e.Type)
			rejects = append(rejects, e.Command)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			transitions = append(transitions, string(e.From.Mode())+"->"+string(e.To.Mode()))
		},
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	state := domain.CommandState()
	_, state = engine.Step(ctx, state, `\join #abc12`)
	_, state = engine.Step(ctx, state, `\bogus`)
	_, state = engine.Step(ctx, state, "hello")
	_, _ = engine.Step(ctx, state, `\leave`)

	assert.Equal(t, []domain.ActionKind{
		domain.KindJoinChannel,
		domain.KindInvalidCommand,
		domain.KindPostChannel,
		domain.KindLeaveChannel,
	}, turns)
	assert.Equal(t, []string{"bogus"}, rejects)
	assert.Equal(t, []string{"command->channel", "channel->command"}, transitions)
}

func TestEngine_Rules(t *testing.T) {
	rules := runtime.NewEngine().Rules()
	require.Len(t, rules, 8)

	byMode := map[domain.Mode][]string{}
	for _, r := range rules {
		byMode[r.Mode] = append(byMode[r.Mode], r.Command)
	}
	assert.ElementsMatch(t, []string{"list", "quit", "join", "dm"}, byMode[domain.ModeCommand])
	assert.ElementsMatch(t, []string{"leave", "read"}, byMode[domain.ModeChannel])
	assert.ElementsMatch(t, []string{"leave", "read"}, byMode[domain.ModeDirectMessage])
}

func assertInvariant(t *testing.T, s domain.ConversationState) {
	t.Helper()
	_, hasChannel := s.Channel()
	_, hasPeer := s.Peer()
	assert.Equal(t, s.Mode() == domain.ModeChannel, hasChannel)
	assert.Equal(t, s.Mode() == domain.ModeDirectMessage, hasPeer)
}
