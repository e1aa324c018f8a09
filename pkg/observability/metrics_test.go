package observability

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/rechat/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fire(hooks domain.LifecycleHooks, from, to domain.ConversationState, act domain.ActionKind) {
	ctx := context.Background()
	event := &domain.TurnEvent{Mode: from.Mode(), Action: act}
	if act == domain.KindInvalidCommand {
		hooks.OnReject(ctx, event)
	}
	hooks.OnTurn(ctx, event)
	if from.Mode() != to.Mode() {
		hooks.OnTransition(ctx, &domain.TransitionEvent{From: from, To: to})
	}
}

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()

	cmd := domain.CommandState()
	ch := domain.ChannelState("#abc")

	fire(hooks, cmd, ch, domain.KindJoinChannel)
	fire(hooks, ch, ch, domain.KindPostChannel)
	fire(hooks, ch, ch, domain.KindPostChannel)
	fire(hooks, ch, ch, domain.KindInvalidCommand)
	fire(hooks, ch, cmd, domain.KindLeaveChannel)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("command", "join")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.turns.WithLabelValues("channel", "postChannel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("channel", "invalidCommand")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("command", "channel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("channel", "command")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("channel")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.turns))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	fire(m.Hooks(), domain.CommandState(), domain.CommandState(), domain.KindListUsers)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rechat_turns_total{action="listUsers",mode="command"} 1`)
}

func TestMetrics_Isolated(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	fire(a.Hooks(), domain.CommandState(), domain.CommandState(), domain.KindQuit)
	assert.Equal(t, 0, testutil.CollectAndCount(b.turns))
}

func TestCombine(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnTurn: func(context.Context, *domain.TurnEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnTurn:   func(context.Context, *domain.TurnEvent) { calls = append(calls, "second") },
		OnReject: func(context.Context, *domain.TurnEvent) { calls = append(calls, "reject") },
	}

	hooks := Combine(first, domain.LifecycleHooks{}, second)
	require.NotNil(t, hooks.OnTurn)
	require.NotNil(t, hooks.OnReject)
	assert.Nil(t, hooks.OnTransition)

	hooks.OnTurn(context.Background(), &domain.TurnEvent{})
	hooks.OnReject(context.Background(), &domain.TurnEvent{})
	assert.Equal(t, []string{"first", "second", "reject"}, calls)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fire(LogHooks(logger), domain.CommandState(), domain.DirectState("@a@b.io"), domain.KindStartDM)

	out := buf.String()
	assert.Contains(t, out, "msg=turn")
	assert.Contains(t, out, "action=dm")
	assert.Contains(t, out, "msg=transition")
	assert.Contains(t, out, "to=dm(@a@b.io)")
}
