package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/pkg/adapters/memory"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/aretw0/rechat/pkg/observability"
	"github.com/aretw0/rechat/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(opts ...Option) (*Server, http.Handler) {
	engine := rechat.New()
	srv := NewServer(engine, session.NewManager(memory.NewStore(), engine), opts...)
	return srv, srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTurn(t *testing.T, w *httptest.ResponseRecorder) TurnResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TurnResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestTurn_Stateless(t *testing.T) {
	_, h := newTestServer()

	tests := []struct {
		name       string
		body       string
		wantAction domain.Record
		wantMode   string
	}{
		{
			name:       "greeting for new conversation",
			body:       `{"input":""}`,
			wantAction: domain.Record{"action": "greeting"},
			wantMode:   "command",
		},
		{
			name:       "join",
			body:       `{"state":{"mode":"command"},"input":"\\join #abc"}`,
			wantAction: domain.Record{"action": "join", "channel": "#abc"},
			wantMode:   "channel",
		},
		{
			name:       "post with mention",
			body:       `{"state":{"mode":"channel","current_channel":"#abc"},"input":"hi @a@b.io"}`,
			wantAction: domain.Record{"action": "postChannel", "channel": "#abc", "message": "hi @a@b.io", "mentions": []any{"@a@b.io"}},
			wantMode:   "channel",
		},
		{
			name:       "malformed state reads as command mode",
			body:       `{"state":"garbage","input":"hello"}`,
			wantAction: domain.Record{"error": "Invalid command"},
			wantMode:   "command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeTurn(t, do(t, h, http.MethodPost, "/turn", tt.body))
			assert.Equal(t, tt.wantAction, resp.Action)
			assert.Equal(t, tt.wantMode, resp.State["mode"])
		})
	}
}

func TestTurn_BadRequests(t *testing.T) {
	_, h := newTestServer(WithMaxInputSize(8))

	w := do(t, h, http.MethodPost, "/turn", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/turn", `{"input":"this line is too long"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "input exceeds maximum allowed size")

	w = do(t, h, http.MethodPost, "/turn", `{"input":42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	_, h := newTestServer()

	resp := decodeTurn(t, do(t, h, http.MethodPost, "/sessions/alice/turn", `{"input":""}`))
	assert.Equal(t, "greeting", resp.Action["action"])

	resp = decodeTurn(t, do(t, h, http.MethodPost, "/sessions/alice/turn", `{"input":"\\dm @bob@example.com"}`))
	assert.Equal(t, "dm", resp.Action["action"])

	w := do(t, h, http.MethodGet, "/sessions/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state domain.Record
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.Equal(t, "dm", state["mode"])
	assert.Equal(t, "@bob@example.com", state["current_user"])

	w = do(t, h, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessions":["alice"]}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/sessions/alice", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/sessions/alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRules(t *testing.T) {
	_, h := newTestServer()
	w := do(t, h, http.MethodGet, "/rules", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rules []domain.CommandRule
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rules))
	assert.Len(t, rules, 8)
}

func TestHealthAndInfo(t *testing.T) {
	_, h := newTestServer()

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	assert.Contains(t, w.Body.String(), rechat.Version)

	w = do(t, h, http.MethodOptions, "/turn", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	_, h := newTestServer()
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)

	metrics := observability.NewMetrics()
	engine := rechat.New(rechat.WithLifecycleHooks(metrics.Hooks()))
	h = NewHandler(engine, session.NewManager(memory.NewStore(), engine), WithMetrics(metrics.Handler()))

	decodeTurn(t, do(t, h, http.MethodPost, "/turn", `{"input":"\\list users"}`))
	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rechat_turns_total{action="listUsers",mode="command"} 1`)
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv, h := newTestServer()
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sessions/sess-1/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	require.Eventually(t, func() bool { return srv.Streams.Subscribers("sess-1") == 1 }, time.Second, 10*time.Millisecond)

	post, err := ts.Client().Post(ts.URL+"/sessions/sess-1/turn", "application/json", bytes.NewBufferString(`{"input":"\\join #room"}`))
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			data = strings.TrimPrefix(strings.TrimSpace(line), "data: ")
			break
		}
	}

	var turn TurnResponse
	require.NoError(t, json.Unmarshal([]byte(data), &turn))
	assert.Equal(t, "join", turn.Action["action"])
	assert.Equal(t, "#room", turn.State["current_channel"])
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager(srvLogger())
	ch, cancel := sm.Subscribe("s")
	defer cancel()

	for i := 0; i < 20; i++ {
		sm.Broadcast("s", "msg")
	}
	assert.Len(t, ch, cap(ch))

	sm.Broadcast("nobody", "msg")
}

func srvLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
