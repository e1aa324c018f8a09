package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/logging"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/aretw0/rechat/pkg/ports"
	"github.com/aretw0/rechat/pkg/runner"
	"github.com/aretw0/rechat/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// TurnRequest is the body of POST /turn. State is optional; when absent
// the conversation is new.
type TurnRequest struct {
	State json.RawMessage `json:"state,omitempty"`
	Input string          `json:"input"`
}

// SessionTurnRequest is the body of POST /sessions/{id}/turn.
type SessionTurnRequest struct {
	Input string `json:"input"`
}

// TurnResponse carries the action and the successor state.
type TurnResponse struct {
	Action domain.Record `json:"action"`
	State  domain.Record `json:"state"`
}

// Server exposes the interpreter and the session manager over HTTP.
type Server struct {
	Engine    ports.Interpreter
	Sessions  *session.Manager
	Streams   *StreamManager
	Sanitizer runner.Sanitizer
	Logger    *slog.Logger

	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxInputSize overrides the input size limit.
func WithMaxInputSize(size int) Option {
	return func(s *Server) {
		s.Sanitizer.MaxSize = size
	}
}

// NewServer creates the server without routing.
func NewServer(engine ports.Interpreter, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.Logger)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Interpreter, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/rules", s.GetRules)
	r.Post("/turn", s.Turn)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/turn", s.SessionTurn)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Turn handles POST /turn. The caller owns the state.
func (s *Server) Turn(w http.ResponseWriter, r *http.Request) {
	var body TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Turn: Invalid request body", "error", err)
		return
	}

	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}

	act, next := s.Engine.HandleTurn(r.Context(), decodeState(body.State), input)
	s.writeJSON(w, http.StatusOK, TurnResponse{
		Action: domain.ActionRecord(act),
		State:  next,
	})
}

// decodeState maps the optional state payload onto a record. Absent or null
// means a new conversation; anything that is not an object is a malformed
// record, which the engine reads as command mode.
func decodeState(raw json.RawMessage) domain.Record {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
		return domain.Record{}
	}
	return rec
}

// SessionTurn handles POST /sessions/{id}/turn. The server owns the state.
func (s *Server) SessionTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body SessionTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("SessionTurn: Invalid request body", "error", err)
		return
	}

	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}

	act, next, err := s.Sessions.Turn(r.Context(), sessionID, input)
	if err != nil {
		s.writeError(w, "SessionTurn", err)
		return
	}

	resp := TurnResponse{
		Action: domain.ActionRecord(act),
		State:  next.Record(),
	}
	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(sessionID, string(payload))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) sanitize(w http.ResponseWriter, input string) (string, bool) {
	if input == "" {
		return input, true
	}
	clean, err := s.Sanitizer.Clean(input)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Input rejected", "error", err, "size", len(input))
		return "", false
	}
	return clean, true
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, "ListSessions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state.Record())
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRules handles GET /rules.
func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Rules())
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "rechat-http",
		"version": rechat.Version,
	})
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Every turn of
// the session is pushed as a TurnResponse.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.Logger.Info("SSE: Subscribing to session", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: turn\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidSessionID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "error", err)
	}
}

// ReadHeaderTimeout bounds slow clients on servers built by NewHTTPServer.
const ReadHeaderTimeout = 5 * time.Second

// NewHTTPServer wraps handler in an http.Server listening on port.
func NewHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}
