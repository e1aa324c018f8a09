package mcp

import (
	"context"
	"encoding/json"
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
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RulesURI is the resource exposing the command table.
const RulesURI = "rechat://rules"

// TurnResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type TurnResponse struct {
	Action domain.Record `json:"action" jsonschema_description:"The action the line resolved to"`
	State  domain.Record `json:"state" jsonschema_description:"The successor conversation state"`
}

// IdentifierResponse reports what kind of identifier a token is.
type IdentifierResponse struct {
	Token string `json:"token"`
	Kind  string `json:"kind" jsonschema_description:"channel, user or invalid"`
	Valid bool   `json:"valid"`
}

// Server wraps the interpreter and exposes it as an MCP Server.
type Server struct {
	engine    ports.Interpreter
	sessions  *session.Manager
	sanitizer runner.Sanitizer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithSessions enables the session_turn tool backed by mgr.
func WithSessions(mgr *session.Manager) Option {
	return func(s *Server) {
		s.sessions = mgr
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize overrides the input size limit.
func WithMaxInputSize(size int) Option {
	return func(s *Server) {
		s.sanitizer.MaxSize = size
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Interpreter, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("rechat-mcp", rechat.Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mostly for tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: chat_turn
	turnTool := mcp.NewTool("chat_turn",
		mcp.WithDescription("Interpret one chat line against a conversation state. Omit state to start a new conversation."),
		mcp.WithString("state", mcp.Description("JSON object with mode, current_channel and current_user (optional)")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The raw chat line")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(turnTool, mcp.NewStructuredToolHandler(s.handleTurn))

	// TOOL: session_turn
	if s.sessions != nil {
		sessionTool := mcp.NewTool("session_turn",
			mcp.WithDescription("Interpret one chat line in a server-side session."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
			mcp.WithString("input", mcp.Required(), mcp.Description("The raw chat line")),
			mcp.WithOutputSchema[TurnResponse](),
		)
		s.mcpServer.AddTool(sessionTool, mcp.NewStructuredToolHandler(s.handleSessionTurn))
	}

	// TOOL: validate_identifier
	validateTool := mcp.NewTool("validate_identifier",
		mcp.WithDescription("Check whether a token is a channel name (#name) or a user identifier (@email)."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token to check")),
		mcp.WithOutputSchema[IdentifierResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) clean(input string) (string, error) {
	if input == "" {
		return input, nil
	}
	clean, err := s.sanitizer.Clean(input)
	if err != nil {
		s.logger.Warn("MCP: Input rejected", "error", err, "size", len(input))
		return "", fmt.Errorf("input rejected: %w", err)
	}
	return clean, nil
}

func (s *Server) handleTurn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	input, _ := args["input"].(string)
	clean, err := s.clean(input)
	if err != nil {
		return TurnResponse{}, err
	}

	var prev domain.Record
	if raw, ok := args["state"].(string); ok && raw != "" {
		// A state that does not parse is a malformed record: command mode.
		if err := json.Unmarshal([]byte(raw), &prev); err != nil || prev == nil {
			prev = domain.Record{}
		}
	}

	act, next := s.engine.HandleTurn(ctx, prev, clean)
	return TurnResponse{Action: domain.ActionRecord(act), State: next}, nil
}

func (s *Server) handleSessionTurn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return TurnResponse{}, domain.ErrInvalidSessionID
	}
	input, _ := args["input"].(string)
	clean, err := s.clean(input)
	if err != nil {
		return TurnResponse{}, err
	}

	act, next, err := s.sessions.Turn(ctx, sessionID, clean)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("turn failed: %w", err)
	}
	return TurnResponse{Action: domain.ActionRecord(act), State: next.Record()}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (IdentifierResponse, error) {
	token, _ := args["token"].(string)
	resp := IdentifierResponse{Token: token, Kind: "invalid"}

	switch {
	case domain.IsValidChannel(token):
		resp.Kind, resp.Valid = "channel", true
	case domain.IsValidUser(token):
		resp.Kind, resp.Valid = "user", true
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: rechat://rules
	s.mcpServer.AddResource(mcp.NewResource(RulesURI, "Command Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Rules())
		if err != nil {
			return nil, fmt.Errorf("failed to encode rules: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RulesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
