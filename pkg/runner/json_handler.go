package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/rechat/pkg/domain"
)

// TurnMessage is the JSON line emitted for every turn.
type TurnMessage struct {
	Action domain.Record `json:"action"`
	State  domain.Record `json:"state"`
}

type systemMessage struct {
	System string `json:"system"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, act domain.Action, state domain.ConversationState) error {
	return h.Encoder.Encode(TurnMessage{
		Action: domain.ActionRecord(act),
		State:  state.Record(),
	})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(systemMessage{System: msg})
}

// Input reads one line. A JSON string literal is unquoted, anything else is
// taken verbatim.
func (h *JSONHandler) Input(ctx context.Context, state domain.ConversationState) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimRight(text, "\r\n")

	var val string
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal([]byte(text), &val); err == nil {
			return val, nil
		}
	}
	return text, nil
}
