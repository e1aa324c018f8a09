package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/rechat/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader *bufio.Reader
	Writer io.Writer

	out    *termenv.Output
	prompt bool

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithPrompt forces the prompt on or off. By default it is shown only when
// the reader is a terminal.
func WithPrompt(enabled bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.prompt = enabled
	}
}

// WithColorProfile overrides the detected color profile.
func WithColorProfile(profile termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.out = termenv.NewOutput(h.Writer, termenv.WithProfile(profile))
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		out:    termenv.NewOutput(w),
		prompt: isTerminal(r),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// A final line without newline still counts.
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context, state domain.ConversationState) (string, error) {
	h.initPump()

	if h.prompt {
		fmt.Fprint(h.Writer, h.out.String(Prompt(state)).Bold())
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}

func (h *TextHandler) Output(ctx context.Context, act domain.Action, state domain.ConversationState) error {
	text := h.out.String(Describe(act))
	switch act.Kind() {
	case domain.KindInvalidCommand:
		text = text.Foreground(h.out.Color("#fb7185"))
	case domain.KindGreeting, domain.KindQuit:
		text = text.Foreground(h.out.Color("#a78bfa"))
	case domain.KindPostChannel, domain.KindPostDM:
	default:
		text = text.Foreground(h.out.Color("#818cf8"))
	}
	_, err := fmt.Fprintln(h.Writer, text)
	return err
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", h.out.String(msg).Faint())
	return err
}
