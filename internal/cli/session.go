package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/rechat"
	"github.com/aretw0/rechat/internal/presentation/tui"
	"github.com/aretw0/rechat/pkg/runner"
)

// RunOptions configures an interactive session.
type RunOptions struct {
	SessionID string
	JSON      bool
	Quiet     bool
	In        io.Reader
	Out       io.Writer
}

// RunSession drives one chat session on the configured IO until quit,
// end of input or interruption.
func RunSession(ctx context.Context, app *App, opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		if !opts.Quiet {
			tui.PrintBanner(opts.Out, rechat.Version)
		}
		handler = runner.NewTextHandler(opts.In, opts.Out)
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(app.Logger),
		runner.WithInputHandler(handler),
		runner.WithMaxInputSize(app.Config.MaxInputSize),
	}
	if opts.SessionID != "" {
		runnerOpts = append(runnerOpts, runner.WithSessionID(opts.SessionID))
	}
	r := runner.NewRunner(runnerOpts...)

	app.Logger.Info("session started", "session_id", r.SessionID)
	final, err := r.Run(ctx, app.Sessions)
	app.Logger.Info("session ended", "session_id", r.SessionID, "state", final, "err", err)

	if err := handleExecutionError(err); err != nil {
		return fmt.Errorf("session %s: %w", r.SessionID, err)
	}
	return nil
}
