/*
Package runner implements the interactive turn loop for rechat sessions.

It is the bridge between the session manager and a user: lines are read
through a pluggable IOHandler, cleaned by the Sanitizer, interpreted by the
manager and the resulting action is rendered back.

# Key Components

  - Runner: reads lines until Quit or end of input.
  - TextHandler: colored output and a mode-aware prompt for terminals.
  - JSONHandler: one JSON object per turn, for scripting.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID("alice"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if _, err := r.Run(ctx, manager); err != nil {
		log.Fatal(err)
	}
*/
package runner
