/*
Package rechat is a finite-state command interpreter for a line-based chat protocol.

Given the state of a conversation and one line of input, it decides what the host
should do (join a channel, post a message, list users...) and what the next state is.
The interpreter itself is pure: it does no I/O and keeps no sessions. Persistence,
transports and metrics live in the adapters under pkg/.

# Concept

A session is always in one of three modes:

  - command: no channel or peer is selected. Accepts \list, \quit, \join and \dm.
  - channel: bound to a channel. Accepts \leave and \read; other lines are posts.
  - dm: bound to a peer. Accepts \leave and \read; other lines are direct messages.

Lines starting with a backslash are commands. A command that is unknown, illegal in
the current mode or carries a malformed argument yields InvalidCommand and never
changes the state.

# Usage

	eng := rechat.New()

	var state domain.Record // nil: new session
	action, state := eng.HandleTurn(ctx, state, "")           // greeting
	action, state = eng.HandleTurn(ctx, state, `\join #general`) // join
	action, state = eng.HandleTurn(ctx, state, "hi @bob@example.com")

	fmt.Println(domain.ActionRecord(action))
	// map[action:postChannel channel:#general message:hi @bob@example.com mentions:[@bob@example.com]]

For long-running sessions use pkg/session with one of the stores in pkg/adapters.
*/
package rechat
