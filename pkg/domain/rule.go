package domain

// CommandRule describes one command that is legal in a given mode.
// The interpreter's rule table is exposed as a slice of these for
// introspection (graphs, API discovery).
type CommandRule struct {
	Mode    Mode   `json:"mode"`
	Command string `json:"command"`
	// Argument documents the expected argument, empty when none is read.
	Argument string `json:"argument,omitempty"`
	// Next is the mode entered after the command succeeds.
	Next Mode `json:"next"`
}
