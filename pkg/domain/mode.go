package domain

// Mode defines which conversational context governs the next input line.
type Mode string

const (
	ModeCommand       Mode = "command" // No channel or peer selected
	ModeChannel       Mode = "channel" // Posting to a channel
	ModeDirectMessage Mode = "dm"      // Talking to a single user
)

// Modes lists every mode in a stable order.
var Modes = []Mode{ModeCommand, ModeChannel, ModeDirectMessage}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCommand, ModeChannel, ModeDirectMessage:
		return true
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}
