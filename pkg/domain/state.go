package domain

// ConversationState is the current mode of a chat session together with the
// channel or peer it is bound to.
//
// The fields are unexported so the only way to build a state is through
// CommandState, ChannelState and DirectState: a channel is set only in
// ModeChannel and a peer only in ModeDirectMessage. The zero value is the
// command state.
type ConversationState struct {
	mode    Mode
	channel ChannelID
	peer    UserID
}

// CommandState returns the initial state: no channel, no peer.
func CommandState() ConversationState {
	return ConversationState{mode: ModeCommand}
}

// ChannelState returns a state bound to channel.
func ChannelState(channel ChannelID) ConversationState {
	return ConversationState{mode: ModeChannel, channel: channel}
}

// DirectState returns a state bound to a direct conversation with peer.
func DirectState(peer UserID) ConversationState {
	return ConversationState{mode: ModeDirectMessage, peer: peer}
}

// Mode returns the active mode.
func (s ConversationState) Mode() Mode {
	if s.mode == "" {
		return ModeCommand
	}
	return s.mode
}

// Channel returns the joined channel. ok is false outside ModeChannel.
func (s ConversationState) Channel() (channel ChannelID, ok bool) {
	return s.channel, s.Mode() == ModeChannel
}

// Peer returns the direct message peer. ok is false outside ModeDirectMessage.
func (s ConversationState) Peer() (peer UserID, ok bool) {
	return s.peer, s.Mode() == ModeDirectMessage
}

// Equal reports whether both states have the same mode and binding.
func (s ConversationState) Equal(other ConversationState) bool {
	return s.Mode() == other.Mode() && s.channel == other.channel && s.peer == other.peer
}

func (s ConversationState) String() string {
	switch s.Mode() {
	case ModeChannel:
		return "channel(" + string(s.channel) + ")"
	case ModeDirectMessage:
		return "dm(" + string(s.peer) + ")"
	default:
		return "command"
	}
}
