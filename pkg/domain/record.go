package domain

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// Record is the transport-neutral shape of a state or an action: a flat map
// that any wire format can carry. Absent values are stored as nil.
type Record map[string]any

// Record flattens the state. Fields that do not apply to the mode are nil.
func (s ConversationState) Record() Record {
	rec := Record{
		KeyMode:    string(s.Mode()),
		KeyChannel: nil,
		KeyPeer:    nil,
	}
	if ch, ok := s.Channel(); ok {
		rec[KeyChannel] = string(ch)
	}
	if peer, ok := s.Peer(); ok {
		rec[KeyPeer] = string(peer)
	}
	return rec
}

// StateFromRecord rebuilds a state from its record.
//
// Decoding never fails: each field is read on its own, and anything missing or
// malformed falls back to the command state. A channel mode without a valid
// channel (or a dm mode without a valid peer) is also treated as command mode.
func StateFromRecord(rec Record) ConversationState {
	if rec == nil {
		return CommandState()
	}

	switch Mode(stringField(rec, KeyMode)) {
	case ModeChannel:
		if ch, err := ParseChannel(stringField(rec, KeyChannel)); err == nil {
			return ChannelState(ch)
		}
	case ModeDirectMessage:
		if peer, err := ParseUser(stringField(rec, KeyPeer)); err == nil {
			return DirectState(peer)
		}
	}
	return CommandState()
}

// stringField weakly decodes rec[key] into a string. Non-scalar or nil values
// yield "".
func stringField(rec Record, key string) string {
	raw, ok := rec[key]
	if !ok || raw == nil {
		return ""
	}
	var out string
	if err := mapstructure.WeakDecode(raw, &out); err != nil {
		return ""
	}
	return out
}

// MarshalJSON encodes the state as its record.
func (s ConversationState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

// UnmarshalJSON decodes a record. A JSON null yields the command state.
func (s *ConversationState) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*s = StateFromRecord(rec)
	return nil
}

// ActionRecord renders an action in the transport-neutral shape.
func ActionRecord(a Action) Record {
	switch act := a.(type) {
	case Greeting:
		return Record{KeyAction: "greeting"}
	case Quit:
		return Record{KeyAction: "quit"}
	case ListChannels:
		return Record{KeyAction: "list", KeyParam: ListParamChannels}
	case ListUsers:
		return Record{KeyAction: "list", KeyParam: ListParamUsers}
	case JoinChannel:
		return Record{KeyAction: "join", KeyTargetChannel: string(act.Channel)}
	case LeaveChannel:
		return Record{KeyAction: "leaveChannel", KeyTargetChannel: string(act.Channel)}
	case ReadChannel:
		return Record{KeyAction: "readChannel", KeyTargetChannel: string(act.Channel)}
	case PostChannel:
		return Record{
			KeyAction:        "postChannel",
			KeyTargetChannel: string(act.Channel),
			KeyMessage:       act.Message,
			KeyMentions:      act.Mentions.Strings(),
		}
	case StartDM:
		return Record{KeyAction: "dm", KeyUser: string(act.User)}
	case LeaveDM:
		return Record{KeyAction: "leaveDM", KeyUser: string(act.User)}
	case ReadDM:
		return Record{KeyAction: "readDM", KeyUser: string(act.User)}
	case PostDM:
		return Record{
			KeyAction:   "postDM",
			KeyUser:     string(act.User),
			KeyMessage:  act.Message,
			KeyMentions: act.Mentions.Strings(),
		}
	default:
		return Record{KeyError: ErrInvalidCommand.Error()}
	}
}
