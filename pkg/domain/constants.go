package domain

// Field names of the transport records. Clients rely on these exact keys.
const (
	KeyMode    = "mode"
	KeyChannel = "current_channel"
	KeyPeer    = "current_user"

	KeyAction        = "action"
	KeyError         = "error"
	KeyParam         = "param"
	KeyTargetChannel = "channel"
	KeyUser          = "user"
	KeyMessage       = "message"
	KeyMentions      = "mentions"
)

// List parameters accepted by the list command.
const (
	ListParamChannels = "channels"
	ListParamUsers    = "users"
)
