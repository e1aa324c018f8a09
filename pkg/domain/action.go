package domain

// ActionKind names an Action variant.
type ActionKind string

// Action kinds. The values double as the "action" tag of the transport record
// where the wire format has one.
const (
	KindGreeting       ActionKind = "greeting"
	KindQuit           ActionKind = "quit"
	KindListChannels   ActionKind = "listChannels"
	KindListUsers      ActionKind = "listUsers"
	KindJoinChannel    ActionKind = "join"
	KindLeaveChannel   ActionKind = "leaveChannel"
	KindReadChannel    ActionKind = "readChannel"
	KindPostChannel    ActionKind = "postChannel"
	KindStartDM        ActionKind = "dm"
	KindLeaveDM        ActionKind = "leaveDM"
	KindReadDM         ActionKind = "readDM"
	KindPostDM         ActionKind = "postDM"
	KindInvalidCommand ActionKind = "invalidCommand"
)

// Action is what the host must do in response to one input line.
// The set of variants is closed; switch on the concrete type.
type Action interface {
	Kind() ActionKind
	action()
}

// Greeting is emitted once, when a new session sends an empty line.
type Greeting struct{}

// Quit asks the host to close the connection.
type Quit struct{}

// ListChannels asks the host to send the channel directory.
type ListChannels struct{}

// ListUsers asks the host to send the user directory.
type ListUsers struct{}

// JoinChannel subscribes the session to Channel.
type JoinChannel struct {
	Channel ChannelID
}

// LeaveChannel unsubscribes the session from Channel.
type LeaveChannel struct {
	Channel ChannelID
}

// ReadChannel asks for the backlog of Channel.
type ReadChannel struct {
	Channel ChannelID
}

// PostChannel publishes Message to Channel.
type PostChannel struct {
	Channel  ChannelID
	Message  string
	Mentions MentionSet
}

// StartDM opens a direct conversation with User.
type StartDM struct {
	User UserID
}

// LeaveDM closes the direct conversation with User.
type LeaveDM struct {
	User UserID
}

// ReadDM asks for the backlog of the conversation with User.
type ReadDM struct {
	User UserID
}

// PostDM sends Message to User.
type PostDM struct {
	User     UserID
	Message  string
	Mentions MentionSet
}

// InvalidCommand rejects the line. It never changes the state.
type InvalidCommand struct{}

func (Greeting) Kind() ActionKind       { return KindGreeting }
func (Quit) Kind() ActionKind           { return KindQuit }
func (ListChannels) Kind() ActionKind   { return KindListChannels }
func (ListUsers) Kind() ActionKind      { return KindListUsers }
func (JoinChannel) Kind() ActionKind    { return KindJoinChannel }
func (LeaveChannel) Kind() ActionKind   { return KindLeaveChannel }
func (ReadChannel) Kind() ActionKind    { return KindReadChannel }
func (PostChannel) Kind() ActionKind    { return KindPostChannel }
func (StartDM) Kind() ActionKind        { return KindStartDM }
func (LeaveDM) Kind() ActionKind        { return KindLeaveDM }
func (ReadDM) Kind() ActionKind         { return KindReadDM }
func (PostDM) Kind() ActionKind         { return KindPostDM }
func (InvalidCommand) Kind() ActionKind { return KindInvalidCommand }

func (Greeting) action()       {}
func (Quit) action()           {}
func (ListChannels) action()   {}
func (ListUsers) action()      {}
func (JoinChannel) action()    {}
func (LeaveChannel) action()   {}
func (ReadChannel) action()    {}
func (PostChannel) action()    {}
func (StartDM) action()        {}
func (LeaveDM) action()        {}
func (ReadDM) action()         {}
func (PostDM) action()         {}
func (InvalidCommand) action() {}

// IsInvalid reports whether a rejects the input line.
func IsInvalid(a Action) bool {
	_, ok := a.(InvalidCommand)
	return ok
}
