package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn       EventType = "turn"
	EventTransition EventType = "transition"
	EventReject     EventType = "reject"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TurnEvent describes one interpreted line.
type TurnEvent struct {
	EventBase
	Mode   Mode       `json:"mode"`
	Action ActionKind `json:"action"`
	// Command is the lower-cased verb, empty for content lines.
	Command string `json:"command,omitempty"`
}

// TransitionEvent is emitted when a turn changes the mode.
type TransitionEvent struct {
	EventBase
	From ConversationState `json:"from"`
	To   ConversationState `json:"to"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurn       func(context.Context, *TurnEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnReject     func(context.Context, *TurnEvent)
}
