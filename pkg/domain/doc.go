/*
Package domain contains the core types of the chat command interpreter.

It is kept pure: no I/O, no persistence, no goroutines. Everything here is a value.

# Key Entities

  - ConversationState: the active Mode plus the channel or peer it is bound to.
  - Action: what the host must do for one input line (sealed set of variants).
  - ChannelID / UserID: validated identifiers, sigil included.
  - MentionSet: users referenced in a message body.
  - Record: the flat, transport-neutral map form of states and actions.
*/
package domain
