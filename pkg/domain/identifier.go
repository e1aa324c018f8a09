package domain

import (
	"fmt"
	"regexp"
)

// Sigils mark the kind of an identifier.
const (
	ChannelSigil = '#'
	UserSigil    = '@'
)

var (
	channelPattern = regexp.MustCompile(`^#\p{L}[\p{L}\p{N}]*$`)
	userPattern    = regexp.MustCompile(`^@[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ChannelID is a validated channel name, sigil included (e.g. "#general").
type ChannelID string

// UserID is a validated user identifier, sigil included (e.g. "@bob@example.com").
type UserID string

func (c ChannelID) String() string { return string(c) }

func (u UserID) String() string { return string(u) }

// IsValidChannel reports whether token is '#' followed by a letter and
// zero or more letters or digits. Letters and digits are any Unicode ones.
func IsValidChannel(token string) bool {
	return channelPattern.MatchString(token)
}

// IsValidUser reports whether token is '@' followed by an email address.
func IsValidUser(token string) bool {
	return userPattern.MatchString(token)
}

// ParseChannel validates token and returns it as a ChannelID.
func ParseChannel(token string) (ChannelID, error) {
	if !IsValidChannel(token) {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, token)
	}
	return ChannelID(token), nil
}

// ParseUser validates token and returns it as a UserID.
func ParseUser(token string) (UserID, error) {
	if !IsValidUser(token) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUser, token)
	}
	return UserID(token), nil
}
