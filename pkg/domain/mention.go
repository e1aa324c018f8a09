package domain

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// MentionSet is the set of users referenced in a message body.
type MentionSet map[UserID]struct{}

// NewMentionSet builds a set from the given users, dropping duplicates.
func NewMentionSet(users ...UserID) MentionSet {
	set := make(MentionSet, len(users))
	for _, u := range users {
		set[u] = struct{}{}
	}
	return set
}

// ExtractMentions returns every well-formed user identifier found among the
// whitespace-separated words of text.
func ExtractMentions(text string) MentionSet {
	words := lo.Filter(strings.Fields(text), func(word string, _ int) bool {
		return strings.HasPrefix(word, string(UserSigil)) && IsValidUser(word)
	})
	return NewMentionSet(lo.Map(words, func(word string, _ int) UserID {
		return UserID(word)
	})...)
}

// Contains reports whether u is in the set.
func (s MentionSet) Contains(u UserID) bool {
	_, ok := s[u]
	return ok
}

// Len returns the number of distinct users.
func (s MentionSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s MentionSet) Sorted() []UserID {
	users := lo.Keys(s)
	slices.Sort(users)
	return users
}

// Strings returns the sorted members as plain strings.
func (s MentionSet) Strings() []string {
	return lo.Map(s.Sorted(), func(u UserID, _ int) string {
		return string(u)
	})
}

// MarshalJSON encodes the set as a sorted array.
func (s MentionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes an array of identifiers, keeping only valid ones.
func (s *MentionSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	valid := lo.Filter(raw, func(word string, _ int) bool {
		return IsValidUser(word)
	})
	*s = NewMentionSet(lo.Map(valid, func(word string, _ int) UserID {
		return UserID(word)
	})...)
	return nil
}
