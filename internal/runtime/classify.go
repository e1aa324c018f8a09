package runtime

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommandEscape marks a command line.
const CommandEscape = `\`

// inputLine is one classified line of input.
type inputLine struct {
	raw     string
	command bool

	// Set for command lines only.
	verb   string
	arg    string
	hasArg bool
}

// classify splits a command line into its lower-cased verb and the remainder
// after the first whitespace character. The argument is kept verbatim, so
// "\join  #a" carries the argument " #a".
func classify(raw string) inputLine {
	if !strings.HasPrefix(raw, CommandEscape) {
		return inputLine{raw: raw}
	}

	body := raw[len(CommandEscape):]
	in := inputLine{raw: raw, command: true}

	sep := strings.IndexFunc(body, unicode.IsSpace)
	if sep < 0 {
		in.verb = strings.ToLower(body)
		return in
	}

	_, size := utf8.DecodeRuneInString(body[sep:])
	in.verb = strings.ToLower(body[:sep])
	in.arg = body[sep+size:]
	in.hasArg = true
	return in
}
