package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/rechat/pkg/domain"
)

// ValidateRules checks a command table: every rule names known modes and a
// lower-case verb, no (mode, verb) pair is declared twice, and every mode can
// be reached from command mode.
func ValidateRules(rules []domain.CommandRule) error {
	var errors []string

	seen := make(map[domain.Mode]map[string]bool)
	edges := make(map[domain.Mode][]domain.Mode)

	for _, r := range rules {
		if !r.Mode.Valid() {
			errors = append(errors, fmt.Sprintf("Unknown mode '%s' for command '%s'", r.Mode, r.Command))
			continue
		}
		if !r.Next.Valid() {
			errors = append(errors, fmt.Sprintf("Unknown target mode '%s' for command '%s'", r.Next, r.Command))
			continue
		}
		if r.Command == "" || strings.IndexFunc(r.Command, isNotLowerLetter) >= 0 {
			errors = append(errors, fmt.Sprintf("Command '%s' in mode '%s' must be a lower-case word", r.Command, r.Mode))
		}
		if seen[r.Mode] == nil {
			seen[r.Mode] = make(map[string]bool)
		}
		if seen[r.Mode][r.Command] {
			errors = append(errors, fmt.Sprintf("Duplicate command '%s' in mode '%s'", r.Command, r.Mode))
		}
		seen[r.Mode][r.Command] = true
		edges[r.Mode] = append(edges[r.Mode], r.Next)
	}

	// Crawl from the initial mode.
	visited := make(map[domain.Mode]bool)
	queue := []domain.Mode{domain.ModeCommand}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	for _, m := range domain.Modes {
		if !visited[m] {
			errors = append(errors, fmt.Sprintf("Mode '%s' is unreachable from '%s'", m, domain.ModeCommand))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

func isNotLowerLetter(r rune) bool {
	return !unicode.IsLower(r)
}
