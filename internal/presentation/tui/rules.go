package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rechat/pkg/domain"
)

// RulesMarkdown renders the command table as a markdown document, one
// section per mode.
func RulesMarkdown(rules []domain.CommandRule) string {
	var sb strings.Builder
	sb.WriteString("# Commands\n")

	for _, mode := range domain.Modes {
		fmt.Fprintf(&sb, "\n## %s mode\n\n", mode)
		sb.WriteString("| Command | Argument | Next mode |\n")
		sb.WriteString("|---|---|---|\n")
		for _, r := range rules {
			if r.Mode != mode {
				continue
			}
			arg := "-"
			if r.Argument != "" {
				arg = "`" + strings.ReplaceAll(r.Argument, "|", `\|`) + "`"
			}
			fmt.Fprintf(&sb, "| `\\%s` | %s | %s |\n", r.Command, arg, r.Next)
		}
		if mode != domain.ModeCommand {
			fmt.Fprintf(&sb, "\nAny other line is posted to the current %s.\n", contentTarget(mode))
		}
	}
	return sb.String()
}

func contentTarget(mode domain.Mode) string {
	if mode == domain.ModeChannel {
		return "channel"
	}
	return "peer"
}
