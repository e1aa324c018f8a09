package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rechat/internal/runtime"
	"github.com/aretw0/rechat/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedModes []domain.Mode
	CurrentMode  domain.Mode
}

// contentLabel marks the edge taken by a plain (non-command) line.
const contentLabel = "message"

// GenerateMermaid produces a Mermaid flowchart of the mode machine from the
// command table. The initial command mode is drawn as a circle. Modes that
// accept plain lines get a self loop labelled "message". Overlay styles
// (Visited/Current) are applied if provided.
func GenerateMermaid(rules []domain.CommandRule, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, mode := range domain.Modes {
		opener, closer := "[", "]"
		if mode == domain.ModeCommand {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", mode, opener, mode, closer)
	}

	for _, rule := range rules {
		label := runtime.CommandEscape + rule.Command
		if rule.Argument != "" {
			label += " " + rule.Argument
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", rule.Mode, escapeLabel(label), rule.Next)
	}

	for _, mode := range domain.Modes {
		if mode != domain.ModeCommand {
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", mode, contentLabel, mode)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Mode]bool)
		for _, mode := range overlay.VisitedModes {
			if mode.Valid() && !seen[mode] {
				seen[mode] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", mode)
			}
		}

		if overlay.CurrentMode.Valid() {
			fmt.Fprintf(&sb, "    class %s current;\n", overlay.CurrentMode)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
