package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`                 _           _   `,
	`  _ __ ___   ___| |__   __ _| |_ `,
	` | '__/ _ \ / __| '_ \ / _' | __|`,
	` | | |  __/| (__| | | | (_| | |_ `,
	` |_|  \___| \___|_| |_|\__,_|\__|`,
}

// Indigo to rose, one stop per line.
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
