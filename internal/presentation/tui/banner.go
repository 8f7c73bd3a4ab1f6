package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the shadenet banner and version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	colors := []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}
	lines := []string{
		"      _               _                  _   ",
		"  ___| |__   __ _  __| | ___ _ __   ___| |_ ",
		" / __| '_ \\ / _` |/ _` |/ _ \\ '_ \\ / _ \\ __|",
		" \\__ \\ | | | (_| | (_| |  __/ | | |  __/ |_ ",
		" |___/_| |_|\\__,_|\\__,_|\\___|_| |_|\\___|\\__|",
	}

	fmt.Fprintln(w)
	for i, line := range lines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(colors[i])))
	}
	fmt.Fprintf(w, "  %s\n\n", out.String("v"+strings.TrimSpace(version)).Faint())
}
