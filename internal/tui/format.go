package tui

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const truncateIndicator = "..."

// fitLine sanitizes s and cuts it to at most width terminal cells.
func fitLine(s string, width int) string {
	s = safeString(s)
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, truncateIndicator)
}

// safeString sanitizes a string for display by removing control characters
// and limiting newlines.
func safeString(s string) string {
	// Remove ANSI escape sequences
	s = stripANSI(s)

	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}

	return strings.TrimSpace(result)
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// statusSymbol returns a one-cell marker for a status label.
func statusSymbol(status string) string {
	switch status {
	case "Running":
		return "~"
	case "Done", "Passed":
		return "+"
	case "Failed":
		return "!"
	default:
		return "-"
	}
}
