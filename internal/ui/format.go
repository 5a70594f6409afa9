package ui

import (
	"fmt"
	"strings"

	"github.com/rvalencia/moodplan/internal/task"
)

// statusSymbol returns the status indicator for a task.
func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusPlanned:
		return "○"
	case task.StatusDone:
		return "✓"
	case task.StatusSkipped:
		return "✗"
	default:
		return "?"
	}
}

// priorityBadge renders a colored priority marker. The effective priority is
// shown; when it differs from the baseline the badge carries a mood marker.
func priorityBadge(t *task.Task) string {
	badge := "[" + strings.ToUpper(string(t.EffectivePriority)[:1]) + "]"
	if t.EffectivePriority != t.UserPriority {
		badge += "~"
	} else {
		badge += " "
	}

	switch t.EffectivePriority {
	case task.PriorityHigh:
		return formatHigh(badge)
	case task.PriorityLow:
		return formatLow(badge)
	default:
		return colorMedium.Sprint(badge)
	}
}

// printTaskRow prints a single task row with consistent formatting.
func printTaskRow(t *task.Task) {
	when := formatMuted("unscheduled")
	if at, ok := t.ScheduledAt(); ok {
		when = at.Format("Mon 02 Jan 15:04")
	}

	fmt.Printf("  %s #%-3d %s %-16s  %s\n",
		statusSymbol(t.Status),
		t.ID,
		priorityBadge(t),
		when,
		t.Title,
	)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// printCoachWrapped prints coach reply text wrapped to the terminal width,
// preserving bullets and numbered items.
func printCoachWrapped(text string, width int) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Println()
			continue
		}

		prefix := "  "
		content := trimmed
		contentWidth := width - 2

		switch {
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			prefix = "    • "
			content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
			contentWidth = width - 6
		case isNumberedItem(trimmed):
			idx := strings.Index(trimmed, ".")
			prefix = "  " + trimmed[:idx+1] + " "
			content = strings.TrimSpace(trimmed[idx+1:])
			contentWidth = width - len(prefix)
		}

		wrapAndPrint(content, prefix, contentWidth)
	}
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	if s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.' {
		return true
	}
	return false
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	line := ""
	continuationPrefix := strings.Repeat(" ", len(prefix))
	isFirstLine := true

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			printCoachLine(prefix, continuationPrefix, line, isFirstLine)
			isFirstLine = false
			line = word
		}
	}

	if line != "" {
		printCoachLine(prefix, continuationPrefix, line, isFirstLine)
	}
}

func printCoachLine(prefix, continuationPrefix, line string, isFirstLine bool) {
	if isFirstLine {
		fmt.Println(formatCoach(prefix + line))
	} else {
		fmt.Println(formatCoach(continuationPrefix + line))
	}
}
