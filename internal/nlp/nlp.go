// Package nlp extracts task candidates from free text: intent detection,
// compound-sentence splitting, title cleaning and confidence scoring.
package nlp

import (
	"regexp"
	"strings"
)

// Intent classifies what a chat message is asking for.
type Intent string

const (
	IntentAddTask  Intent = "add_task"
	IntentSchedule Intent = "schedule"
	IntentChat     Intent = "chat"
)

// AutoAddThreshold is the minimum confidence for creating a task without
// asking. Chunks below it are suppressed, not errored.
const AutoAddThreshold = 0.55

var (
	intentAdd   = regexp.MustCompile(`(?i)\b(add|create)\b.*\b(task|todo)\b`)
	intentSched = regexp.MustCompile(`(?i)\b(i have to|i need to|remind me|call|meet|meeting|appointment|schedule)\b`)

	leadingFluff = regexp.MustCompile(`(?i)^(please\s+)?(i have to|i need to|i should|remind me to|add|create)\s+`)
	whitespace   = regexp.MustCompile(`\s+`)
	splitter     = regexp.MustCompile(`(?i)\b(?:and then|then|and also|also|but)\b|[;.\n]`)

	timeCue       = regexp.MustCompile(`(?i)( at |\d\s*(am|pm)|today|tomorrow|\bin \d|before |after )`)
	emotionalOnly = regexp.MustCompile(`(?i)^(i\s*('?m|am)\s*)?(sad|down|tired|anxious|stressed|overwhelmed)\b`)
)

// actionVerbs mark a chunk as actionable; chunks without one are dropped
// during splitting.
var actionVerbs = []string{
	"call", "meet", "email", "message", "prepare", "prep", "review", "send",
	"finish", "complete", "submit", "write", "plan", "check", "fix", "update",
	"join", "follow", "book", "pay", "refactor", "test", "deploy", "debug",
	"nap", "rest",
}

// badTitles are generic titles that never become tasks.
var badTitles = map[string]bool{
	"task": true, "todo": true, "something": true,
	"do task": true, "work": true, "meeting": true,
}

// DetectIntent classifies a chat message.
func DetectIntent(text string) Intent {
	t := strings.TrimSpace(text)
	if t == "" {
		return IntentChat
	}
	if intentAdd.MatchString(t) {
		return IntentAddTask
	}
	if intentSched.MatchString(t) {
		return IntentSchedule
	}
	return IntentChat
}

// CleanTitle strips leading intent fluff, collapses whitespace and caps the
// title at 160 characters.
func CleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFluff.ReplaceAllString(s, "")
	s = strings.Trim(s, " .,-")
	s = whitespace.ReplaceAllString(s, " ")
	if len(s) > 160 {
		s = s[:160]
	}
	return s
}

// SplitTasks breaks a compound sentence into up to five actionable task
// titles. Chunks that are too short, generic, or verbless are dropped; when
// nothing survives, the cleaned whole line is the single fallback.
func SplitTasks(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var tasks []string
	for _, part := range splitter.Split(text, -1) {
		p := CleanTitle(part)
		if len(p) < 4 {
			continue
		}
		pl := strings.ToLower(p)
		if badTitles[pl] {
			continue
		}
		if !hasActionVerb(pl) {
			continue
		}
		tasks = append(tasks, p)
		if len(tasks) == 5 {
			break
		}
	}

	if len(tasks) == 0 {
		return []string{CleanTitle(text)}
	}
	return tasks
}

func hasActionVerb(lower string) bool {
	for _, v := range actionVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// Confidence scores how likely a title is a real task, in [0, 0.95].
// Action verbs and time cues raise the score; vagueness, extreme lengths and
// emotional-only statements lower it. Used to suppress auto-add when unsure.
func Confidence(title string) float64 {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" || badTitles[t] {
		return 0
	}

	score := 0.35

	if hasActionVerb(t) {
		score += 0.35
	}
	if timeCue.MatchString(t) {
		score += 0.15
	}
	if len(t) < 8 {
		score -= 0.20
	}
	if len(t) > 120 {
		score -= 0.10
	}
	if emotionalOnly.MatchString(t) {
		score -= 0.35
	}

	if score < 0 {
		return 0
	}
	if score > 0.95 {
		return 0.95
	}
	return score
}
