// Package mood infers mood signals from free text and applies the
// reprioritization policy.
package mood

import (
	"strings"

	"github.com/rvalencia/moodplan/internal/task"
)

// Label is a mood category consumed by the reprioritization policy.
type Label string

const (
	Tired       Label = "tired"
	Anxious     Label = "anxious"
	Stuck       Label = "stuck"
	Overwhelmed Label = "overwhelmed"
	Energetic   Label = "energetic"
	Focused     Label = "focused"
	Motivated   Label = "motivated"
	Neutral     Label = "neutral"
)

// Signal is an ephemeral mood reading. It is consumed once per
// reprioritization pass and never persisted.
type Signal struct {
	Label    Label
	RawScore float64 // sentiment polarity in [-1, 1]
}

// Sentiment lexicon. A tiny stand-in for a full intensity analyzer: enough to
// produce a polarity score and an arousal hint for the mood heuristics.
var (
	positiveWords = []string{
		"good", "great", "happy", "excited", "love", "awesome", "energy",
		"energized", "ready", "motivated", "focused", "calm", "productive",
		"fresh",
	}
	negativeWords = []string{
		"bad", "sad", "awful", "hate", "terrible", "stressed", "worried",
		"tired", "exhausted", "anxious", "overwhelmed", "stuck", "blocked",
		"drained", "panic",
	}
)

// Analyze infers a mood signal from free text. Keyword heuristics take
// precedence; polarity only breaks ties. Empty or unrecognizable text yields
// a neutral signal; this function never fails.
func Analyze(text string) Signal {
	t := strings.ToLower(text)

	score := polarity(t)

	var label Label
	switch {
	case containsAny(t, "tired", "sleepy", "exhaust", "drained"):
		label = Tired
	case containsAny(t, "anxious", "panic", "worried", "nervous"):
		label = Anxious
	case containsAny(t, "stuck", "blocked", "confused"):
		label = Stuck
	case containsAny(t, "overwhelm", "too much", "drowning"):
		label = Overwhelmed
	case containsAny(t, "focused", "in the zone", "locked in"):
		label = Focused
	case containsAny(t, "motivated", "pumped", "let's go"):
		label = Motivated
	case score >= 0.25 && containsAny(t, "energy", "energized", "fresh"):
		label = Energetic
	default:
		label = Neutral
	}

	return Signal{Label: label, RawScore: score}
}

func containsAny(t string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// polarity scores text in [-1, 1] by counting lexicon hits.
func polarity(t string) float64 {
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(t, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// Reprioritize maps a mood signal and a baseline priority to the effective
// priority. Pure and idempotent: the same signal always yields the same
// result, and unrecognized moods reset to the baseline.
func Reprioritize(baseline task.Priority, sig Signal) task.Priority {
	switch sig.Label {
	case Tired, Anxious, Overwhelmed:
		return task.PriorityLow
	case Focused, Motivated:
		return task.PriorityHigh
	default:
		return baseline
	}
}

// ApplyToBacklog recolors every task's effective priority from one mood
// signal. One reading sweeps the whole backlog; the effect holds until the
// next reading. Returns the tasks whose effective priority actually changed.
func ApplyToBacklog(tasks []*task.Task, sig Signal) []*task.Task {
	var changed []*task.Task
	for _, t := range tasks {
		next := Reprioritize(t.UserPriority, sig)
		if t.EffectivePriority != next {
			t.EffectivePriority = next
			changed = append(changed, t)
		}
	}
	return changed
}
