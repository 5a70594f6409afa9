package llm

import (
	"context"
	"fmt"
	"strings"
)

// Suggestion is a single coaching proposal produced for a chat turn.
// TimeOffsetsMin holds minute offsets from now to try as candidate
// anchors when the suggestion is auto-scheduled.
type Suggestion struct {
	Title          string  `json:"title"`
	TaskType       string  `json:"task_type"`
	Reason         string  `json:"reason"`
	DurationMin    int     `json:"duration_min"`
	AutoAdd        bool    `json:"auto_add"`
	Confidence     float64 `json:"confidence"`
	TimeOffsetsMin []int   `json:"time_offsets_min"`
}

// CoachReply is the structured answer expected from the model.
type CoachReply struct {
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions"`
}

const (
	// SuggestionConfidenceGate is the minimum model confidence for a
	// suggestion to be auto-added.
	SuggestionConfidenceGate = 0.60

	// MaxSuggestions caps how many proposals a single turn may act on.
	MaxSuggestions = 6

	// MinSuggestionMinutes and MaxSuggestionMinutes bound suggested
	// durations; out-of-range values fall back to the default.
	MinSuggestionMinutes     = 5
	MaxSuggestionMinutes     = 120
	DefaultSuggestionMinutes = 10
)

// DefaultTimeOffsets is used when the model omits candidate offsets.
var DefaultTimeOffsets = []int{0, 30, 90, 180}

const coachSystemPrompt = `You are a supportive planning coach inside a task scheduler.
The user tells you how they feel and what is on their plate. Reply with JSON only:
{"message": "<one short empathetic paragraph>",
 "suggestions": [{"title": "...", "task_type": "break|task|rest",
   "reason": "...", "duration_min": 10, "auto_add": true,
   "confidence": 0.0, "time_offsets_min": [0, 30]}]}
Rules:
- At most 6 suggestions, smallest useful steps first.
- duration_min between 5 and 120.
- auto_add only for low-effort restorative items (breaks, naps, short walks).
- confidence is your own 0..1 estimate that the user wants this on their calendar.
- No text outside the JSON object.`

// GenerateSuggestions asks the model for a coaching reply to the user's
// message given a short summary of their current mood and backlog.
// A nil client yields a deterministic fallback so chat still works
// without a model configured.
func GenerateSuggestions(ctx context.Context, client Client, userText, moodLabel string, backlog []string) (CoachReply, error) {
	if client == nil {
		return fallbackReply(moodLabel), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mood: %s\n", moodLabel)
	if len(backlog) > 0 {
		b.WriteString("Open tasks:\n")
		for _, t := range backlog {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	fmt.Fprintf(&b, "User says: %s\n", userText)

	messages := []Message{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: b.String()},
	}

	var reply CoachReply
	if err := client.ChatJSON(ctx, messages, &reply); err != nil {
		return fallbackReply(moodLabel), fmt.Errorf("coach reply: %w", err)
	}

	reply.Suggestions = SanitizeSuggestions(reply.Suggestions)
	return reply, nil
}

// SanitizeSuggestions drops empty titles, clamps durations and
// confidences, fills missing offsets, and caps the slice.
func SanitizeSuggestions(in []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			continue
		}
		if s.DurationMin < MinSuggestionMinutes || s.DurationMin > MaxSuggestionMinutes {
			s.DurationMin = DefaultSuggestionMinutes
		}
		if s.Confidence < 0 {
			s.Confidence = 0
		}
		if s.Confidence > 1 {
			s.Confidence = 1
		}
		if len(s.TimeOffsetsMin) == 0 {
			s.TimeOffsetsMin = append([]int(nil), DefaultTimeOffsets...)
		}
		out = append(out, s)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func fallbackReply(moodLabel string) CoachReply {
	msg := "Noted. Pick one small thing and start there."
	var suggestions []Suggestion
	switch moodLabel {
	case "tired", "overwhelmed":
		msg = "That sounds heavy. A short reset usually helps more than pushing through."
		suggestions = []Suggestion{{
			Title:          "Take a short break",
			TaskType:       "break",
			Reason:         "a pause often restores focus faster than grinding on",
			DurationMin:    DefaultSuggestionMinutes,
			AutoAdd:        true,
			Confidence:     0.7,
			TimeOffsetsMin: append([]int(nil), DefaultTimeOffsets...),
		}}
	case "anxious", "stuck":
		msg = "Shrink the next step until it stops feeling scary, then just do that step."
	}
	return CoachReply{Message: msg, Suggestions: suggestions}
}
