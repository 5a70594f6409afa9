package nlp

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"add a task to buy milk", IntentAddTask},
		{"create todo for taxes", IntentAddTask},
		{"I need to call the dentist", IntentSchedule},
		{"remind me to stretch", IntentSchedule},
		{"schedule a meeting tomorrow", IntentSchedule},
		{"how are you doing", IntentChat},
		{"", IntentChat},
		{"   ", IntentChat},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.text); got != tt.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I need to call the bank", "call the bank"},
		{"please add   buy groceries.", "buy groceries"},
		{"remind me to   stretch ", "stretch"},
		{"  finish the   report, ", "finish the report"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTasks(t *testing.T) {
	t.Run("compound sentence", func(t *testing.T) {
		got := SplitTasks("call the dentist and then email the landlord. also review the PR")
		want := []string{"call the dentist", "email the landlord", "review the PR"}
		if len(got) != len(want) {
			t.Fatalf("got %d chunks %v, want %d", len(got), got, len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("drops verbless chunks", func(t *testing.T) {
		got := SplitTasks("call mom; the weather is nice")
		if len(got) != 1 || got[0] != "call mom" {
			t.Errorf("got %v, want [call mom]", got)
		}
	})

	t.Run("falls back to whole line", func(t *testing.T) {
		got := SplitTasks("groceries for the week")
		if len(got) != 1 || got[0] != "groceries for the week" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := SplitTasks("   "); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestConfidence(t *testing.T) {
	if c := Confidence("call the dentist at 3pm"); c < AutoAddThreshold {
		t.Errorf("specific actionable title scored %v, want >= %v", c, AutoAddThreshold)
	}
	if c := Confidence("task"); c != 0 {
		t.Errorf("generic title scored %v, want 0", c)
	}
	if c := Confidence(""); c != 0 {
		t.Errorf("empty title scored %v, want 0", c)
	}
	if c := Confidence("i am sad"); c >= AutoAddThreshold {
		t.Errorf("emotional-only statement scored %v, want below threshold", c)
	}
	if c := Confidence("finish the quarterly report"); c < AutoAddThreshold {
		t.Errorf("actionable title scored %v, want >= %v", c, AutoAddThreshold)
	}
	if c := Confidence("xyz"); c >= AutoAddThreshold {
		t.Errorf("very short vague title scored %v", c)
	}
}
