package tokens

import (
	"strings"
	"testing"

	"ai-promptcraft-be/internal/pkg/logger"
)

func TestEstimate(t *testing.T) {
	e := NewEstimator(logger.NewRecordingLogger())

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single char rounds up", text: "a", want: 1},
		{name: "exact multiple", text: "abcdefgh", want: 2},
		{name: "remainder rounds up", text: "abcdefghi", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	e := NewEstimator(logger.NewRecordingLogger())

	// 100-token context leaves 80 tokens = 320 chars for the input side.
	const maxContext = 100

	within := strings.Repeat("x", 320)
	if !e.Validate(within, "", "", maxContext) {
		t.Error("expected text at exactly 80 percent of the budget to pass")
	}

	over := strings.Repeat("x", 321)
	if e.Validate(over, "", "", maxContext) {
		t.Error("expected text over 80 percent of the budget to fail")
	}
}

func TestValidateSumsComponents(t *testing.T) {
	e := NewEstimator(logger.NewRecordingLogger())

	system := strings.Repeat("s", 200) // 50 tokens
	user := strings.Repeat("u", 200)   // 50 tokens
	web := strings.Repeat("w", 200)    // 50 tokens

	// 150 tokens total against an 80-token allowance.
	if e.Validate(system, user, web, 100) {
		t.Error("expected combined components to exceed the budget")
	}
	// Each alone fits.
	if !e.Validate(system, "", "", 100) {
		t.Error("expected single component to fit the budget")
	}
}

func TestValidateLogsVerdict(t *testing.T) {
	rec := logger.NewRecordingLogger()
	e := NewEstimator(rec)

	e.Validate("abcd", "efgh", "", 100)

	events := rec.ByModule("token_budget")
	if len(events) != 1 {
		t.Fatalf("expected 1 log event, got %d", len(events))
	}
	if passed, ok := events[0].Details["passed"].(bool); !ok || !passed {
		t.Errorf("expected passed=true in log details, got %v", events[0].Details["passed"])
	}
}
