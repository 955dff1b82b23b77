package onboarding

import (
	"math"
	"testing"
)

func TestResolveStep(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hint string
		want int
	}{
		{"/onboarding/register", 0},
		{"/onboarding/personal", 1},
		{"/onboarding/risk", 2},
		{"/onboarding/goals", 3},
		{"/onboarding/portfolio", 4},
		{"/onboarding/funding", 5},
		{"/onboarding/welcome", 6},
		{"/onboarding", 0},
		{"/onboarding/", 0},
		{"", 0},
		{"/somewhere/else", 0},
		{"/ONBOARDING/RISK", 2},
	}

	for _, tc := range cases {
		if got := ResolveStep(tc.hint); got != tc.want {
			t.Fatalf("ResolveStep(%q): got=%d want=%d", tc.hint, got, tc.want)
		}
	}
}

func TestResolveStep_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// Both "register" and "welcome" appear; list order decides.
	if got := ResolveStep("/onboarding/welcome/register"); got != 0 {
		t.Fatalf("expected first step in list order, got index %d", got)
	}
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	if got := ProgressPercent(0); math.Abs(got-100.0/7) > 1e-9 {
		t.Fatalf("unexpected progress at index 0: %v", got)
	}
	if got := ProgressPercent(6); got != 100 {
		t.Fatalf("unexpected progress at last index: %v", got)
	}
}

func TestStepAt(t *testing.T) {
	t.Parallel()

	step, ok := StepAt(2)
	if !ok || step.ID != StepRisk {
		t.Fatalf("unexpected step at index 2: %+v ok=%t", step, ok)
	}
	if _, ok := StepAt(-1); ok {
		t.Fatalf("expected no step at index -1")
	}
	if _, ok := StepAt(StepCount); ok {
		t.Fatalf("expected no step at index %d", StepCount)
	}
}

func TestSteps_FixedListOfSeven(t *testing.T) {
	t.Parallel()

	list := Steps()
	if len(list) != StepCount {
		t.Fatalf("unexpected step count: %d", len(list))
	}

	list[0].Title = "mutated"
	if Steps()[0].Title == "mutated" {
		t.Fatalf("step list is mutable through Steps()")
	}
}
