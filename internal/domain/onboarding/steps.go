package onboarding

import "strings"

// StepID identifies one onboarding step. IDs double as route path segments,
// which is what makes path-hint resume work.
type StepID string

const (
	StepRegister  StepID = "register"
	StepPersonal  StepID = "personal"
	StepRisk      StepID = "risk"
	StepGoals     StepID = "goals"
	StepPortfolio StepID = "portfolio"
	StepFunding   StepID = "funding"
	StepWelcome   StepID = "welcome"
)

type Step struct {
	ID    StepID `json:"id"`
	Title string `json:"title"`
}

var steps = []Step{
	{ID: StepRegister, Title: "Create Account"},
	{ID: StepPersonal, Title: "Personal Info"},
	{ID: StepRisk, Title: "Risk Assessment"},
	{ID: StepGoals, Title: "Investment Goals"},
	{ID: StepPortfolio, Title: "Portfolio Review"},
	{ID: StepFunding, Title: "Fund Account"},
	{ID: StepWelcome, Title: "Welcome"},
}

// StepCount is the length of the fixed step list.
const StepCount = 7

// Steps returns the ordered step list as a copy.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// StepAt returns the step at index. Callers are expected to hold an index
// already validated against StepCount.
func StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(steps) {
		return Step{}, false
	}
	return steps[index], true
}

// ResolveStep maps an external route hint to a step index: the first step
// whose id appears as a substring of the hint wins. No match resolves to 0,
// the default-redirect target, never an error.
func ResolveStep(pathHint string) int {
	hint := strings.ToLower(strings.TrimSpace(pathHint))
	if hint == "" {
		return 0
	}
	for i, step := range steps {
		if strings.Contains(hint, string(step.ID)) {
			return i
		}
	}
	return 0
}

// ProgressPercent is the exact completion ratio for a zero-based index.
// Callers round for display only.
func ProgressPercent(index int) float64 {
	return float64(index+1) / float64(StepCount) * 100
}
