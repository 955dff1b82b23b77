package risk

import "errors"

var (
	ErrIncompleteAnswers = errors.New("risk assessment answers are incomplete")
	ErrUnknownQuestion   = errors.New("unknown risk question")
	ErrUnknownOption     = errors.New("unknown risk option")
)

// Level is one of the five ordered risk-tolerance tiers.
type Level string

const (
	LevelConservative         Level = "Conservative"
	LevelModerateConservative Level = "Moderate Conservative"
	LevelModerate             Level = "Moderate"
	LevelModerateAggressive   Level = "Moderate Aggressive"
	LevelAggressive           Level = "Aggressive"
)

// Option is a single answer choice. Icon is a symbolic tag the display
// layer resolves to a renderable; scoring never reads it.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
	Icon  string `json:"icon,omitempty"`
}

type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`
}

// Allocation is the target portfolio split for a tier. Percentages sum to 100.
type Allocation struct {
	Stocks int `json:"stocks"`
	Bonds  int `json:"bonds"`
	Cash   int `json:"cash"`
}

// Profile is the outcome of a completed assessment. It is computed once,
// atomically, and replaced wholesale on recomputation.
type Profile struct {
	Level       Level             `json:"level"`
	Score       int               `json:"score"`
	Percentage  float64           `json:"percentage"`
	Allocation  Allocation        `json:"allocation"`
	Description string            `json:"description"`
	Answers     map[string]string `json:"answers"`
}
