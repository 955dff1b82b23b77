package risk

import "fmt"

// Evaluate converts a completed answer map (question id -> option value) into
// a Profile. It is pure and order-independent over the map. Every question in
// the bank must be answered; a partial map never produces a profile.
func Evaluate(answers map[string]string) (Profile, error) {
	if len(answers) < QuestionCount {
		return Profile{}, fmt.Errorf("%w: got %d of %d answers", ErrIncompleteAnswers, len(answers), QuestionCount)
	}

	total := 0
	for _, q := range questionBank {
		value, ok := answers[q.ID]
		if !ok {
			return Profile{}, fmt.Errorf("%w: question %q is unanswered", ErrIncompleteAnswers, q.ID)
		}
		opt, err := LookupOption(q.ID, value)
		if err != nil {
			return Profile{}, fmt.Errorf("answer for question %q: %w", q.ID, err)
		}
		total += opt.Score
	}

	for id := range answers {
		if _, err := LookupOption(id, answers[id]); err != nil {
			return Profile{}, fmt.Errorf("answer %q: %w", id, err)
		}
	}

	percentage := float64(total) / float64(QuestionCount*maxOptionScore) * 100
	level, allocation, description := classify(percentage)

	kept := make(map[string]string, len(answers))
	for id, value := range answers {
		kept[id] = value
	}

	return Profile{
		Level:       level,
		Score:       total,
		Percentage:  percentage,
		Allocation:  allocation,
		Description: description,
		Answers:     kept,
	}, nil
}

// classify maps a percentage in [20,100] to a tier. Boundary ties resolve to
// the safer tier via the <= comparisons.
func classify(percentage float64) (Level, Allocation, string) {
	switch {
	case percentage <= 30:
		return LevelConservative,
			Allocation{Stocks: 30, Bonds: 60, Cash: 10},
			"Focus on capital preservation with steady, modest growth"
	case percentage <= 50:
		return LevelModerateConservative,
			Allocation{Stocks: 50, Bonds: 40, Cash: 10},
			"Balanced approach with slight emphasis on stability"
	case percentage <= 70:
		return LevelModerate,
			Allocation{Stocks: 70, Bonds: 25, Cash: 5},
			"Balanced growth and stability for long-term wealth building"
	case percentage <= 85:
		return LevelModerateAggressive,
			Allocation{Stocks: 85, Bonds: 15, Cash: 0},
			"Growth-focused with some stability for wealth accumulation"
	default:
		return LevelAggressive,
			Allocation{Stocks: 95, Bonds: 5, Cash: 0},
			"Maximum growth potential for long-term wealth building"
	}
}
