package risk

// The survey bank is fixed: six questions, order stable so a persisted
// cursor stays meaningful across deploys.
var questionBank = []Question{
	{
		ID:          "age",
		Prompt:      "What's your age range?",
		Description: "Age helps determine your investment timeline",
		Options: []Option{
			{Value: "18-25", Label: "18-25 years", Score: 5},
			{Value: "26-35", Label: "26-35 years", Score: 4},
			{Value: "36-45", Label: "36-45 years", Score: 3},
			{Value: "46-55", Label: "46-55 years", Score: 2},
			{Value: "55+", Label: "55+ years", Score: 1},
		},
	},
	{
		ID:          "timeline",
		Prompt:      "When do you plan to use this money?",
		Description: "Your investment timeline affects risk capacity",
		Options: []Option{
			{Value: "1-2", Label: "1-2 years", Score: 1},
			{Value: "3-5", Label: "3-5 years", Score: 2},
			{Value: "6-10", Label: "6-10 years", Score: 3},
			{Value: "11-20", Label: "11-20 years", Score: 4},
			{Value: "20+", Label: "20+ years", Score: 5},
		},
	},
	{
		ID:          "experience",
		Prompt:      "How would you describe your investment experience?",
		Description: "Experience helps us tailor explanations and strategies",
		Options: []Option{
			{Value: "none", Label: "No experience", Score: 1},
			{Value: "limited", Label: "Limited experience", Score: 2},
			{Value: "moderate", Label: "Moderate experience", Score: 3},
			{Value: "experienced", Label: "Experienced", Score: 4},
			{Value: "expert", Label: "Very experienced", Score: 5},
		},
	},
	{
		ID:          "volatility",
		Prompt:      "How would you react if your portfolio dropped 20% in a month?",
		Description: "This helps us understand your emotional risk tolerance",
		Options: []Option{
			{Value: "panic", Label: "Panic and sell everything", Score: 1, Icon: "alert-triangle"},
			{Value: "worried", Label: "Feel very worried", Score: 2, Icon: "trending-down"},
			{Value: "concerned", Label: "Be concerned but hold", Score: 3, Icon: "alert-triangle"},
			{Value: "calm", Label: "Stay calm and wait", Score: 4, Icon: "check-circle"},
			{Value: "buy-more", Label: "Buy more at lower prices", Score: 5, Icon: "trending-up"},
		},
	},
	{
		ID:          "income",
		Prompt:      "How stable is your income?",
		Description: "Income stability affects your ability to weather market downturns",
		Options: []Option{
			{Value: "unstable", Label: "Very unstable", Score: 1},
			{Value: "somewhat-stable", Label: "Somewhat stable", Score: 2},
			{Value: "stable", Label: "Stable", Score: 3},
			{Value: "very-stable", Label: "Very stable", Score: 4},
			{Value: "multiple-sources", Label: "Multiple stable sources", Score: 5},
		},
	},
	{
		ID:          "emergency-fund",
		Prompt:      "Do you have an emergency fund covering 3-6 months of expenses?",
		Description: "Emergency funds provide security for riskier investments",
		Options: []Option{
			{Value: "none", Label: "No emergency fund", Score: 1},
			{Value: "partial", Label: "1-2 months covered", Score: 2},
			{Value: "adequate", Label: "3-6 months covered", Score: 4},
			{Value: "extensive", Label: "6+ months covered", Score: 5},
		},
	},
}

// QuestionCount is the size of the fixed survey bank.
const QuestionCount = 6

const maxOptionScore = 5

// Questions returns the survey bank in stable order. The slice and its
// options are copies so callers cannot mutate the bank.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	for i, q := range questionBank {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// QuestionAt returns the question at the given cursor position.
func QuestionAt(index int) (Question, bool) {
	if index < 0 || index >= len(questionBank) {
		return Question{}, false
	}
	q := questionBank[index]
	q.Options = append([]Option(nil), q.Options...)
	return q, true
}

// LookupOption resolves an option value token for a question.
func LookupOption(questionID, value string) (Option, error) {
	for _, q := range questionBank {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt, nil
			}
		}
		return Option{}, ErrUnknownOption
	}
	return Option{}, ErrUnknownQuestion
}
