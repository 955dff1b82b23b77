package account

import "github.com/Integrum-Global/kronos/internal/domain/risk"

// Named state transitions. Each returns a new snapshot and leaves the
// receiver untouched, including its maps and slices, so callers can treat
// every State value as immutable.

func (s State) WithLogin(user User, token string) State {
	out := s.clone()
	out.IsAuthenticated = true
	out.User = &user
	out.Token = token
	return out
}

// WithLogout resets to the default shape wholesale, not a partial clear.
func (s State) WithLogout() State {
	return DefaultState()
}

func (s State) WithProfilePatch(patch ProfilePatch) State {
	out := s.clone()
	out.Profile = patch.Apply(out.Profile)
	return out
}

func (s State) WithPreferencesPatch(patch PreferencesPatch) State {
	out := s.clone()
	out.Profile.Preferences = patch.Apply(out.Profile.Preferences)
	return out
}

func (s State) WithInvestmentGoal(goal string) State {
	out := s.clone()
	out.Profile.InvestmentGoals = append(out.Profile.InvestmentGoals, goal)
	return out
}

// WithRiskProfile overwrites the profile's risk profile wholesale; the
// previous one is never merged into.
func (s State) WithRiskProfile(profile risk.Profile) State {
	out := s.clone()
	out.Profile.RiskProfile = &profile
	return out
}

func (s State) WithOnboardingStep(index int) State {
	out := s.clone()
	out.OnboardingStep = index
	return out
}

// WithOnboardingData shallow-merges the given entries into the data bag.
func (s State) WithOnboardingData(data map[string]any) State {
	out := s.clone()
	for key, value := range data {
		out.OnboardingData[key] = value
	}
	return out
}

func (s State) clone() State {
	out := s

	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.Profile.RiskProfile != nil {
		rp := *s.Profile.RiskProfile
		if rp.Answers != nil {
			answers := make(map[string]string, len(rp.Answers))
			for k, v := range rp.Answers {
				answers[k] = v
			}
			rp.Answers = answers
		}
		out.Profile.RiskProfile = &rp
	}

	out.Profile.InvestmentGoals = append([]string(nil), s.Profile.InvestmentGoals...)
	if out.Profile.InvestmentGoals == nil {
		out.Profile.InvestmentGoals = []string{}
	}

	out.OnboardingData = make(map[string]any, len(s.OnboardingData))
	for key, value := range s.OnboardingData {
		out.OnboardingData[key] = value
	}

	return out
}
