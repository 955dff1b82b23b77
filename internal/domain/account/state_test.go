package account

import (
	"testing"

	"github.com/Integrum-Global/kronos/internal/domain/risk"
)

func TestWithLogin(t *testing.T) {
	t.Parallel()

	state := DefaultState()
	next := state.WithLogin(User{ID: "u1", Email: "a@b.co"}, "tok")

	if !next.IsAuthenticated || next.User == nil || next.User.ID != "u1" || next.Token != "tok" {
		t.Fatalf("login transition incomplete: %+v", next)
	}
	if state.IsAuthenticated || state.User != nil {
		t.Fatalf("receiver mutated by WithLogin")
	}
}

func TestWithLogout_RestoresDefaultShape(t *testing.T) {
	t.Parallel()

	state := DefaultState().
		WithLogin(User{ID: "u1"}, "tok").
		WithOnboardingStep(4).
		WithOnboardingData(map[string]any{"register": map[string]any{"email": "a@b.co"}}).
		WithInvestmentGoal("retirement")

	reset := state.WithLogout()

	def := DefaultState()
	if reset.IsAuthenticated != def.IsAuthenticated ||
		reset.User != nil ||
		reset.Token != "" ||
		reset.OnboardingStep != 0 ||
		len(reset.OnboardingData) != 0 ||
		len(reset.Profile.InvestmentGoals) != 0 ||
		reset.Profile.Preferences != def.Profile.Preferences {
		t.Fatalf("logout did not restore default shape: %+v", reset)
	}
}

func TestWithOnboardingData_MergesWithoutAliasing(t *testing.T) {
	t.Parallel()

	state := DefaultState().WithOnboardingData(map[string]any{"register": "a"})
	next := state.WithOnboardingData(map[string]any{"personal": "b"})

	if next.OnboardingData["register"] != "a" || next.OnboardingData["personal"] != "b" {
		t.Fatalf("merge lost entries: %v", next.OnboardingData)
	}
	if _, ok := state.OnboardingData["personal"]; ok {
		t.Fatalf("previous snapshot mutated by merge")
	}
}

func TestWithRiskProfile_OverwritesWholesale(t *testing.T) {
	t.Parallel()

	first := risk.Profile{Level: risk.LevelModerate, Score: 18, Answers: map[string]string{"age": "36-45"}}
	second := risk.Profile{Level: risk.LevelAggressive, Score: 30}

	state := DefaultState().WithRiskProfile(first)
	next := state.WithRiskProfile(second)

	if next.Profile.RiskProfile.Level != risk.LevelAggressive {
		t.Fatalf("risk profile not overwritten: %+v", next.Profile.RiskProfile)
	}
	if len(next.Profile.RiskProfile.Answers) != 0 {
		t.Fatalf("old answers merged into replacement profile")
	}
	if state.Profile.RiskProfile.Level != risk.LevelModerate {
		t.Fatalf("previous snapshot mutated")
	}
}

func TestClone_IsolatesNestedAnswers(t *testing.T) {
	t.Parallel()

	profile := risk.Profile{Answers: map[string]string{"age": "18-25"}}
	state := DefaultState().WithRiskProfile(profile)

	next := state.WithOnboardingStep(1)
	next.Profile.RiskProfile.Answers["age"] = "55+"

	if state.Profile.RiskProfile.Answers["age"] != "18-25" {
		t.Fatalf("nested answers aliased between snapshots")
	}
}

func TestWithInvestmentGoal_AppendsCopy(t *testing.T) {
	t.Parallel()

	state := DefaultState().WithInvestmentGoal("house")
	next := state.WithInvestmentGoal("retirement")

	if len(state.Profile.InvestmentGoals) != 1 || len(next.Profile.InvestmentGoals) != 2 {
		t.Fatalf("goal lists: %v / %v", state.Profile.InvestmentGoals, next.Profile.InvestmentGoals)
	}
}
