package account

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestDefaultState_Shape(t *testing.T) {
	t.Parallel()

	state := DefaultState()
	if state.IsAuthenticated {
		t.Fatalf("default state must not be authenticated")
	}
	if state.User != nil || state.Token != "" {
		t.Fatalf("default state carries identity: %+v", state)
	}
	if state.OnboardingStep != 0 {
		t.Fatalf("default onboarding step: %d", state.OnboardingStep)
	}
	if state.OnboardingData == nil || len(state.OnboardingData) != 0 {
		t.Fatalf("default onboarding data: %v", state.OnboardingData)
	}
	if !state.Profile.Preferences.Notifications {
		t.Fatalf("notifications must default to true")
	}
	if state.Profile.Preferences.DarkMode {
		t.Fatalf("dark mode must default to false")
	}
	if state.Profile.Preferences.Language != "en" {
		t.Fatalf("default language: %q", state.Profile.Preferences.Language)
	}
	if state.Profile.InvestmentGoals == nil || len(state.Profile.InvestmentGoals) != 0 {
		t.Fatalf("default goals: %v", state.Profile.InvestmentGoals)
	}
}

func TestDefaultState_SerializesIdentically(t *testing.T) {
	t.Parallel()

	first, err := sonic.Marshal(DefaultState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := sonic.Marshal(DefaultState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("default state is not byte-stable:\n%s\n%s", first, second)
	}
}

func TestProfilePatch_ShallowMerge(t *testing.T) {
	t.Parallel()

	profile := DefaultState().Profile
	profile.FirstName = "Ada"
	profile.Email = "ada@example.com"

	last := "Lovelace"
	merged := ProfilePatch{LastName: &last}.Apply(profile)

	if merged.LastName != "Lovelace" {
		t.Fatalf("patched field not applied: %+v", merged)
	}
	if merged.FirstName != "Ada" || merged.Email != "ada@example.com" {
		t.Fatalf("unrelated fields touched: %+v", merged)
	}
	if profile.LastName != "" {
		t.Fatalf("Apply mutated its input")
	}
}

func TestPreferencesPatch_NestedMerge(t *testing.T) {
	t.Parallel()

	prefs := DefaultState().Profile.Preferences

	dark := true
	merged := PreferencesPatch{DarkMode: &dark}.Apply(prefs)

	if !merged.DarkMode {
		t.Fatalf("dark mode not applied")
	}
	if !merged.Notifications || merged.Language != "en" {
		t.Fatalf("unrelated preference fields touched: %+v", merged)
	}
}
