package usecase

import (
	"errors"
	"testing"

	"github.com/Integrum-Global/kronos/internal/domain/account"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:           "jane@example.com",
		Phone:           "+62 812 3456 7890",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
	}
}

func TestAccountService_Register(t *testing.T) {
	repo := newStubStateRepo()
	checker := &stubAvailabilityChecker{available: true}
	service := NewAccountService(repo, &sequenceIDGenerator{}, checker, nil)

	out, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if out.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", out.UserID)
	}
	if out.Token != "user-1.secret" {
		t.Fatalf("unexpected token: %s", out.Token)
	}
	if checker.lastEmail != "jane@example.com" {
		t.Fatalf("availability check saw wrong email: %s", checker.lastEmail)
	}

	saved, ok, _ := repo.Get(t.Context(), "user-1")
	if !ok {
		t.Fatal("registered state was not persisted")
	}
	if !saved.IsAuthenticated || saved.Token != out.Token {
		t.Fatalf("persisted state not authenticated: %+v", saved)
	}
	if saved.Profile.Email != "jane@example.com" || saved.Profile.Phone != "+62 812 3456 7890" {
		t.Fatalf("profile fields not seeded: %+v", saved.Profile)
	}
	if !saved.Profile.Preferences.Notifications || saved.Profile.Preferences.Language != "en" {
		t.Fatalf("default preferences lost on register: %+v", saved.Profile.Preferences)
	}
}

func TestAccountService_Register_FieldErrors(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, nil, nil)

	input := validRegisterInput()
	input.Email = "not-an-email"
	input.ConfirmPassword = "different-password"

	_, err := service.Register(t.Context(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if fieldErrs["email"] != "Email is invalid" {
		t.Fatalf("unexpected email error: %q", fieldErrs["email"])
	}
	if fieldErrs["confirmPassword"] != "Passwords do not match" {
		t.Fatalf("unexpected confirm password error: %q", fieldErrs["confirmPassword"])
	}
	if repo.saveCount() != 0 {
		t.Fatal("invalid registration must not persist anything")
	}
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, &stubAvailabilityChecker{available: false}, nil)

	_, err := service.Register(t.Context(), validRegisterInput())

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["email"] != "Email is already registered" {
		t.Fatalf("unexpected email error: %q", fieldErrs["email"])
	}
}

func TestAccountService_Register_CheckerDown(t *testing.T) {
	repo := newStubStateRepo()
	checker := &stubAvailabilityChecker{err: errors.New("connection refused")}
	service := NewAccountService(repo, &sequenceIDGenerator{}, checker, nil)

	_, err := service.Register(t.Context(), validRegisterInput())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if repo.saveCount() != 0 {
		t.Fatal("failed availability check must not persist anything")
	}
}

func TestAccountService_Login_ReissuesToken(t *testing.T) {
	repo := newStubStateRepo()
	ids := &sequenceIDGenerator{}
	service := NewAccountService(repo, ids, nil, nil)

	registered, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ids.secret = "fresh"
	out, err := service.Login(t.Context(), registered.UserID)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out.Token != registered.UserID+".fresh" {
		t.Fatalf("expected fresh token, got %s", out.Token)
	}
	if out.State.Profile.Email != "jane@example.com" {
		t.Fatalf("login must keep the stored profile: %+v", out.State.Profile)
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	service := NewAccountService(newStubStateRepo(), &sequenceIDGenerator{}, nil, nil)

	_, err := service.Login(t.Context(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountService_Logout_ResetsToDefault(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, nil, nil)

	registered, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := service.Logout(t.Context(), registered.UserID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	saved, ok, _ := repo.Get(t.Context(), registered.UserID)
	if !ok {
		t.Fatal("state missing after logout")
	}
	if saved.IsAuthenticated || saved.Token != "" || saved.User != nil {
		t.Fatalf("logout must reset auth fields: %+v", saved)
	}
	if saved.Profile.Email != "" || saved.OnboardingStep != 0 {
		t.Fatalf("logout must restore the default shape: %+v", saved)
	}
}

func TestAccountService_VerifyAccessToken(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, nil, nil)

	registered, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	principal, err := service.VerifyAccessToken(t.Context(), registered.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if principal.UserID != registered.UserID || principal.Email != "jane@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	for _, token := range []string{"", "no-dot", registered.UserID + ".wrong-secret", "ghost.secret"} {
		if _, err := service.VerifyAccessToken(t.Context(), token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}

	if err := service.Logout(t.Context(), registered.UserID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := service.VerifyAccessToken(t.Context(), registered.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("token must be invalid after logout, got %v", err)
	}
}

func TestAccountService_UpdatePreferences_MergesNested(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, nil, nil)

	registered, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	dark := true
	state, err := service.UpdatePreferences(t.Context(), registered.UserID, account.PreferencesPatch{DarkMode: &dark})
	if err != nil {
		t.Fatalf("update preferences failed: %v", err)
	}
	if !state.Profile.Preferences.DarkMode {
		t.Fatal("dark mode not applied")
	}
	if !state.Profile.Preferences.Notifications || state.Profile.Preferences.Language != "en" {
		t.Fatalf("untouched preferences must survive the patch: %+v", state.Profile.Preferences)
	}
}

func TestAccountService_AddInvestmentGoal(t *testing.T) {
	repo := newStubStateRepo()
	service := NewAccountService(repo, &sequenceIDGenerator{}, nil, nil)

	registered, err := service.Register(t.Context(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := service.AddInvestmentGoal(t.Context(), registered.UserID, "retirement"); err != nil {
		t.Fatalf("add goal failed: %v", err)
	}
	state, err := service.AddInvestmentGoal(t.Context(), registered.UserID, "house")
	if err != nil {
		t.Fatalf("add goal failed: %v", err)
	}

	if len(state.Profile.InvestmentGoals) != 2 || state.Profile.InvestmentGoals[1] != "house" {
		t.Fatalf("unexpected goals: %v", state.Profile.InvestmentGoals)
	}

	if _, err := service.AddInvestmentGoal(t.Context(), registered.UserID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank goal must be rejected, got %v", err)
	}
}
