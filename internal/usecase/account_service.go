package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	"github.com/Integrum-Global/kronos/internal/domain/risk"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
)

// IDGenerator mints opaque user ids and token secrets.
type IDGenerator interface {
	NewID() (string, error)
	NewSecret() (string, error)
}

// AvailabilityChecker asks an external registration endpoint whether an email
// can still be claimed. A nil checker treats every email as available.
type AvailabilityChecker interface {
	CheckEmailAvailable(ctx context.Context, email string) (bool, error)
}

// AccountService is the single mutation path for persisted user state. Every
// operation loads the current snapshot, applies one named transition, and
// writes the result back durably before returning it.
type AccountService struct {
	stateRepo account.StateRepository
	ids       IDGenerator
	checker   AvailabilityChecker
	logger    *logging.Logger
}

func NewAccountService(
	stateRepo account.StateRepository,
	ids IDGenerator,
	checker AvailabilityChecker,
	logger *logging.Logger,
) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AccountService{
		stateRepo: stateRepo,
		ids:       ids,
		checker:   checker,
		logger:    logger,
	}
}

type RegisterInput struct {
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

type RegisterOutput struct {
	UserID string
	Token  string
	State  account.State
}

// Register validates the submitted fields, checks availability, and creates
// an authenticated state from the default shape. Field failures come back as
// FieldErrors with nothing persisted.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (RegisterOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Register")
	defer span.End()

	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if fieldErrs := ValidateRegistration(input); len(fieldErrs) > 0 {
		return RegisterOutput{}, fieldErrs
	}

	if s.checker != nil {
		available, err := s.checker.CheckEmailAvailable(ctx, input.Email)
		if err != nil {
			return RegisterOutput{}, fmt.Errorf("%w: registration availability check: %v", ErrDependencyUnavailable, err)
		}
		if !available {
			return RegisterOutput{}, FieldErrors{"email": "Email is already registered"}
		}
	}

	userID, err := s.ids.NewID()
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("generate user id: %w", err)
	}
	token, err := s.issueToken(userID)
	if err != nil {
		return RegisterOutput{}, err
	}

	user := account.User{ID: userID, Email: input.Email, Phone: input.Phone}
	state := account.DefaultState().
		WithLogin(user, token).
		WithProfilePatch(account.ProfilePatch{Email: &input.Email, Phone: &input.Phone})

	if err := s.stateRepo.Save(ctx, userID, state); err != nil {
		return RegisterOutput{}, fmt.Errorf("save registered state: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered", "user_id", userID)

	return RegisterOutput{UserID: userID, Token: token, State: state}, nil
}

// Login re-authenticates an existing user, issuing a fresh token.
func (s *AccountService) Login(ctx context.Context, userID string) (RegisterOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Login")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return RegisterOutput{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	state, exists, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("get state: %w", err)
	}
	if !exists || state.User == nil {
		return RegisterOutput{}, fmt.Errorf("%w: unknown user", ErrNotFound)
	}

	token, err := s.issueToken(userID)
	if err != nil {
		return RegisterOutput{}, err
	}

	next := state.WithLogin(*state.User, token)
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return RegisterOutput{}, fmt.Errorf("save state: %w", err)
	}

	return RegisterOutput{UserID: userID, Token: token, State: next}, nil
}

// Logout resets the user's state to the default shape and persists it.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Logout")
	defer span.End()

	state, err := s.requireState(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.stateRepo.Save(ctx, userID, state.WithLogout()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	s.logger.InfoContext(ctx, "account logged out", "user_id", userID)
	return nil
}

func (s *AccountService) GetState(ctx context.Context, userID string) (account.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetState")
	defer span.End()

	return s.requireState(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, patch account.ProfilePatch) (account.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdateProfile")
	defer span.End()

	return s.transition(ctx, userID, func(state account.State) account.State {
		return state.WithProfilePatch(patch)
	})
}

func (s *AccountService) UpdatePreferences(ctx context.Context, userID string, patch account.PreferencesPatch) (account.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdatePreferences")
	defer span.End()

	return s.transition(ctx, userID, func(state account.State) account.State {
		return state.WithPreferencesPatch(patch)
	})
}

func (s *AccountService) AddInvestmentGoal(ctx context.Context, userID, goal string) (account.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.AddInvestmentGoal")
	defer span.End()

	goal = strings.TrimSpace(goal)
	if goal == "" {
		return account.State{}, fmt.Errorf("%w: goal is required", ErrInvalidInput)
	}

	return s.transition(ctx, userID, func(state account.State) account.State {
		return state.WithInvestmentGoal(goal)
	})
}

func (s *AccountService) SetRiskProfile(ctx context.Context, userID string, profile risk.Profile) (account.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SetRiskProfile")
	defer span.End()

	return s.transition(ctx, userID, func(state account.State) account.State {
		return state.WithRiskProfile(profile)
	})
}

// VerifyAccessToken resolves a bearer token to its principal. Tokens are
// "<userID>.<secret>"; the stored snapshot is the source of truth, so logout
// invalidates all previously issued tokens at once.
func (s *AccountService) VerifyAccessToken(ctx context.Context, token string) (account.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.VerifyAccessToken")
	defer span.End()

	token = strings.TrimSpace(token)
	userID, _, found := strings.Cut(token, ".")
	if !found || userID == "" {
		return account.Principal{}, fmt.Errorf("%w: malformed access token", ErrUnauthorized)
	}

	state, exists, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		return account.Principal{}, fmt.Errorf("get state: %w", err)
	}
	if !exists || !state.IsAuthenticated || state.Token != token || state.User == nil {
		return account.Principal{}, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}

	return account.Principal{UserID: state.User.ID, Email: state.User.Email}, nil
}

func (s *AccountService) issueToken(userID string) (string, error) {
	secret, err := s.ids.NewSecret()
	if err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	return userID + "." + secret, nil
}

func (s *AccountService) requireState(ctx context.Context, userID string) (account.State, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return account.State{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	state, exists, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		return account.State{}, fmt.Errorf("get state: %w", err)
	}
	if !exists {
		return account.State{}, fmt.Errorf("%w: unknown user", ErrNotFound)
	}
	return state, nil
}

func (s *AccountService) transition(ctx context.Context, userID string, apply func(account.State) account.State) (account.State, error) {
	state, err := s.requireState(ctx, userID)
	if err != nil {
		return account.State{}, err
	}

	next := apply(state)
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return account.State{}, fmt.Errorf("save state: %w", err)
	}
	return next, nil
}
