package usecase

import (
	"context"
	"fmt"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	"github.com/Integrum-Global/kronos/internal/domain/onboarding"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
)

// OnboardingService is the step sequencer: it owns the current position in
// the fixed step list and persists every move through the state repository,
// so a reload always resumes at the committed index.
type OnboardingService struct {
	stateRepo account.StateRepository
	logger    *logging.Logger
}

func NewOnboardingService(stateRepo account.StateRepository, logger *logging.Logger) *OnboardingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &OnboardingService{
		stateRepo: stateRepo,
		logger:    logger,
	}
}

// Status describes the sequencer position for display.
type Status struct {
	Index    int
	Step     onboarding.Step
	Progress float64
	Data     map[string]any
}

// NavResult is the outcome of a navigation call. Completed and Exited are
// terminal signals, not errors: callers route elsewhere instead of moving
// the index out of bounds.
type NavResult struct {
	Index     int
	Step      onboarding.Step
	Completed bool
	Exited    bool
}

func (s *OnboardingService) Status(ctx context.Context, userID string) (Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Status")
	defer span.End()

	state, err := s.requireState(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	index := clampStepIndex(state.OnboardingStep)
	step, _ := onboarding.StepAt(index)

	return Status{
		Index:    index,
		Step:     step,
		Progress: onboarding.ProgressPercent(index),
		Data:     state.OnboardingData,
	}, nil
}

// Resume maps an external route hint to a step index, persists it, and
// returns the position. An unrecognized hint resolves to the first step.
func (s *OnboardingService) Resume(ctx context.Context, userID, pathHint string) (Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Resume")
	defer span.End()

	state, err := s.requireState(ctx, userID)
	if err != nil {
		return Status{}, err
	}

	index := onboarding.ResolveStep(pathHint)
	next := state.WithOnboardingStep(index)
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return Status{}, fmt.Errorf("save state: %w", err)
	}

	step, _ := onboarding.StepAt(index)
	return Status{
		Index:    index,
		Step:     step,
		Progress: onboarding.ProgressPercent(index),
		Data:     next.OnboardingData,
	}, nil
}

// GoNext stores the payload under the current step's id, then advances. At
// the last step it reports completion and leaves the index untouched.
func (s *OnboardingService) GoNext(ctx context.Context, userID string, payload map[string]any) (NavResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.GoNext")
	defer span.End()

	state, err := s.requireState(ctx, userID)
	if err != nil {
		return NavResult{}, err
	}

	index := clampStepIndex(state.OnboardingStep)
	current, _ := onboarding.StepAt(index)

	next := state
	if len(payload) > 0 {
		next = next.WithOnboardingData(map[string]any{string(current.ID): payload})
	}

	if index >= onboarding.StepCount-1 {
		if err := s.stateRepo.Save(ctx, userID, next); err != nil {
			return NavResult{}, fmt.Errorf("save state: %w", err)
		}
		s.logger.InfoContext(ctx, "onboarding flow completed", "user_id", userID)
		return NavResult{Index: index, Step: current, Completed: true}, nil
	}

	next = next.WithOnboardingStep(index + 1)
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return NavResult{}, fmt.Errorf("save state: %w", err)
	}

	step, _ := onboarding.StepAt(index + 1)
	return NavResult{Index: index + 1, Step: step}, nil
}

// GoBack moves one step back. At the first step it reports flow exit and
// leaves the index at zero.
func (s *OnboardingService) GoBack(ctx context.Context, userID string) (NavResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.GoBack")
	defer span.End()

	state, err := s.requireState(ctx, userID)
	if err != nil {
		return NavResult{}, err
	}

	index := clampStepIndex(state.OnboardingStep)
	if index == 0 {
		step, _ := onboarding.StepAt(0)
		return NavResult{Index: 0, Step: step, Exited: true}, nil
	}

	next := state.WithOnboardingStep(index - 1)
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return NavResult{}, fmt.Errorf("save state: %w", err)
	}

	step, _ := onboarding.StepAt(index - 1)
	return NavResult{Index: index - 1, Step: step}, nil
}

func (s *OnboardingService) requireState(ctx context.Context, userID string) (account.State, error) {
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

// clampStepIndex guards against snapshots written by an older step list; the
// persisted index is forced back into bounds rather than trusted blindly.
func clampStepIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index >= onboarding.StepCount {
		return onboarding.StepCount - 1
	}
	return index
}
