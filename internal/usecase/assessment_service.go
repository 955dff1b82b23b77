package usecase

import (
	"context"
	"fmt"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	"github.com/Integrum-Global/kronos/internal/domain/onboarding"
	"github.com/Integrum-Global/kronos/internal/domain/risk"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
	sonic "github.com/bytedance/sonic"
)

// assessmentProgress is the survey sub-state persisted inside the risk
// step's entry of the onboarding data bag, so a reload resumes mid-survey.
type assessmentProgress struct {
	Cursor  int               `json:"cursor"`
	Answers map[string]string `json:"answers"`
}

// AssessmentService administers the risk survey inside the single outer
// "risk" step. The question cursor is independent of the sequencer index;
// only finalize and a retreat off the first question touch the sequencer.
type AssessmentService struct {
	stateRepo account.StateRepository
	accounts  *AccountService
	sequencer *OnboardingService
	logger    *logging.Logger
}

func NewAssessmentService(
	stateRepo account.StateRepository,
	accounts *AccountService,
	sequencer *OnboardingService,
	logger *logging.Logger,
) *AssessmentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AssessmentService{
		stateRepo: stateRepo,
		accounts:  accounts,
		sequencer: sequencer,
		logger:    logger,
	}
}

// SurveyPosition is the current survey view: the cursor's question plus the
// answers recorded so far.
type SurveyPosition struct {
	Cursor   int
	Total    int
	Question risk.Question
	Answers  map[string]string
	Progress float64
}

// AdvanceResult is the outcome of an Advance call. Exactly one of Refused,
// Finalized, or a plain cursor move applies.
type AdvanceResult struct {
	Cursor    int
	Refused   bool
	Finalized bool
	Profile   *risk.Profile
	Nav       NavResult
}

// RetreatResult reports either a cursor move or delegation to the outer
// sequencer's GoBack.
type RetreatResult struct {
	Cursor    int
	Delegated bool
	Nav       NavResult
}

func (s *AssessmentService) Position(ctx context.Context, userID string) (SurveyPosition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssessmentService.Position")
	defer span.End()

	_, progress, err := s.loadProgress(ctx, userID)
	if err != nil {
		return SurveyPosition{}, err
	}

	return surveyPosition(progress), nil
}

// Answer records or overwrites the chosen option for a question. Changing an
// earlier answer is allowed and silent.
func (s *AssessmentService) Answer(ctx context.Context, userID, questionID, value string) (SurveyPosition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssessmentService.Answer")
	defer span.End()

	if _, err := risk.LookupOption(questionID, value); err != nil {
		return SurveyPosition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, progress, err := s.loadProgress(ctx, userID)
	if err != nil {
		return SurveyPosition{}, err
	}

	progress.Answers[questionID] = value
	if err := s.saveProgress(ctx, userID, state, progress); err != nil {
		return SurveyPosition{}, err
	}

	return surveyPosition(progress), nil
}

// Advance moves the cursor forward past an answered question. An unanswered
// cursor question refuses the move without side effects. Advancing off the
// last question finalizes: the profile is computed, stored, and the outer
// sequencer moves on.
func (s *AssessmentService) Advance(ctx context.Context, userID string) (AdvanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssessmentService.Advance")
	defer span.End()

	state, progress, err := s.loadProgress(ctx, userID)
	if err != nil {
		return AdvanceResult{}, err
	}

	question, _ := risk.QuestionAt(progress.Cursor)
	if _, answered := progress.Answers[question.ID]; !answered {
		return AdvanceResult{Cursor: progress.Cursor, Refused: true}, nil
	}

	if progress.Cursor < risk.QuestionCount-1 {
		progress.Cursor++
		if err := s.saveProgress(ctx, userID, state, progress); err != nil {
			return AdvanceResult{}, err
		}
		return AdvanceResult{Cursor: progress.Cursor}, nil
	}

	return s.finalize(ctx, userID, progress)
}

// Retreat moves the cursor back one question; on the first question it
// delegates to the outer sequencer instead.
func (s *AssessmentService) Retreat(ctx context.Context, userID string) (RetreatResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssessmentService.Retreat")
	defer span.End()

	state, progress, err := s.loadProgress(ctx, userID)
	if err != nil {
		return RetreatResult{}, err
	}

	if progress.Cursor == 0 {
		nav, err := s.sequencer.GoBack(ctx, userID)
		if err != nil {
			return RetreatResult{}, err
		}
		return RetreatResult{Cursor: 0, Delegated: true, Nav: nav}, nil
	}

	progress.Cursor--
	if err := s.saveProgress(ctx, userID, state, progress); err != nil {
		return RetreatResult{}, err
	}

	return RetreatResult{Cursor: progress.Cursor}, nil
}

// finalize computes the profile from the full answer map, stores it on the
// user's profile, and hands the sequencer the step payload. Incomplete
// answers are a blocking precondition failure, never a partial profile.
func (s *AssessmentService) finalize(ctx context.Context, userID string, progress assessmentProgress) (AdvanceResult, error) {
	profile, err := risk.Evaluate(progress.Answers)
	if err != nil {
		return AdvanceResult{}, fmt.Errorf("finalize assessment: %w", err)
	}

	if _, err := s.accounts.SetRiskProfile(ctx, userID, profile); err != nil {
		return AdvanceResult{}, err
	}

	nav, err := s.sequencer.GoNext(ctx, userID, map[string]any{
		"cursor":         progress.Cursor,
		"answers":        progress.Answers,
		"riskAssessment": profile,
	})
	if err != nil {
		return AdvanceResult{}, err
	}

	s.logger.InfoContext(ctx, "risk assessment finalized",
		"user_id", userID,
		"level", string(profile.Level),
		"score", profile.Score,
	)

	return AdvanceResult{
		Cursor:    progress.Cursor,
		Finalized: true,
		Profile:   &profile,
		Nav:       nav,
	}, nil
}

func (s *AssessmentService) loadProgress(ctx context.Context, userID string) (account.State, assessmentProgress, error) {
	if userID == "" {
		return account.State{}, assessmentProgress{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	state, exists, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		return account.State{}, assessmentProgress{}, fmt.Errorf("get state: %w", err)
	}
	if !exists {
		return account.State{}, assessmentProgress{}, fmt.Errorf("%w: unknown user", ErrNotFound)
	}

	progress := assessmentProgress{Answers: map[string]string{}}
	raw, ok := state.OnboardingData[string(onboarding.StepRisk)]
	if ok {
		if err := coerce(raw, &progress); err != nil {
			return account.State{}, assessmentProgress{}, fmt.Errorf("decode assessment progress: %w", err)
		}
		if progress.Answers == nil {
			progress.Answers = map[string]string{}
		}
	}
	if progress.Cursor < 0 {
		progress.Cursor = 0
	}
	if progress.Cursor >= risk.QuestionCount {
		progress.Cursor = risk.QuestionCount - 1
	}

	return state, progress, nil
}

func (s *AssessmentService) saveProgress(ctx context.Context, userID string, state account.State, progress assessmentProgress) error {
	next := state.WithOnboardingData(map[string]any{
		string(onboarding.StepRisk): map[string]any{
			"cursor":  progress.Cursor,
			"answers": progress.Answers,
		},
	})
	if err := s.stateRepo.Save(ctx, userID, next); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func surveyPosition(progress assessmentProgress) SurveyPosition {
	question, _ := risk.QuestionAt(progress.Cursor)
	return SurveyPosition{
		Cursor:   progress.Cursor,
		Total:    risk.QuestionCount,
		Question: question,
		Answers:  progress.Answers,
		Progress: float64(progress.Cursor+1) / float64(risk.QuestionCount) * 100,
	}
}

// coerce round-trips an untyped data-bag value into a typed struct. The bag
// holds whatever shape the snapshot codec produced, so this is the one
// conversion path for both live maps and decoded JSON.
func coerce(raw any, out any) error {
	buf, err := sonic.Marshal(raw)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(buf, out)
}
