package httpapi

import (
	"context"
	"fmt"
	"io"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	"github.com/Integrum-Global/kronos/internal/domain/onboarding"
	"github.com/Integrum-Global/kronos/internal/domain/risk"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
	"github.com/Integrum-Global/kronos/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	accountService    *usecase.AccountService
	onboardingService *usecase.OnboardingService
	assessmentService *usecase.AssessmentService
	recomputeService  *usecase.RecomputeService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	accountService *usecase.AccountService,
	onboardingService *usecase.OnboardingService,
	assessmentService *usecase.AssessmentService,
	recomputeService *usecase.RecomputeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		accountService:    accountService,
		onboardingService: onboardingService,
		assessmentService: assessmentService,
		recomputeService:  recomputeService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type registerRequest struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type profilePatchRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,max=254"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,max=10"`
}

type preferencesPatchRequest struct {
	Notifications *bool   `json:"notifications"`
	DarkMode      *bool   `json:"darkMode"`
	Language      *string `json:"language" validate:"omitempty,len=2"`
}

type addGoalRequest struct {
	Goal string `json:"goal" validate:"required,max=120"`
}

type resumeOnboardingRequest struct {
	Path string `json:"path" validate:"required,max=200"`
}

type onboardingNextRequest struct {
	Data map[string]any `json:"data"`
}

type answerRiskQuestionRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	Value      string `json:"value" validate:"required"`
}

type recomputeProfilesRequest struct {
	MaxWorkers int  `json:"max_workers" validate:"gte=0,lte=64"`
	DryRun     bool `json:"dry_run"`
}

type authSessionDTO struct {
	UserID string        `json:"userId"`
	Token  string        `json:"token"`
	State  account.State `json:"state"`
}

type onboardingStatusDTO struct {
	Index    int             `json:"index"`
	Step     onboarding.Step `json:"step"`
	Progress float64         `json:"progress"`
	Data     map[string]any  `json:"data"`
}

type onboardingNavDTO struct {
	Index     int             `json:"index"`
	Step      onboarding.Step `json:"step"`
	Completed bool            `json:"completed"`
	Exited    bool            `json:"exited"`
}

type riskPositionDTO struct {
	Cursor   int               `json:"cursor"`
	Total    int               `json:"total"`
	Question risk.Question     `json:"question"`
	Answers  map[string]string `json:"answers"`
	Progress float64           `json:"progress"`
}

type riskAdvanceDTO struct {
	Cursor    int               `json:"cursor"`
	Refused   bool              `json:"refused"`
	Finalized bool              `json:"finalized"`
	Profile   *risk.Profile     `json:"profile,omitempty"`
	Nav       *onboardingNavDTO `json:"nav,omitempty"`
}

type riskRetreatDTO struct {
	Cursor    int               `json:"cursor"`
	Delegated bool              `json:"delegated"`
	Nav       *onboardingNavDTO `json:"nav,omitempty"`
}

func onboardingStatusToDTO(status usecase.Status) onboardingStatusDTO {
	return onboardingStatusDTO{
		Index:    status.Index,
		Step:     status.Step,
		Progress: status.Progress,
		Data:     status.Data,
	}
}

func onboardingNavToDTO(nav usecase.NavResult) onboardingNavDTO {
	return onboardingNavDTO{
		Index:     nav.Index,
		Step:      nav.Step,
		Completed: nav.Completed,
		Exited:    nav.Exited,
	}
}

func riskPositionToDTO(pos usecase.SurveyPosition) riskPositionDTO {
	return riskPositionDTO{
		Cursor:   pos.Cursor,
		Total:    pos.Total,
		Question: pos.Question,
		Answers:  pos.Answers,
		Progress: pos.Progress,
	}
}
