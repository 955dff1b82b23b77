package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Integrum-Global/kronos/internal/domain/risk"
	"github.com/Integrum-Global/kronos/internal/usecase"
)

func (h *Handler) ListRiskQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRiskQuestions")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, risk.Questions())
}

func (h *Handler) GetRiskPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRiskPosition")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	position, err := h.assessmentService.Position(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get risk position failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riskPositionToDTO(position))
}

func (h *Handler) AnswerRiskQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnswerRiskQuestion")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req answerRiskQuestionRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	position, err := h.assessmentService.Answer(ctx, principal.UserID, req.QuestionID, req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "answer risk question failed", "user_id", principal.UserID, "question_id", req.QuestionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, riskPositionToDTO(position))
}

func (h *Handler) AdvanceRiskSurvey(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceRiskSurvey")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	result, err := h.assessmentService.Advance(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "advance risk survey failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := riskAdvanceDTO{
		Cursor:    result.Cursor,
		Refused:   result.Refused,
		Finalized: result.Finalized,
		Profile:   result.Profile,
	}
	if result.Finalized {
		nav := onboardingNavToDTO(result.Nav)
		dto.Nav = &nav
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) RetreatRiskSurvey(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetreatRiskSurvey")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	result, err := h.assessmentService.Retreat(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "retreat risk survey failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := riskRetreatDTO{
		Cursor:    result.Cursor,
		Delegated: result.Delegated,
	}
	if result.Delegated {
		nav := onboardingNavToDTO(result.Nav)
		dto.Nav = &nav
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}
