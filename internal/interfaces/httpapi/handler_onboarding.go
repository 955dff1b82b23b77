package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Integrum-Global/kronos/internal/usecase"
)

func (h *Handler) GetOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOnboardingStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	status, err := h.onboardingService.Status(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get onboarding status failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStatusToDTO(status))
}

func (h *Handler) ResumeOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResumeOnboarding")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req resumeOnboardingRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.onboardingService.Resume(ctx, principal.UserID, req.Path)
	if err != nil {
		h.logger.WarnContext(ctx, "resume onboarding failed", "user_id", principal.UserID, "path", req.Path, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingStatusToDTO(status))
}

func (h *Handler) OnboardingNext(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OnboardingNext")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req onboardingNextRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	nav, err := h.onboardingService.GoNext(ctx, principal.UserID, req.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "onboarding next failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingNavToDTO(nav))
}

func (h *Handler) OnboardingBack(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OnboardingBack")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nav, err := h.onboardingService.GoBack(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "onboarding back failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, onboardingNavToDTO(nav))
}
