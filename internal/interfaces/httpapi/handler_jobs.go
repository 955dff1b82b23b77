package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/Integrum-Global/kronos/internal/usecase"
)

func (h *Handler) RunRecomputeProfilesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeProfilesJob")
	defer span.End()

	req, err := decodeRecomputeProfilesRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.Recompute(ctx, usecase.RecomputeInput{
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recompute profiles job failed", "max_workers", req.MaxWorkers, "dry_run", req.DryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// An empty body means defaults so the endpoint stays curl-friendly for
// operators and schedulers.
func decodeRecomputeProfilesRequest(r *http.Request) (recomputeProfilesRequest, error) {
	var req recomputeProfilesRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return req, fmt.Errorf("%w: failed to read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	if err := decodeJSONBody(bytes.NewReader(body), &req); err != nil {
		return req, err
	}

	return req, nil
}
