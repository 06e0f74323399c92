package stats

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"jobly/internal/middleware"
	"jobly/internal/respond"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	jobs      Counter
	companies Counter
}

func NewHandler(jobs, companies Counter) *Handler {
	return &Handler{jobs: jobs, companies: companies}
}

type StatsResponse struct {
	Jobs      int `json:"jobs"`
	Companies int `json:"companies"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := middleware.GetCorrelationID(ctx)

	slog.InfoContext(ctx, "getting stats", "correlationId", correlationID)

	jCount, err := h.jobs.Count(ctx)
	if err != nil {
		respond.Error(ctx, w, fmt.Errorf("count jobs: %w", err))
		return
	}

	cCount, err := h.companies.Count(ctx)
	if err != nil {
		respond.Error(ctx, w, fmt.Errorf("count companies: %w", err))
		return
	}

	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{
		"data": StatsResponse{Jobs: jCount, Companies: cCount},
	})
}
