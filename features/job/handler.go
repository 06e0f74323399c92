package job

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"jobly/internal/apperr"
	"jobly/internal/middleware"
	"jobly/internal/respond"
	"jobly/internal/validate"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// Create handles POST /jobs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in NewJob
	if err := validate.Decode(r.Body, &in); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	j, err := h.service.Create(ctx, in)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "job created", "id", j.ID, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusCreated, map[string]interface{}{"job": j})
}

// List handles GET /jobs with the optional title, minSalary and hasEquity filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	jobs, err := h.service.List(ctx, f)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}

	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// Get handles GET /jobs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	j, err := h.service.Get(ctx, id)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"job": j})
}

// Update handles PATCH /jobs/{id}. The body may not carry id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in UpdateJob
	present, err := updatePatch.Decode(r.Body, &in)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	j, err := h.service.Update(ctx, id, in.Fields(present))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "job updated", "id", id, "fields", present, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"job": j})
}

// Delete handles DELETE /jobs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	if err := h.service.Remove(ctx, id); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "job deleted", "id", id, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"deleted": id})
}

// pathID parses {id}. A value that is not an integer cannot name a job.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: no job: %s", apperr.ErrNotFound, raw)
	}
	return id, nil
}
