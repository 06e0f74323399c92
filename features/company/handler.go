package company

import (
	"log/slog"
	"net/http"

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in NewCompany
	if err := validate.Decode(r.Body, &in); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	c, err := h.service.Create(ctx, in)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "company created", "handle", c.Handle, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusCreated, map[string]interface{}{"company": c})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	companies, err := h.service.List(ctx, f)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}
	if companies == nil {
		companies = []Company{}
	}

	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"companies": companies})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.service.Get(ctx, r.PathValue("handle"))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"company": d})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	handle := r.PathValue("handle")

	var in UpdateCompany
	present, err := updatePatch.Decode(r.Body, &in)
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	c, err := h.service.Update(ctx, handle, in.Fields(present))
	if err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "company updated", "handle", handle, "fields", present, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"company": c})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := r.PathValue("handle")

	if err := h.service.Remove(ctx, handle); err != nil {
		respond.Error(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "company deleted", "handle", handle, "correlationId", middleware.GetCorrelationID(ctx))
	respond.JSON(ctx, w, http.StatusOK, map[string]interface{}{"deleted": handle})
}
