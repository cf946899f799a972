package categorize

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/categorize"
	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/plan"
)

// Handler runs AI categorization over the working set and merges the result
// back onto the stored items.
type Handler struct {
	svc        *categorize.Service
	plans      *plan.Service
	categories *category.Service
}

func NewHandler(svc *categorize.Service, plans *plan.Service, categories *category.Service) *Handler {
	return &Handler{svc: svc, plans: plans, categories: categories}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
	r.Delete("/cache", h.clearCache)
}

type runResponse struct {
	Changed bool               `json:"changed"`
	Mapping []categorize.Entry `json:"mapping"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.plans.List(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	userCats, err := h.categories.List(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	mapping, err := h.svc.Categorize(ctx, items, userCats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if mapping == nil {
		writeJSON(w, runResponse{})
		return
	}

	updated, changed := categorize.Apply(items, mapping)
	if changed {
		if err := h.plans.Import(ctx, updated); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, runResponse{Changed: changed, Mapping: mapping.Mapping})
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
