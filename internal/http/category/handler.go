package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/plan"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.catalog)
	r.Post("/", h.create)
	r.Patch("/{id}", h.rename)
	r.Delete("/{id}", h.remove)
}

type categoryResponse struct {
	ID     string    `json:"id"`
	Type   plan.Type `json:"type"`
	Label  string    `json:"label"`
	Icon   string    `json:"icon,omitempty"`
	System bool      `json:"system"`
}

type catalogResponse struct {
	Income  []categoryResponse `json:"income"`
	Expense []categoryResponse `json:"expense"`
}

// catalog returns the merged system + user category lists.
func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	income, expense := category.Catalog(user)

	writeJSON(w, http.StatusOK, catalogResponse{
		Income:  toResponseList(income),
		Expense: toResponseList(expense),
	})
}

type createCategoryRequest struct {
	Name string    `json:"name"`
	Type plan.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), req.Name, req.Type)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(*created))
}

type renameCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	var req renameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Rename(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		h.respondErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound):
		http.Error(w, "category not found", http.StatusNotFound)
	case errors.Is(err, category.ErrEmptyName), errors.Is(err, category.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(c category.Definition) categoryResponse {
	return categoryResponse{
		ID:     c.ID,
		Type:   c.Type,
		Label:  c.Label(),
		Icon:   c.Icon,
		System: c.IsSystem(),
	}
}

func toResponseList(cats []category.Definition) []categoryResponse {
	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
