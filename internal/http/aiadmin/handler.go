package aiadmin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/ai"
)

// Handler exposes the model listing used to pick the completion model.
type Handler struct {
	svc *ai.Service
}

func NewHandler(svc *ai.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/models", h.models)
}

type modelResponse struct {
	ID      string `json:"id"`
	OwnedBy string `json:"ownedBy"`
	Created int64  `json:"created"`
}

func (h *Handler) models(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.Models(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := make([]modelResponse, len(models))
	for i, m := range models {
		resp[i] = modelResponse{ID: m.ID, OwnedBy: m.OwnedBy, Created: m.Created}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
