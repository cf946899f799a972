package plan

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/plan"
)

type Handler struct {
	svc *plan.Service
}

func NewHandler(svc *plan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.updateSingle)
	r.Delete("/{id}", h.deleteSingle)
	r.Patch("/series/{seriesId}", h.updateSeries)
	r.Delete("/series/{seriesId}", h.deleteSeries)
}

type subItemDTO struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity,omitempty"`
	Description string  `json:"description,omitempty"`
}

type createItemRequest struct {
	Type               plan.Type          `json:"type"`
	Name               string             `json:"name"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency"`
	Description        string             `json:"description"`
	Recurring          bool               `json:"recurring"`
	RecurringType      plan.RecurringType `json:"recurringType"`
	RecurringUntilDate string             `json:"recurringUntilDate"`
	Structure          plan.Structure     `json:"structureType"`
	Status             plan.Status        `json:"status"`
	SubItems           []subItemDTO       `json:"subItems"`
	RecurringMode      plan.RecurringMode `json:"recurringMode"`
	Installments       int                `json:"installments"`
	MonthIndex         int                `json:"monthIndex"`
	Year               int                `json:"year"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(items))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft := plan.Draft{
		Type:               req.Type,
		Name:               req.Name,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Description:        req.Description,
		Recurring:          req.Recurring,
		RecurringType:      req.RecurringType,
		RecurringUntilDate: req.RecurringUntilDate,
		Structure:          req.Structure,
		Status:             req.Status,
		SubItems:           toSubItems(req.SubItems),
		RecurringMode:      req.RecurringMode,
		Installments:       req.Installments,
	}

	created, err := h.svc.Add(r.Context(), draft, plan.Anchor{Month: req.MonthIndex, Year: req.Year})
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toResponseList(created))
}

type updateItemRequest struct {
	createItemRequest
	SeriesID         string `json:"seriesId"`
	InstallmentIndex int    `json:"installmentIndex"`
}

func (h *Handler) updateSingle(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := req.toItem()
	item.ID = chi.URLParam(r, "id")

	h.respond(w, h.svc.UpdateSingle(r.Context(), item))
}

func (h *Handler) updateSeries(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := req.toItem()
	item.SeriesID = chi.URLParam(r, "seriesId")

	h.respond(w, h.svc.UpdateSeries(r.Context(), item))
}

func (h *Handler) deleteSingle(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.svc.DeleteSingle(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) deleteSeries(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.svc.DeleteSeries(r.Context(), chi.URLParam(r, "seriesId")))
}

func (h *Handler) respond(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case isValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, plan.ErrNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, plan.ErrInstallmentSeries):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (r updateItemRequest) toItem() plan.Item {
	return plan.Item{
		Type:               r.Type,
		Name:               r.Name,
		Amount:             r.Amount,
		Currency:           r.Currency,
		Description:        r.Description,
		Recurring:          r.Recurring,
		RecurringType:      r.RecurringType,
		RecurringUntilDate: r.RecurringUntilDate,
		MonthIndex:         r.MonthIndex,
		Year:               r.Year,
		SeriesID:           r.SeriesID,
		Structure:          r.Structure,
		Status:             r.Status,
		SubItems:           toSubItems(r.SubItems),
		RecurringMode:      r.RecurringMode,
		Installments:       r.Installments,
		InstallmentIndex:   r.InstallmentIndex,
	}
}

func toSubItems(dtos []subItemDTO) []plan.SubItem {
	if len(dtos) == 0 {
		return nil
	}

	subs := make([]plan.SubItem, len(dtos))

	for i, d := range dtos {
		id := d.ID
		if id == "" {
			id = plan.NewID()
		}

		subs[i] = plan.SubItem{
			ID:          id,
			Name:        d.Name,
			Price:       d.Price,
			Quantity:    d.Quantity,
			Description: d.Description,
		}
	}

	return subs
}

func isValidation(err error) bool {
	var dateErr *time.ParseError

	return errors.Is(err, plan.ErrEmptyName) ||
		errors.Is(err, plan.ErrInvalidAmount) ||
		errors.Is(err, plan.ErrInvalidMonth) ||
		errors.As(err, &dateErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
