package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/calc"
	"github.com/openfma/fma/internal/currency"
	"github.com/openfma/fma/internal/plan"
)

// Handler serves the derived figures the dashboard shows: monthly nets,
// running balances, yearly totals and category breakdowns. Every endpoint
// takes optional ?projected=true (include non-finalized items) and
// ?currency=<code> (convert amounts into that currency).
type Handler struct {
	plans    *plan.Service
	rates    *currency.Service
	thisYear func() int
}

func NewHandler(plans *plan.Service, rates *currency.Service) *Handler {
	return &Handler{
		plans:    plans,
		rates:    rates,
		thisYear: func() int { return time.Now().Year() },
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/balance", h.balance)
	r.Get("/yearly", h.yearly)
	r.Get("/categories", h.categories)
	r.Get("/extremes", h.extremes)
}

func (h *Handler) options(r *http.Request) calc.Options {
	opts := calc.Options{
		IncludeNonFinalized: r.URL.Query().Get("projected") == "true",
		CurrentYear:         h.thisYear(),
	}

	if target := r.URL.Query().Get("currency"); target != "" {
		opts.Convert = h.rates.Converter(r.Context(), target)
	}

	return opts
}

func monthYear(r *http.Request) (month, year int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 0 || month > 11 {
		return 0, 0, false
	}

	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, false
	}

	return month, year, true
}

func yearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	return year, err == nil
}

type summaryResponse struct {
	Net        float64 `json:"net"`
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	Cumulative float64 `json:"cumulative"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYear(r)
	if !ok {
		http.Error(w, "month and year query parameters are required", http.StatusBadRequest)
		return
	}

	items, err := h.plans.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	opts := h.options(r)

	writeJSON(w, summaryResponse{
		Net:        calc.NetForMonth(items, month, year, opts),
		Income:     calc.MonthlyIncome(items, month, year, opts),
		Expenses:   calc.MonthlyExpenses(items, month, year, opts),
		Cumulative: calc.CumulativeTotal(items, month, year, opts),
	})
}

type balanceResponse struct {
	PreviousBalance float64 `json:"previousBalance"`
	MonthlyNet      float64 `json:"monthlyNet"`
	TotalBalance    float64 `json:"totalBalance"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYear(r)
	if !ok {
		http.Error(w, "month and year query parameters are required", http.StatusBadRequest)
		return
	}

	items, err := h.plans.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	b := calc.MonthBalance(items, month, year, h.options(r))

	writeJSON(w, balanceResponse{
		PreviousBalance: b.PreviousBalance,
		MonthlyNet:      b.MonthlyNet,
		TotalBalance:    b.TotalBalance,
	})
}

type yearlyResponse struct {
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	NetSavings float64 `json:"netSavings"`
}

func (h *Handler) yearly(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "year query parameter is required", http.StatusBadRequest)
		return
	}

	items, err := h.plans.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	t := calc.YearlyTotals(items, year, h.options(r))

	writeJSON(w, yearlyResponse{Income: t.Income, Expenses: t.Expenses, NetSavings: t.NetSavings})
}

type categoryTotalResponse struct {
	ID    string    `json:"id"`
	Type  plan.Type `json:"type"`
	Value float64   `json:"value"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "year query parameter is required", http.StatusBadRequest)
		return
	}

	items, err := h.plans.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	breakdown := calc.CategoryBreakdown(items, year, h.options(r))

	resp := make([]categoryTotalResponse, len(breakdown))
	for i, ct := range breakdown {
		resp[i] = categoryTotalResponse{ID: ct.ID, Type: ct.Type, Value: ct.Value}
	}

	writeJSON(w, resp)
}

type extremeItemResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type extremesResponse struct {
	MaxIncome  *extremeItemResponse `json:"maxIncome,omitempty"`
	MinIncome  *extremeItemResponse `json:"minIncome,omitempty"`
	MaxExpense *extremeItemResponse `json:"maxExpense,omitempty"`
	MinExpense *extremeItemResponse `json:"minExpense,omitempty"`
}

func (h *Handler) extremes(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYear(r)
	if !ok {
		http.Error(w, "month and year query parameters are required", http.StatusBadRequest)
		return
	}

	items, err := h.plans.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ex := calc.MonthExtremes(items, month, year, h.options(r))

	writeJSON(w, extremesResponse{
		MaxIncome:  toExtreme(ex.MaxIncome),
		MinIncome:  toExtreme(ex.MinIncome),
		MaxExpense: toExtreme(ex.MaxExpense),
		MinExpense: toExtreme(ex.MinExpense),
	})
}

func toExtreme(it *plan.Item) *extremeItemResponse {
	if it == nil {
		return nil
	}

	return &extremeItemResponse{ID: it.ID, Name: it.Name, Amount: it.Amount}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
