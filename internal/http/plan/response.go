package plan

import (
	"github.com/openfma/fma/internal/plan"
)

type itemResponse struct {
	ID                 string             `json:"id"`
	Type               plan.Type          `json:"type"`
	Name               string             `json:"name"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency,omitempty"`
	Description        string             `json:"description,omitempty"`
	Recurring          bool               `json:"recurring"`
	RecurringType      plan.RecurringType `json:"recurringType,omitempty"`
	RecurringUntilDate string             `json:"recurringUntilDate,omitempty"`
	MonthIndex         int                `json:"monthIndex"`
	Year               int                `json:"year"`
	SeriesID           string             `json:"seriesId,omitempty"`
	CategoryIDs        []string           `json:"categoryIds,omitempty"`
	Structure          plan.Structure     `json:"structureType,omitempty"`
	Status             plan.Status        `json:"status,omitempty"`
	SubItems           []subItemDTO       `json:"subItems,omitempty"`
	RecurringMode      plan.RecurringMode `json:"recurringMode,omitempty"`
	Installments       int                `json:"installments,omitempty"`
	InstallmentIndex   int                `json:"installmentIndex,omitempty"`
	BundleTotal        float64            `json:"bundleTotal,omitempty"`
}

func toResponse(it plan.Item) itemResponse {
	resp := itemResponse{
		ID:                 it.ID,
		Type:               it.Type,
		Name:               it.Name,
		Amount:             it.Amount,
		Currency:           it.Currency,
		Description:        it.Description,
		Recurring:          it.Recurring,
		RecurringType:      it.RecurringType,
		RecurringUntilDate: it.RecurringUntilDate,
		MonthIndex:         it.MonthIndex,
		Year:               it.Year,
		SeriesID:           it.SeriesID,
		CategoryIDs:        it.CategoryIDs,
		Structure:          it.Structure,
		Status:             it.Status,
		RecurringMode:      it.RecurringMode,
		Installments:       it.Installments,
		InstallmentIndex:   it.InstallmentIndex,
	}

	if len(it.SubItems) > 0 {
		resp.SubItems = make([]subItemDTO, len(it.SubItems))
		for i, s := range it.SubItems {
			resp.SubItems[i] = subItemDTO{
				ID:          s.ID,
				Name:        s.Name,
				Price:       s.Price,
				Quantity:    s.Quantity,
				Description: s.Description,
			}
		}

		resp.BundleTotal = plan.BundleTotal(it.SubItems)
	}

	return resp
}

func toResponseList(items []plan.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toResponse(it)
	}

	return resp
}
