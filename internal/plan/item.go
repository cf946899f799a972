package plan

import (
	"math/big"

	"github.com/google/uuid"
)

// Type represents the direction of a plan item (income or expense).
type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

// Structure distinguishes items entered as a single amount from bundles
// whose amount derives from priced sub-items.
type Structure string

const (
	StructureSimple Structure = "simple"
	StructureBundle Structure = "bundle"
)

// Status marks whether an item counts toward actual totals or only toward
// projected ones.
type Status string

const (
	StatusFinalized    Status = "finalized"
	StatusNotFinalized Status = "not_finalized"
)

// RecurringType controls how far a recurring series extends.
type RecurringType string

const (
	RecurringForever   RecurringType = "forever"
	RecurringUntilDate RecurringType = "until_date"
)

// RecurringMode applies to recurring bundles: repeat the full bundle each
// month, or split its total into monthly installments.
type RecurringMode string

const (
	ModeAsItIs       RecurringMode = "as_it_is"
	ModeInstallments RecurringMode = "installments"
)

// DefaultCurrency is assumed when an item carries no currency code.
const DefaultCurrency = "VND"

// SubItem is one priced line of a bundle. A zero Quantity means 1.
type SubItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Item is one concrete ledger entry placed in the month/year grid.
//
// Items generated from a single recurring user action share a SeriesID and
// differ only in ID, MonthIndex, Year and, for installments,
// InstallmentIndex. RecurringUntilDate is a calendar date in 2006-01-02
// form, matching the plan-file wire format.
type Item struct {
	ID                 string        `json:"id"`
	Type               Type          `json:"type"`
	Name               string        `json:"name"`
	Amount             float64       `json:"amount"`
	Currency           string        `json:"currency,omitempty"`
	Recurring          bool          `json:"recurring"`
	RecurringType      RecurringType `json:"recurringType,omitempty"`
	RecurringUntilDate string        `json:"recurringUntilDate,omitempty"`
	MonthIndex         int           `json:"monthIndex"`
	Year               int           `json:"year"`
	SeriesID           string        `json:"seriesId,omitempty"`
	Description        string        `json:"description,omitempty"`
	CategoryIDs        []string      `json:"categoryIds,omitempty"`
	Structure          Structure     `json:"structureType,omitempty"`
	Status             Status        `json:"status,omitempty"`
	SubItems           []SubItem     `json:"subItems,omitempty"`
	RecurringMode      RecurringMode `json:"recurringMode,omitempty"`
	Installments       int           `json:"installments,omitempty"`
	InstallmentIndex   int           `json:"installmentIndex,omitempty"`
}

// IsInstallmentBundle reports whether the item belongs to an installment
// series. Such series are only meaningful as a complete set: single-occurrence
// edits and deletes are not allowed on them.
func (it Item) IsInstallmentBundle() bool {
	return it.Structure == StructureBundle && it.RecurringMode == ModeInstallments && it.Installments > 0
}

// CurrencyOrDefault returns the item's currency code, falling back to VND.
func (it Item) CurrencyOrDefault() string {
	if it.Currency == "" {
		return DefaultCurrency
	}

	return it.Currency
}

// BundleTotal sums price times quantity over the sub-items. It is the amount
// shown when editing a bundle, which for installment series differs from the
// per-month amount stored on each record.
func BundleTotal(subs []SubItem) float64 {
	var total float64

	for _, s := range subs {
		q := s.Quantity
		if q == 0 {
			q = 1
		}

		total += s.Price * float64(q)
	}

	return total
}

// NewID returns a 9 character base-36 token, the identifier format used in
// plan files produced by the frontend.
func NewID() string {
	u := uuid.New()

	s := new(big.Int).SetBytes(u[:]).Text(36)
	for len(s) < 9 {
		s = "0" + s
	}

	return s[:9]
}
