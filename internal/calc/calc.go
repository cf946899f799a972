// Package calc derives monthly, cumulative and yearly figures from a plan
// item collection. Every function is pure: no mutation, no I/O.
package calc

import (
	"github.com/openfma/fma/internal/plan"
)

// Convert translates an amount from the given currency into the caller's
// display currency. The target currency is fixed by the caller's closure.
type Convert func(amount float64, from string) float64

// Options tune a calculation pass.
//
// IncludeNonFinalized switches between actual figures (finalized items only)
// and projected ones. CurrentYear enables the legacy fallback where items
// stored without a year count toward that year; zero disables the fallback
// entirely so wall-clock changes cannot shift results mid-session.
type Options struct {
	IncludeNonFinalized bool
	Convert             Convert
	CurrentYear         int
}

func (o Options) matches(it plan.Item, month, year int) bool {
	if it.MonthIndex != month {
		return false
	}

	if it.Year != year {
		legacy := it.Year == 0 && o.CurrentYear != 0 && year == o.CurrentYear
		if !legacy {
			return false
		}
	}

	if !o.IncludeNonFinalized && it.Status == plan.StatusNotFinalized {
		return false
	}

	return true
}

func (o Options) amount(it plan.Item) float64 {
	if o.Convert != nil {
		return o.Convert(it.Amount, it.CurrencyOrDefault())
	}

	return it.Amount
}

// NetForMonth sums signed amounts (income positive, expense negative) for the
// given month and year.
func NetForMonth(items []plan.Item, month, year int, opts Options) float64 {
	var net float64

	for _, it := range items {
		if !opts.matches(it, month, year) {
			continue
		}

		if it.Type == plan.TypeIncome {
			net += opts.amount(it)
		} else {
			net -= opts.amount(it)
		}
	}

	return net
}

// MonthlyIncome sums income amounts for the given month and year.
func MonthlyIncome(items []plan.Item, month, year int, opts Options) float64 {
	return monthlyByType(items, month, year, plan.TypeIncome, opts)
}

// MonthlyExpenses sums expense amounts for the given month and year.
func MonthlyExpenses(items []plan.Item, month, year int, opts Options) float64 {
	return monthlyByType(items, month, year, plan.TypeExpense, opts)
}

func monthlyByType(items []plan.Item, month, year int, typ plan.Type, opts Options) float64 {
	var total float64

	for _, it := range items {
		if it.Type == typ && opts.matches(it, month, year) {
			total += opts.amount(it)
		}
	}

	return total
}

// CumulativeTotal sums NetForMonth over months 0 through month inclusive, so
// CumulativeTotal(k+1) always equals CumulativeTotal(k) + NetForMonth(k+1).
func CumulativeTotal(items []plan.Item, month, year int, opts Options) float64 {
	var total float64

	for m := 0; m <= month; m++ {
		total += NetForMonth(items, m, year, opts)
	}

	return total
}

// Totals holds the independent yearly income and expense sums.
type Totals struct {
	Income     float64
	Expenses   float64
	NetSavings float64
}

// YearlyTotals sums income and expenses across all twelve months.
func YearlyTotals(items []plan.Item, year int, opts Options) Totals {
	var t Totals

	for m := 0; m < 12; m++ {
		t.Income += MonthlyIncome(items, m, year, opts)
		t.Expenses += MonthlyExpenses(items, m, year, opts)
	}

	t.NetSavings = t.Income - t.Expenses

	return t
}

// Balance is a month viewed with its running context.
type Balance struct {
	PreviousBalance float64
	MonthlyNet      float64
	TotalBalance    float64
}

// MonthBalance returns the balance carried into the month, the month's own
// net, and their sum. January carries in zero.
func MonthBalance(items []plan.Item, month, year int, opts Options) Balance {
	var prev float64
	if month > 0 {
		prev = CumulativeTotal(items, month-1, year, opts)
	}

	net := NetForMonth(items, month, year, opts)

	return Balance{
		PreviousBalance: prev,
		MonthlyNet:      net,
		TotalBalance:    prev + net,
	}
}

// Extremes are the largest and smallest entries of each type in a month,
// compared on converted amounts. Fields are nil when the month has no entry
// of that type.
type Extremes struct {
	MaxIncome  *plan.Item
	MinIncome  *plan.Item
	MaxExpense *plan.Item
	MinExpense *plan.Item
}

// MonthExtremes finds the biggest and smallest income and expense items of
// the month.
func MonthExtremes(items []plan.Item, month, year int, opts Options) Extremes {
	var ex Extremes

	for i := range items {
		it := items[i]
		if !opts.matches(it, month, year) {
			continue
		}

		amount := opts.amount(it)

		if it.Type == plan.TypeIncome {
			if ex.MaxIncome == nil || amount > opts.amount(*ex.MaxIncome) {
				ex.MaxIncome = &items[i]
			}

			if ex.MinIncome == nil || amount < opts.amount(*ex.MinIncome) {
				ex.MinIncome = &items[i]
			}

			continue
		}

		if ex.MaxExpense == nil || amount > opts.amount(*ex.MaxExpense) {
			ex.MaxExpense = &items[i]
		}

		if ex.MinExpense == nil || amount < opts.amount(*ex.MinExpense) {
			ex.MinExpense = &items[i]
		}
	}

	return ex
}

// UncategorizedID is the bucket for items with no category assigned.
const UncategorizedID = "uncategorized"

// CategoryTotal is the aggregated value of one category over a year.
type CategoryTotal struct {
	ID    string
	Type  plan.Type
	Value float64
}

// CategoryBreakdown aggregates yearly amounts per category. An item with
// several categories contributes an even split of its amount to each;
// uncategorized items fall into the UncategorizedID bucket typed after the
// item itself.
func CategoryBreakdown(items []plan.Item, year int, opts Options) []CategoryTotal {
	order := make([]string, 0)
	totals := make(map[string]*CategoryTotal)

	for _, it := range items {
		if !opts.matches(it, it.MonthIndex, year) {
			continue
		}

		cats := it.CategoryIDs
		if len(cats) == 0 {
			cats = []string{UncategorizedID}
		}

		split := opts.amount(it) / float64(len(cats))

		for _, id := range cats {
			entry, ok := totals[id]
			if !ok {
				entry = &CategoryTotal{ID: id, Type: it.Type}
				totals[id] = entry
				order = append(order, id)
			}

			entry.Value += split
		}
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}

	return out
}
