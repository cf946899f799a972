// Package codec reads and writes the plan file format: a line-oriented XML
// document carrying the item list and the user-defined categories, optionally
// wrapped in AES-GCM encryption (crypto.go).
package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/plan"
)

// ErrEmptyContent is returned when the input holds no document at all.
var ErrEmptyContent = errors.New("empty content")

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Encode renders the items and user categories as a plan XML document.
// Id, Type, Name, Amount, Recurring, MonthIndex and Year are always written;
// every other element only appears when the field is set. System categories
// are never serialized.
func Encode(items []plan.Item, userCategories []category.Definition) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<FinancialManagementApp version=\"1.0\">\n")
	b.WriteString("  <PlanItems>\n")

	for _, it := range items {
		writeItem(&b, it)
	}

	b.WriteString("  </PlanItems>\n")

	if len(userCategories) > 0 {
		b.WriteString("  <UserCategories>\n")

		for _, c := range userCategories {
			b.WriteString("    <Category>\n")
			writeElem(&b, 6, "Id", c.ID)
			writeElem(&b, 6, "Name", textEscaper.Replace(c.TranslationKey))
			writeElem(&b, 6, "Type", string(c.Type))
			b.WriteString("    </Category>\n")
		}

		b.WriteString("  </UserCategories>\n")
	}

	b.WriteString("</FinancialManagementApp>")

	return b.String()
}

func writeItem(b *strings.Builder, it plan.Item) {
	b.WriteString("    <Item>\n")
	writeElem(b, 6, "Id", it.ID)
	writeElem(b, 6, "Type", string(it.Type))
	writeElem(b, 6, "Name", textEscaper.Replace(it.Name))
	writeElem(b, 6, "Amount", formatNumber(it.Amount))
	writeElem(b, 6, "Recurring", strconv.FormatBool(it.Recurring))

	if it.RecurringType != "" {
		writeElem(b, 6, "RecurringType", string(it.RecurringType))
	}

	if it.RecurringUntilDate != "" {
		writeElem(b, 6, "RecurringUntilDate", it.RecurringUntilDate)
	}

	writeElem(b, 6, "MonthIndex", strconv.Itoa(it.MonthIndex))
	writeElem(b, 6, "Year", strconv.Itoa(it.Year))

	if it.SeriesID != "" {
		writeElem(b, 6, "SeriesId", it.SeriesID)
	}

	if len(it.CategoryIDs) > 0 {
		writeElem(b, 6, "CategoryIds", strings.Join(it.CategoryIDs, ","))
	}

	if it.Structure != "" {
		writeElem(b, 6, "StructureType", string(it.Structure))
	}

	if it.Status != "" {
		writeElem(b, 6, "Status", string(it.Status))
	}

	if it.Currency != "" {
		writeElem(b, 6, "Currency", it.Currency)
	}

	if it.RecurringMode != "" {
		writeElem(b, 6, "RecurringMode", string(it.RecurringMode))
	}

	if it.Installments > 0 {
		writeElem(b, 6, "Installments", strconv.Itoa(it.Installments))
	}

	if it.InstallmentIndex > 0 {
		writeElem(b, 6, "InstallmentIndex", strconv.Itoa(it.InstallmentIndex))
	}

	if len(it.SubItems) > 0 {
		b.WriteString("      <SubItems>\n")

		for _, sub := range it.SubItems {
			b.WriteString("        <SubItem>\n")
			writeElem(b, 10, "Id", sub.ID)
			writeElem(b, 10, "Name", textEscaper.Replace(sub.Name))
			writeElem(b, 10, "Price", formatNumber(sub.Price))

			if sub.Quantity > 0 {
				writeElem(b, 10, "Quantity", strconv.Itoa(sub.Quantity))
			}

			if sub.Description != "" {
				writeElem(b, 10, "Description", textEscaper.Replace(sub.Description))
			}

			b.WriteString("        </SubItem>\n")
		}

		b.WriteString("      </SubItems>\n")
	}

	b.WriteString("    </Item>\n")
}

func writeElem(b *strings.Builder, indent int, name, value string) {
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(value)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Wire shapes for decoding. Scalars come in as strings so that structural
// parse failures and per-field validation failures surface as distinct
// stages.
type xmlDocument struct {
	XMLName        xml.Name      `xml:"FinancialManagementApp"`
	Items          []xmlItem     `xml:"PlanItems>Item"`
	UserCategories []xmlCategory `xml:"UserCategories>Category"`
}

type xmlItem struct {
	ID                 string       `xml:"Id"`
	Type               string       `xml:"Type"`
	Name               string       `xml:"Name"`
	Amount             string       `xml:"Amount"`
	Recurring          string       `xml:"Recurring"`
	RecurringType      string       `xml:"RecurringType"`
	RecurringUntilDate string       `xml:"RecurringUntilDate"`
	MonthIndex         string       `xml:"MonthIndex"`
	Year               string       `xml:"Year"`
	SeriesID           string       `xml:"SeriesId"`
	CategoryIDs        string       `xml:"CategoryIds"`
	LegacyCategoryID   string       `xml:"CategoryId"`
	Structure          string       `xml:"StructureType"`
	Status             string       `xml:"Status"`
	Currency           string       `xml:"Currency"`
	RecurringMode      string       `xml:"RecurringMode"`
	Installments       string       `xml:"Installments"`
	InstallmentIndex   string       `xml:"InstallmentIndex"`
	SubItems           []xmlSubItem `xml:"SubItems>SubItem"`
}

type xmlSubItem struct {
	ID          string `xml:"Id"`
	Name        string `xml:"Name"`
	Price       string `xml:"Price"`
	Quantity    string `xml:"Quantity"`
	Description string `xml:"Description"`
}

type xmlCategory struct {
	ID   string `xml:"Id"`
	Name string `xml:"Name"`
	Type string `xml:"Type"`
}

// Decode parses a plan XML document back into items and user categories.
// A legacy single CategoryId element is accepted when CategoryIds is absent.
func Decode(content string) ([]plan.Item, []category.Definition, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, ErrEmptyContent
	}

	var doc xmlDocument
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid plan XML structure: %w", err)
	}

	items := make([]plan.Item, 0, len(doc.Items))

	for i, raw := range doc.Items {
		it, err := decodeItem(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid plan data: item %d: %w", i, err)
		}

		items = append(items, it)
	}

	var cats []category.Definition

	for _, raw := range doc.UserCategories {
		// Incomplete category entries are dropped rather than rejected.
		if raw.ID == "" || raw.Name == "" || raw.Type == "" {
			continue
		}

		cats = append(cats, category.Definition{
			ID:             raw.ID,
			Type:           plan.Type(raw.Type),
			TranslationKey: raw.Name,
		})
	}

	return items, cats, nil
}

func decodeItem(raw xmlItem) (plan.Item, error) {
	var it plan.Item

	if raw.ID == "" {
		return it, errors.New("missing Id")
	}

	typ := plan.Type(raw.Type)
	if typ != plan.TypeIncome && typ != plan.TypeExpense {
		return it, fmt.Errorf("invalid Type %q", raw.Type)
	}

	amount, err := strconv.ParseFloat(raw.Amount, 64)
	if err != nil || amount < 0 {
		return it, fmt.Errorf("invalid Amount %q", raw.Amount)
	}

	month, err := strconv.Atoi(raw.MonthIndex)
	if err != nil || month < 0 || month > 11 {
		return it, fmt.Errorf("invalid MonthIndex %q", raw.MonthIndex)
	}

	year, err := strconv.Atoi(raw.Year)
	if err != nil {
		return it, fmt.Errorf("invalid Year %q", raw.Year)
	}

	it = plan.Item{
		ID:                 raw.ID,
		Type:               typ,
		Name:               raw.Name,
		Amount:             amount,
		Recurring:          raw.Recurring == "true",
		RecurringType:      plan.RecurringType(raw.RecurringType),
		RecurringUntilDate: raw.RecurringUntilDate,
		MonthIndex:         month,
		Year:               year,
		SeriesID:           raw.SeriesID,
		Structure:          plan.Structure(raw.Structure),
		Status:             plan.Status(raw.Status),
		Currency:           raw.Currency,
		RecurringMode:      plan.RecurringMode(raw.RecurringMode),
	}

	switch {
	case raw.CategoryIDs != "":
		for _, id := range strings.Split(raw.CategoryIDs, ",") {
			if id != "" {
				it.CategoryIDs = append(it.CategoryIDs, id)
			}
		}
	case raw.LegacyCategoryID != "":
		it.CategoryIDs = []string{raw.LegacyCategoryID}
	}

	if raw.Installments != "" {
		n, err := strconv.Atoi(raw.Installments)
		if err != nil {
			return it, fmt.Errorf("invalid Installments %q", raw.Installments)
		}

		it.Installments = n
	}

	if raw.InstallmentIndex != "" {
		n, err := strconv.Atoi(raw.InstallmentIndex)
		if err != nil {
			return it, fmt.Errorf("invalid InstallmentIndex %q", raw.InstallmentIndex)
		}

		it.InstallmentIndex = n
	}

	for _, rawSub := range raw.SubItems {
		sub, err := decodeSubItem(rawSub)
		if err != nil {
			return it, err
		}

		it.SubItems = append(it.SubItems, sub)
	}

	return it, nil
}

func decodeSubItem(raw xmlSubItem) (plan.SubItem, error) {
	var sub plan.SubItem

	price, err := strconv.ParseFloat(raw.Price, 64)
	if err != nil || price < 0 {
		return sub, fmt.Errorf("sub-item %q: invalid Price %q", raw.Name, raw.Price)
	}

	sub = plan.SubItem{
		ID:          raw.ID,
		Name:        raw.Name,
		Price:       price,
		Description: raw.Description,
	}

	if raw.Quantity != "" {
		q, err := strconv.Atoi(raw.Quantity)
		if err != nil {
			return sub, fmt.Errorf("sub-item %q: invalid Quantity %q", raw.Name, raw.Quantity)
		}

		sub.Quantity = q
	}

	return sub, nil
}
