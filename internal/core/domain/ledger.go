package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineItem is one row of an invoice or quote draft. Total is derived and
// recomputed on every mutation, never stored independently of its inputs.
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type ItemField string

const (
	ItemFieldName        ItemField = "name"
	ItemFieldDescription ItemField = "description"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldPrice       ItemField = "price"
)

func ParseItemField(s string) (ItemField, error) {
	switch ItemField(s) {
	case ItemFieldName, ItemFieldDescription, ItemFieldQuantity, ItemFieldPrice:
		return ItemField(s), nil
	default:
		return "", WrapError(ErrInvalidInput, "parse item field", fmt.Errorf("unknown item field %q", s))
	}
}

// Ledger owns the ordered line items of a draft. Insertion order is display
// order.
type Ledger struct {
	Items []LineItem `json:"items"`
}

// AddItem appends a zero-valued blank item. Existing items are untouched.
func (l *Ledger) AddItem() {
	l.Items = append(l.Items, LineItem{})
}

// UpdateItem stores a raw edit into one item. Numeric fields are parsed as
// decimals; empty or invalid input coerces to 0 and negative values clamp to
// 0. The item total is recomputed immediately.
func (l *Ledger) UpdateItem(index int, field ItemField, raw string) error {
	if index < 0 || index >= len(l.Items) {
		return WrapError(ErrInvalidInput, "update item", fmt.Errorf("item index %d out of range", index))
	}
	item := &l.Items[index]
	switch field {
	case ItemFieldName:
		item.Name = raw
	case ItemFieldDescription:
		item.Description = raw
	case ItemFieldQuantity:
		item.Quantity = ParseAmount(raw)
	case ItemFieldPrice:
		item.Price = ParseAmount(raw)
	default:
		return WrapError(ErrInvalidInput, "update item", fmt.Errorf("unknown item field %q", field))
	}
	item.Total = item.Quantity * item.Price
	return nil
}

// RemoveItem deletes one item, preserving the order of the rest.
func (l *Ledger) RemoveItem(index int) error {
	if index < 0 || index >= len(l.Items) {
		return WrapError(ErrInvalidInput, "remove item", fmt.Errorf("item index %d out of range", index))
	}
	l.Items = append(l.Items[:index], l.Items[index+1:]...)
	return nil
}

// ParseAmount turns free-form numeric input into a non-negative decimal.
// Empty or unparseable input is 0; negatives clamp to 0.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}

// Aggregate is the derived summary of a ledger.
type Aggregate struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeAggregate derives subtotal, tax and total from the current items.
// subtotal = sum(qty*price); tax = round2(subtotal*rate/100) when enabled;
// total = subtotal + tax - discount.
func ComputeAggregate(items []LineItem, taxEnabled bool, taxRate, discount float64) Aggregate {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Price
	}
	var tax float64
	if taxEnabled {
		tax = Round2(subtotal * taxRate / 100)
	}
	return Aggregate{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax - discount,
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
