package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// The shop API speaks plain JSON numbers for prices and totals, while
// decimal quotes them by default. Types crossing that boundary marshal
// their amounts through these helpers.

func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func nullableNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := jsonNumber(d.Decimal)
	return &n
}

// Item is one catalog entry (a "lot") as served by the shop API
type Item struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"` // null = priceless, not purchasable
	Selected    bool                `json:"selected"`
}

// MarshalJSON writes the price as a JSON number, or null
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Price *json.Number `json:"price"`
	}{plain(i), nullableNumber(i.Price)})
}

// Purchasable reports whether the item has a price
func (i Item) Purchasable() bool {
	return i.Price.Valid
}

// PriceOrZero returns the price, treating a null price as zero
func (i Item) PriceOrZero() decimal.Decimal {
	if !i.Price.Valid {
		return decimal.Zero
	}
	return i.Price.Decimal
}

// DescriptionLines splits a multi-line description the way the preview card shows it
func (i Item) DescriptionLines() []string {
	if i.Description == "" {
		return nil
	}
	return strings.Split(i.Description, "\n")
}

// CatalogChangeEvent is the payload of EventItemsChanged
type CatalogChangeEvent struct {
	Catalog []Item `json:"catalog"`
}

// ListResponse is the shop API list envelope
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// OrderForm holds the user-editable checkout fields
type OrderForm struct {
	Payment string `json:"payment"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Get returns the value of a form field
func (f OrderForm) Get(field Field) string {
	switch field {
	case FieldPayment:
		return f.Payment
	case FieldAddress:
		return f.Address
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	default:
		return ""
	}
}

// Set writes a form field; it reports false for unknown fields
func (f *OrderForm) Set(field Field, value string) bool {
	switch field {
	case FieldPayment:
		f.Payment = value
	case FieldAddress:
		f.Address = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	default:
		return false
	}
	return true
}

// Order is the checkout payload posted to the shop API
type Order struct {
	OrderForm
	Items []string            `json:"items"`
	Total decimal.NullDecimal `json:"total"`
}

// NewOrder returns an order in its empty-default shape
func NewOrder() Order {
	return Order{Items: []string{}}
}

// MarshalJSON writes the total as a JSON number, or null
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		Total *json.Number `json:"total"`
	}{plain(o), nullableNumber(o.Total)})
}

// Clone returns a copy that shares no slices with o
func (o Order) Clone() Order {
	out := o
	out.Items = append([]string{}, o.Items...)
	return out
}

// OrderResult is what the shop API returns for an accepted order
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

func (r OrderResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string      `json:"id"`
		Total json.Number `json:"total"`
	}{r.ID, jsonNumber(r.Total)})
}

// FormErrors maps an order field to a human-readable message
type FormErrors map[Field]string

// Join returns the messages for the given fields joined with "; ", skipping fields without errors
func (e FormErrors) Join(fields ...Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if msg := e[f]; msg != "" {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Has reports whether any of the given fields has an error
func (e FormErrors) Has(fields ...Field) bool {
	for _, f := range fields {
		if e[f] != "" {
			return true
		}
	}
	return false
}

// FieldChange is a single input edit in one of the checkout forms
type FieldChange struct {
	Form  FormName `json:"form"`
	Field Field    `json:"field"`
	Value string   `json:"value"`
}
