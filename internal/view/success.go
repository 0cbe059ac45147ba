package view

import (
	"github.com/shopspring/decimal"
)

// SuccessSnapshot is the purchase confirmation
type SuccessSnapshot struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Success confirms a purchase and shows how much was charged
type Success struct {
	actions     *Actions
	description string
}

// NewSuccess creates the panel; actions.OnClick runs when its close button is pressed
func NewSuccess(actions *Actions) *Success {
	return &Success{actions: actions}
}

// Render shows the charged total
func (s *Success) Render(total decimal.Decimal) *Success {
	s.description = "Written off " + SynapsesLabel(total)
	return s
}

func (s *Success) Description() string { return s.description }

// Close presses the close button
func (s *Success) Close() {
	s.actions.click()
}

func (s *Success) ViewName() string { return "success" }

func (s *Success) Snapshot() any {
	return SuccessSnapshot{Title: "Order placed", Description: s.description}
}
