package view

import (
	"github.com/NetLive5/weblarek/internal/domain"
)

// CardKind selects the card template
type CardKind string

const (
	// CardCatalog is a catalog grid tile; the whole card is clickable
	CardCatalog CardKind = "catalog"
	// CardPreview is the detail card shown in the modal, with a buy button
	CardPreview CardKind = "preview"
)

const buyButtonLabel = "Add to basket"

// CardState is the rendered card
type CardState struct {
	ID               string       `json:"id"`
	Kind             CardKind     `json:"kind"`
	Title            string       `json:"title"`
	Category         string       `json:"category"`
	CategoryModifier string       `json:"category_modifier,omitempty"`
	Image            string       `json:"image"`
	Description      []string     `json:"description,omitempty"`
	Price            string       `json:"price"`
	Button           *ButtonState `json:"button,omitempty"`
}

// Card displays one catalog item
type Card struct {
	actions *Actions
	state   CardState
}

// NewCard creates an empty card of the given kind
func NewCard(kind CardKind, actions *Actions) *Card {
	c := &Card{actions: actions, state: CardState{Kind: kind}}
	if kind == CardPreview {
		c.state.Button = &ButtonState{Label: buyButtonLabel}
	}
	return c
}

// Render fills the card from item. Priceless items get a disabled buy button,
// and an already selected item cannot be bought twice.
func (c *Card) Render(item domain.Item) CardState {
	c.state.ID = item.ID
	c.state.Title = item.Title
	c.state.Image = item.Image
	c.state.Category = item.Category
	c.state.CategoryModifier = domain.CategoryModifier(item.Category)
	c.state.Price = PriceLabel(item.Price)
	if c.state.Kind == CardPreview {
		c.state.Description = item.DescriptionLines()
	}
	if c.state.Button != nil {
		c.state.Button.Disabled = !item.Purchasable()
	}
	c.SetSelected(item.Selected)
	return c.State()
}

// SetSelected disables the buy button for a selected item. It never re-enables a disabled button.
func (c *Card) SetSelected(selected bool) {
	if c.state.Button != nil && !c.state.Button.Disabled {
		c.state.Button.Disabled = selected
	}
}

// Click activates the card: the buy button on a preview, the tile itself in the catalog
func (c *Card) Click() error {
	if c.state.Button != nil && c.state.Button.Disabled {
		return errDisabled("buy button")
	}
	c.actions.click()
	return nil
}

// ID returns the id of the rendered item
func (c *Card) ID() string {
	return c.state.ID
}

// State returns a copy of the rendered card
func (c *Card) State() CardState {
	out := c.state
	if c.state.Button != nil {
		b := *c.state.Button
		out.Button = &b
	}
	if c.state.Description != nil {
		out.Description = append([]string(nil), c.state.Description...)
	}
	return out
}

func (c *Card) ViewName() string { return "card" }

func (c *Card) Snapshot() any { return c.State() }
