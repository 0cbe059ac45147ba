package view

import (
	"github.com/shopspring/decimal"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/pkg/errors"
)

const orderButtonLabel = "Place order"

// BasketItemState is one numbered basket row
type BasketItemState struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// BasketItem is a basket row with a delete button
type BasketItem struct {
	actions *Actions
	state   BasketItemState
}

// NewBasketItem creates a row; actions.OnClick runs when its delete button is pressed
func NewBasketItem(actions *Actions) *BasketItem {
	return &BasketItem{actions: actions}
}

// Render fills the row from item with its 1-based position
func (r *BasketItem) Render(item domain.Item, index int) BasketItemState {
	r.state = BasketItemState{
		ID:    item.ID,
		Index: index,
		Title: item.Title,
		Price: PriceLabel(item.Price),
	}
	return r.state
}

func (r *BasketItem) State() BasketItemState { return r.state }

// BasketSnapshot is the rendered basket
type BasketSnapshot struct {
	Items  []BasketItemState `json:"items"`
	Price  string            `json:"price"`
	Button ButtonState       `json:"button"`
}

// Basket lists the chosen items with their total and the order button
type Basket struct {
	events         events.Emitter
	rows           []*BasketItem
	price          string
	buttonDisabled bool
}

// NewBasket creates an empty basket with the order button disabled
func NewBasket(emitter events.Emitter) *Basket {
	return &Basket{
		events:         emitter,
		price:          SynapsesLabel(decimal.Zero),
		buttonDisabled: true,
	}
}

// SetList replaces the rows; the order button is enabled only for a non-empty list
func (b *Basket) SetList(rows []*BasketItem) {
	b.rows = append([]*BasketItem(nil), rows...)
	b.buttonDisabled = len(rows) == 0
}

// SetPrice updates the total label
func (b *Basket) SetPrice(total decimal.Decimal) {
	b.price = SynapsesLabel(total)
}

// DisableButton disables the order button
func (b *Basket) DisableButton() {
	b.buttonDisabled = true
}

// ClickOrder presses the order button and emits EventBasketOrder
func (b *Basket) ClickOrder() error {
	if b.buttonDisabled {
		return errDisabled("order button")
	}
	b.events.Emit(events.EventBasketOrder, nil)
	return nil
}

// ClickDelete presses the delete button of the row showing id.
// The row leaves the list before its action runs; remaining rows are renumbered.
func (b *Basket) ClickDelete(id string) error {
	for i, r := range b.rows {
		if r.state.ID != id {
			continue
		}
		b.rows = append(b.rows[:i:i], b.rows[i+1:]...)
		b.refreshIndices()
		r.actions.click()
		return nil
	}
	return &errors.ErrNotFound{Resource: "basket item", ID: id}
}

func (b *Basket) refreshIndices() {
	for i, r := range b.rows {
		r.state.Index = i + 1
	}
}

func (b *Basket) ViewName() string { return "basket" }

// Snapshot returns the rendered basket
func (b *Basket) Snapshot() any {
	items := make([]BasketItemState, 0, len(b.rows))
	for _, r := range b.rows {
		items = append(items, r.State())
	}
	return BasketSnapshot{
		Items:  items,
		Price:  b.price,
		Button: ButtonState{Label: orderButtonLabel, Disabled: b.buttonDisabled},
	}
}
