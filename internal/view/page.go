package view

import (
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// PageSnapshot is the page shell as the user sees it
type PageSnapshot struct {
	Counter int         `json:"counter"`
	Locked  bool        `json:"locked"`
	Catalog []CardState `json:"catalog"`
}

// Page is the shell around the modal: the basket counter, the catalog grid
// and the scroll lock held while a modal is open
type Page struct {
	events  events.Emitter
	counter int
	locked  bool
	cards   []*Card
}

// NewPage creates an empty page
func NewPage(emitter events.Emitter) *Page {
	return &Page{events: emitter}
}

func (p *Page) SetCounter(n int) { p.counter = n }

func (p *Page) Counter() int { return p.counter }

func (p *Page) SetLocked(locked bool) { p.locked = locked }

func (p *Page) Locked() bool { return p.locked }

// SetCatalog replaces the catalog grid
func (p *Page) SetCatalog(cards []*Card) {
	p.cards = append([]*Card(nil), cards...)
}

// ClickBasket is the basket button in the header
func (p *Page) ClickBasket() {
	p.events.Emit(events.EventBasketOpen, nil)
}

// ClickCard clicks the catalog tile of item id
func (p *Page) ClickCard(id string) error {
	for _, c := range p.cards {
		if c.ID() == id {
			return c.Click()
		}
	}
	return &errors.ErrNotFound{Resource: "card", ID: id}
}

// Snapshot returns the page state
func (p *Page) Snapshot() PageSnapshot {
	catalog := make([]CardState, 0, len(p.cards))
	for _, c := range p.cards {
		catalog = append(catalog, c.State())
	}
	return PageSnapshot{Counter: p.counter, Locked: p.locked, Catalog: catalog}
}
