// Package presenter wires one storefront instance together: it subscribes
// the views to application state changes and turns user intents coming from
// the views into state mutations and shop API calls.
package presenter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/appstate"
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/internal/view"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// Shop is the part of the shop API the storefront uses
type Shop interface {
	GetLotList(ctx context.Context) ([]domain.Item, error)
	GetLotItem(ctx context.Context, id string) (domain.Item, error)
	OrderLots(ctx context.Context, order domain.Order) (domain.OrderResult, error)
}

// Views are the storefront's UI components. All are required.
type Views struct {
	Page     *view.Page
	Modal    *view.Modal
	Basket   *view.Basket
	Order    *view.OrderForm
	Contacts *view.Form
	Success  *view.Success
}

// DefaultViews builds the standard set of views on bus.
// Closing the success panel closes the modal.
func DefaultViews(bus events.Emitter) Views {
	modal := view.NewModal(bus)
	return Views{
		Page:     view.NewPage(bus),
		Modal:    modal,
		Basket:   view.NewBasket(bus),
		Order:    view.NewOrderForm(bus),
		Contacts: view.NewContacts(bus),
		Success:  view.NewSuccess(&view.Actions{OnClick: modal.Close}),
	}
}

func (v Views) check() error {
	switch {
	case v.Page == nil:
		return &errors.ErrMissingElement{Name: "page"}
	case v.Modal == nil:
		return &errors.ErrMissingElement{Name: "modal"}
	case v.Basket == nil:
		return &errors.ErrMissingElement{Name: "basket"}
	case v.Order == nil:
		return &errors.ErrMissingElement{Name: "order"}
	case v.Contacts == nil:
		return &errors.ErrMissingElement{Name: "contacts"}
	case v.Success == nil:
		return &errors.ErrMissingElement{Name: "success"}
	}
	return nil
}

// Options tune storefront behaviour
type Options struct {
	// ClearSelectionOnSuccess also resets catalog selection flags after a purchase
	ClearSelectionOnSuccess bool
}

// Presenter is one storefront instance. It is not safe for concurrent use;
// every call, and every continuation handed to the Scheduler, must run on the
// same logical thread.
type Presenter struct {
	bus    *events.Bus
	state  *appstate.AppState
	shop   Shop
	views  Views
	sched  Scheduler
	opts   Options
	logger *zap.Logger

	step    domain.CheckoutStep
	preview *view.Card

	// Bumped on every new request; a response whose token is stale is dropped
	previewGen uint64
	catalogGen uint64

	lastResult *domain.OrderResult
	subs       []events.Subscription
}

// New wires an existing bus, state and views into a storefront
func New(bus *events.Bus, state *appstate.AppState, shop Shop, views Views, sched Scheduler, opts Options, logger *zap.Logger) (*Presenter, error) {
	if err := views.check(); err != nil {
		return nil, err
	}
	if bus == nil || state == nil || shop == nil || sched == nil {
		return nil, fmt.Errorf("presenter: bus, state, shop and scheduler are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Presenter{
		bus:    bus,
		state:  state,
		shop:   shop,
		views:  views,
		sched:  sched,
		opts:   opts,
		logger: logger,
		step:   domain.StepCatalog,
	}
	p.wire()
	return p, nil
}

// Build creates a complete storefront with its own bus, state and default views
func Build(shop Shop, sched Scheduler, opts Options, logger *zap.Logger) (*Presenter, error) {
	bus := events.NewBus()
	return New(bus, appstate.New(bus, logger), shop, DefaultViews(bus), sched, opts, logger)
}

func (p *Presenter) wire() {
	p.subs = append(p.subs,
		p.bus.OnAll(func(name events.Name, _ any) {
			p.logger.Debug("Event", zap.String("event", name.String()))
		}),

		events.Listen(p.bus, events.EventItemsChanged, p.onItemsChanged),
		events.Listen(p.bus, events.EventCardSelect, p.onCardSelect),
		events.Listen(p.bus, events.EventPreviewChanged, p.onPreviewChanged),
		events.Listen(p.bus, events.EventCardBasket, p.onCardBasket),
		p.bus.On(events.EventBasketOpen, func(any) { p.onBasketOpen() }),
		events.Listen(p.bus, events.EventBasketDeleteItem, p.onBasketDeleteItem),
		p.bus.On(events.EventBasketOrder, func(any) { p.onBasketOrder() }),

		events.Listen(p.bus, events.EventOrderFormErrors, p.onOrderFormErrors),
		events.Listen(p.bus, events.EventContactsFormErrors, p.onContactsFormErrors),
		events.Listen(p.bus, events.EventFieldChange, p.onFieldChange),

		p.bus.On(events.EventOrderSubmit, func(any) { p.onOrderSubmit() }),
		p.bus.On(events.EventContactsSubmit, func(any) { p.onContactsSubmit() }),
		events.Listen(p.bus, events.EventOrderSuccess, p.onOrderSuccess),

		p.bus.On(events.EventModalOpen, func(any) { p.views.Page.SetLocked(true) }),
		p.bus.On(events.EventModalClose, func(any) { p.onModalClose() }),
	)
}

// Close detaches the storefront from its bus
func (p *Presenter) Close() {
	for _, sub := range p.subs {
		p.bus.Off(sub)
	}
	p.subs = nil
}

// Bus returns the storefront's event bus
func (p *Presenter) Bus() *events.Bus { return p.bus }

// State returns the storefront's application state
func (p *Presenter) State() *appstate.AppState { return p.state }

// Step returns what the storefront currently shows
func (p *Presenter) Step() domain.CheckoutStep { return p.step }

// LastResult returns the most recent accepted order, if any
func (p *Presenter) LastResult() (domain.OrderResult, bool) {
	if p.lastResult == nil {
		return domain.OrderResult{}, false
	}
	return *p.lastResult, true
}
