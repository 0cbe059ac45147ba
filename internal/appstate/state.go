// Package appstate holds the storefront's application state: the catalog, the
// basket, the in-progress order and the checkout form errors. It mutates
// itself in response to presenter calls and announces every change on the
// event bus.
package appstate

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// AppState is owned by one storefront instance and used from its loop only.
type AppState struct {
	events   events.Emitter
	logger   *zap.Logger
	validate *validator.Validate

	catalog []domain.Item
	basket  []domain.Item // ordered, at most one entry per item id
	order   domain.Order
	preview string

	orderErrors   domain.FormErrors
	contactErrors domain.FormErrors
	submitted     bool
}

// New creates an application state with an empty catalog and a default order
func New(emitter events.Emitter, logger *zap.Logger) *AppState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppState{
		events:        emitter,
		logger:        logger,
		validate:      newValidator(),
		order:         domain.NewOrder(),
		orderErrors:   domain.FormErrors{},
		contactErrors: domain.FormErrors{},
	}
}

// SetCatalog replaces the catalog with a copy of items and emits EventItemsChanged
func (s *AppState) SetCatalog(items []domain.Item) {
	s.catalog = make([]domain.Item, len(items))
	copy(s.catalog, items)

	s.logger.Debug("Catalog replaced", zap.Int("item_count", len(s.catalog)))
	s.events.Emit(events.EventItemsChanged, domain.CatalogChangeEvent{Catalog: s.Catalog()})
}

// Catalog returns a copy of the catalog
func (s *AppState) Catalog() []domain.Item {
	out := make([]domain.Item, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// CatalogItem looks up a catalog entry by id
func (s *AppState) CatalogItem(id string) (domain.Item, bool) {
	for _, it := range s.catalog {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// SetPreview records the previewed item and emits EventPreviewChanged with it
func (s *AppState) SetPreview(item domain.Item) {
	s.preview = item.ID
	s.events.Emit(events.EventPreviewChanged, item)
}

// ClearPreview forgets the previewed item without emitting
func (s *AppState) ClearPreview() {
	s.preview = ""
}

// Preview returns the id of the previewed item, if any
func (s *AppState) Preview() (string, bool) {
	return s.preview, s.preview != ""
}

// ToggleOrderedLot adds id to the order items (once) or removes every occurrence of it
func (s *AppState) ToggleOrderedLot(id string, included bool) {
	if included {
		for _, existing := range s.order.Items {
			if existing == id {
				return
			}
		}
		s.order.Items = append(s.order.Items, id)
		return
	}

	kept := make([]string, 0, len(s.order.Items))
	for _, existing := range s.order.Items {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	s.order.Items = kept
}

// Total sums catalog prices over the order items.
// Ids missing from the catalog and priceless items count as zero.
func (s *AppState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order.Items {
		if it, ok := s.CatalogItem(id); ok {
			total = total.Add(it.PriceOrZero())
		}
	}
	return total
}

// ClearBasket drops every order item and empties the basket.
// Catalog selection flags are left alone; see ClearSelection.
func (s *AppState) ClearBasket() {
	for _, id := range append([]string{}, s.order.Items...) {
		s.ToggleOrderedLot(id, false)
	}
	s.basket = nil
}

// ClearSelection resets the selected flag on every catalog item
func (s *AppState) ClearSelection() {
	for i := range s.catalog {
		s.catalog[i].Selected = false
	}
}

// AddToBasket appends item to the basket and marks it selected.
// It reports false when an item with the same id is already in the basket.
func (s *AppState) AddToBasket(item domain.Item) bool {
	if s.InBasket(item.ID) {
		return false
	}

	item.Selected = true
	s.basket = append(s.basket, item)
	s.setSelected(item.ID, true)
	return true
}

// DeleteFromBasket removes the item with id from the basket and clears its selected flag.
// It reports whether anything was removed.
func (s *AppState) DeleteFromBasket(id string) bool {
	kept := make([]domain.Item, 0, len(s.basket))
	for _, it := range s.basket {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(s.basket)
	s.basket = kept
	if removed {
		s.setSelected(id, false)
	}
	return removed
}

func (s *AppState) setSelected(id string, selected bool) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			s.catalog[i].Selected = selected
		}
	}
}

// InBasket reports whether an item with id is in the basket
func (s *AppState) InBasket(id string) bool {
	for _, it := range s.basket {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Basket returns a copy of the basket in insertion order
func (s *AppState) Basket() []domain.Item {
	out := make([]domain.Item, len(s.basket))
	copy(out, s.basket)
	return out
}

// BasketAmount returns the number of basket entries
func (s *AppState) BasketAmount() int {
	return len(s.basket)
}

// TotalBasketPrice sums basket prices, counting priceless items as zero
func (s *AppState) TotalBasketPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.basket {
		total = total.Add(it.PriceOrZero())
	}
	return total
}

// SetItems overwrites the order items with the basket ids
func (s *AppState) SetItems() {
	ids := make([]string, 0, len(s.basket))
	for _, it := range s.basket {
		ids = append(ids, it.ID)
	}
	s.order.Items = ids
}

// SetTotal records the amount to be charged for the order
func (s *AppState) SetTotal(total decimal.Decimal) {
	s.order.Total = decimal.NewNullDecimal(total)
}

// SetOrderField writes one order field and re-runs both validators.
// EventContactsReady and EventOrderReady fire for the groups that pass.
func (s *AppState) SetOrderField(field domain.Field, value string) error {
	if !s.order.Set(field, value) {
		return &errors.ErrValidation{
			Message: "unknown order field",
			Fields:  map[string]string{string(field): "unknown field"},
		}
	}
	s.submitted = false

	if s.ValidateContactInfo() {
		s.events.Emit(events.EventContactsReady, s.Order())
	}
	if s.ValidateOrder() {
		s.events.Emit(events.EventOrderReady, s.Order())
	}
	return nil
}

// ValidateOrder checks payment and address, stores and emits the result.
// It returns true when both are present.
func (s *AppState) ValidateOrder() bool {
	s.orderErrors = checkGroup(s.validate, deliveryDetails{
		Payment: s.order.Payment,
		Address: s.order.Address,
	})
	s.events.Emit(events.EventOrderFormErrors, s.copyErrors(s.orderErrors))
	return len(s.orderErrors) == 0
}

// ValidateContactInfo checks email and phone, stores and emits the result.
// It returns true when both are present.
func (s *AppState) ValidateContactInfo() bool {
	s.contactErrors = checkGroup(s.validate, contactDetails{
		Email: s.order.Email,
		Phone: s.order.Phone,
	})
	s.events.Emit(events.EventContactsFormErrors, s.copyErrors(s.contactErrors))
	return len(s.contactErrors) == 0
}

// FormErrors returns the current errors of both groups in one map
func (s *AppState) FormErrors() domain.FormErrors {
	out := s.copyErrors(s.orderErrors)
	for k, v := range s.contactErrors {
		out[k] = v
	}
	return out
}

func (s *AppState) copyErrors(src domain.FormErrors) domain.FormErrors {
	out := make(domain.FormErrors, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Order returns a copy of the in-progress order
func (s *AppState) Order() domain.Order {
	return s.order.Clone()
}

// MarkSubmitted flags the order as posted; any field edit or refresh clears the flag
func (s *AppState) MarkSubmitted() {
	s.submitted = true
}

// AbortSubmit clears the submitted flag after a failed post, keeping the order intact
func (s *AppState) AbortSubmit() {
	s.submitted = false
}

// Stage derives the order lifecycle stage from the current fields
func (s *AppState) Stage() domain.OrderStage {
	if s.submitted {
		return domain.OrderSubmitted
	}
	if s.order.OrderForm == (domain.OrderForm{}) && len(s.order.Items) == 0 {
		return domain.OrderEmpty
	}
	delivery := s.order.Payment != "" && s.order.Address != ""
	contacts := s.order.Email != "" && s.order.Phone != ""
	switch {
	case delivery && contacts:
		return domain.OrderReadyForOrder
	case delivery:
		return domain.OrderReadyForContacts
	default:
		return domain.OrderEditing
	}
}

// RefreshOrder resets the order to its empty defaults; catalog and basket are untouched
func (s *AppState) RefreshOrder() {
	s.order = domain.NewOrder()
	s.submitted = false
}
