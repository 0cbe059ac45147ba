package presenter

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/internal/view"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// LoadCatalog fetches the catalog and publishes it through the state.
// A response overtaken by a later LoadCatalog is dropped.
func (p *Presenter) LoadCatalog() {
	p.catalogGen++
	gen := p.catalogGen

	p.sched.Go(func(ctx context.Context) func() {
		items, err := p.shop.GetLotList(ctx)
		return func() {
			if gen != p.catalogGen {
				p.logger.Debug("Dropping stale catalog response")
				return
			}
			if err != nil {
				p.logger.Error("Failed to load catalog", zap.Error(err))
				return
			}
			p.state.SetCatalog(items)
		}
	})
}

func (p *Presenter) onItemsChanged(ev domain.CatalogChangeEvent) {
	cards := make([]*view.Card, 0, len(ev.Catalog))
	for _, item := range ev.Catalog {
		item := item
		card := view.NewCard(view.CardCatalog, &view.Actions{OnClick: func() {
			p.bus.Emit(events.EventCardSelect, item)
		}})
		card.Render(item)
		cards = append(cards, card)
	}
	p.views.Page.SetCatalog(cards)
}

func (p *Presenter) onCardSelect(item domain.Item) {
	p.state.SetPreview(item)
}

// onPreviewChanged fetches the full item before showing it. Selecting another
// card or closing the modal while the fetch is in flight makes it stale.
func (p *Presenter) onPreviewChanged(item domain.Item) {
	p.previewGen++
	gen := p.previewGen

	p.sched.Go(func(ctx context.Context) func() {
		full, err := p.shop.GetLotItem(ctx, item.ID)
		return func() {
			if gen != p.previewGen {
				p.logger.Debug("Dropping stale preview response", zap.String("item_id", item.ID))
				return
			}
			if err != nil {
				p.logger.Error("Failed to load item", zap.String("item_id", item.ID), zap.Error(err))
				return
			}
			item.Description = full.Description
			p.showPreview(item)
		}
	})
}

func (p *Presenter) showPreview(item domain.Item) {
	if current, ok := p.state.CatalogItem(item.ID); ok {
		item.Selected = current.Selected
	}
	item.Selected = item.Selected || p.state.InBasket(item.ID)

	card := view.NewCard(view.CardPreview, &view.Actions{OnClick: func() {
		p.bus.Emit(events.EventCardBasket, item)
	}})
	card.Render(item)
	p.preview = card

	p.views.Modal.Render(card)
	p.step = domain.StepPreview
}

func (p *Presenter) onCardBasket(item domain.Item) {
	if !p.state.AddToBasket(item) {
		p.logger.Debug("Item already in basket", zap.String("item_id", item.ID))
	}
	p.views.Page.SetCounter(p.state.BasketAmount())
	p.views.Modal.Close()
}

func (p *Presenter) onBasketOpen() {
	basket := p.state.Basket()
	rows := make([]*view.BasketItem, 0, len(basket))
	for i, item := range basket {
		item := item
		row := view.NewBasketItem(&view.Actions{OnClick: func() {
			p.bus.Emit(events.EventBasketDeleteItem, item)
		}})
		row.Render(item, i+1)
		rows = append(rows, row)
	}
	p.views.Basket.SetList(rows)
	p.views.Basket.SetPrice(p.state.TotalBasketPrice())

	p.views.Modal.Render(p.views.Basket)
	p.focus(domain.StepBasket)
}

func (p *Presenter) onBasketDeleteItem(item domain.Item) {
	p.state.DeleteFromBasket(item.ID)
	p.views.Basket.SetPrice(p.state.TotalBasketPrice())
	p.views.Page.SetCounter(p.state.BasketAmount())
	if p.state.BasketAmount() == 0 {
		p.views.Basket.DisableButton()
	}
}

func (p *Presenter) onBasketOrder() {
	p.views.Modal.Render(p.views.Order.Render(view.FormState{}))
	p.focus(domain.StepOrder)
}

func (p *Presenter) onOrderFormErrors(errs domain.FormErrors) {
	p.views.Order.SetValid(!errs.Has(domain.FieldPayment, domain.FieldAddress))
	p.views.Order.SetErrors(errs.Join(domain.FieldPayment, domain.FieldAddress))
}

func (p *Presenter) onContactsFormErrors(errs domain.FormErrors) {
	p.views.Contacts.SetValid(!errs.Has(domain.FieldEmail, domain.FieldPhone))
	p.views.Contacts.SetErrors(errs.Join(domain.FieldPhone, domain.FieldEmail))
}

func (p *Presenter) onFieldChange(change domain.FieldChange) {
	if !change.Form.Owns(change.Field) {
		p.logger.Warn("Field change for a field the form does not own",
			zap.String("form", string(change.Form)),
			zap.String("field", string(change.Field)),
		)
		return
	}
	if err := p.state.SetOrderField(change.Field, change.Value); err != nil {
		p.logger.Warn("Failed to set order field", zap.String("field", string(change.Field)), zap.Error(err))
	}
}

func (p *Presenter) onOrderSubmit() {
	p.state.SetTotal(p.state.TotalBasketPrice())
	p.state.SetItems()

	p.views.Modal.Render(p.views.Contacts.Render(view.FormState{}))
	p.focus(domain.StepContacts)
}

// onContactsSubmit posts the order. On failure basket and order stay as they
// are and the server's message is shown under the contacts form.
func (p *Presenter) onContactsSubmit() {
	if p.state.Stage() == domain.OrderSubmitted {
		p.logger.Warn("Order submission already in flight")
		return
	}
	order := p.state.Order()
	p.state.MarkSubmitted()

	p.sched.Go(func(ctx context.Context) func() {
		result, err := p.shop.OrderLots(ctx, order)
		return func() {
			if err != nil {
				p.state.AbortSubmit()
				p.views.Contacts.SetErrors(failureMessage(err))
				p.logger.Error("Failed to place order", zap.Error(err))
				return
			}

			p.logger.Info("Order placed",
				zap.String("order_id", result.ID),
				zap.String("total", result.Total.String()),
			)
			p.bus.Emit(events.EventOrderSuccess, result)
			p.state.ClearBasket()
			p.state.RefreshOrder()
			if p.opts.ClearSelectionOnSuccess {
				p.state.ClearSelection()
			}
			p.views.Order.DisableButtons()
			p.views.Contacts.ClearFields()
			p.views.Order.ClearFields()
			p.views.Page.SetCounter(0)
		}
	})
}

func failureMessage(err error) string {
	var apiErr *errors.ErrAPI
	if stderrors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (p *Presenter) onOrderSuccess(result domain.OrderResult) {
	p.lastResult = &result
	p.views.Modal.Render(p.views.Success.Render(result.Total))
	p.focus(domain.StepSuccess)
}

func (p *Presenter) onModalClose() {
	p.views.Page.SetLocked(false)
	p.state.ClearPreview()
	p.focus(domain.StepCatalog)
}

// focus records what the storefront now shows. A preview still being fetched
// no longer matches it and is dropped when it arrives.
func (p *Presenter) focus(step domain.CheckoutStep) {
	p.step = step
	p.preview = nil
	p.previewGen++
}
