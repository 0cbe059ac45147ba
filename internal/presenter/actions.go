package presenter

import (
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/view"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// The methods below are user interactions, checked against the current
// checkout step before being handed to the views.

// guard allows a move to the next step
func (p *Presenter) guard(next domain.CheckoutStep) error {
	if !p.step.CanTransitionTo(next) {
		return &errors.ErrInvalidStateTransition{From: p.step, To: next}
	}
	return nil
}

// within allows an action that belongs to the step currently shown
func (p *Presenter) within(step domain.CheckoutStep) error {
	if p.step != step {
		return &errors.ErrInvalidStateTransition{From: p.step, To: step}
	}
	return nil
}

// SelectCard clicks a catalog card, which opens its preview once the item is fetched
func (p *Presenter) SelectCard(id string) error {
	if err := p.guard(domain.StepPreview); err != nil {
		return err
	}
	return p.views.Page.ClickCard(id)
}

// BuyPreview presses the buy button on the open preview
func (p *Presenter) BuyPreview() error {
	if err := p.within(domain.StepPreview); err != nil {
		return err
	}
	if p.preview == nil {
		return &errors.ErrNotFound{Resource: "preview", ID: ""}
	}
	return p.preview.Click()
}

// OpenBasket presses the basket button in the header
func (p *Presenter) OpenBasket() error {
	if err := p.guard(domain.StepBasket); err != nil {
		return err
	}
	p.views.Page.ClickBasket()
	return nil
}

// RemoveFromBasket presses delete on a basket row
func (p *Presenter) RemoveFromBasket(id string) error {
	if err := p.within(domain.StepBasket); err != nil {
		return err
	}
	return p.views.Basket.ClickDelete(id)
}

// Checkout presses the basket's order button
func (p *Presenter) Checkout() error {
	if err := p.guard(domain.StepOrder); err != nil {
		return err
	}
	return p.views.Basket.ClickOrder()
}

func (p *Presenter) form(name domain.FormName) (*view.Form, domain.CheckoutStep, error) {
	switch name {
	case domain.FormOrder:
		return p.views.Order.Form, domain.StepOrder, nil
	case domain.FormContacts:
		return p.views.Contacts, domain.StepContacts, nil
	default:
		return nil, "", &errors.ErrNotFound{Resource: "form", ID: string(name)}
	}
}

// Input types into a form field
func (p *Presenter) Input(name domain.FormName, field domain.Field, value string) error {
	form, step, err := p.form(name)
	if err != nil {
		return err
	}
	if err := p.within(step); err != nil {
		return err
	}
	return form.Input(field, value)
}

// SelectPayment presses one of the order form's payment buttons
func (p *Presenter) SelectPayment(method domain.PaymentMethod) error {
	if err := p.within(domain.StepOrder); err != nil {
		return err
	}
	return p.views.Order.SelectPayment(method)
}

// Submit presses a form's submit button
func (p *Presenter) Submit(name domain.FormName) error {
	form, step, err := p.form(name)
	if err != nil {
		return err
	}
	if err := p.within(step); err != nil {
		return err
	}
	if name == domain.FormContacts && p.state.Stage() == domain.OrderSubmitted {
		return &errors.ErrConflict{Message: "order is already being submitted"}
	}
	return form.Submit()
}

// CloseModal presses the modal's close button
func (p *Presenter) CloseModal() {
	p.views.Modal.Close()
}

// CloseSuccess presses the close button on the purchase confirmation
func (p *Presenter) CloseSuccess() error {
	if err := p.within(domain.StepSuccess); err != nil {
		return err
	}
	p.views.Success.Close()
	return nil
}
