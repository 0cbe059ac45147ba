package view

import (
	"fmt"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// FormState is what a presenter pushes into a form
type FormState struct {
	Valid  bool
	Errors string
}

// FormSnapshot is the rendered form
type FormSnapshot struct {
	Form    domain.FormName         `json:"form"`
	Values  map[domain.Field]string `json:"values"`
	Payment domain.PaymentMethod    `json:"payment,omitempty"`
	Valid   bool                    `json:"valid"`
	Errors  string                  `json:"errors"`
}

// Form is a checkout form with text inputs, an error line and a submit button.
// Every input emits EventFieldChange; submit emits "<form>:submit".
type Form struct {
	name   domain.FormName
	events events.Emitter
	inputs []domain.Field
	values map[domain.Field]string
	valid  bool
	errors string
}

// NewForm creates a form with the given text inputs
func NewForm(name domain.FormName, emitter events.Emitter, inputs ...domain.Field) *Form {
	return &Form{
		name:   name,
		events: emitter,
		inputs: inputs,
		values: make(map[domain.Field]string, len(inputs)),
	}
}

// NewContacts creates the email/phone form
func NewContacts(emitter events.Emitter) *Form {
	return NewForm(domain.FormContacts, emitter, domain.FieldEmail, domain.FieldPhone)
}

func (f *Form) Name() domain.FormName { return f.name }

// Input types value into the input named field
func (f *Form) Input(field domain.Field, value string) error {
	if !f.hasInput(field) {
		return &errors.ErrValidation{
			Message: fmt.Sprintf("form %s has no input %s", f.name, field),
			Fields:  map[string]string{string(field): "unknown input"},
		}
	}
	f.values[field] = value
	f.change(field, value)
	return nil
}

func (f *Form) hasInput(field domain.Field) bool {
	for _, in := range f.inputs {
		if in == field {
			return true
		}
	}
	return false
}

func (f *Form) change(field domain.Field, value string) {
	f.events.Emit(events.EventFieldChange, domain.FieldChange{Form: f.name, Field: field, Value: value})
}

// Submit presses the submit button, which is disabled while the form is invalid
func (f *Form) Submit() error {
	if !f.valid {
		return errDisabled(string(f.name) + " submit button")
	}
	f.events.Emit(events.SubmitEvent(string(f.name)), nil)
	return nil
}

func (f *Form) SetValid(valid bool) { f.valid = valid }

func (f *Form) Valid() bool { return f.valid }

func (f *Form) SetErrors(errs string) { f.errors = errs }

func (f *Form) Errors() string { return f.errors }

// Value returns what is typed into an input
func (f *Form) Value(field domain.Field) string { return f.values[field] }

// ClearFields empties every input
func (f *Form) ClearFields() {
	for k := range f.values {
		delete(f.values, k)
	}
}

// Render applies state and returns the form for hosting in the modal
func (f *Form) Render(state FormState) *Form {
	f.valid = state.Valid
	f.errors = state.Errors
	return f
}

func (f *Form) ViewName() string { return string(f.name) }

func (f *Form) Snapshot() any { return f.snapshot() }

func (f *Form) snapshot() FormSnapshot {
	values := make(map[domain.Field]string, len(f.inputs))
	for _, in := range f.inputs {
		values[in] = f.values[in]
	}
	return FormSnapshot{Form: f.name, Values: values, Valid: f.valid, Errors: f.errors}
}

// OrderForm is the delivery step: card/cash buttons plus the address input
type OrderForm struct {
	*Form
	payment domain.PaymentMethod
}

// NewOrderForm creates the delivery form
func NewOrderForm(emitter events.Emitter) *OrderForm {
	return &OrderForm{Form: NewForm(domain.FormOrder, emitter, domain.FieldAddress)}
}

// SelectPayment presses a payment button; it becomes the active one
func (o *OrderForm) SelectPayment(method domain.PaymentMethod) error {
	if !method.IsValid() {
		return &errors.ErrValidation{
			Message: fmt.Sprintf("unknown payment method %q", method),
			Fields:  map[string]string{string(domain.FieldPayment): "must be card or cash"},
		}
	}
	o.payment = method
	o.change(domain.FieldPayment, string(method))
	return nil
}

// Payment returns the active payment button, or ""
func (o *OrderForm) Payment() domain.PaymentMethod { return o.payment }

// DisableButtons clears the active payment button
func (o *OrderForm) DisableButtons() {
	o.payment = ""
}

// Render applies state and returns the form for hosting in the modal
func (o *OrderForm) Render(state FormState) *OrderForm {
	o.Form.Render(state)
	return o
}

func (o *OrderForm) Snapshot() any {
	s := o.snapshot()
	s.Payment = o.payment
	return s
}
