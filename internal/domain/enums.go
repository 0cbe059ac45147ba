package domain

// Field names an editable order field
type Field string

const (
	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// IsValid checks if the field is one of the order form fields
func (f Field) IsValid() bool {
	switch f {
	case FieldPayment, FieldAddress, FieldEmail, FieldPhone:
		return true
	default:
		return false
	}
}

// FormName identifies a checkout form
type FormName string

const (
	// FormOrder - delivery step: payment method and address
	FormOrder FormName = "order"
	// FormContacts - contact step: email and phone
	FormContacts FormName = "contacts"
)

// IsValid checks if the form name is known
func (n FormName) IsValid() bool {
	return n == FormOrder || n == FormContacts
}

// Fields returns the fields a form edits, in display order
func (n FormName) Fields() []Field {
	switch n {
	case FormOrder:
		return []Field{FieldPayment, FieldAddress}
	case FormContacts:
		return []Field{FieldEmail, FieldPhone}
	default:
		return nil
	}
}

// Owns reports whether field belongs to the form
func (n FormName) Owns(field Field) bool {
	for _, f := range n.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// PaymentMethod is the value written to the payment field by the order form buttons
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// IsValid checks if the payment method is supported
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCard || p == PaymentCash
}

// Category values as the shop API sends them
const (
	CategorySoftSkill  = "софт-скил"
	CategoryHardSkill  = "хард-скил"
	CategoryOther      = "другое"
	CategoryButton     = "кнопка"
	CategoryAdditional = "дополнительное"
)

// CategoryModifier returns the card style modifier for a category, or "" when unknown
func CategoryModifier(category string) string {
	switch category {
	case CategorySoftSkill:
		return "soft"
	case CategoryHardSkill:
		return "hard"
	case CategoryOther:
		return "other"
	case CategoryAdditional:
		return "additional"
	case CategoryButton:
		return "button"
	default:
		return ""
	}
}

// CheckoutStep is what the storefront is currently showing
type CheckoutStep string

const (
	// StepCatalog - no modal, catalog page only
	StepCatalog CheckoutStep = "catalog"
	// StepPreview - item detail card in the modal
	StepPreview CheckoutStep = "preview"
	// StepBasket - basket list in the modal
	StepBasket CheckoutStep = "basket"
	// StepOrder - payment/address form
	StepOrder CheckoutStep = "order"
	// StepContacts - email/phone form
	StepContacts CheckoutStep = "contacts"
	// StepSuccess - purchase confirmation
	StepSuccess CheckoutStep = "success"
)

// IsValid checks if the step is valid
func (s CheckoutStep) IsValid() bool {
	switch s {
	case StepCatalog, StepPreview, StepBasket, StepOrder, StepContacts, StepSuccess:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if moving from s to next is a legal UI flow.
// Closing the modal (back to catalog) is always allowed.
func (s CheckoutStep) CanTransitionTo(next CheckoutStep) bool {
	if next == StepCatalog {
		return true
	}

	switch s {
	case StepCatalog:
		return next == StepPreview || next == StepBasket
	case StepPreview:
		return next == StepPreview
	case StepBasket:
		return next == StepOrder
	case StepOrder:
		return next == StepContacts
	case StepContacts:
		return next == StepSuccess
	case StepSuccess:
		return false
	default:
		return false
	}
}

// OrderStage is the lifecycle position of the in-progress order.
// Stages are derived from field contents; nothing locks the order against edits.
type OrderStage string

const (
	// OrderEmpty - default shape, nothing entered
	OrderEmpty OrderStage = "EMPTY"
	// OrderEditing - fields being filled, delivery details incomplete
	OrderEditing OrderStage = "EDITING"
	// OrderReadyForContacts - payment and address valid
	OrderReadyForContacts OrderStage = "READY_FOR_CONTACTS"
	// OrderReadyForOrder - contact details valid too, can be posted
	OrderReadyForOrder OrderStage = "READY_FOR_ORDER"
	// OrderSubmitted - posted to the shop API, awaiting the result
	OrderSubmitted OrderStage = "SUBMITTED"
)
