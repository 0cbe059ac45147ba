package events

// Storefront events. Payload types live in the domain package.
const (
	// State changes
	EventItemsChanged       Name = "items:changed"             // domain.CatalogChangeEvent
	EventPreviewChanged     Name = "preview:changed"           // domain.Item
	EventOrderFormErrors    Name = "orderFormErrors:change"    // domain.FormErrors
	EventContactsFormErrors Name = "contactsFormErrors:change" // domain.FormErrors
	EventOrderReady         Name = "order:ready"               // domain.Order
	EventContactsReady      Name = "contacts:ready"            // domain.Order

	// User intents
	EventCardSelect       Name = "card:select"       // domain.Item
	EventCardBasket       Name = "card:basket"       // domain.Item
	EventBasketOpen       Name = "basket:open"       // nil
	EventBasketDeleteItem Name = "basket:deleteItem" // domain.Item
	EventBasketOrder      Name = "basket:order"      // nil
	EventFieldChange      Name = "form:change"       // domain.FieldChange
	EventOrderSubmit      Name = "order:submit"      // nil
	EventContactsSubmit   Name = "contacts:submit"   // nil

	// Checkout outcome
	EventOrderSuccess Name = "order:success" // domain.OrderResult

	// Overlay lifecycle
	EventModalOpen  Name = "modal:open"  // nil
	EventModalClose Name = "modal:close" // nil
)

// SubmitEvent returns the submit event of a form, e.g. "order:submit".
func SubmitEvent(form string) Name {
	return Name(form + ":submit")
}
