package appstate

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/events"
	"github.com/NetLive5/weblarek/pkg/errors"
)

type recorded struct {
	name    events.Name
	payload any
}

func newTestState(t *testing.T) (*AppState, *[]recorded) {
	t.Helper()
	bus := events.NewBus()
	var log []recorded
	bus.OnAll(func(name events.Name, payload any) {
		log = append(log, recorded{name: name, payload: payload})
	})
	return New(bus, nil), &log
}

func priced(id string, price int64) domain.Item {
	return domain.Item{ID: id, Title: "Item " + id, Price: decimal.NewNullDecimal(decimal.NewFromInt(price))}
}

func priceless(id string) domain.Item {
	return domain.Item{ID: id, Title: "Item " + id}
}

func names(log []recorded) []events.Name {
	out := make([]events.Name, len(log))
	for i, r := range log {
		out[i] = r.name
	}
	return out
}

func TestSetCatalog_CopiesAndEmits(t *testing.T) {
	s, log := newTestState(t)
	items := []domain.Item{priced("a", 100), priceless("b")}

	s.SetCatalog(items)
	items[0].Title = "mutated"

	require.Len(t, *log, 1)
	assert.Equal(t, events.EventItemsChanged, (*log)[0].name)
	ev := (*log)[0].payload.(domain.CatalogChangeEvent)
	assert.Len(t, ev.Catalog, 2)
	assert.Equal(t, "Item a", s.Catalog()[0].Title)
}

func TestSetPreview(t *testing.T) {
	s, log := newTestState(t)
	item := priced("a", 10)

	s.SetPreview(item)

	id, ok := s.Preview()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	require.Len(t, *log, 1)
	assert.Equal(t, events.EventPreviewChanged, (*log)[0].name)
	assert.Equal(t, item, (*log)[0].payload)

	s.ClearPreview()
	_, ok = s.Preview()
	assert.False(t, ok)
}

func TestToggleOrderedLot_Deduplicates(t *testing.T) {
	s, _ := newTestState(t)

	s.ToggleOrderedLot("a", true)
	s.ToggleOrderedLot("b", true)
	s.ToggleOrderedLot("a", true)
	assert.Equal(t, []string{"a", "b"}, s.Order().Items)

	s.ToggleOrderedLot("missing", false)
	assert.Equal(t, []string{"a", "b"}, s.Order().Items)

	s.ToggleOrderedLot("a", false)
	s.ToggleOrderedLot("a", false)
	assert.Equal(t, []string{"b"}, s.Order().Items)
}

func TestTotal_TreatsMissingPricesAsZero(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 100), priceless("b")})

	s.ToggleOrderedLot("a", true)
	s.ToggleOrderedLot("b", true)
	s.ToggleOrderedLot("c", true)

	assert.True(t, decimal.NewFromInt(100).Equal(s.Total()), "got %s", s.Total())
}

func TestValidateOrder(t *testing.T) {
	s, log := newTestState(t)

	require.NoError(t, s.SetOrderField(domain.FieldPayment, "cash"))
	*log = nil

	assert.False(t, s.ValidateOrder())
	errs := s.FormErrors()
	assert.Equal(t, "Address is required", errs[domain.FieldAddress])
	assert.NotContains(t, errs, domain.FieldPayment)

	require.Len(t, *log, 1)
	assert.Equal(t, events.EventOrderFormErrors, (*log)[0].name)
	assert.Equal(t, domain.FormErrors{domain.FieldAddress: "Address is required"}, (*log)[0].payload)

	require.NoError(t, s.SetOrderField(domain.FieldAddress, "Main st. 1"))
	assert.True(t, s.ValidateOrder())
}

func TestValidateContactInfo_IndependentOfOrderGroup(t *testing.T) {
	s, _ := newTestState(t)
	require.NoError(t, s.SetOrderField(domain.FieldPayment, "card"))
	orderErrorsBefore := s.FormErrors().Join(domain.FieldPayment, domain.FieldAddress)

	require.NoError(t, s.SetOrderField(domain.FieldEmail, "buyer@example.com"))

	assert.Equal(t, orderErrorsBefore, s.FormErrors().Join(domain.FieldPayment, domain.FieldAddress))
	assert.Equal(t, "Phone is required", s.FormErrors()[domain.FieldPhone])
	assert.NotContains(t, s.FormErrors(), domain.FieldEmail)
}

func TestSetOrderField_EmitsReadyEvents(t *testing.T) {
	s, log := newTestState(t)

	require.NoError(t, s.SetOrderField(domain.FieldPayment, "card"))
	assert.Equal(t, []events.Name{events.EventContactsFormErrors, events.EventOrderFormErrors}, names(*log))

	*log = nil
	require.NoError(t, s.SetOrderField(domain.FieldAddress, "Main st. 1"))
	assert.Equal(t, []events.Name{
		events.EventContactsFormErrors,
		events.EventOrderFormErrors,
		events.EventOrderReady,
	}, names(*log))
	ready := (*log)[2].payload.(domain.Order)
	assert.Equal(t, "Main st. 1", ready.Address)

	*log = nil
	require.NoError(t, s.SetOrderField(domain.FieldEmail, "buyer@example.com"))
	require.NoError(t, s.SetOrderField(domain.FieldPhone, "+70000000000"))
	assert.Contains(t, names(*log), events.EventContactsReady)
	assert.Equal(t, domain.OrderReadyForOrder, s.Stage())
}

func TestSetOrderField_UnknownField(t *testing.T) {
	s, log := newTestState(t)

	err := s.SetOrderField("coupon", "FREE")

	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.Contains(t, verr.Fields, "coupon")
	assert.Empty(t, *log)
}

func TestClearBasket(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 50), priced("b", 25)})
	s.AddToBasket(priced("a", 50))
	s.AddToBasket(priced("b", 25))
	s.SetItems()
	require.True(t, decimal.NewFromInt(75).Equal(s.Total()))

	s.ClearBasket()

	assert.Zero(t, s.BasketAmount())
	assert.True(t, s.Total().IsZero())
	assert.Empty(t, s.Order().Items)
}

func TestBasket_PricelessItemScenario(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 50), priceless("b")})

	assert.True(t, s.AddToBasket(s.Catalog()[0]))
	assert.True(t, s.AddToBasket(s.Catalog()[1]))

	assert.Equal(t, 2, s.BasketAmount())
	assert.True(t, decimal.NewFromInt(50).Equal(s.TotalBasketPrice()), "got %s", s.TotalBasketPrice())
}

func TestAddToBasket_KeyedByID(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 50)})

	assert.True(t, s.AddToBasket(priced("a", 50)))
	assert.False(t, s.AddToBasket(priced("a", 50)))
	assert.Equal(t, 1, s.BasketAmount())

	item, ok := s.CatalogItem("a")
	require.True(t, ok)
	assert.True(t, item.Selected)
	assert.True(t, s.Basket()[0].Selected)
}

func TestDeleteFromBasket(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 50), priced("b", 10)})
	s.AddToBasket(priced("a", 50))
	s.AddToBasket(priced("b", 10))

	assert.True(t, s.DeleteFromBasket("a"))
	assert.False(t, s.DeleteFromBasket("a"))

	require.Len(t, s.Basket(), 1)
	assert.Equal(t, "b", s.Basket()[0].ID)
	item, _ := s.CatalogItem("a")
	assert.False(t, item.Selected)
}

func TestSetItems_OverwritesOrderItems(t *testing.T) {
	s, _ := newTestState(t)
	s.ToggleOrderedLot("stale", true)
	s.AddToBasket(priced("a", 1))
	s.AddToBasket(priced("b", 2))

	s.SetItems()

	assert.Equal(t, []string{"a", "b"}, s.Order().Items)
}

func TestRefreshOrder_KeepsCatalogAndBasket(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 5)})
	s.AddToBasket(priced("a", 5))
	require.NoError(t, s.SetOrderField(domain.FieldEmail, "buyer@example.com"))
	s.SetItems()
	s.SetTotal(decimal.NewFromInt(5))
	s.MarkSubmitted()
	require.Equal(t, domain.OrderSubmitted, s.Stage())

	s.RefreshOrder()

	assert.Equal(t, domain.NewOrder(), s.Order())
	assert.Equal(t, domain.OrderEmpty, s.Stage())
	assert.Len(t, s.Catalog(), 1)
	assert.Equal(t, 1, s.BasketAmount())
}

func TestClearSelection(t *testing.T) {
	s, _ := newTestState(t)
	s.SetCatalog([]domain.Item{priced("a", 5), priced("b", 5)})
	s.AddToBasket(priced("a", 5))
	s.ClearBasket()

	item, _ := s.CatalogItem("a")
	assert.True(t, item.Selected, "ClearBasket leaves selection flags")

	s.ClearSelection()
	item, _ = s.CatalogItem("a")
	assert.False(t, item.Selected)
}

func TestStage(t *testing.T) {
	s, _ := newTestState(t)
	assert.Equal(t, domain.OrderEmpty, s.Stage())

	require.NoError(t, s.SetOrderField(domain.FieldPayment, "cash"))
	assert.Equal(t, domain.OrderEditing, s.Stage())

	require.NoError(t, s.SetOrderField(domain.FieldAddress, "Main st. 1"))
	assert.Equal(t, domain.OrderReadyForContacts, s.Stage())

	s.MarkSubmitted()
	assert.Equal(t, domain.OrderSubmitted, s.Stage())
	s.AbortSubmit()
	assert.Equal(t, domain.OrderReadyForContacts, s.Stage())
}
