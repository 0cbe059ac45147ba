package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		event   Name
		want    bool
	}{
		{"any", Any, EventBasketOpen, true},
		{"prefix hit", Prefix("basket:"), EventBasketDeleteItem, true},
		{"prefix miss", Prefix("basket:"), EventCardBasket, false},
		{"glob hit", Glob("order.*:change"), "order.address:change", true},
		{"glob miss", Glob("order.*:change"), "contacts.email:change", false},
		{"malformed glob", Glob("order.[:change"), "order.[:change", false},
		{"regexp hit", MustRegexp(`^contacts\..*:change`), "contacts.phone:change", true},
		{"regexp miss", MustRegexp(`^contacts\..*:change`), "order.payment:change", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Match(tt.event))
		})
	}
}

func TestRegexp_InvalidExpression(t *testing.T) {
	_, err := Regexp("(")
	assert.Error(t, err)
	assert.Panics(t, func() { MustRegexp("(") })
}

func TestSubmitEvent(t *testing.T) {
	assert.Equal(t, EventOrderSubmit, SubmitEvent("order"))
	assert.Equal(t, EventContactsSubmit, SubmitEvent("contacts"))
}
