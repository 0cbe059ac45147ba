package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	pricelessLabel = "Priceless"
	currencySuffix = " synapses"
)

// FormatPrice renders an amount with its integer digits grouped in threes, e.g. "10 000"
func FormatPrice(amount decimal.Decimal) string {
	s := amount.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// SynapsesLabel is FormatPrice plus the currency, e.g. "750 synapses"
func SynapsesLabel(amount decimal.Decimal) string {
	return FormatPrice(amount) + currencySuffix
}

// PriceLabel renders a nullable item price; a null price reads "Priceless"
func PriceLabel(price decimal.NullDecimal) string {
	if !price.Valid {
		return pricelessLabel
	}
	return SynapsesLabel(price.Decimal)
}
