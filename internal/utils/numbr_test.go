package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBRL(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{name: "currency with thousands", in: "R$ 1.234,56", want: 1234.56},
		{name: "plain comma decimal", in: "41,50", want: 41.50},
		{name: "currency no space", in: "R$41,50", want: 41.50},
		{name: "thousands without currency", in: "1.234,56", want: 1234.56},
		{name: "dot decimal", in: "12.5", want: 12.5},
		{name: "dot thousands", in: "1.234", want: 1234},
		{name: "several dots", in: "1.234.567", want: 1234567},
		{name: "nbsp", in: "R$\u00a01.000,00", want: 1000},
		{name: "empty", in: "", want: 0},
		{name: "dash", in: "-", want: 0},
		{name: "zero", in: "0", want: 0},
		{name: "garbage", in: "abc", want: 0},
		{name: "trailing text", in: "15,90 BRL", want: 15.90},
		{name: "negative", in: "-3,25", want: -3.25},
		{name: "float passes through", in: 16.5, want: 16.5},
		{name: "int passes through", in: 18, want: 18},
		{name: "nil", in: nil, want: 0},
		{name: "unsupported type", in: []string{"1"}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParseBRL(tc.in), 1e-9)
		})
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "R$ 72,50", FormatBRL(72.5))
	assert.Equal(t, "R$ 1.000.000,00", FormatBRL(1e6))
	assert.Equal(t, "-R$ 4,00", FormatBRL(-4))
}

func TestMoneyKeepsCents(t *testing.T) {
	net := Money(100).Sub(Money(12.5))
	assert.Equal(t, "87.5", net.String())
	assert.Equal(t, 0.3, Money(0.1).Add(Money(0.2)).InexactFloat64())
}
