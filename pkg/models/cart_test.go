package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantSelectionKeyIsOrderIndependent(t *testing.T) {
	a := VariantSelection{"size": "M", "color": "red"}
	b := VariantSelection{"color": "red", "size": "M"}

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "color=red;size=M", a.Key())
}

func TestVariantSelectionKeyEscapesSeparators(t *testing.T) {
	// Values carrying the separator characters must not fold distinct
	// selections onto one key.
	a := VariantSelection{"a": "1;b=2"}
	b := VariantSelection{"a": "1", "b": "2"}
	assert.NotEqual(t, a.Key(), b.Key())

	c := VariantSelection{"a": `1\`, "b": "2"}
	assert.NotEqual(t, b.Key(), c.Key())
	assert.NotEqual(t, a.Key(), c.Key())

	assert.Equal(t, `a=1\;b\=2`, a.Key())
}

func TestVariantSelectionKeyEmpty(t *testing.T) {
	assert.Equal(t, "", VariantSelection(nil).Key())
	assert.Equal(t, "", VariantSelection{}.Key())
}

func TestVariantSelectionEqual(t *testing.T) {
	a := VariantSelection{"size": "M"}

	assert.True(t, a.Equal(VariantSelection{"size": "M"}))
	assert.False(t, a.Equal(VariantSelection{"size": "L"}))
	assert.False(t, a.Equal(VariantSelection{"size": "M", "color": "red"}))
	assert.True(t, VariantSelection(nil).Equal(VariantSelection{}))
}

func TestCartItemLineKey(t *testing.T) {
	m := CartItem{ProductId: "p1", Variant: VariantSelection{"size": "M"}}
	l := CartItem{ProductId: "p1", Variant: VariantSelection{"size": "L"}}
	bare := CartItem{ProductId: "p1"}

	assert.NotEqual(t, m.LineKey(), l.LineKey())
	assert.NotEqual(t, m.LineKey(), bare.LineKey())
	assert.Equal(t, "p1|", bare.LineKey())
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{UnitPrice: 49.5, Quantity: 3}
	assert.InDelta(t, 148.5, item.LineTotal(), 1e-9)
}
