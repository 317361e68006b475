package models

import (
	"fmt"
	"sort"
	"strings"
)

// VariantSelection maps a variant attribute (size, color, material, ...) to the
// chosen value. Two selections are equal when every pair matches.
type VariantSelection map[string]string

// variantEscaper keeps the pair and list separators unambiguous when they show
// up inside attribute names or values.
var variantEscaper = strings.NewReplacer(`\`, `\\`, "=", `\=`, ";", `\;`)

// Key returns a stable composite form of the selection, with attributes in
// sorted order. Separator characters inside attributes or values are escaped,
// so distinct selections always yield distinct keys. An empty or nil selection
// yields "".
func (v VariantSelection) Key() string {
	if len(v) == 0 {
		return ""
	}

	attrs := make([]string, 0, len(v))
	for attr := range v {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	pairs := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		pairs = append(pairs, fmt.Sprintf("%s=%s", variantEscaper.Replace(attr), variantEscaper.Replace(v[attr])))
	}

	return strings.Join(pairs, ";")
}

// Equal reports whether both selections pick the same value for every attribute.
func (v VariantSelection) Equal(other VariantSelection) bool {
	if len(v) != len(other) {
		return false
	}
	for attr, value := range v {
		if other[attr] != value {
			return false
		}
	}
	return true
}

type CartItem struct {
	ProductId string           `bson:"product_id" json:"productId" validate:"required"`
	Title     string           `bson:"title" json:"title"`
	Thumbnail string           `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Quantity  int              `bson:"quantity" json:"quantity" validate:"gte=1"`
	UnitPrice float64          `bson:"unit_price" json:"unitPrice"`
	Variant   VariantSelection `bson:"variant,omitempty" json:"variant,omitempty"`
}

// LineKey identifies the cart line. Two items belong to the same line exactly
// when product and variant selection match.
func (i CartItem) LineKey() string {
	return i.ProductId + "|" + i.Variant.Key()
}

// LineTotal is unit price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type CartItemRequest struct {
	ProductId string           `json:"productId" validate:"required"`
	Title     string           `json:"title" validate:"required"`
	UnitPrice float64          `json:"unitPrice" validate:"gte=0"`
	Quantity  int              `json:"quantity" validate:"gte=1"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	Variant   VariantSelection `json:"variant,omitempty"`
}

// CartSnapshot is the derived view of the cart, recomputed from the current
// lines on every read.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
}
