package models

// CheckoutStep is one station of the linear checkout flow.
type CheckoutStep string

const (
	CheckoutStepShipping CheckoutStep = "shipping"
	CheckoutStepPayment  CheckoutStep = "payment"
	CheckoutStepReview   CheckoutStep = "review"
)

// String representation (for logging)
func (s CheckoutStep) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodKlarna  PaymentMethod = "klarna"
	PaymentMethodSwish   PaymentMethod = "swish"
	PaymentMethodRevolut PaymentMethod = "revolut"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodKlarna, PaymentMethodSwish, PaymentMethodRevolut:
		return true
	default:
		return false
	}
}

// ShippingInfo holds the recipient details collected in the first checkout
// step. All fields are required before the flow may advance.
type ShippingInfo struct {
	Name        string `bson:"name" json:"name" validate:"required"`
	Email       string `bson:"email" json:"email" validate:"required,email"`
	Phone       string `bson:"phone" json:"phone" validate:"required"`
	Address     string `bson:"address" json:"address" validate:"required"`
	City        string `bson:"city" json:"city" validate:"required"`
	PostalCode  string `bson:"postal_code" json:"postalCode" validate:"required"`
	CountryCode string `bson:"country_code" json:"countryCode" validate:"required,len=2"`
}

// PaymentInfo carries the chosen method plus the card details that only apply
// when the method is card.
type PaymentInfo struct {
	Method      PaymentMethod `bson:"method" json:"method" validate:"required"`
	CardNumber  string        `bson:"card_number,omitempty" json:"cardNumber,omitempty"`
	CardHolder  string        `bson:"card_holder,omitempty" json:"cardHolder,omitempty"`
	ExpiryMonth string        `bson:"expiry_month,omitempty" json:"expiryMonth,omitempty"`
	ExpiryYear  string        `bson:"expiry_year,omitempty" json:"expiryYear,omitempty"`
	CVV         string        `bson:"-" json:"cvv,omitempty"`
}

// OrderPricing is a pure function of (subtotal, country); see the pricing
// service. All amounts are rounded to two decimal places.
type OrderPricing struct {
	Subtotal       float64 `bson:"subtotal" json:"subtotal"`
	TaxAmount      float64 `bson:"tax_amount" json:"taxAmount"`
	ShippingAmount float64 `bson:"shipping_amount" json:"shippingAmount"`
	TotalAmount    float64 `bson:"total_amount" json:"totalAmount"`
}
