package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the persisted result of a completed checkout: a snapshot of the
// cart lines, the shipping and payment details, and the computed pricing.
type Order struct {
	Id          primitive.ObjectID `bson:"_id" json:"_id"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	OwnerId     string             `bson:"owner_id" json:"ownerId"`
	Items       []CartItem         `bson:"items" json:"items"`
	Shipping    ShippingInfo       `bson:"shipping" json:"shipping"`
	Payment     PaymentSnapshot    `bson:"payment" json:"payment"`
	Pricing     OrderPricing       `bson:"pricing" json:"pricing"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	ModifiedAt  time.Time          `bson:"modified_at" json:"modifiedAt"`
}

// PaymentSnapshot is what an order keeps of the payment details. Card numbers
// are reduced to their last four digits before persistence.
type PaymentSnapshot struct {
	Method         PaymentMethod `bson:"method" json:"method"`
	CardHolder     string        `bson:"card_holder,omitempty" json:"cardHolder,omitempty"`
	LastFourDigits string        `bson:"last_four_digits,omitempty" json:"lastFourDigits,omitempty"`
}
