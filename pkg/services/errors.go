package services

import "github.com/pkg/errors"

var (
	// ErrEmptyCart is returned when a checkout is started or completed with no
	// cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidStep is returned when an operation is invoked outside the step
	// it belongs to.
	ErrInvalidStep = errors.New("operation not allowed in current checkout step")

	// ErrCheckoutCompleted is returned when a flow is used after its order was
	// placed.
	ErrCheckoutCompleted = errors.New("checkout already completed")

	// ErrOrderInFlight is returned when PlaceOrder is called while another
	// placement on the same flow is still running.
	ErrOrderInFlight = errors.New("order placement already in progress")

	// ErrCheckoutNotFound is returned when no active flow exists for an owner.
	ErrCheckoutNotFound = errors.New("no active checkout session")

	// ErrInvalidPaymentMethod is returned for a method outside the supported set.
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
)
