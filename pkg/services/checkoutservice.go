package services

import (
	"context"
	"sync"

	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/models"

	creditcard "github.com/durango/go-credit-card"
)

// OrderPlacer persists a completed checkout. Implemented by OrderService; a
// mock stands in for it in tests.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error)
}

// CheckoutFlow walks one owner through shipping, payment and review in that
// order. Entered data survives backward navigation; the flow refuses to skip
// forward past an incomplete step.
type CheckoutFlow struct {
	mu        sync.Mutex
	ownerID   string
	cart      *CartStore
	placer    OrderPlacer
	step      models.CheckoutStep
	shipping  *models.ShippingInfo
	payment   *models.PaymentInfo
	placing   bool
	completed bool
}

// NewCheckoutFlow starts a flow at the shipping step. An empty cart is
// rejected up front.
func NewCheckoutFlow(ownerID string, cart *CartStore, placer OrderPlacer) (*CheckoutFlow, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	return &CheckoutFlow{
		ownerID: ownerID,
		cart:    cart,
		placer:  placer,
		step:    models.CheckoutStepShipping,
	}, nil
}

func (f *CheckoutFlow) Step() models.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *CheckoutFlow) ShippingInfo() *models.ShippingInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shipping
}

func (f *CheckoutFlow) PaymentInfo() *models.PaymentInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment
}

// SubmitShipping validates the shipping details and advances to payment.
func (f *CheckoutFlow) SubmitShipping(info models.ShippingInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return ErrCheckoutCompleted
	}
	if f.step != models.CheckoutStepShipping {
		return ErrInvalidStep
	}

	if err := common.Validate.Struct(&info); err != nil {
		return err
	}

	f.shipping = &info
	f.step = models.CheckoutStepPayment
	return nil
}

// SubmitPayment validates the payment details and advances to review. Card
// details are verified only when the method is card.
func (f *CheckoutFlow) SubmitPayment(info models.PaymentInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return ErrCheckoutCompleted
	}
	if f.step != models.CheckoutStepPayment {
		return ErrInvalidStep
	}

	if !models.IsValidPaymentMethod(info.Method) {
		return ErrInvalidPaymentMethod
	}

	if info.Method == models.PaymentMethodCard {
		card := creditcard.Card{
			Number:  info.CardNumber,
			Cvv:     info.CVV,
			Month:   info.ExpiryMonth,
			Year:    info.ExpiryYear,
			Company: creditcard.Company{},
		}

		if err := card.Validate(true); err != nil {
			return err
		}
	}

	f.payment = &info
	f.step = models.CheckoutStepReview
	return nil
}

// Back moves one step towards shipping, keeping entered data. From the
// shipping step the flow is exited entirely and exited is true; the caller
// navigates back to the cart.
func (f *CheckoutFlow) Back() (exited bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case models.CheckoutStepReview:
		f.step = models.CheckoutStepPayment
	case models.CheckoutStepPayment:
		f.step = models.CheckoutStepShipping
	case models.CheckoutStepShipping:
		return true
	}
	return false
}

// Pricing recomputes the order totals from the current cart subtotal and the
// shipping destination. Before shipping is submitted the default rate applies.
func (f *CheckoutFlow) Pricing() models.OrderPricing {
	f.mu.Lock()
	country := ""
	if f.shipping != nil {
		country = f.shipping.CountryCode
	}
	f.mu.Unlock()

	return CalculatePricing(f.cart.Total(), country)
}

// PlaceOrder builds the order from the accumulated state and hands it to the
// order placer. It is callable only from review, succeeds at most once, and
// stays in review when the placer fails so the owner can retry.
func (f *CheckoutFlow) PlaceOrder(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()

	if f.completed {
		f.mu.Unlock()
		return nil, ErrCheckoutCompleted
	}
	if f.placing {
		f.mu.Unlock()
		return nil, ErrOrderInFlight
	}
	if f.step != models.CheckoutStepReview || f.shipping == nil || f.payment == nil {
		f.mu.Unlock()
		return nil, ErrInvalidStep
	}

	snapshot := f.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}

	order := models.Order{
		OwnerId:  f.ownerID,
		Items:    snapshot.Items,
		Shipping: *f.shipping,
		Payment:  paymentSnapshot(*f.payment),
		Pricing:  CalculatePricing(snapshot.Total, f.shipping.CountryCode),
		Status:   models.OrderStatusPending,
	}
	// The in-flight flag keeps a second caller out while the placer runs
	// without the lock held.
	f.placing = true
	f.mu.Unlock()

	placed, err := f.placer.PlaceOrder(ctx, order)

	f.mu.Lock()
	f.placing = false
	if err == nil {
		f.completed = true
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}

	return placed, nil
}

func paymentSnapshot(info models.PaymentInfo) models.PaymentSnapshot {
	snap := models.PaymentSnapshot{
		Method:     info.Method,
		CardHolder: info.CardHolder,
	}

	if info.Method == models.PaymentMethodCard {
		card := creditcard.Card{Number: info.CardNumber}
		if lastFour, err := card.LastFour(); err == nil {
			snap.LastFourDigits = lastFour
		}
	}

	return snap
}

// CheckoutRegistry tracks the active flow per owner. Flows live only in
// memory; abandoning one discards its shipping and payment data while the
// cart itself stays persisted.
type CheckoutRegistry struct {
	mu    sync.Mutex
	flows map[string]*CheckoutFlow
}

func NewCheckoutRegistry() *CheckoutRegistry {
	return &CheckoutRegistry{flows: make(map[string]*CheckoutFlow)}
}

// Begin replaces any existing flow for the owner with a fresh one.
func (r *CheckoutRegistry) Begin(ownerID string, cart *CartStore, placer OrderPlacer) (*CheckoutFlow, error) {
	flow, err := NewCheckoutFlow(ownerID, cart, placer)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[ownerID] = flow
	return flow, nil
}

// Get returns the owner's active flow.
func (r *CheckoutRegistry) Get(ownerID string) (*CheckoutFlow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flow, ok := r.flows[ownerID]
	if !ok {
		return nil, ErrCheckoutNotFound
	}
	return flow, nil
}

// Abandon discards the owner's flow.
func (r *CheckoutRegistry) Abandon(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, ownerID)
}
