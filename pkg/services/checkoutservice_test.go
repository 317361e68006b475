package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"torget-app-io/api/pkg/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockOrderPlacer implements OrderPlacer for testing
type MockOrderPlacer struct {
	placed []models.Order
	err    error
}

func (m *MockOrderPlacer) PlaceOrder(_ context.Context, order models.Order) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	order.OrderNumber = "TOR-test"
	m.placed = append(m.placed, order)
	return &order, nil
}

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		Name:        "Astrid Lund",
		Email:       "astrid@example.com",
		Phone:       "+46701234567",
		Address:     "Storgatan 1",
		City:        "Stockholm",
		PostalCode:  "11122",
		CountryCode: "SE",
	}
}

func validCardPayment() models.PaymentInfo {
	return models.PaymentInfo{
		Method:      models.PaymentMethodCard,
		CardNumber:  "4242424242424242",
		CardHolder:  "Astrid Lund",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
		CVV:         "123",
	}
}

func newCheckoutFixture(t *testing.T) (*CheckoutFlow, *CartStore, *MockOrderPlacer) {
	t.Helper()
	ctx := context.Background()

	cart := newTestCart(t)
	require.NoError(t, cart.AddItem(ctx, itemRequest("p1", 200, 2, models.VariantSelection{"size": "M"})))

	placer := &MockOrderPlacer{}
	flow, err := NewCheckoutFlow("owner-1", cart, placer)
	require.NoError(t, err)

	return flow, cart, placer
}

func TestCheckoutRefusesEmptyCart(t *testing.T) {
	cart := newTestCart(t)

	_, err := NewCheckoutFlow("owner-1", cart, &MockOrderPlacer{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutStartsAtShipping(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)
	assert.Equal(t, models.CheckoutStepShipping, flow.Step())
}

func TestCheckoutLinearProgression(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	require.NoError(t, flow.SubmitShipping(validShipping()))
	assert.Equal(t, models.CheckoutStepPayment, flow.Step())

	require.NoError(t, flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodSwish}))
	assert.Equal(t, models.CheckoutStepReview, flow.Step())
}

func TestCheckoutRejectsSkippingForward(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	err := flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodSwish})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = flow.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestCheckoutShippingValidation(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	info := validShipping()
	info.Email = "not-an-email"
	assert.Error(t, flow.SubmitShipping(info))
	assert.Equal(t, models.CheckoutStepShipping, flow.Step())

	info = validShipping()
	info.City = ""
	assert.Error(t, flow.SubmitShipping(info))
	assert.Equal(t, models.CheckoutStepShipping, flow.Step())
}

func TestCheckoutPaymentMethodValidation(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	err := flow.SubmitPayment(models.PaymentInfo{Method: "paypal"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	err = flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodCard, CardNumber: "1234"})
	assert.Error(t, err)
	assert.Equal(t, models.CheckoutStepPayment, flow.Step())

	require.NoError(t, flow.SubmitPayment(validCardPayment()))
	assert.Equal(t, models.CheckoutStepReview, flow.Step())
}

func TestCheckoutBackKeepsEnteredData(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	require.NoError(t, flow.SubmitShipping(validShipping()))
	require.NoError(t, flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodSwish}))

	assert.False(t, flow.Back())
	assert.Equal(t, models.CheckoutStepPayment, flow.Step())
	assert.False(t, flow.Back())
	assert.Equal(t, models.CheckoutStepShipping, flow.Step())

	require.NotNil(t, flow.ShippingInfo())
	require.NotNil(t, flow.PaymentInfo())
	assert.Equal(t, "Astrid Lund", flow.ShippingInfo().Name)

	// From shipping, back exits the checkout entirely.
	assert.True(t, flow.Back())
}

func TestCheckoutPricingFollowsShippingCountry(t *testing.T) {
	flow, cart, _ := newCheckoutFixture(t)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	// Subtotal 400 is below the free-shipping threshold.
	pricing := flow.Pricing()
	assert.InDelta(t, cart.Total(), pricing.Subtotal, 1e-9)
	assert.InDelta(t, cart.Total()*0.25, pricing.TaxAmount, 1e-9)
	assert.InDelta(t, FlatShippingFee, pricing.ShippingAmount, 1e-9)
	assert.InDelta(t, 549, pricing.TotalAmount, 1e-9)
}

func TestCheckoutPlaceOrderSucceedsOnceFromReview(t *testing.T) {
	flow, _, placer := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, flow.SubmitShipping(validShipping()))
	require.NoError(t, flow.SubmitPayment(validCardPayment()))

	order, err := flow.PlaceOrder(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "TOR-test", order.OrderNumber)
	assert.Equal(t, "4242", order.Payment.LastFourDigits)
	assert.Len(t, placer.placed, 1)

	_, err = flow.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrCheckoutCompleted)
	assert.Len(t, placer.placed, 1)
}

func TestCheckoutPlaceOrderFailureStaysInReview(t *testing.T) {
	flow, _, placer := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, flow.SubmitShipping(validShipping()))
	require.NoError(t, flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodKlarna}))

	placer.err = errors.New("backend unavailable")
	_, err := flow.PlaceOrder(ctx)
	require.Error(t, err)
	assert.Equal(t, models.CheckoutStepReview, flow.Step())

	// Retry succeeds once the collaborator recovers.
	placer.err = nil
	order, err := flow.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.NotNil(t, order)
}

// blockingOrderPlacer stalls every placement until its gate is closed and
// counts how many placements were started.
type blockingOrderPlacer struct {
	gate  chan struct{}
	calls int32
}

func (p *blockingOrderPlacer) PlaceOrder(_ context.Context, order models.Order) (*models.Order, error) {
	atomic.AddInt32(&p.calls, 1)
	<-p.gate
	order.OrderNumber = "TOR-test"
	return &order, nil
}

func TestCheckoutConcurrentPlaceOrderPlacesSingleOrder(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)
	require.NoError(t, cart.AddItem(ctx, itemRequest("p1", 200, 1, nil)))

	placer := &blockingOrderPlacer{gate: make(chan struct{})}
	flow, err := NewCheckoutFlow("owner-1", cart, placer)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))
	require.NoError(t, flow.SubmitPayment(models.PaymentInfo{Method: models.PaymentMethodSwish}))

	done := make(chan error, 1)
	go func() {
		_, err := flow.PlaceOrder(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&placer.calls) == 1
	}, time.Second, time.Millisecond)

	// A second caller arriving while the first placement is still running
	// must be turned away instead of placing a duplicate order.
	_, err = flow.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrOrderInFlight)

	close(placer.gate)
	require.NoError(t, <-done)

	assert.EqualValues(t, 1, atomic.LoadInt32(&placer.calls))

	_, err = flow.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrCheckoutCompleted)
}

func TestCheckoutRegistryLifecycle(t *testing.T) {
	ctx := context.Background()
	cart := newTestCart(t)
	require.NoError(t, cart.AddItem(ctx, itemRequest("p1", 10, 1, nil)))

	registry := NewCheckoutRegistry()
	placer := &MockOrderPlacer{}

	_, err := registry.Get("owner-1")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)

	flow, err := registry.Begin("owner-1", cart, placer)
	require.NoError(t, err)
	require.NoError(t, flow.SubmitShipping(validShipping()))

	got, err := registry.Get("owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStepPayment, got.Step())

	// Abandoning discards shipping and payment data; a fresh flow starts over.
	registry.Abandon("owner-1")
	_, err = registry.Get("owner-1")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)

	fresh, err := registry.Begin("owner-1", cart, placer)
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStepShipping, fresh.Step())
	assert.Nil(t, fresh.ShippingInfo())
}
