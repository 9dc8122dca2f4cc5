package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress("Asha Rao", "12 MG Road", "", "Bengaluru", "KA", "560001", "IN", "+91900000000")
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	first, err := order.NewLineItem("prod-1", "Canvas Tote", "natural", 2, 1500)
	require.NoError(t, err)
	second, err := order.NewLineItem("prod-2", "Enamel Mug", "blue", 1, 900)
	require.NoError(t, err)
	return []order.LineItem{first, second}
}

func testPayment(t *testing.T, amount int64) order.Payment {
	t.Helper()
	payment, err := order.NewPayment("razorpay", amount, "INR")
	require.NoError(t, err)
	return payment
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.FormatNumber(2026, 42),
		nil,
		"asha@example.com",
		testAddress(t),
		testItems(t),
		200,
		0,
		nil,
		testPayment(t, 4100),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order with computed totals", func(t *testing.T) {
		now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
		o, err := order.NewOrder(
			kernel.NewUUID(),
			"ORD-2026-00042",
			nil,
			"asha@example.com",
			testAddress(t),
			testItems(t),
			200,
			100,
			strPtr("WELCOME10"),
			testPayment(t, 4000),
			now,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(3900), o.Subtotal()) // 2*1500 + 900
		assert.Equal(t, int64(4000), o.Total())    // subtotal + 200 - 100
		assert.Equal(t, "WELCOME10", *o.DiscountCode())
		assert.Equal(t, order.PaymentPending, o.Payment().Status())

		history := o.History()
		require.Len(t, history, 1)
		assert.Nil(t, history[0].From)
		assert.Equal(t, "pending", history[0].To)
		assert.Equal(t, now, history[0].At)
	})

	t.Run("should require at least one item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-00001", nil, "a@example.com",
			testAddress(t), nil, 0, 0, nil, testPayment(t, 0), time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a discount exceeding the order value", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-2026-00002", nil, "a@example.com",
			testAddress(t), testItems(t), 0, 100000, nil, testPayment(t, 0), time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require email and number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", nil, "a@example.com",
			testAddress(t), testItems(t), 0, 0, nil, testPayment(t, 0), time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(
			kernel.NewUUID(), "ORD-2026-00003", nil, "",
			testAddress(t), testItems(t), 0, 0, nil, testPayment(t, 0), time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject a zero value order", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should accept a constructed order", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("should append a ledger entry and update the live status", func(t *testing.T) {
		o := newTestOrder(t)
		now := time.Now().UTC()

		entry, err := o.Transition(order.Confirmed, strPtr("admin-1"), strPtr("payment_captured"), now)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, "pending", *entry.From)
		assert.Equal(t, "confirmed", entry.To)
		assert.Equal(t, "admin-1", *entry.Actor)

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, o.Status().String(), history[1].To)
	})

	t.Run("should leave history unchanged on a rejected edge", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Transition(order.Delivered, nil, nil, time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Transition(order.Confirmed, nil, nil, time.Now())
		require.NoError(t, err)

		_, err = o.Transition(order.Cancelled, nil, strPtr("customer_request"), time.Now())
		require.NoError(t, err)

		_, err = o.Transition(order.Dispatched, nil, nil, time.Now())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.History(), 3)
	})

	t.Run("live status always equals the last history entry", func(t *testing.T) {
		o := newTestOrder(t)
		for _, target := range []order.Status{
			order.Confirmed, order.Dispatched, order.Shipped, order.OutForDelivery, order.Delivered,
		} {
			_, err := o.Transition(target, nil, nil, time.Now())
			require.NoError(t, err)
			assert.Equal(t, o.Status().String(), o.History().CurrentStatus())
		}
	})
}

func TestOrder_Annotate(t *testing.T) {
	t.Run("should append without changing the status", func(t *testing.T) {
		o := newTestOrder(t)

		entry, err := o.Annotate(strPtr("system"), strPtr("return RMA-20260828-0042 rejected"), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "pending", *entry.From)
		assert.Equal(t, "pending", entry.To)
		assert.Equal(t, o.Status().String(), o.History().CurrentStatus())
		assert.Len(t, o.History(), 2)
	})
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("should record gateway ids on success", func(t *testing.T) {
		o := newTestOrder(t)

		o.RecordPaymentSuccess(strPtr("order_G1"), strPtr("pay_G2"), strPtr("sig_G3"))

		payment := o.Payment()
		assert.Equal(t, order.PaymentSuccess, payment.Status())
		assert.Equal(t, "order_G1", *payment.GatewayOrderID())
		assert.Equal(t, "pay_G2", *payment.GatewayPaymentID())
		assert.Equal(t, "sig_G3", *payment.GatewaySignature())
	})

	t.Run("should mark failure", func(t *testing.T) {
		o := newTestOrder(t)

		o.RecordPaymentFailure()

		assert.Equal(t, order.PaymentFailed, o.Payment().Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore and track the loaded status", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Confirmed, nil, nil, time.Now())
		require.NoError(t, err)

		restored, err := order.RestoreOrder(
			o.ID(), o.Number(), o.UserID(), o.Email(), o.ShippingAddress(), o.Items(),
			o.Subtotal(), o.ShippingFee(), o.Discount(), o.DiscountCode(), o.Total(),
			o.Payment(), o.Status(), o.History(), o.CreatedAt(),
		)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, restored.Status())
		assert.Equal(t, order.Confirmed, restored.LoadedStatus())
		assert.True(t, restored.IsEqual(o))
	})

	t.Run("should reject a live status diverging from the ledger", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.Number(), o.UserID(), o.Email(), o.ShippingAddress(), o.Items(),
			o.Subtotal(), o.ShippingFee(), o.Discount(), o.DiscountCode(), o.Total(),
			o.Payment(), order.Confirmed, o.History(), o.CreatedAt(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
