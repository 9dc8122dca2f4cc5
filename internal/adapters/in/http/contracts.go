package http

import (
	"time"

	"storefront/internal/core/domain/model/ledger"
)

// Error is the uniform error body for all failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest carries the shipping address of a checkout.
type AddressRequest struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// LineItemRequest carries one purchased line of a checkout.
type LineItemRequest struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
// UserID is empty for guest checkout.
type CreateOrderRequest struct {
	UserID        string            `json:"userId,omitempty"`
	Email         string            `json:"email"`
	Address       AddressRequest    `json:"address"`
	Items         []LineItemRequest `json:"items"`
	ShippingFee   int64             `json:"shippingFee"`
	Discount      int64             `json:"discount"`
	DiscountCode  string            `json:"discountCode,omitempty"`
	PaymentMethod string            `json:"paymentMethod"`
	Currency      string            `json:"currency"`
}

// CreateOrderResponse is returned on successful checkout.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// TransitionRequest is the body of the order and return status endpoints.
type TransitionRequest struct {
	Target     string  `json:"target"`
	Actor      *string `json:"actor,omitempty"`
	Reason     *string `json:"reason,omitempty"`
	Note       *string `json:"note,omitempty"`
	SendEmail  bool    `json:"sendEmail"`
	AwaitEmail bool    `json:"awaitEmail"`
}

// TransitionResponse reports the outcome of a status transition.
// Warning is set when the transition itself committed but a follow-up
// side effect (email, parent-order cascade) did not.
type TransitionResponse struct {
	Status  string `json:"status"`
	NoOp    bool   `json:"noOp,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// PaymentCallbackRequest is the body of POST /api/v1/payments/callback,
// posted by the payment gateway after the customer completes (or abandons)
// the payment flow.
type PaymentCallbackRequest struct {
	OrderID          string  `json:"orderId"`
	Success          bool    `json:"success"`
	GatewayOrderID   *string `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID *string `json:"gatewayPaymentId,omitempty"`
	GatewaySignature *string `json:"gatewaySignature,omitempty"`
}

// ReturnItemRequest carries one line of a return submission.
type ReturnItemRequest struct {
	ProductID  string   `json:"productId"`
	Title      string   `json:"title"`
	Variant    string   `json:"variant,omitempty"`
	OrderedQty int      `json:"orderedQty"`
	ReturnQty  int      `json:"returnQty"`
	UnitPrice  int64    `json:"unitPrice"`
	Action     string   `json:"action"`
	ReasonCode string   `json:"reasonCode"`
	Details    string   `json:"details,omitempty"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
}

// CreateReturnRequest is the body of POST /api/v1/returns.
type CreateReturnRequest struct {
	OrderNumber string              `json:"orderNumber"`
	UserID      string              `json:"userId,omitempty"`
	GuestEmail  string              `json:"guestEmail,omitempty"`
	Items       []ReturnItemRequest `json:"items"`
}

// CreateReturnResponse is returned on successful return submission.
type CreateReturnResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// TrackingResponse is the customer-facing tracking view of an order.
type TrackingResponse struct {
	Number             string         `json:"number"`
	Status             string         `json:"status"`
	Total              int64          `json:"total"`
	Currency           string         `json:"currency"`
	History            ledger.History `json:"history"`
	AllowedTransitions []string       `json:"allowedTransitions"`
}

// ReturnSummaryResponse is one row of the per-order return listing.
type ReturnSummaryResponse struct {
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}
