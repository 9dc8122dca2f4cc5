// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and the status ledger are stored as JSONB documents; address and
// payment are embedded column groups. The status column carries an index
// because the expiration sweep and the tracking query both filter on it.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number        string     `gorm:"uniqueIndex"`
	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	Email         string
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Items         datatypes.JSON
	Subtotal      int64
	ShippingFee   int64
	Discount      int64
	DiscountCode  *string
	Total         int64
	Payment       PaymentDTO `gorm:"embedded;embeddedPrefix:payment_"`
	Status        string     `gorm:"index"`
	StatusHistory datatypes.JSON
	CreatedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address column group.
type AddressDTO struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// PaymentDTO represents the embedded payment column group.
type PaymentDTO struct {
	Method           string
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string
	Amount           int64
	Currency         string
	Status           string
}

// lineItemJSON is the JSONB document shape of one order line.
type lineItemJSON struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	LineTotal int64  `json:"lineTotal"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	items := make([]lineItemJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, lineItemJSON{
			ProductID: item.ProductID(),
			Title:     item.Title(),
			Variant:   item.Variant(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			LineTotal: item.LineTotal(),
		})
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	rawHistory, err := json.Marshal(aggregate.History())
	if err != nil {
		return OrderDTO{}, err
	}

	address := aggregate.ShippingAddress()
	payment := aggregate.Payment()

	return OrderDTO{
		ID:     aggregate.ID().Bytes(),
		Number: aggregate.Number(),
		UserID: userID,
		Email:  aggregate.Email(),
		Address: AddressDTO{
			Name:       address.Name(),
			Line1:      address.Line1(),
			Line2:      address.Line2(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
			Phone:      address.Phone(),
		},
		Items:        datatypes.JSON(rawItems),
		Subtotal:     aggregate.Subtotal(),
		ShippingFee:  aggregate.ShippingFee(),
		Discount:     aggregate.Discount(),
		DiscountCode: aggregate.DiscountCode(),
		Total:        aggregate.Total(),
		Payment: PaymentDTO{
			Method:           payment.Method(),
			GatewayOrderID:   payment.GatewayOrderID(),
			GatewayPaymentID: payment.GatewayPaymentID(),
			GatewaySignature: payment.GatewaySignature(),
			Amount:           payment.Amount(),
			Currency:         payment.Currency(),
			Status:           string(payment.Status()),
		},
		Status:        aggregate.Status().String(),
		StatusHistory: datatypes.JSON(rawHistory),
		CreatedAt:     aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order aggregate via RestoreOrder,
// which re-checks the ledger invariant on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	address, err := order.NewAddress(
		dto.Address.Name, dto.Address.Line1, dto.Address.Line2, dto.Address.City,
		dto.Address.State, dto.Address.PostalCode, dto.Address.Country, dto.Address.Phone,
	)
	if err != nil {
		return nil, err
	}

	var rawItems []lineItemJSON
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}
	items := make([]order.LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := order.NewLineItem(raw.ProductID, raw.Title, raw.Variant, raw.Quantity, raw.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payment, err := order.RestorePayment(
		dto.Payment.Method,
		dto.Payment.GatewayOrderID, dto.Payment.GatewayPaymentID, dto.Payment.GatewaySignature,
		dto.Payment.Amount, dto.Payment.Currency,
		order.PaymentStatus(dto.Payment.Status),
	)
	if err != nil {
		return nil, err
	}

	var history ledger.History
	if err = json.Unmarshal(dto.StatusHistory, &history); err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Number, userID, dto.Email, address, items,
		dto.Subtotal, dto.ShippingFee, dto.Discount, dto.DiscountCode, dto.Total,
		payment, order.Status(dto.Status), history, dto.CreatedAt,
	)
}
