// Package returnrepo provides data transfer objects and mapping functions for
// return request persistence.
package returnrepo

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/rma"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReturnRequestDTO represents the database structure for persisting return
// request aggregates. The RMA number carries a unique index; insertion relies
// on it to detect collisions of the randomly generated reference. Items and
// the status ledger are JSONB documents, like on the orders table.
type ReturnRequestDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number              string     `gorm:"uniqueIndex"`
	OrderID             *uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber         *string    `gorm:"index"`
	UserID              *uuid.UUID `gorm:"type:uuid;index"`
	GuestEmail          *string
	OrderStatusObserved *string
	Items               datatypes.JSON
	Status              string `gorm:"index"`
	StatusHistory       datatypes.JSON
	CreatedAt           time.Time
	ReminderSentAt      *time.Time
}

// TableName specifies the database table name for return request entities.
func (ReturnRequestDTO) TableName() string {
	return "return_requests"
}

// returnItemJSON is the JSONB document shape of one line under return.
type returnItemJSON struct {
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

// fromDomain converts a return request aggregate to its database representation.
func fromDomain(aggregate *rma.ReturnRequest) (ReturnRequestDTO, error) {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	items := make([]returnItemJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, returnItemJSON{
			ProductID:  item.ProductID(),
			Title:      item.Title(),
			Variant:    item.Variant(),
			OrderedQty: item.OrderedQty(),
			ReturnQty:  item.ReturnQty(),
			UnitPrice:  item.UnitPrice(),
			Action:     string(item.RequestedAction()),
			ReasonCode: item.ReasonCode(),
			Details:    item.Details(),
			PhotoURLs:  item.PhotoURLs(),
		})
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return ReturnRequestDTO{}, err
	}

	rawHistory, err := json.Marshal(aggregate.History())
	if err != nil {
		return ReturnRequestDTO{}, err
	}

	return ReturnRequestDTO{
		ID:                  aggregate.ID().Bytes(),
		Number:              aggregate.Number().String(),
		OrderID:             orderID,
		OrderNumber:         aggregate.OrderNumber(),
		UserID:              userID,
		GuestEmail:          aggregate.GuestEmail(),
		OrderStatusObserved: aggregate.OrderStatusObserved(),
		Items:               datatypes.JSON(rawItems),
		Status:              aggregate.Status().String(),
		StatusHistory:       datatypes.JSON(rawHistory),
		CreatedAt:           aggregate.CreatedAt(),
		ReminderSentAt:      aggregate.ReminderSentAt(),
	}, nil
}

// toDomain converts a database DTO to a return request aggregate via
// RestoreReturnRequest, which re-checks the ledger invariant.
func toDomain(dto ReturnRequestDTO) (*rma.ReturnRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	var rawItems []returnItemJSON
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}
	items := make([]rma.ReturnItem, 0, len(rawItems))
	for _, raw := range rawItems {
		item, itemErr := rma.NewReturnItem(
			raw.ProductID, raw.Title, raw.Variant,
			raw.OrderedQty, raw.ReturnQty, raw.UnitPrice,
			rma.Action(raw.Action), raw.ReasonCode, raw.Details, raw.PhotoURLs,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var history ledger.History
	if err = json.Unmarshal(dto.StatusHistory, &history); err != nil {
		return nil, err
	}

	return rma.RestoreReturnRequest(
		id, rma.Number(dto.Number),
		orderID, dto.OrderNumber,
		userID, dto.GuestEmail, dto.OrderStatusObserved,
		items, rma.Status(dto.Status), history,
		dto.CreatedAt, dto.ReminderSentAt,
	)
}
