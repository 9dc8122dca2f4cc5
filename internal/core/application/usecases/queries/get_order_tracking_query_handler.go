package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler serves the customer-facing tracking view.
// It reads the order row directly; the ledger column is stored as JSON and
// decoded into the same entries the domain appends.
//
// Example:
//
//	handler := NewGetOrderTrackingQueryHandler(db)
//	query, _ := NewGetOrderTrackingQuery("ORD-2026-00042")
//	tracking, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for order tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
// Fails with ObjectNotFoundError when the order number does not resolve.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			status,
			total,
			payment_currency,
			status_history
		FROM orders
		WHERE number = ?
	`, query.Number()).Row()

	var (
		response GetOrderTrackingQueryResponse
		rawHist  []byte
	)
	err := row.Scan(
		&response.Number,
		&response.Status,
		&response.Total,
		&response.Currency,
		&rawHist,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{},
			errs.NewObjectNotFoundError("number", query.Number())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var history ledger.History
	if err = json.Unmarshal(rawHist, &history); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	response.History = history

	status, err := order.ParseStatus(response.Status)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	for _, allowed := range status.AllowedTransitions() {
		response.AllowedTransitions = append(response.AllowedTransitions, allowed.String())
	}

	return response, nil
}
