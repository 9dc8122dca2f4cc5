// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly with raw SQL and return flat
// response structs, bypassing the aggregate layer.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery retrieves the tracking view of one order by its
// human-readable number: the live status, the full transition history and the
// edges available from the current status.
type GetOrderTrackingQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking query for the given order number.
func NewGetOrderTrackingQuery(number string) (GetOrderTrackingQuery, error) {
	if number == "" {
		return GetOrderTrackingQuery{}, errs.NewValueIsRequiredError("number")
	}

	return GetOrderTrackingQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// Number returns the order number to track.
func (q GetOrderTrackingQuery) Number() string { return q.number }

// GetOrderTrackingQueryResponse is the tracking view of one order.
type GetOrderTrackingQueryResponse struct {
	Number             string
	Status             string
	Total              int64
	Currency           string
	History            ledger.History
	AllowedTransitions []string
}
