package queries

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetReturnsForOrderQueryIsNotConstructed = errors.New(
		"GetReturnsForOrderQuery must be created via NewGetReturnsForOrderQuery constructor",
	)
)

// GetReturnsForOrderQuery lists the return requests filed against one order,
// referenced by its human-readable number.
type GetReturnsForOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetReturnsForOrderQuery creates a returns listing query for the given order number.
func NewGetReturnsForOrderQuery(orderNumber string) (GetReturnsForOrderQuery, error) {
	if orderNumber == "" {
		return GetReturnsForOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetReturnsForOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReturnsForOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnsForOrderQueryIsNotConstructed)
}

// OrderNumber returns the order number whose returns are listed.
func (q GetReturnsForOrderQuery) OrderNumber() string { return q.orderNumber }

// GetReturnsForOrderQueryResponse is one return request in the listing.
type GetReturnsForOrderQueryResponse struct {
	Number    string
	Status    string
	ItemCount int
	CreatedAt time.Time
}
