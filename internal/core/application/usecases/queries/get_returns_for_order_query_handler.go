package queries

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

// GetReturnsForOrderQueryHandler lists the returns filed against an order.
// An order with no returns (or an unknown number) yields an empty slice, not
// an error: the listing is embedded in the order detail page either way.
type GetReturnsForOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnsForOrderQueryHandler creates a handler for return listing queries.
func NewGetReturnsForOrderQueryHandler(db *gorm.DB) GetReturnsForOrderQueryHandler {
	return GetReturnsForOrderQueryHandler{db: db}
}

// Handle executes the listing query, newest submissions first.
func (h GetReturnsForOrderQueryHandler) Handle(
	ctx context.Context,
	query GetReturnsForOrderQuery,
) ([]GetReturnsForOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	returns := make([]GetReturnsForOrderQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			status,
			items,
			created_at
		FROM return_requests
		WHERE order_number = ?
		ORDER BY created_at DESC
	`, query.OrderNumber()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			response GetReturnsForOrderQueryResponse
			rawItems []byte
		)
		if err = rows.Scan(&response.Number, &response.Status, &rawItems, &response.CreatedAt); err != nil {
			return nil, err
		}

		var items []json.RawMessage
		if err = json.Unmarshal(rawItems, &items); err != nil {
			return nil, err
		}
		response.ItemCount = len(items)

		returns = append(returns, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return returns, nil
}
