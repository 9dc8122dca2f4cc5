package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// LineItem is one purchased product line on an order. Title, variant and unit
// price are snapshots taken at checkout so later catalog edits do not rewrite
// order history. Amounts are integer minor units (cents).
type LineItem struct {
	productID string
	title     string
	variant   string
	quantity  int
	unitPrice int64
	lineTotal int64
}

// NewLineItem creates a validated order line with its total computed from
// quantity and unit price.
func NewLineItem(productID, title, variant string, quantity int, unitPrice int64) (LineItem, error) {
	if productID == "" {
		return LineItem{}, errs.NewValueIsRequiredError("productID")
	}
	if title == "" {
		return LineItem{}, errs.NewValueIsRequiredError("title")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return LineItem{
		productID: productID,
		title:     title,
		variant:   variant,
		quantity:  quantity,
		unitPrice: unitPrice,
		lineTotal: int64(quantity) * unitPrice,
	}, nil
}

// ProductID returns the referenced product id.
func (li LineItem) ProductID() string { return li.productID }

// Title returns the product title snapshot.
func (li LineItem) Title() string { return li.title }

// Variant returns the product variant snapshot.
func (li LineItem) Variant() string { return li.variant }

// Quantity returns the purchased quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the unit price snapshot in minor units.
func (li LineItem) UnitPrice() int64 { return li.unitPrice }

// LineTotal returns quantity times unit price in minor units.
func (li LineItem) LineTotal() int64 { return li.lineTotal }
