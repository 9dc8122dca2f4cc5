package rma

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Action is the resolution the customer requests for a returned line.
type Action string

const (
	// ActionRefund requests the money back for the returned quantity.
	ActionRefund Action = "refund"

	// ActionExchange requests a replacement item.
	ActionExchange Action = "exchange"

	// ActionRepair requests the item be repaired and sent back.
	ActionRepair Action = "repair"
)

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	switch a {
	case ActionRefund, ActionExchange, ActionRepair:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%q is not a valid return action", string(a)))
	}
}

// ReturnItem is one order line under return. Title, variant and unit price are
// snapshots copied from the originating order line at submission time.
type ReturnItem struct {
	productID  string
	title      string
	variant    string
	orderedQty int
	returnQty  int
	unitPrice  int64
	action     Action
	reasonCode string
	details    string
	photoURLs  []string
}

// NewReturnItem creates a validated return line.
// The returned quantity must be positive and cannot exceed the ordered quantity.
func NewReturnItem(
	productID, title, variant string,
	orderedQty, returnQty int,
	unitPrice int64,
	action Action,
	reasonCode, details string,
	photoURLs []string,
) (ReturnItem, error) {
	if productID == "" {
		return ReturnItem{}, errs.NewValueIsRequiredError("productID")
	}
	if title == "" {
		return ReturnItem{}, errs.NewValueIsRequiredError("title")
	}
	if returnQty <= 0 {
		return ReturnItem{}, errs.NewValueIsInvalidErrorWithCause("returnQty",
			fmt.Errorf("%d is not greater than 0", returnQty))
	}
	if orderedQty > 0 && returnQty > orderedQty {
		return ReturnItem{}, errs.NewValueIsInvalidErrorWithCause("returnQty",
			fmt.Errorf("%d exceeds ordered quantity %d", returnQty, orderedQty))
	}
	if unitPrice < 0 {
		return ReturnItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}
	if err := action.Validate(); err != nil {
		return ReturnItem{}, err
	}
	if reasonCode == "" {
		return ReturnItem{}, errs.NewValueIsRequiredError("reasonCode")
	}

	return ReturnItem{
		productID:  productID,
		title:      title,
		variant:    variant,
		orderedQty: orderedQty,
		returnQty:  returnQty,
		unitPrice:  unitPrice,
		action:     action,
		reasonCode: reasonCode,
		details:    details,
		photoURLs:  append([]string(nil), photoURLs...),
	}, nil
}

// ProductID returns the referenced product id.
func (ri ReturnItem) ProductID() string { return ri.productID }

// Title returns the title snapshot.
func (ri ReturnItem) Title() string { return ri.title }

// Variant returns the variant snapshot.
func (ri ReturnItem) Variant() string { return ri.variant }

// OrderedQty returns the quantity originally purchased.
func (ri ReturnItem) OrderedQty() int { return ri.orderedQty }

// ReturnQty returns the quantity under return.
func (ri ReturnItem) ReturnQty() int { return ri.returnQty }

// UnitPrice returns the unit price snapshot in minor units.
func (ri ReturnItem) UnitPrice() int64 { return ri.unitPrice }

// RequestedAction returns the requested resolution.
func (ri ReturnItem) RequestedAction() Action { return ri.action }

// ReasonCode returns the short reason code.
func (ri ReturnItem) ReasonCode() string { return ri.reasonCode }

// Details returns the free-text details.
func (ri ReturnItem) Details() string { return ri.details }

// PhotoURLs returns a copy of the uploaded photo references.
func (ri ReturnItem) PhotoURLs() []string {
	return append([]string(nil), ri.photoURLs...)
}
