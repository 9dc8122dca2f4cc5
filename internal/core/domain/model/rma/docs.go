// Package rma implements the ReturnRequest aggregate and its lifecycle state
// machine (RMA: Return Merchandise Authorization).
//
// A return request is created by a customer against a delivered order and
// progresses through inspection to a resolution:
//
//	submitted → awaiting_shipment → received → inspecting → approved → refunded → completed
//
// with rejection possible until inspection concludes, cancellation possible
// before the items are received, and a direct approved → completed branch for
// exchanges that involve no monetary refund.
//
// The aggregate tolerates an unresolved parent order (guest or partial data):
// the order reference may be nil, and whatever order status was observed at
// creation time is recorded for audit. Certain return transitions cascade a
// best-effort status write onto the parent order; that cascade lives in the
// application layer, never here.
package rma
