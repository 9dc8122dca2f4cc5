// Package order implements the Order aggregate and its lifecycle state machine.
//
// An order is created at checkout in the pending status and from then on is
// mutated only through Transition, which validates the requested edge against
// the canonical transition table, appends an entry to the append-only status
// history, and keeps the live status field equal to the last entry's To.
//
// The canonical status vocabulary unifies the two sets the legacy storefront
// used (a narrow validator list and the richer set used by routes and email
// templates); the richer set is authoritative:
//
//	pending → confirmed → dispatched → shipped → out_for_delivery → delivered
//
// with cancellation allowed from pending, confirmed and dispatched, and a
// refund short-circuit from every non-terminal state plus delivered.
// Cancelled and refunded are terminal.
package order
