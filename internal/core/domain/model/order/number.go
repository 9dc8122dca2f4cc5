package order

import "fmt"

// FormatNumber renders the human-readable order number for a year-scoped
// sequence value, e.g. ORD-2026-00042. Sequences are issued by an atomic
// counter keyed by year.
func FormatNumber(year int, sequence int64) string {
	return fmt.Sprintf("ORD-%d-%05d", year, sequence)
}

// CounterKey returns the counter record key for the given year.
func CounterKey(year int) string {
	return fmt.Sprintf("order-number-%d", year)
}
