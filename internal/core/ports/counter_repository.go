package ports

import "context"

// CounterRepository issues period-scoped sequence values for human-readable
// identifiers (order numbers are sequential per year).
//
// Next must be atomic: concurrent callers for the same key each receive a
// distinct value with no gaps introduced by lost updates.
type CounterRepository interface {
	// Next increments the counter for the key and returns the new value,
	// creating the counter at 1 on first use.
	Next(ctx context.Context, key string) (int64, error)
}
