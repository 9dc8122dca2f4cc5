// Package ledger implements the append-only status history shared by the order
// and return aggregates. Each lifecycle transition appends exactly one Entry;
// entries are never mutated or removed, and the owning aggregate keeps its live
// status field equal to the To of the last entry.
//
// The ledger is a dumb, reusable primitive: it does not re-derive From or
// validate transitions. Callers (the lifecycle state machines) validate the
// requested edge before appending.
package ledger

import (
	"time"

	"storefront/internal/pkg/errs"
)

// Entry records a single state transition on an entity.
// From is nil for the first entry written at entity creation.
// The JSON field names are a persisted compatibility surface read by admin
// timelines and customer tracking pages.
type Entry struct {
	From   *string   `json:"from"`
	To     string    `json:"to"`
	Actor  *string   `json:"actor"`
	Reason *string   `json:"reason"`
	Note   *string   `json:"note"`
	At     time.Time `json:"at"`
}

// NewEntry creates a transition entry stamped with the given time.
// To is required; everything else is optional.
func NewEntry(from *string, to string, actor, reason, note *string, at time.Time) (Entry, error) {
	if to == "" {
		return Entry{}, errs.NewValueIsRequiredError("to")
	}

	return Entry{
		From:   from,
		To:     to,
		Actor:  actor,
		Reason: reason,
		Note:   note,
		At:     at,
	}, nil
}

// History is the ordered sequence of transition entries for one entity.
// It only ever grows; Append returns a new slice so callers cannot alias
// a shared backing array and mutate past entries.
type History []Entry

// Append adds an entry to the history and returns the grown sequence.
func (h History) Append(entry Entry) History {
	grown := make(History, 0, len(h)+1)
	grown = append(grown, h...)
	grown = append(grown, entry)
	return grown
}

// Last returns the most recent entry, or nil for an empty history.
func (h History) Last() *Entry {
	if len(h) == 0 {
		return nil
	}
	last := h[len(h)-1]
	return &last
}

// CurrentStatus returns the To of the last entry, or "" for an empty history.
// The owning aggregate's live status field must always equal this value.
func (h History) CurrentStatus() string {
	if last := h.Last(); last != nil {
		return last.To
	}
	return ""
}
