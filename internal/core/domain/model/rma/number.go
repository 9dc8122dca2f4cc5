package rma

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"storefront/internal/pkg/errs"
)

// NumberPattern matches the human-readable return reference format,
// RMA-<YYYYMMDD>-<4 random digits>.
var NumberPattern = regexp.MustCompile(`^RMA-\d{8}-\d{4}$`)

// Number is the human-readable unique return reference.
// Four random digits on a date seed make collisions possible; the persistence
// layer enforces uniqueness and creation retries generation on conflict.
type Number string

// GenerateNumber produces a new return reference seeded with the given date.
func GenerateNumber(t time.Time) Number {
	return Number(fmt.Sprintf("RMA-%s-%04d", t.Format("20060102"), rand.IntN(10000)))
}

// ParseNumber validates an externally supplied return reference.
func ParseNumber(s string) (Number, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("rmaNumber")
	}
	if !NumberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("rmaNumber",
			fmt.Errorf("%q does not match %s", s, NumberPattern.String()))
	}
	return Number(s), nil
}

// Validate checks the reference against the canonical format.
func (n Number) Validate() error {
	_, err := ParseNumber(string(n))
	return err
}

// String returns the persisted string value of the reference.
func (n Number) String() string {
	return string(n)
}
