package billing

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIKey is returned when no Stripe API key is configured.
// Callers treat it as "not configured", distinct from any fetch failure,
// and must detect it before attempting network calls.
var ErrMissingAPIKey = errors.New("missing Stripe API key")

// PeriodFetchError reports a failed invoice listing for one reporting
// month. Billing data must not be silently partial, so the failing period
// is named and the run aborts.
type PeriodFetchError struct {
	Year  int
	Month time.Month
	Err   error
}

// Error implements the error interface.
func (e *PeriodFetchError) Error() string {
	return fmt.Sprintf("billing: fetching invoices for %02d/%d failed: %v", int(e.Month), e.Year, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PeriodFetchError) Unwrap() error {
	return e.Err
}
