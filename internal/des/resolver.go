package des

import (
	"context"

	"github.com/rs/zerolog"

	"desexport/internal/logger"
	"desexport/pkg/models"
)

// TaxIDLister is the slice of the billing client the resolver depends on.
type TaxIDLister interface {
	ListTaxIDs(ctx context.Context, customerID string) ([]models.TaxID, error)
}

// ResolveCountry returns the customer's ISO country code. The billing
// address wins over the shipping address; nothing else (currency, locale,
// phone) is ever used for inference. ok is false when no address carries a
// country.
func ResolveCountry(c *models.Customer) (string, bool) {
	if c == nil {
		return "", false
	}
	if c.Address != nil && c.Address.Country != "" {
		return c.Address.Country, true
	}
	if c.Shipping != nil && c.Shipping.Country != "" {
		return c.Shipping.Country, true
	}
	return "", false
}

// Resolver looks up customers' EU VAT numbers. Lookups are best-effort and
// memoized per customer ID, so each customer is queried at most once per
// run and every aggregation pass sharing the resolver sees the same answer.
type Resolver struct {
	taxIDs TaxIDLister
	cache  map[string]*string
	log    zerolog.Logger
}

// NewResolver creates a resolver backed by the given tax ID listing.
func NewResolver(taxIDs TaxIDLister) *Resolver {
	return &Resolver{
		taxIDs: taxIDs,
		cache:  make(map[string]*string),
		log:    logger.WithComponent("resolver"),
	}
}

// VATNumber returns the customer's EU VAT number, or nil when none is on
// file. A failed lookup degrades to nil rather than aborting the caller:
// a missing VAT number never blocks aggregation.
func (r *Resolver) VATNumber(ctx context.Context, customerID string) *string {
	if vat, seen := r.cache[customerID]; seen {
		return vat
	}

	var vat *string
	ids, err := r.taxIDs.ListTaxIDs(ctx, customerID)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("customer_id", customerID).
			Msg("Tax ID lookup failed, continuing without VAT number")
	} else {
		for _, id := range ids {
			if id.Type == models.TaxIDTypeEUVAT {
				value := id.Value
				vat = &value
				break
			}
		}
	}

	r.cache[customerID] = vat
	return vat
}
