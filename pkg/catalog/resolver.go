package catalog

import (
	"errors"
	"fmt"
)

// ResolvedOffer is a plan paired with the concrete price point for the
// caller's billing-cycle selection. It is derived on demand and never stored.
type ResolvedOffer struct {
	Plan  Plan
	Price PricePoint
}

// Resolve maps a plan name and billing duration to a concrete priced offer.
//
// It is pure and deterministic. A nil catalog yields ErrNoCatalog, which is a
// loading signal, not a resolution failure; callers should check catalog
// presence before treating an error here as a routing signal. Both lookup
// failures match ErrResolution.
func Resolve(c *PriceCatalog, planName string, d Duration) (ResolvedOffer, error) {
	if c == nil {
		return ResolvedOffer{}, ErrNoCatalog
	}

	if !d.Valid() {
		return ResolvedOffer{}, errors.Join(ErrResolution, fmt.Errorf("%w: %q", ErrInvalidDuration, d))
	}

	plan, ok := c.Plan(planName)
	if !ok {
		return ResolvedOffer{}, errors.Join(ErrResolution, fmt.Errorf("%w: %q", ErrPlanNotFound, planName))
	}

	price, ok := plan.Price(d)
	if !ok {
		return ResolvedOffer{}, errors.Join(ErrResolution,
			fmt.Errorf("%w: plan %q has no %s price", ErrPriceNotFound, planName, d))
	}

	return ResolvedOffer{Plan: plan, Price: price}, nil
}
