package catalog

import "errors"

var (
	// ErrNoCatalog indicates the price catalog has not been loaded yet.
	// Callers must treat this as a loading state, never as a resolution failure.
	ErrNoCatalog = errors.New("catalog: price catalog not loaded")

	// ErrResolution is the class of all offer resolution failures.
	ErrResolution = errors.New("catalog: unable to resolve offer")

	// ErrPlanNotFound indicates no plan with the requested name exists.
	ErrPlanNotFound = errors.New("catalog: plan not found")

	// ErrPriceNotFound indicates the plan exists but has no price point for
	// the requested billing duration.
	ErrPriceNotFound = errors.New("catalog: no price for requested duration")

	// ErrInvalidDuration indicates a billing duration outside monthly/yearly.
	ErrInvalidDuration = errors.New("catalog: invalid billing duration")

	// ErrInvalidCatalog indicates the catalog violates its own invariants.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog configuration")
)
