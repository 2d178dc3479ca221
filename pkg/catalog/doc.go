// Package catalog defines the price catalog data model and the pure offer
// resolver used by the plan-selection and checkout flows.
//
// A PriceCatalog is an ordered set of Plans; each Plan carries feature lines
// and at most one PricePoint per billing Duration. Resolve maps a
// (plan name, duration) selection to a concrete ResolvedOffer, failing with
// ErrResolution when either lookup misses. A nil catalog is a distinct
// ErrNoCatalog loading signal so callers can suspend instead of redirecting.
//
// Feature detail text is a tagged variant: PlainDetail for cycle-independent
// text, ConditionalDetail for text that differs between monthly and yearly
// selections, resolved via FeatureDetail.For at render time. JSON and YAML
// decoding accept both the bare-string and object wire shapes produced by the
// pricing backend.
package catalog
