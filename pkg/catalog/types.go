package catalog

import (
	"errors"
	"fmt"
)

// Duration represents the billing cycle of a price point.
type Duration string

const (
	DurationMonthly Duration = "monthly"
	DurationYearly  Duration = "yearly"
)

// ParseDuration converts a raw string (e.g. a navigation parameter) into a
// Duration. Only the two known billing cycles are accepted.
func ParseDuration(s string) (Duration, error) {
	switch Duration(s) {
	case DurationMonthly:
		return DurationMonthly, nil
	case DurationYearly:
		return DurationYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
}

// Valid reports whether d is one of the known billing cycles.
func (d Duration) Valid() bool {
	return d == DurationMonthly || d == DurationYearly
}

// PricePoint is a concrete priced offer for one billing cycle.
type PricePoint struct {
	Duration Duration `json:"duration" yaml:"duration"`
	Amount   float64  `json:"amount" yaml:"amount"`
}

// Plan describes a purchasable subscription plan.
type Plan struct {
	Name     string       `json:"name" yaml:"name"`
	AI       string       `json:"ai" yaml:"ai"`
	Features []Feature    `json:"features" yaml:"features"`
	Prices   []PricePoint `json:"price" yaml:"price"`
}

// Price returns the plan's price point for the given billing cycle.
func (p Plan) Price(d Duration) (PricePoint, bool) {
	for _, pp := range p.Prices {
		if pp.Duration == d {
			return pp, true
		}
	}
	return PricePoint{}, false
}

// IsFree reports whether the plan carries no price points at all.
func (p Plan) IsFree() bool {
	return len(p.Prices) == 0
}

// PriceCatalog is the ordered set of purchasable plans as published by the
// backend.
type PriceCatalog struct {
	Plans []Plan `json:"plans" yaml:"plans"`
}

// Plan returns the plan with the given name. Matching is exact and
// case-sensitive.
func (c *PriceCatalog) Plan(name string) (Plan, bool) {
	if c == nil {
		return Plan{}, false
	}
	for _, p := range c.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// Validate ensures catalog invariants hold: plan names are unique and every
// plan has at most one price point per billing cycle.
func (c *PriceCatalog) Validate() error {
	if c == nil {
		return ErrNoCatalog
	}

	names := make(map[string]struct{}, len(c.Plans))
	for _, p := range c.Plans {
		if p.Name == "" {
			return errors.Join(ErrInvalidCatalog, errors.New("plan without a name"))
		}
		if _, dup := names[p.Name]; dup {
			return errors.Join(ErrInvalidCatalog, fmt.Errorf("duplicate plan name %q", p.Name))
		}
		names[p.Name] = struct{}{}

		durations := make(map[Duration]struct{}, len(p.Prices))
		for _, pp := range p.Prices {
			if !pp.Duration.Valid() {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("plan %q has unknown billing duration %q", p.Name, pp.Duration))
			}
			if _, dup := durations[pp.Duration]; dup {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("plan %q has multiple %s price points", p.Name, pp.Duration))
			}
			durations[pp.Duration] = struct{}{}
		}
	}

	return nil
}
