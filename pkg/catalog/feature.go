package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FeatureDetail is the hover/tooltip text attached to a feature. It is either
// the same for every billing cycle or varies between monthly and yearly
// selections; the active cycle is supplied by the caller at render time.
type FeatureDetail interface {
	// For resolves the detail text for the currently selected billing cycle.
	For(d Duration) string
}

// PlainDetail is detail text independent of the billing cycle.
type PlainDetail string

func (p PlainDetail) For(Duration) string { return string(p) }

// ConditionalDetail carries separate detail text per billing cycle.
type ConditionalDetail struct {
	Monthly string `json:"monthly" yaml:"monthly"`
	Yearly  string `json:"yearly" yaml:"yearly"`
}

func (c ConditionalDetail) For(d Duration) string {
	if d == DurationYearly {
		return c.Yearly
	}
	return c.Monthly
}

// Feature is a single plan feature line: a main label with optional detail
// text. Plain label features have a nil Detail.
type Feature struct {
	Main   string
	Detail FeatureDetail
}

// featureWire mirrors the backend's object encoding of a detailed feature.
type featureWire struct {
	Main string          `json:"main"`
	Sub  json.RawMessage `json:"sub,omitempty"`
}

// UnmarshalJSON accepts the backend's two encodings: a bare string for plain
// labels, or {"main": ..., "sub": ...} where sub is a string or a
// {"monthly": ..., "yearly": ...} object.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*f = Feature{Main: label}
		return nil
	}

	var wire featureWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("catalog: malformed feature: %w", err)
	}

	f.Main = wire.Main
	f.Detail = nil
	if len(wire.Sub) == 0 {
		return nil
	}

	var sub string
	if err := json.Unmarshal(wire.Sub, &sub); err == nil {
		f.Detail = PlainDetail(sub)
		return nil
	}

	var cond ConditionalDetail
	if err := json.Unmarshal(wire.Sub, &cond); err != nil {
		return fmt.Errorf("catalog: malformed feature detail: %w", err)
	}
	f.Detail = cond
	return nil
}

// MarshalJSON emits the same wire shapes the backend uses.
func (f Feature) MarshalJSON() ([]byte, error) {
	if f.Detail == nil {
		return json.Marshal(f.Main)
	}

	switch d := f.Detail.(type) {
	case PlainDetail:
		return json.Marshal(struct {
			Main string `json:"main"`
			Sub  string `json:"sub"`
		}{Main: f.Main, Sub: string(d)})
	case ConditionalDetail:
		return json.Marshal(struct {
			Main string            `json:"main"`
			Sub  ConditionalDetail `json:"sub"`
		}{Main: f.Main, Sub: d})
	default:
		return nil, fmt.Errorf("catalog: unknown feature detail type %T", f.Detail)
	}
}

// UnmarshalYAML supports the same two shapes in YAML catalog files.
func (f *Feature) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Main = node.Value
		f.Detail = nil
		return nil
	}

	var wire struct {
		Main string    `yaml:"main"`
		Sub  yaml.Node `yaml:"sub"`
	}
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("catalog: malformed feature: %w", err)
	}

	f.Main = wire.Main
	f.Detail = nil

	switch wire.Sub.Kind {
	case 0: // absent
	case yaml.ScalarNode:
		f.Detail = PlainDetail(wire.Sub.Value)
	default:
		var cond ConditionalDetail
		if err := wire.Sub.Decode(&cond); err != nil {
			return fmt.Errorf("catalog: malformed feature detail: %w", err)
		}
		f.Detail = cond
	}
	return nil
}
