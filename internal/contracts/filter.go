package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FilterValue is either a single scalar or a list of scalars
type FilterValue struct {
	items []Scalar
	list  bool
}

// ScalarValue wraps a single scalar
func ScalarValue(s Scalar) FilterValue {
	return FilterValue{items: []Scalar{s}}
}

// ListValue wraps a list of scalars
func ListValue(items ...Scalar) FilterValue {
	cp := make([]Scalar, len(items))
	copy(cp, items)
	return FilterValue{items: cp, list: true}
}

// ValueOf converts a decoded JSON/YAML value (scalar or slice) into a FilterValue
func ValueOf(raw interface{}) (FilterValue, error) {
	if items, ok := raw.([]interface{}); ok {
		out := make([]Scalar, 0, len(items))
		for i, item := range items {
			s, err := scalarFrom(normalizeNumber(item))
			if err != nil {
				return FilterValue{}, fmt.Errorf("item %d: %w", i, err)
			}
			out = append(out, s)
		}
		return FilterValue{items: out, list: true}, nil
	}

	s, err := scalarFrom(normalizeNumber(raw))
	if err != nil {
		return FilterValue{}, err
	}
	return ScalarValue(s), nil
}

func normalizeNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

// IsList reports whether the value was supplied as a list
func (v FilterValue) IsList() bool { return v.list }

// Len returns the number of scalars held
func (v FilterValue) Len() int { return len(v.items) }

// Items returns a copy of the held scalars (one element for a scalar value)
func (v FilterValue) Items() []Scalar {
	cp := make([]Scalar, len(v.items))
	copy(cp, v.items)
	return cp
}

// Single returns the scalar of a non-list value
func (v FilterValue) Single() (Scalar, bool) {
	if v.list || len(v.items) != 1 {
		return Scalar{}, false
	}
	return v.items[0], true
}

// MarshalJSON implements json.Marshaler
func (v FilterValue) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	if len(v.items) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(v.items[0])
}

// UnmarshalJSON implements json.Unmarshaler
func (v *FilterValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FilterTriple is one (field, operator, value) constraint
type FilterTriple struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    FilterValue `json:"value"`
}

// NewFilter creates a filter triple
func NewFilter(field string, op Operator, value FilterValue) FilterTriple {
	return FilterTriple{Field: field, Operator: op, Value: value}
}

// IsRegion reports whether this filter constrains the region field
func (f FilterTriple) IsRegion() bool {
	return strings.EqualFold(f.Field, RegionField)
}

// RegionField is the canonical field name for market region filters
const RegionField = "region"
