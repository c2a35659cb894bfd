package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ScalarKind identifies the type held by a Scalar
type ScalarKind uint8

const (
	KindNumber ScalarKind = iota + 1
	KindString
	KindBool
)

// Scalar is a single filter value: a number, a string or a boolean
type Scalar struct {
	kind    ScalarKind
	num     float64
	str     string
	boolean bool
}

// Number creates a numeric scalar
func Number(v float64) Scalar { return Scalar{kind: KindNumber, num: v} }

// String creates a string scalar
func String(v string) Scalar { return Scalar{kind: KindString, str: v} }

// Bool creates a boolean scalar
func Bool(v bool) Scalar { return Scalar{kind: KindBool, boolean: v} }

// Kind returns the scalar kind (0 for the zero value)
func (s Scalar) Kind() ScalarKind { return s.kind }

// IsNumber reports whether the scalar holds a number
func (s Scalar) IsNumber() bool { return s.kind == KindNumber }

// Float returns the numeric value
func (s Scalar) Float() (float64, bool) {
	return s.num, s.kind == KindNumber
}

// Str returns the string value
func (s Scalar) Str() (string, bool) {
	return s.str, s.kind == KindString
}

// Interface returns the value as a plain Go value for encoding
func (s Scalar) Interface() interface{} {
	switch s.kind {
	case KindNumber:
		return s.num
	case KindString:
		return s.str
	case KindBool:
		return s.boolean
	}
	return nil
}

// String implements fmt.Stringer
func (s Scalar) String() string {
	switch s.kind {
	case KindNumber:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	case KindString:
		return s.str
	case KindBool:
		return strconv.FormatBool(s.boolean)
	}
	return "<nil>"
}

// MarshalJSON implements json.Marshaler
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Interface())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	v, err := scalarFrom(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func scalarFrom(raw interface{}) (Scalar, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Scalar{}, fmt.Errorf("invalid number %q: %w", v, err)
		}
		return Number(f), nil
	case float64:
		return Number(v), nil
	case int:
		return Number(float64(v)), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	}
	return Scalar{}, fmt.Errorf("unsupported scalar type %T", raw)
}
