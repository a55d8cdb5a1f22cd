package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Type is the JSON type of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a decoded JSON value. Access is explicit and typed: each As*
// method returns ErrTypeMismatch when the value has another type.
// The zero Value is JSON null.
type Value struct {
	v any // nil, bool, json.Number, string, []any, map[string]any
}

// ParseValue decodes exactly one JSON value from data. Numbers keep their
// textual form. Empty input and trailing data are errors.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unexpected data after JSON value")
	}
	return Value{v: v}, nil
}

// Type returns the JSON type.
func (v Value) Type() Type {
	switch v.v.(type) {
	case bool:
		return TypeBool
	case json.Number:
		return TypeNumber
	case string:
		return TypeString
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	default:
		return TypeNull
	}
}

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.v == nil }

// Raw returns the underlying decoded representation.
func (v Value) Raw() any { return v.v }

// MarshalJSON encodes v back to JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

func (v Value) mismatch(want Type) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, v.Type())
}

// Field returns the named field of an object. ok is false when v is not an
// object or the field is absent.
func (v Value) Field(name string) (Value, bool) {
	m, isObj := v.v.(map[string]any)
	if !isObj {
		return Value{}, false
	}
	f, ok := m[name]
	return Value{v: f}, ok
}

// Require returns the named field or an error naming it.
func (v Value) Require(name string) (Value, error) {
	if v.Type() != TypeObject {
		return Value{}, v.mismatch(TypeObject)
	}
	f, ok := v.Field(name)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrFieldMissing, name)
	}
	return f, nil
}

// StringField returns the named field as a string.
func (v Value) StringField(name string) (string, error) {
	f, err := v.Require(name)
	if err != nil {
		return "", err
	}
	s, err := f.AsString()
	if err != nil {
		return "", fmt.Errorf("field %q: %w", name, err)
	}
	return s, nil
}

// AsString returns v as a string.
func (v Value) AsString() (string, error) {
	s, ok := v.v.(string)
	if !ok {
		return "", v.mismatch(TypeString)
	}
	return s, nil
}

// AsBool returns v as a bool.
func (v Value) AsBool() (bool, error) {
	b, ok := v.v.(bool)
	if !ok {
		return false, v.mismatch(TypeBool)
	}
	return b, nil
}

// AsInt returns v as an int. Integral JSON numbers and strings holding a
// base-10 integer are accepted; the student API renders ages as strings.
func (v Value) AsInt() (int, error) {
	var text string
	switch x := v.v.(type) {
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
	default:
		return 0, v.mismatch(TypeNumber)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, text)
	}
	return int(f), nil
}

// AsFloat returns v as a float64.
func (v Value) AsFloat() (float64, error) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, v.mismatch(TypeNumber)
	}
	return n.Float64()
}

// AsObject returns the fields of an object.
func (v Value) AsObject() (map[string]Value, error) {
	m, ok := v.v.(map[string]any)
	if !ok {
		return nil, v.mismatch(TypeObject)
	}
	out := make(map[string]Value, len(m))
	for k, f := range m {
		out[k] = Value{v: f}
	}
	return out, nil
}

// AsArray returns the elements of an array.
func (v Value) AsArray() ([]Value, error) {
	a, ok := v.v.([]any)
	if !ok {
		return nil, v.mismatch(TypeArray)
	}
	out := make([]Value, len(a))
	for i, e := range a {
		out[i] = Value{v: e}
	}
	return out, nil
}
