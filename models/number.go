package models

import "math"

// OptionalFloat is a numeric document field that may be absent or of the wrong type.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Float wraps a present value.
func Float(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

// DecodeNumber decodes a raw document value. Only numeric kinds are
// accepted; numeric strings, booleans and nil are not numbers.
func DecodeNumber(v any) OptionalFloat {
	switch n := v.(type) {
	case float64:
		return Float(n)
	case float32:
		return Float(float64(n))
	case int:
		return Float(float64(n))
	case int8:
		return Float(float64(n))
	case int16:
		return Float(float64(n))
	case int32:
		return Float(float64(n))
	case int64:
		return Float(float64(n))
	case uint:
		return Float(float64(n))
	case uint8:
		return Float(float64(n))
	case uint16:
		return Float(float64(n))
	case uint32:
		return Float(float64(n))
	case uint64:
		return Float(float64(n))
	}
	return OptionalFloat{}
}

// IsValidPrice reports whether p can take part in a price aggregate.
func IsValidPrice(p OptionalFloat) bool {
	return p.Valid && !math.IsNaN(p.Value) && p.Value > 0
}
