// Package numeric converts loosely-typed record values into numbers.
//
// Record data is a map of JSON values, so a "numeric" field may hold a
// float, an int, a numeric string, garbage or nil. Parsing yields a
// tagged result so callers can tell a real number from an unparseable
// value; the "coerce to 0" policy the report math depends on is applied
// only at the aggregation boundary via Coerce.
package numeric

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is the tagged result of parsing a record value.
type Value struct {
	dec decimal.Decimal
	ok  bool
}

// Unparseable is the zero Value.
var Unparseable = Value{}

// Number wraps a decimal into a parsed Value.
func Number(d decimal.Decimal) Value {
	return Value{dec: d, ok: true}
}

// IsNumber reports whether the value parsed as a number.
func (v Value) IsNumber() bool { return v.ok }

// Decimal returns the parsed number, zero when unparseable.
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Float64 returns the parsed number as float64, 0 when unparseable.
func (v Value) Float64() float64 {
	f, _ := v.dec.Float64()
	return f
}

// Parse converts a raw record value into a tagged numeric result.
func Parse(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Unparseable
	case float64:
		return Number(decimal.NewFromFloat(val))
	case float32:
		return Number(decimal.NewFromFloat32(val))
	case int:
		return Number(decimal.NewFromInt(int64(val)))
	case int64:
		return Number(decimal.NewFromInt(val))
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return Unparseable
		}
		return Number(d)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return Unparseable
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Unparseable
		}
		return Number(d)
	default:
		return Unparseable
	}
}

// Coerce applies the best-effort policy: unparseable values become 0.
// Sums and averages change silently under this rule, which is the
// documented contract for report math.
func Coerce(raw any) decimal.Decimal {
	return Parse(raw).Decimal()
}

// CoerceFloat is Coerce exposed as float64 for result shapes.
func CoerceFloat(raw any) float64 {
	return Parse(raw).Float64()
}
