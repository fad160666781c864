package domain

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Upstream payloads are decoded into generic values (map[string]any, []any,
// string, json.Number, bool, nil). The helpers below give those values the
// loose semantics the upstream API relies on.

// Truthy reports whether v counts as set: nil, false, "", and numeric zero do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// OrNil returns v when it is truthy and nil otherwise.
func OrNil(v any) any {
	if Truthy(v) {
		return v
	}
	return nil
}

// CoerceNumber converts v to a finite number. Absent, null and empty-string
// values, unparseable strings and non-finite results yield nil. Strings may be
// decimal literals or unsigned 0x, 0o and 0b integers, so "0x10" is 16.
func CoerceNumber(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		s := strings.TrimSpace(t)
		if s == "" {
			f = 0
			break
		}
		parsed, ok := parseNumericString(s)
		if !ok {
			return nil
		}
		f = parsed
	case json.Number:
		parsed, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Field walks nested objects and arrays. Keys are strings for objects and
// ints for arrays; any miss yields nil.
func Field(v any, path ...any) any {
	cur := v
	for _, key := range path {
		switch k := key.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[k]
		case int:
			s, ok := cur.([]any)
			if !ok || k < 0 || k >= len(s) {
				return nil
			}
			cur = s[k]
		default:
			return nil
		}
	}
	return cur
}

// Text renders scalar values the way they would appear when interpolated
// into a string. Objects, arrays and nil render as "".
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// parseNumericString accepts a decimal literal or an unsigned integer with a
// 0x, 0o or 0b prefix. Hex floats and digit separators are rejected.
func parseNumericString(s string) (float64, bool) {
	if len(s) > 2 && s[0] == '0' {
		if base := radixPrefix(s[1]); base != 0 {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return 0, false
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func radixPrefix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
