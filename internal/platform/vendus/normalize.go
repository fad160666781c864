package vendus

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// listKeys are the envelope keys that may wrap an upstream list, in lookup order.
var listKeys = []string{"products", "data", "items"}

// ParseBody decodes an upstream body. Numbers are kept as json.Number so ids
// and prices round-trip exactly. An empty body yields nil and a body that is
// not a single valid JSON value yields {"raw": text}.
func ParseBody(text string) any {
	v, _ := parseBody(text)
	return v
}

func parseBody(text string) (any, bool) {
	if text == "" {
		return nil, true
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{"raw": text}, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return map[string]any{"raw": text}, false
	}
	return v, true
}

// NormalizeList extracts the record list from an upstream body: a bare array,
// or an object holding an array under products, data or items. Anything else
// yields an empty list.
func NormalizeList(body any) []any {
	switch v := body.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range listKeys {
			if list, ok := v[key].([]any); ok {
				return list
			}
		}
	}
	return []any{}
}
