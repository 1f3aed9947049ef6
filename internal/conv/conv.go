// Package conv collects tiny helper functions that are not part of the
// public API but aid coercion of decoded command parameters, which arrive
// as generic JSON values.
package conv

// AsInt coerces a decoded JSON value into an int, returning fallback when
// the value is absent or not numeric. JSON numbers decode as float64.
func AsInt(value any, fallback int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}

// AsString coerces a decoded JSON value into a string.
func AsString(value any, fallback string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fallback
}

// AsBool coerces a decoded JSON value into a bool.
func AsBool(value any) bool {
	b, _ := value.(bool)
	return b
}

// AsStrings coerces a decoded JSON array into a string slice, ignoring
// non-string elements.
func AsStrings(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
