// Package typeutil provides safe type assertion and coercion helpers used by
// the context classifier and the response assembler. All helpers follow the
// comma-ok idiom; none of them panic.
package typeutil

// SafeMapStringAny safely asserts value to map[string]any.
// Returns the map and true if successful, or nil and false if not.
func SafeMapStringAny(value any) (map[string]any, bool) {
	if value == nil {
		return nil, false
	}
	m, ok := value.(map[string]any)
	return m, ok
}

// SafeString safely asserts value to string.
// Returns the string and true if successful, or empty string and false if not.
func SafeString(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// SafeStringDefault safely asserts value to string with a default fallback.
func SafeStringDefault(value any, defaultVal string) string {
	if s, ok := SafeString(value); ok {
		return s
	}
	return defaultVal
}

// SafeInt safely asserts value to int. Float values are accepted only when
// they carry no fractional part (common for JSON-decoded integers).
func SafeInt(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case float32:
		if v != float32(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// SafeIntDefault safely asserts value to int with a default fallback.
func SafeIntDefault(value any, defaultVal int) int {
	if i, ok := SafeInt(value); ok {
		return i
	}
	return defaultVal
}

// SafeBool safely asserts value to bool.
func SafeBool(value any) (bool, bool) {
	if value == nil {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// SafeSlice safely asserts value to []any.
// Returns the slice and true if successful, or nil and false if not.
func SafeSlice(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	s, ok := value.([]any)
	return s, ok
}

// SafeIntSlice filters value down to the ints it contains.
// Accepts []any (common from JSON) and []int. Non-integer elements are
// skipped, not errors; order of the surviving elements is preserved.
func SafeIntSlice(value any) ([]int, bool) {
	if value == nil {
		return nil, false
	}
	if s, ok := value.([]int); ok {
		out := make([]int, len(s))
		copy(out, s)
		return out, true
	}
	anySlice, ok := value.([]any)
	if !ok {
		return nil, false
	}
	result := make([]int, 0, len(anySlice))
	for _, item := range anySlice {
		if n, ok := SafeInt(item); ok {
			result = append(result, n)
		}
	}
	return result, true
}

// GetNestedValue safely gets a nested value from a map[string]any following
// the given key path. Returns false when any intermediate step is missing or
// is not a map.
func GetNestedValue(data map[string]any, keys ...string) (any, bool) {
	if data == nil || len(keys) == 0 {
		return nil, false
	}
	current := any(data)
	for _, key := range keys {
		m, ok := SafeMapStringAny(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetNestedMap safely gets a nested map value following the given key path.
func GetNestedMap(data map[string]any, keys ...string) (map[string]any, bool) {
	v, ok := GetNestedValue(data, keys...)
	if !ok {
		return nil, false
	}
	return SafeMapStringAny(v)
}
