package typeutil

import (
	"encoding/json"
	"strconv"
)

// Stringify converts an arbitrary value to its wire string form: scalars are
// formatted directly, objects and slices are JSON-encoded. A value that
// cannot be encoded yields the empty string for that value only; the caller's
// loop is never aborted. nil yields the empty string.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		// Structs and other composites go through JSON as well; anything
		// unencodable (channels, funcs) degrades to empty string.
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		// Marshal quotes plain scalars; strip that for strings only.
		var s string
		if json.Unmarshal(encoded, &s) == nil {
			return s
		}
		return string(encoded)
	}
}

// JSONSerializable reports whether value can be JSON-encoded.
func JSONSerializable(value any) bool {
	_, err := json.Marshal(value)
	return err == nil
}

// DeepCopyMap returns a structural copy of m. Nested maps and slices are
// copied recursively so callers cannot reach internal state through the
// returned value. Scalars are shared (they are immutable).
func DeepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = DeepCopyValue(v)
	}
	return out
}

// DeepCopySlice returns a structural copy of s.
func DeepCopySlice(s []any) []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = DeepCopyValue(v)
	}
	return out
}

// DeepCopyValue copies maps and slices recursively, passing scalars through.
func DeepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DeepCopyMap(t)
	case []any:
		return DeepCopySlice(t)
	default:
		return v
	}
}
