package content

import (
	"strconv"
)

// Data returns the "data" member of a response envelope, or nil.
func Data(envelope any) any {
	return Field(envelope, "data")
}

// Field returns v[key] when v is a JSON object, otherwise nil.
func Field(v any, key string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// List returns v[key] when it is a JSON array.
func List(v any, key string) ([]any, bool) {
	arr, ok := Field(v, key).([]any)
	return arr, ok
}

// Text formats v[key] for display. Absent and null fields are empty.
func Text(v any, key string) string {
	switch x := Field(v, key).(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// TextOr is Text with a fallback for empty values.
func TextOr(v any, key, fallback string) string {
	if s := Text(v, key); s != "" {
		return s
	}
	return fallback
}
