package model

import (
	"encoding/json"
	"strconv"
)

// Fields holds the raw key/value pairs submitted in a request body.
// Every value is kept as text; typing happens when a patch or issue is built.
type Fields map[string]string

// Has reports whether key was submitted at all, empty or not.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// FieldsFromJSON flattens a decoded JSON object into Fields.
// Scalars are kept in their textual form; null, objects and arrays are dropped.
func FieldsFromJSON(obj map[string]any) Fields {
	out := make(Fields, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case json.Number:
			out[k] = val.String()
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return out
}
