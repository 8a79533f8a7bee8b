package db

import "encoding/json"

// Array-typed entity fields (genres, platforms, cast) are stored as JSON
// text in a single column and decoded back to real slices in responses.

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeStrings never returns nil so responses always carry a JSON array.
func decodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
