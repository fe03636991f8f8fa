package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat converts loosely-typed input (multipart form strings, JSON
// numbers) to a float64. Anything non-numeric becomes 0.
func ToFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func ToInt(v interface{}) int {
	return int(ToFloat(v))
}

// ToBool accepts bools, "true"/"false"/"1"/"0" strings and JSON numbers.
// Unparseable input becomes false.
func ToBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		ok, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false
		}
		return ok
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return false
}
