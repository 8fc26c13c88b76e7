package db

import "strconv"

// ToInt and ToFloat normalize driver-specific scan types. sqlite hands
// back int64/float64, postgres may return []byte for numerics.
func ToInt(v any) int {
	switch value := v.(type) {
	case int64:
		return int(value)
	case int:
		return value
	case float64:
		return int(value)
	case []byte:
		n, _ := strconv.Atoi(string(value))
		return n
	case string:
		n, _ := strconv.Atoi(value)
		return n
	}
	return 0
}

func ToFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case int:
		return float64(value)
	case []byte:
		f, _ := strconv.ParseFloat(string(value), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(value, 64)
		return f
	}
	return 0
}
