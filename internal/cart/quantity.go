package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceQuantity converts loosely typed quantity input into an int. The
// rules mirror the historical client behavior: strings are read as an
// optional sign followed by a leading digit run ("12abc" is 12),
// fractional numbers truncate toward zero, and anything unreadable
// collapses to 0 so the caller treats it as a removal.
func CoerceQuantity(raw any) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return truncateFloat(float64(v))
	case float64:
		return truncateFloat(v)
	case json.Number:
		return leadingInt(v.String())
	case string:
		return leadingInt(v)
	case bool:
		return 0
	default:
		return 0
	}
}

func truncateFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	start := 0
	if s[0] == '+' || s[0] == '-' {
		start = 1
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
