package transform

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// coerceDate parses a raw cell into a UTC calendar day. Anything unusable is
// reported as missing rather than as an error.
func coerceDate(value any) (time.Time, bool) {
	str, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, false
	}

	parsed, err := dateparse.ParseIn(str, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	y, m, d := parsed.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// coerceFloat accepts JSON numbers and numeric strings. Null, empty, boolean
// and non-finite values are missing.
func coerceFloat(value any) (float64, bool) {
	var (
		f   float64
		err error
	)

	switch v := value.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(v.String(), 64)
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return 0, false
		}
		f, err = strconv.ParseFloat(str, 64)
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
