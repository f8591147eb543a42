package utils

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "5m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// ToInt converts a cell value to an integer. Numeric strings are trimmed
// first; floats and float strings ("4.0") must be whole numbers.
func ToInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return wholeFloat(val)
	case float32:
		return wholeFloat(float64(val))
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), true
		}
		if f, err := val.Float64(); err == nil {
			return wholeFloat(f)
		}
		return 0, false
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return wholeFloat(f)
	default:
		rv := reflect.ValueOf(v)
		switch {
		case rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Int64:
			return int(rv.Int()), true
		case rv.Kind() >= reflect.Uint && rv.Kind() <= reflect.Uint64:
			return int(rv.Uint()), true
		}
		return 0, false
	}
}

func wholeFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
