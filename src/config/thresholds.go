package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedThreshold is returned when a threshold value cannot be used
var ErrMalformedThreshold = errors.New("malformed threshold")

// Thresholds maps a threshold key to its configured limit. Values are kept
// raw so a single bad entry falls back to its default instead of failing
// the whole configuration file.
type Thresholds map[string]any

// Float returns the threshold for key, or def when absent. A malformed value
// yields def together with an ErrMalformedThreshold error.
func (t Thresholds) Float(key string, def float64) (float64, error) {
	raw, ok := t[key]
	if !ok || raw == nil {
		return def, nil
	}

	var v float64
	switch n := raw.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint64:
		v = float64(n)
	case float64:
		v = n
	case float32:
		v = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def, fmt.Errorf("%w: %s=%q is not a number", ErrMalformedThreshold, key, n)
		}
		v = parsed
	default:
		return def, fmt.Errorf("%w: %s has unsupported type %T", ErrMalformedThreshold, key, raw)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def, fmt.Errorf("%w: %s=%v is out of range", ErrMalformedThreshold, key, v)
	}
	return v, nil
}

// Int is Float truncated to an int
func (t Thresholds) Int(key string, def int) (int, error) {
	v, err := t.Float(key, float64(def))
	return int(v), err
}

// Ratio is Float restricted to [0, 1]
func (t Thresholds) Ratio(key string, def float64) (float64, error) {
	v, err := t.Float(key, def)
	if err != nil {
		return v, err
	}
	if v > 1 {
		return def, fmt.Errorf("%w: %s=%v is above 1", ErrMalformedThreshold, key, v)
	}
	return v, nil
}
