package scorecard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces a form value to a float. Blank input is 0, a comma
// decimal separator is accepted, anything else non-numeric is rejected.
func ParseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return v, nil
}

// ParseEmployeeCount coerces a form value to an employee count of at least 1.
// Fractions are truncated.
func ParseEmployeeCount(raw string) (int, error) {
	v, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	n := int(v)
	if n < 1 {
		n = 1
	}
	return n, nil
}
