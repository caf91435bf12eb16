// Package scorecard owns the mutable dashboard state of one session: the
// main plan/fact pair, the employee count and the ordered list of
// secondary metrics. Calculations are delegated to package scoring.
package scorecard

import (
	"errors"
	"fmt"
)

var (
	// ErrLastMetric is returned when removing the only secondary metric.
	ErrLastMetric = errors.New("scorecard: at least one secondary metric is required")
	// ErrUnknownField is returned by Update for fields other than plan or fact.
	ErrUnknownField = errors.New("scorecard: unknown metric field")
	// ErrInvalidNumber is returned when user input is not a finite number.
	ErrInvalidNumber = errors.New("scorecard: invalid number")
	// ErrCorruptState is returned when stored session state cannot be decoded.
	ErrCorruptState = errors.New("scorecard: corrupt session state")
)

// Field selects the value Update changes.
type Field string

// Editable metric fields.
const (
	FieldPlan Field = "plan"
	FieldFact Field = "fact"
)

// ParseField validates a raw field name.
func ParseField(raw string) (Field, error) {
	switch Field(raw) {
	case FieldPlan, FieldFact:
		return Field(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
}

// MainMetric is the headline plan/fact pair.
type MainMetric struct {
	Plan float64 `json:"plan"`
	Fact float64 `json:"fact"`
}

// SecondaryMetric is one entry of the bonus list.
type SecondaryMetric struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Plan float64 `json:"plan"`
	Fact float64 `json:"fact"`
}

// DefaultMetricName is the label given to the n-th added metric.
func DefaultMetricName(n int) string {
	return fmt.Sprintf("Показатель %d", n)
}
