package scorecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"":       0,
		"  ":     0,
		"42":     42,
		" 37.5 ": 37.5,
		"12,25":  12.25,
		"-3":     -3,
		"80000":  80000,
	}
	for raw, want := range cases {
		got, err := ParseNumber(raw)
		assert.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
	for _, raw := range []string{"abc", "1.2.3", "NaN", "Inf", "-inf"} {
		_, err := ParseNumber(raw)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", raw)
	}
}

func TestParseEmployeeCount(t *testing.T) {
	n, err := ParseEmployeeCount("3")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, raw := range []string{"0", "-4", "", "0.5"} {
		n, err := ParseEmployeeCount(raw)
		assert.NoError(t, err)
		assert.Equal(t, 1, n, "input %q clamps to 1", raw)
	}

	n, err = ParseEmployeeCount("2.9")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ParseEmployeeCount("many")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
