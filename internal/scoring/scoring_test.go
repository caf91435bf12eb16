package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePairs() []Pair {
	return []Pair{{Plan: 100, Fact: 75}, {Plan: 200, Fact: 180}, {Plan: 150, Fact: 120}}
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 37.5, Percentage(30000, 80000), 1e-9)
	assert.InDelta(t, 150.0, Percentage(3, 2), 1e-9)
	for _, fact := range []float64{0, 1, -5, 1e9} {
		assert.Zero(t, Percentage(fact, 0), "zero plan must yield 0 for fact %v", fact)
	}
	for _, plan := range []float64{1, 7, 250, 80000} {
		assert.InDelta(t, 100*42/plan, Percentage(42, plan), 1e-9)
	}
}

func TestGradeTable(t *testing.T) {
	cases := []struct {
		pct   float64
		grade int
	}{
		{0, 0}, {10, 0}, {9.99, 0},
		{11, 1}, {35, 1}, {20.5, 1},
		{36, 2}, {37.5, 2}, {50, 2},
		{51, 3}, {65, 3},
		{66, 4}, {78.33, 4}, {79, 4},
		{80, 5}, {100, 5}, {100.01, 5}, {1e6, 5}, {math.Inf(1), 5},
		{-1, 0}, {math.NaN(), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, Grade(tc.pct), "grade(%v)", tc.pct)
	}
}

func TestGradeGapsFallThroughToTop(t *testing.T) {
	for _, pct := range []float64{10.5, 35.5, 35.9, 50.5, 65.5, 79.5, 79.99} {
		assert.Equal(t, MaxGrade, Grade(pct), "grade(%v)", pct)
	}
}

func TestGradeMonotonicWithinBands(t *testing.T) {
	prev := Grade(0)
	for _, band := range gradeBands {
		for x := band.lo; x <= band.hi; x += 0.05 {
			g := Grade(x)
			require.GreaterOrEqual(t, g, prev, "grade dropped at %v", x)
			require.True(t, g >= 0 && g <= MaxGrade)
			prev = g
		}
	}
}

func TestEvaluateGapFinalPercentage(t *testing.T) {
	res := Evaluate(Input{Main: Pair{Plan: 1000, Fact: 795}, EmployeeCount: 1})
	assert.InDelta(t, 79.5, res.FinalPercentage, 1e-9)
	assert.Equal(t, 5, res.FinalGrade)
	assert.Equal(t, 5, res.MainGrade)
}

func TestAverage(t *testing.T) {
	assert.Zero(t, Average(nil))
	assert.InDelta(t, 81.6666, Average([]float64{75, 90, 80}), 1e-3)
}

func TestAverageIgnoresOrder(t *testing.T) {
	forward := Evaluate(Input{Main: Pair{Plan: 10, Fact: 5}, EmployeeCount: 1, Secondary: samplePairs()})
	pairs := samplePairs()
	reversed := []Pair{pairs[2], pairs[0], pairs[1]}
	backward := Evaluate(Input{Main: Pair{Plan: 10, Fact: 5}, EmployeeCount: 1, Secondary: reversed})
	assert.InDelta(t, forward.AverageSecondary, backward.AverageSecondary, 1e-9)
}

func TestBonusPerEmployee(t *testing.T) {
	assert.InDelta(t, 40, BonusPerEmployee(80, 2), 1e-9)
	assert.Zero(t, BonusPerEmployee(80, 0))
	assert.Zero(t, BonusPerEmployee(80, -3))
}

func TestEvaluateMainOnly(t *testing.T) {
	res := Evaluate(Input{Main: Pair{Plan: 80000, Fact: 30000}, EmployeeCount: 1})
	assert.InDelta(t, 37.5, res.MainPercentage, 1e-9)
	assert.Equal(t, 2, res.MainGrade)
	assert.Zero(t, res.AverageSecondary)
	assert.InDelta(t, 37.5, res.FinalPercentage, 1e-9)
}

func TestEvaluateSingleEmployee(t *testing.T) {
	res := Evaluate(Input{Main: Pair{Plan: 80000, Fact: 30000}, EmployeeCount: 1, Secondary: samplePairs()})
	require.Len(t, res.SecondaryPercentage, 3)
	assert.InDelta(t, 75, res.SecondaryPercentage[0], 1e-9)
	assert.InDelta(t, 90, res.SecondaryPercentage[1], 1e-9)
	assert.InDelta(t, 80, res.SecondaryPercentage[2], 1e-9)
	assert.InDelta(t, 81.6667, res.AverageSecondary, 1e-3)
	assert.InDelta(t, 81.67, res.BonusPerEmployee, 1e-2)
	assert.Equal(t, 100.0, res.FinalPercentage)
	assert.Equal(t, 5, res.FinalGrade)
	assert.True(t, res.Improved)
}

func TestEvaluateTwoEmployees(t *testing.T) {
	res := Evaluate(Input{Main: Pair{Plan: 80000, Fact: 30000}, EmployeeCount: 2, Secondary: samplePairs()})
	assert.InDelta(t, 40.83, res.BonusPerEmployee, 1e-2)
	assert.InDelta(t, 78.33, res.FinalPercentage, 1e-2)
	assert.Equal(t, 4, res.FinalGrade)
}

func TestFinalPercentageCapped(t *testing.T) {
	inputs := []Input{
		{Main: Pair{Plan: 1, Fact: 1000}, EmployeeCount: 1},
		{Main: Pair{Plan: 100, Fact: 99}, EmployeeCount: 1, Secondary: []Pair{{Plan: 1, Fact: 500}}},
		{Main: Pair{Plan: 0, Fact: 10}, EmployeeCount: 3, Secondary: []Pair{{Plan: 2, Fact: 900}}},
	}
	for _, in := range inputs {
		res := Evaluate(in)
		assert.LessOrEqual(t, res.FinalPercentage, MaxPercentage)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(-4))
	assert.Equal(t, 0.0, Progress(math.NaN()))
	assert.Equal(t, 37.5, Progress(37.5))
	assert.Equal(t, 100.0, Progress(240))
}

func TestTone(t *testing.T) {
	assert.Equal(t, "red", Tone(0))
	assert.Equal(t, "green", Tone(4))
	assert.Equal(t, "emerald", Tone(5))
	assert.Equal(t, "emerald", Tone(9))
	assert.Equal(t, "emerald", Tone(-1))
}

func TestResultFinite(t *testing.T) {
	assert.True(t, Evaluate(Input{Main: Pair{Plan: 80000, Fact: 30000}, EmployeeCount: 1, Secondary: samplePairs()}).Finite())

	overflowMain := Evaluate(Input{Main: Pair{Plan: 1e-300, Fact: 1e300}, EmployeeCount: 1, Secondary: samplePairs()})
	assert.False(t, overflowMain.Finite())
	assert.Equal(t, 100.0, overflowMain.FinalPercentage, "final stays capped even when main overflows")

	overflowSecondary := Evaluate(Input{Main: Pair{Plan: 10, Fact: 5}, EmployeeCount: 1, Secondary: []Pair{{Plan: 1e-300, Fact: 1e300}}})
	assert.False(t, overflowSecondary.Finite())
}
