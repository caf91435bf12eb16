// Package scoring turns plan/fact pairs into completion percentages,
// grades and the per-employee bonus shown on the scorecard dashboard.
// Every function here is pure.
package scoring

import "math"

// MaxPercentage caps the final percentage.
const MaxPercentage = 100.0

// gradeBands are inclusive percentage ranges, indexed by grade.
var gradeBands = [...]struct{ lo, hi float64 }{
	{0, 10},
	{11, 35},
	{36, 50},
	{51, 65},
	{66, 79},
	{80, 100},
}

// MaxGrade is the top grade.
const MaxGrade = len(gradeBands) - 1

// Pair is a plan/fact couple.
type Pair struct {
	Plan float64 `json:"plan"`
	Fact float64 `json:"fact"`
}

// Input groups everything Evaluate needs.
type Input struct {
	Main          Pair   `json:"main"`
	EmployeeCount int    `json:"employee_count"`
	Secondary     []Pair `json:"secondary"`
}

// Result is the outcome of a scorecard evaluation.
type Result struct {
	MainPercentage      float64   `json:"main_percentage"`
	MainGrade           int       `json:"main_grade"`
	SecondaryPercentage []float64 `json:"secondary_percentages"`
	AverageSecondary    float64   `json:"average_secondary_percentage"`
	BonusPerEmployee    float64   `json:"bonus_per_employee"`
	FinalPercentage     float64   `json:"final_percentage"`
	FinalGrade          int       `json:"final_grade"`
	Improved            bool      `json:"improved"`
}

// Percentage returns fact as a share of plan in percent. A zero plan
// yields 0.
func Percentage(fact, plan float64) float64 {
	if plan == 0 {
		return 0
	}
	return fact / plan * 100
}

// Grade maps a percentage to 0..MaxGrade using inclusive bands. Values
// outside every band, such as 10.5 or anything over 100, fall through to
// MaxGrade. Negative values and NaN are 0.
func Grade(percentage float64) int {
	if math.IsNaN(percentage) || percentage < 0 {
		return 0
	}
	for grade, band := range gradeBands {
		if percentage >= band.lo && percentage <= band.hi {
			return grade
		}
	}
	return MaxGrade
}

// Average returns the arithmetic mean, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// BonusPerEmployee splits the average secondary percentage across
// employees. Non-positive counts yield 0.
func BonusPerEmployee(average float64, employees int) float64 {
	if employees <= 0 {
		return 0
	}
	return average / float64(employees)
}

// Progress clamps a percentage to the [0,100] range used by progress bars.
func Progress(percentage float64) float64 {
	if math.IsNaN(percentage) || percentage < 0 {
		return 0
	}
	return math.Min(percentage, MaxPercentage)
}

// Finite reports whether every percentage in r is a finite number. Finite
// inputs can still overflow, e.g. a huge fact over a tiny plan.
func (r Result) Finite() bool {
	values := append([]float64{r.MainPercentage, r.AverageSecondary, r.BonusPerEmployee, r.FinalPercentage}, r.SecondaryPercentage...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Evaluate runs the full scorecard calculation.
func Evaluate(in Input) Result {
	mainPct := Percentage(in.Main.Fact, in.Main.Plan)
	secondary := make([]float64, 0, len(in.Secondary))
	for _, p := range in.Secondary {
		secondary = append(secondary, Percentage(p.Fact, p.Plan))
	}
	avg := Average(secondary)
	bonus := BonusPerEmployee(avg, in.EmployeeCount)
	final := math.Min(mainPct+bonus, MaxPercentage)

	res := Result{
		MainPercentage:      mainPct,
		MainGrade:           Grade(mainPct),
		SecondaryPercentage: secondary,
		AverageSecondary:    avg,
		BonusPerEmployee:    bonus,
		FinalPercentage:     final,
		FinalGrade:          Grade(final),
	}
	res.Improved = res.FinalGrade >= res.MainGrade
	return res
}
