package scorecard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/odyssey-erp/scorecard/internal/scoring"
)

// Scorecard is the state behind one dashboard.
type Scorecard struct {
	Main          MainMetric        `json:"main"`
	EmployeeCount int               `json:"employee_count"`
	Secondary     []SecondaryMetric `json:"secondary"`
	// NextID only ever grows, so ids stay unique after removals.
	NextID int `json:"next_id"`
}

// Default returns the initial dashboard state.
func Default() *Scorecard {
	return &Scorecard{
		Main:          MainMetric{Plan: 80000, Fact: 30000},
		EmployeeCount: 1,
		Secondary: []SecondaryMetric{
			{ID: "1", Name: DefaultMetricName(1), Plan: 100, Fact: 75},
			{ID: "2", Name: DefaultMetricName(2), Plan: 200, Fact: 180},
			{ID: "3", Name: DefaultMetricName(3), Plan: 150, Fact: 120},
		},
		NextID: 4,
	}
}

// Reset restores the default state in place.
func (s *Scorecard) Reset() {
	*s = *Default()
}

// SetMain replaces the main plan and fact. Negative values become 0.
func (s *Scorecard) SetMain(plan, fact float64) {
	s.Main = MainMetric{Plan: nonNegative(plan), Fact: nonNegative(fact)}
}

// SetEmployeeCount stores n, clamped to at least 1.
func (s *Scorecard) SetEmployeeCount(n int) {
	if n < 1 {
		n = 1
	}
	s.EmployeeCount = n
}

// Add appends a blank metric and returns it.
func (s *Scorecard) Add() SecondaryMetric {
	s.normalize()
	n := s.NextID
	s.NextID++
	metric := SecondaryMetric{ID: strconv.Itoa(n), Name: DefaultMetricName(n)}
	s.Secondary = append(s.Secondary, metric)
	return metric
}

// Remove deletes the metric with the given id. Unknown ids are ignored;
// removing the only metric fails with ErrLastMetric.
func (s *Scorecard) Remove(id string) error {
	idx := s.index(id)
	if idx < 0 {
		return nil
	}
	if len(s.Secondary) <= 1 {
		return ErrLastMetric
	}
	s.Secondary = append(s.Secondary[:idx], s.Secondary[idx+1:]...)
	return nil
}

// CanRemove reports whether Remove would be allowed for an existing id.
func (s *Scorecard) CanRemove() bool {
	return len(s.Secondary) > 1
}

// Update sets plan or fact on the matching metric. Unknown ids are ignored.
func (s *Scorecard) Update(id string, field Field, value float64) error {
	if field != FieldPlan && field != FieldFact {
		return ErrUnknownField
	}
	idx := s.index(id)
	if idx < 0 {
		return nil
	}
	value = nonNegative(value)
	if field == FieldPlan {
		s.Secondary[idx].Plan = value
	} else {
		s.Secondary[idx].Fact = value
	}
	return nil
}

// Rename changes the label of a metric. Blank names fall back to the default.
func (s *Scorecard) Rename(id, name string) {
	idx := s.index(id)
	if idx < 0 {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		if n, err := strconv.Atoi(id); err == nil {
			name = DefaultMetricName(n)
		} else {
			name = s.Secondary[idx].Name
		}
	}
	s.Secondary[idx].Name = name
}

// Find returns the metric with the given id.
func (s *Scorecard) Find(id string) (SecondaryMetric, bool) {
	idx := s.index(id)
	if idx < 0 {
		return SecondaryMetric{}, false
	}
	return s.Secondary[idx], true
}

// Input converts the state into engine input.
func (s *Scorecard) Input() scoring.Input {
	pairs := make([]scoring.Pair, 0, len(s.Secondary))
	for _, m := range s.Secondary {
		pairs = append(pairs, scoring.Pair{Plan: m.Plan, Fact: m.Fact})
	}
	return scoring.Input{
		Main:          scoring.Pair{Plan: s.Main.Plan, Fact: s.Main.Fact},
		EmployeeCount: s.EmployeeCount,
		Secondary:     pairs,
	}
}

// Evaluate scores the current state.
func (s *Scorecard) Evaluate() scoring.Result {
	return scoring.Evaluate(s.Input())
}

// Check rejects states whose percentages overflow to infinity.
func (s *Scorecard) Check() error {
	if !s.Evaluate().Finite() {
		return fmt.Errorf("%w: percentage out of range", ErrInvalidNumber)
	}
	return nil
}

func (s *Scorecard) index(id string) int {
	for i, m := range s.Secondary {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// normalize repairs state decoded from older or hand-edited sessions.
func (s *Scorecard) normalize() {
	if s.EmployeeCount < 1 {
		s.EmployeeCount = 1
	}
	for _, m := range s.Secondary {
		if n, err := strconv.Atoi(m.ID); err == nil && n >= s.NextID {
			s.NextID = n + 1
		}
	}
	if s.NextID < 1 {
		s.NextID = 1
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
