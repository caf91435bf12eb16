package scorecardhttp

import (
	"fmt"
	"html/template"

	"github.com/odyssey-erp/scorecard/internal/scorecard"
	"github.com/odyssey-erp/scorecard/internal/scorecard/svg"
	"github.com/odyssey-erp/scorecard/internal/scoring"
)

// MetricRow is one secondary metric as shown on the dashboard.
type MetricRow struct {
	ID          string
	Name        string
	Plan        float64
	Fact        float64
	Percentage  float64
	ProgressSVG template.HTML
	Removable   bool
}

// DashboardViewModel combines state and evaluation for rendering.
type DashboardViewModel struct {
	Main             scorecard.MainMetric
	EmployeeCount    int
	MainPercentage   float64
	MainGrade        int
	MainProgressSVG  template.HTML
	Metrics          []MetricRow
	AverageSecondary float64
	BonusPerEmployee float64
	FinalPercentage  float64
	FinalGrade       int
	Improved         bool
	CompletionSVG    template.HTML
}

func buildViewModel(card *scorecard.Scorecard, res scoring.Result) (DashboardViewModel, error) {
	mainBar, err := svg.Progress(0, 0, res.MainPercentage, svg.ProgressOpts{Title: "Основной расчет"})
	if err != nil {
		return DashboardViewModel{}, fmt.Errorf("main progress: %w", err)
	}
	vm := DashboardViewModel{
		Main:             card.Main,
		EmployeeCount:    card.EmployeeCount,
		MainPercentage:   res.MainPercentage,
		MainGrade:        res.MainGrade,
		MainProgressSVG:  mainBar,
		Metrics:          make([]MetricRow, 0, len(card.Secondary)),
		AverageSecondary: res.AverageSecondary,
		BonusPerEmployee: res.BonusPerEmployee,
		FinalPercentage:  res.FinalPercentage,
		FinalGrade:       res.FinalGrade,
		Improved:         res.Improved,
	}

	labels := make([]string, 0, len(card.Secondary))
	removable := card.CanRemove()
	for i, m := range card.Secondary {
		pct := res.SecondaryPercentage[i]
		bar, err := svg.Progress(0, 8, pct, svg.ProgressOpts{Title: m.Name})
		if err != nil {
			return DashboardViewModel{}, fmt.Errorf("metric %s progress: %w", m.ID, err)
		}
		vm.Metrics = append(vm.Metrics, MetricRow{
			ID:          m.ID,
			Name:        m.Name,
			Plan:        m.Plan,
			Fact:        m.Fact,
			Percentage:  pct,
			ProgressSVG: bar,
			Removable:   removable,
		})
		labels = append(labels, m.Name)
	}

	if len(labels) > 0 {
		chart, err := svg.Completion(0, 0, res.SecondaryPercentage, labels, svg.CompletionOpts{
			Title:       "Выполнение",
			Description: "Выполнение дополнительных показателей",
		})
		if err != nil {
			return DashboardViewModel{}, fmt.Errorf("completion chart: %w", err)
		}
		vm.CompletionSVG = chart
	}
	return vm, nil
}
