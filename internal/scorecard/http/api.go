package scorecardhttp

import (
	"github.com/odyssey-erp/scorecard/internal/scorecard"
	"github.com/odyssey-erp/scorecard/internal/scoring"
)

type pairRequest struct {
	Plan *float64 `json:"plan" validate:"required,gte=0"`
	Fact *float64 `json:"fact" validate:"required,gte=0"`
}

// evaluateRequest is the body of POST /api/evaluate.
type evaluateRequest struct {
	Main          pairRequest   `json:"main"`
	EmployeeCount int           `json:"employee_count"`
	Secondary     []pairRequest `json:"secondary" validate:"required,min=1,max=200,dive"`
}

func (req evaluateRequest) input() scoring.Input {
	in := scoring.Input{
		Main:          scoring.Pair{Plan: *req.Main.Plan, Fact: *req.Main.Fact},
		EmployeeCount: req.EmployeeCount,
		Secondary:     make([]scoring.Pair, 0, len(req.Secondary)),
	}
	if in.EmployeeCount < 1 {
		in.EmployeeCount = 1
	}
	for _, p := range req.Secondary {
		in.Secondary = append(in.Secondary, scoring.Pair{Plan: *p.Plan, Fact: *p.Fact})
	}
	return in
}

// updateRequest is the body of PATCH /api/scorecard/metrics/{id}.
type updateRequest struct {
	Field string   `json:"field" validate:"required"`
	Value *float64 `json:"value" validate:"required,gte=0"`
}

type scorecardResponse struct {
	State  *scorecard.Scorecard `json:"state"`
	Result scoring.Result       `json:"result"`
}
