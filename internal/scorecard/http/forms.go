package scorecardhttp

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/scorecard/internal/scorecard"
)

type mainForm struct {
	Plan string `validate:"max=32"`
	Fact string `validate:"max=32"`
}

type employeesForm struct {
	EmployeeCount string `validate:"max=16"`
}

type metricForm struct {
	ID   string `validate:"required,max=16,numeric"`
	Name string `validate:"max=80"`
	Plan string `validate:"max=32"`
	Fact string `validate:"max=32"`
}

// numbers parses a list of raw values in order.
func numbers(raws ...string) ([]float64, error) {
	out := make([]float64, 0, len(raws))
	for _, raw := range raws {
		v, err := scorecard.ParseNumber(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func firstValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("%s: failed %q", fe.Field(), fe.Tag())
	}
	return err
}
