package constraints

import (
	"fmt"
	"sort"

	"github.com/Simplici0/printquote/internal/options"
)

// Evaluate applies the product's active constraints in ascending priority.
// Show results accumulate values for their target field, hide and disable
// results disable it, and range limits are encoded as
// "range:WxH:WxH" values.
func Evaluate(in EvalInput) (EvalResult, error) {
	res := EvalResult{
		AvailableOptions: map[string][]string{},
		DisabledOptions:  map[string]options.DisabledReason{},
		Violations:       []options.ConstraintViolation{},
	}

	var applicable []options.OptionConstraint
	for _, c := range in.Constraints {
		if c.ProductID == in.ProductID && c.IsActive {
			applicable = append(applicable, c)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool { return applicable[i].Priority < applicable[j].Priority })

	for _, c := range applicable {
		r, err := EvaluateSingle(c, in)
		if err != nil {
			return EvalResult{}, err
		}
		switch r.Action {
		case ActionShow:
			res.AvailableOptions[c.TargetField] = append(res.AvailableOptions[c.TargetField], r.Values...)
		case ActionHide, ActionDisable:
			res.DisabledOptions[c.TargetField] = options.DisabledReason{
				Type:         options.ReasonConstraint,
				ConstraintID: c.ID,
				Description:  c.Description,
			}
		case ActionLimitRange:
			if r.Min != nil && r.Max != nil {
				res.AvailableOptions[c.TargetField] = append(res.AvailableOptions[c.TargetField], rangeValue(*r.Min, *r.Max))
			}
		}
		if r.Violated {
			msg := c.Description
			if msg == "" {
				msg = fmt.Sprintf("Constraint %d violated", c.ID)
			}
			res.Violations = append(res.Violations, options.ConstraintViolation{
				ConstraintID:   c.ID,
				ConstraintType: c.ConstraintType,
				Message:        msg,
				SourceField:    c.SourceField,
				TargetField:    c.TargetField,
			})
		}
	}
	return res, nil
}

// EvaluateSingle dispatches one constraint to its handler. Unknown constraint
// types show their target and never violate.
func EvaluateSingle(c options.OptionConstraint, in EvalInput) (Result, error) {
	switch c.ConstraintType {
	case TypeSizeShow:
		return EvaluateSizeShow(c, in.Selections)
	case TypeSizeRange:
		return EvaluateSizeRange(c, in.Selections)
	case TypePaperCondition:
		return EvaluatePaperCondition(c, in.Selections, in.Papers), nil
	default:
		return Result{Action: ActionShow}, nil
	}
}

func rangeValue(lo, hi Dimensions) string {
	return fmt.Sprintf("range:%gx%g:%gx%g", lo.Width, lo.Height, hi.Width, hi.Height)
}
