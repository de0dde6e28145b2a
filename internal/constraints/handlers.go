package constraints

import (
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/printquote/internal/options"
	"github.com/Simplici0/printquote/internal/pricing"
)

// sizeTolerance is the slack allowed when comparing cut sizes, in mm.
const sizeTolerance = 0.5

// EvaluatePaperCondition enables the target when the selected paper's weight
// satisfies the operator against the constraint value, and disables it
// otherwise. Without a resolvable paper the target is disabled but nothing is
// violated. A failed condition only counts as a violation while the target
// field is selected.
func EvaluatePaperCondition(c options.OptionConstraint, sel options.Selections, papers []pricing.Paper) Result {
	disabled := Result{Action: ActionDisable}
	s, ok := sel[c.SourceField]
	if !ok || s.RefPaperID == nil {
		return disabled
	}
	paper, ok := pricing.FindPaper(papers, *s.RefPaperID)
	if !ok {
		return disabled
	}
	threshold, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return disabled
	}
	weight := 0.0
	if paper.Weight != nil {
		weight = *paper.Weight
	}

	var pass bool
	switch c.Operator {
	case "gte":
		pass = weight >= threshold
	case "lte":
		pass = weight <= threshold
	case "eq":
		pass = weight == threshold
	default:
		return disabled
	}
	if pass {
		return Result{Action: ActionEnable}
	}
	_, targetSelected := sel[c.TargetField]
	return Result{Action: ActionDisable, Violated: targetSelected}
}

// EvaluateSizeRange turns a "between" constraint into a size range limit. The
// range is violated when the source selection carries a cut size outside it.
func EvaluateSizeRange(c options.OptionConstraint, sel options.Selections) (Result, error) {
	if c.Operator != "between" {
		return Result{}, &ConstraintError{Code: CodeInvalidOperator, ConstraintID: c.ID, Detail: "size_range needs between, got " + c.Operator}
	}
	minW, minH, err := pricing.ParseSize(c.ValueMin)
	if err != nil {
		return Result{}, &ConstraintError{Code: CodeInvalidSize, ConstraintID: c.ID, Detail: "valueMin " + c.ValueMin}
	}
	maxW, maxH, err := pricing.ParseSize(c.ValueMax)
	if err != nil {
		return Result{}, &ConstraintError{Code: CodeInvalidSize, ConstraintID: c.ID, Detail: "valueMax " + c.ValueMax}
	}

	res := Result{
		Action: ActionLimitRange,
		Min:    &Dimensions{Width: minW, Height: minH},
		Max:    &Dimensions{Width: maxW, Height: maxH},
	}
	if s, ok := sel[c.SourceField]; ok && s.CutWidth != nil && s.CutHeight != nil {
		w, h := *s.CutWidth, *s.CutHeight
		res.Violated = w < minW || w > maxW || h < minH || h > maxH
	}
	return res, nil
}

// EvaluateSizeShow shows the target value when the selected cut size equals
// (eq) or differs from (neq) the constraint's size, and hides it otherwise.
func EvaluateSizeShow(c options.OptionConstraint, sel options.Selections) (Result, error) {
	var want func(match bool) bool
	switch c.Operator {
	case "eq":
		want = func(match bool) bool { return match }
	case "neq":
		want = func(match bool) bool { return !match }
	default:
		return Result{}, &ConstraintError{Code: CodeInvalidOperator, ConstraintID: c.ID, Detail: "size_show needs eq or neq, got " + c.Operator}
	}

	hidden := Result{Action: ActionHide}
	s, ok := sel[c.SourceField]
	if !ok || s.CutWidth == nil || s.CutHeight == nil {
		return hidden, nil
	}
	w, h, err := pricing.ParseSize(c.Value)
	if err != nil {
		return Result{}, &ConstraintError{Code: CodeInvalidSize, ConstraintID: c.ID, Detail: "value " + c.Value}
	}
	match := math.Abs(*s.CutWidth-w) <= sizeTolerance && math.Abs(*s.CutHeight-h) <= sizeTolerance
	if !want(match) {
		return hidden, nil
	}
	res := Result{Action: ActionShow}
	if c.TargetValue != "" {
		res.Values = []string{c.TargetValue}
	}
	return res, nil
}
