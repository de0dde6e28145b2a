// Package constraints evaluates option constraints and detects dependency
// cycles for the option resolver.
package constraints

import (
	"github.com/Simplici0/printquote/internal/options"
	"github.com/Simplici0/printquote/internal/pricing"
)

// Constraint types understood by EvaluateSingle.
const (
	TypeSizeShow       = "size_show"
	TypeSizeRange      = "size_range"
	TypePaperCondition = "paper_condition"
)

// Action is what a constraint does to its target field.
type Action string

const (
	ActionShow       Action = "show"
	ActionHide       Action = "hide"
	ActionDisable    Action = "disable"
	ActionEnable     Action = "enable"
	ActionLimitRange Action = "limit_range"
)

// Dimensions is a width and height in millimetres.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the outcome of one constraint.
type Result struct {
	Action   Action      `json:"action"`
	Violated bool        `json:"violated"`
	Values   []string    `json:"values,omitempty"`
	Min      *Dimensions `json:"min,omitempty"`
	Max      *Dimensions `json:"max,omitempty"`
}

// EvalInput is everything a constraint evaluation reads.
type EvalInput struct {
	ProductID   int64
	Selections  options.Selections
	Constraints []options.OptionConstraint
	Papers      []pricing.Paper
}

// EvalResult is the combined outcome of all applicable constraints.
type EvalResult struct {
	AvailableOptions map[string][]string               `json:"availableOptions"`
	DisabledOptions  map[string]options.DisabledReason `json:"disabledOptions"`
	Violations       []options.ConstraintViolation     `json:"violations"`
}
