// Package publish decides whether a product is complete enough to go live.
package publish

import (
	"fmt"
	"strings"
)

// Item names a completeness check.
type Item string

const (
	ItemOptions     Item = "options"
	ItemPricing     Item = "pricing"
	ItemConstraints Item = "constraints"
	ItemMESMapping  Item = "mesMapping"
)

// Input is the flat product summary the checks read.
type Input struct {
	HasDefaultRecipe  bool    `json:"hasDefaultRecipe"`
	OptionTypeCount   int     `json:"optionTypeCount"`
	MinChoiceCount    int     `json:"minChoiceCount"`
	HasRequiredOption bool    `json:"hasRequiredOption"`
	HasPricingConfig  bool    `json:"hasPricingConfig"`
	IsPricingActive   bool    `json:"isPricingActive"`
	ConstraintCount   int     `json:"constraintCount"`
	EdicusCode        *string `json:"edicusCode"`
	MESItemCode       *string `json:"mesItemCd"`
}

// ItemResult is the outcome of one check.
type ItemResult struct {
	Item      Item   `json:"item"`
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

// Result is the outcome of all four checks.
type Result struct {
	Items          []ItemResult `json:"items"`
	Publishable    bool         `json:"publishable"`
	CompletedCount int          `json:"completedCount"`
	TotalCount     int          `json:"totalCount"`
}

// Missing lists the items that did not pass.
func (r Result) Missing() []Item {
	var out []Item
	for _, it := range r.Items {
		if !it.Completed {
			out = append(out, it.Item)
		}
	}
	return out
}

// CheckCompleteness runs the options, pricing, constraints and MES mapping
// checks. Constraints always pass; zero constraints only earns a review note.
func CheckCompleteness(in Input) Result {
	items := []ItemResult{
		checkOptions(in),
		checkPricing(in),
		checkConstraints(in),
		checkMESMapping(in),
	}
	res := Result{Items: items, Publishable: true, TotalCount: len(items)}
	for _, it := range items {
		if it.Completed {
			res.CompletedCount++
		} else {
			res.Publishable = false
		}
	}
	return res
}

func checkOptions(in Input) ItemResult {
	r := ItemResult{Item: ItemOptions}
	switch {
	case !in.HasDefaultRecipe:
		r.Message = "No default recipe configured"
	case in.OptionTypeCount < 1:
		r.Message = "Recipe must have at least 1 option type"
	case in.MinChoiceCount < 2:
		r.Message = "Option types must have at least 2 choices"
	case !in.HasRequiredOption:
		r.Message = "At least 1 option must be marked as required"
	default:
		r.Completed = true
		r.Message = fmt.Sprintf("%d option type(s) configured", in.OptionTypeCount)
	}
	return r
}

func checkPricing(in Input) ItemResult {
	r := ItemResult{Item: ItemPricing}
	switch {
	case !in.HasPricingConfig:
		r.Message = "No price configuration found"
	case !in.IsPricingActive:
		r.Message = "Price configuration is inactive"
	default:
		r.Completed = true
		r.Message = "Price configuration active"
	}
	return r
}

func checkConstraints(in Input) ItemResult {
	r := ItemResult{Item: ItemConstraints, Completed: true}
	if in.ConstraintCount == 0 {
		r.Message = "No constraints defined (review recommended)"
	} else {
		r.Message = fmt.Sprintf("%d constraint(s) defined", in.ConstraintCount)
	}
	return r
}

func checkMESMapping(in Input) ItemResult {
	if in.EdicusCode != nil || in.MESItemCode != nil {
		return ItemResult{Item: ItemMESMapping, Completed: true, Message: "Integration code configured"}
	}
	return ItemResult{Item: ItemMESMapping, Message: "Edicus code or MES item code required"}
}

// Error reports a product that is not ready to publish.
type Error struct {
	MissingItems []Item
	Completeness Result
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.MissingItems))
	for _, it := range e.MissingItems {
		names = append(names, string(it))
	}
	return "publish: product incomplete, missing " + strings.Join(names, ", ")
}

// ValidatePublishReadiness returns the completeness result, or an *Error
// listing the missing items when the product is not publishable.
func ValidatePublishReadiness(in Input) (Result, error) {
	res := CheckCompleteness(in)
	if !res.Publishable {
		return res, &Error{MissingItems: res.Missing(), Completeness: res}
	}
	return res, nil
}
