package constraints

import (
	"fmt"

	"github.com/Simplici0/printquote/internal/options"
)

// Source tells where a merged constraint came from.
type Source string

const (
	SourceStar     Source = "star"
	SourceImplicit Source = "implicit"
)

// ImplicitConstraint is a constraint derived from catalog data rather than
// authored explicitly.
type ImplicitConstraint struct {
	Key            string `json:"key"`
	ConstraintType string `json:"constraintType"`
	SourceField    string `json:"sourceField"`
	TargetField    string `json:"targetField"`
	ProductID      int64  `json:"productId"`
	Operator       string `json:"operator"`
	Value          string `json:"value,omitempty"`
	Priority       int    `json:"priority"`
	IsActive       bool   `json:"isActive"`
}

// MergedConstraint is one constraint of the combined layer.
type MergedConstraint struct {
	Key    string                   `json:"key"`
	Source Source                   `json:"source"`
	Rule   options.OptionConstraint `json:"rule"`
}

// MergeResult is the union of explicit and implicit constraints.
type MergeResult struct {
	Constraints []MergedConstraint `json:"constraints"`
}

// ConstraintKey identifies a constraint by source field, target field and
// product.
func ConstraintKey(sourceField, targetField string, productID int64) string {
	return fmt.Sprintf("%s:%s:%d", sourceField, targetField, productID)
}

// MergeLayers unions implicit and explicit ("star") constraints. An explicit
// constraint replaces an implicit one with the same key and takes its place
// in the output order.
func MergeLayers(star []options.OptionConstraint, implicit []ImplicitConstraint) MergeResult {
	var keys []string
	byKey := map[string]MergedConstraint{}
	put := func(m MergedConstraint) {
		if _, ok := byKey[m.Key]; !ok {
			keys = append(keys, m.Key)
		}
		byKey[m.Key] = m
	}

	for _, ic := range implicit {
		put(MergedConstraint{
			Key:    ic.Key,
			Source: SourceImplicit,
			Rule: options.OptionConstraint{
				ProductID:      ic.ProductID,
				ConstraintType: ic.ConstraintType,
				SourceField:    ic.SourceField,
				TargetField:    ic.TargetField,
				Operator:       ic.Operator,
				Value:          ic.Value,
				Priority:       ic.Priority,
				IsActive:       ic.IsActive,
			},
		})
	}
	for _, sc := range star {
		put(MergedConstraint{
			Key:    ConstraintKey(sc.SourceField, sc.TargetField, sc.ProductID),
			Source: SourceStar,
			Rule:   sc,
		})
	}

	res := MergeResult{Constraints: make([]MergedConstraint, 0, len(keys))}
	for _, k := range keys {
		res.Constraints = append(res.Constraints, byKey[k])
	}
	return res
}

// Rules returns the merged constraints in a form Evaluate accepts.
func (r MergeResult) Rules() []options.OptionConstraint {
	out := make([]options.OptionConstraint, 0, len(r.Constraints))
	for _, m := range r.Constraints {
		out = append(out, m.Rule)
	}
	return out
}
