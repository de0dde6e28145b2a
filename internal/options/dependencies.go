package options

// OptionKey maps an option definition id to its option key. The second return
// is false when no product option carries that definition.
func OptionKey(definitionID int64, productOptions []ProductOption) (string, bool) {
	for _, o := range productOptions {
		if o.OptionDefinitionID == definitionID {
			return o.Key, true
		}
	}
	return "", false
}

// EvaluateDependencies decides whether option is visible under the current
// selections and whether a choices dependency narrows its choice set. Only the
// first rule of each dependency type applies.
func EvaluateDependencies(option ProductOption, ctx ResolutionContext) DependencyResult {
	var visibility, choices *OptionDependency
	for i := range ctx.Dependencies {
		d := &ctx.Dependencies[i]
		if d.ProductID != ctx.ProductID || d.ChildOptionID != option.OptionDefinitionID {
			continue
		}
		switch d.DependencyType {
		case DependencyVisibility:
			if visibility == nil {
				visibility = d
			}
		case DependencyChoices:
			if choices == nil {
				choices = d
			}
		}
	}

	res := DependencyResult{Visible: true}
	if visibility != nil {
		parent, ok := parentSelection(*visibility, ctx)
		switch {
		case !ok:
			res.Visible = false
			res.Reason = &DisabledReason{
				Type:           ReasonParentNotSelected,
				ParentOptionID: visibility.ParentOptionID,
			}
			return res
		case visibility.ParentChoiceID != nil &&
			(parent.ChoiceID == nil || *parent.ChoiceID != *visibility.ParentChoiceID):
			expected := *visibility.ParentChoiceID
			res.Visible = false
			res.Reason = &DisabledReason{
				Type:           ReasonParentChoiceMismatch,
				ParentOptionID: visibility.ParentOptionID,
				Expected:       &expected,
			}
			return res
		}
	}
	if choices != nil {
		var parent *SelectedOption
		if p, ok := parentSelection(*choices, ctx); ok {
			parent = &p
		}
		res.Filtered = true
		res.FilteredChoices = FilteredChoicesByDependency(*choices, parent, ctx)
	}
	return res
}

// FilteredChoicesByDependency returns the codes of the child's choices that
// are compatible with the parent selection. A choice or parent without a paper
// reference is treated as compatible. A nil parent yields no choices.
func FilteredChoicesByDependency(dep OptionDependency, parent *SelectedOption, ctx ResolutionContext) []string {
	out := []string{}
	if parent == nil {
		return out
	}
	for _, c := range ctx.OptionChoices {
		if c.OptionDefinitionID != dep.ChildOptionID {
			continue
		}
		if c.RefPaperID == nil || parent.RefPaperID == nil || *c.RefPaperID == *parent.RefPaperID {
			out = append(out, c.Code)
		}
	}
	return out
}

func parentSelection(dep OptionDependency, ctx ResolutionContext) (SelectedOption, bool) {
	key, ok := OptionKey(dep.ParentOptionID, ctx.ProductOptions)
	if !ok {
		return SelectedOption{}, false
	}
	sel, ok := ctx.CurrentSelections[key]
	return sel, ok
}
