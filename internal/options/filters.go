package options

import (
	"slices"
	"sort"
)

// FilterChoices returns the choices of option that survive its choices
// dependency, sorted by ascending sortOrder.
func FilterChoices(option ProductOption, ctx ResolutionContext) []OptionChoice {
	return filterChoices(option, ctx, EvaluateDependencies(option, ctx))
}

func filterChoices(option ProductOption, ctx ResolutionContext, dep DependencyResult) []OptionChoice {
	out := []OptionChoice{}
	for _, c := range ctx.OptionChoices {
		if c.OptionDefinitionID != option.OptionDefinitionID {
			continue
		}
		if dep.Filtered && !slices.Contains(dep.FilteredChoices, c.Code) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// DefaultChoice picks the choice flagged as default, falling back to the
// first one. choices must already be sorted. Returns nil for an empty list.
func DefaultChoice(option ProductOption, choices []OptionChoice) *SelectedOption {
	return defaultChoice(option, choices, nil)
}

// defaultChoice is DefaultChoice with the cut size of a size choice filled
// from sizes.
func defaultChoice(option ProductOption, choices []OptionChoice, sizes []SizeRef) *SelectedOption {
	if len(choices) == 0 {
		return nil
	}
	pick := choices[0]
	for _, c := range choices {
		if c.IsDefault {
			pick = c
			break
		}
	}
	return selectionFor(option.Key, pick, sizes)
}

// selectionFor copies the reference fields of c that constraint evaluation
// reads. A RefSizeID found in sizes becomes the selection's cut size.
func selectionFor(key string, c OptionChoice, sizes []SizeRef) *SelectedOption {
	id := c.ID
	sel := &SelectedOption{OptionKey: key, ChoiceCode: c.Code, ChoiceID: &id}
	if c.RefPaperID != nil {
		ref := *c.RefPaperID
		sel.RefPaperID = &ref
	}
	if c.RefSizeID != nil {
		for _, sz := range sizes {
			if sz.ID == *c.RefSizeID {
				w, h := sz.CutWidth, sz.CutHeight
				sel.CutWidth, sel.CutHeight = &w, &h
				break
			}
		}
	}
	return sel
}

// optionsInClass returns the product options of one phase ordered by sortOrder.
func optionsInClass(all []ProductOption, class OptionClass) []ProductOption {
	var out []ProductOption
	for _, o := range all {
		if o.OptionClass == class {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// PhaseIndex returns the position of class in the priority chain, or -1.
func PhaseIndex(class OptionClass) int {
	return slices.Index(PriorityChain, class)
}
