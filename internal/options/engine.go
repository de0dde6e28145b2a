package options

import "fmt"

// Resolve walks the priority chain phase by phase and computes the available
// options, disabled options and default selections for ctx. Options whose
// class is outside the chain are not resolved. Resolve does not modify ctx.
func Resolve(ctx ResolutionContext) ResolutionResult {
	res := ResolutionResult{
		AvailableOptions:  map[string]AvailableOption{},
		DisabledOptions:   map[string]DisabledReason{},
		DefaultSelections: map[string]string{},
		ValidationErrors:  []ValidationError{},
		Order:             []string{},
	}

	for _, class := range PriorityChain {
		for _, opt := range optionsInClass(ctx.ProductOptions, class) {
			dep := EvaluateDependencies(opt, ctx)
			if !dep.Visible {
				res.DisabledOptions[opt.Key] = *dep.Reason
				continue
			}

			choices := filterChoices(opt, ctx, dep)
			var selected *SelectedOption
			if cur, ok := ctx.CurrentSelections[opt.Key]; ok {
				c := cur
				selected = &c
			} else if def := defaultChoice(opt, choices, ctx.Sizes); def != nil {
				selected = def
				res.DefaultSelections[opt.Key] = def.ChoiceCode
			}

			if opt.IsRequired && selected == nil && len(choices) > 0 {
				res.ValidationErrors = append(res.ValidationErrors, ValidationError{
					OptionKey: opt.Key,
					Code:      CodeRequiredOptionMissing,
					Message:   fmt.Sprintf("option %q is required", opt.Key),
				})
			}

			res.AvailableOptions[opt.Key] = AvailableOption{
				Definition: opt,
				Choices:    choices,
				Selected:   selected,
				IsRequired: opt.IsRequired,
			}
			res.Order = append(res.Order, opt.Key)
		}
	}
	return res
}
