package options

// HandleOptionChange records a new choice for changedKey, drops every
// selection in a later phase of the priority chain and re-resolves. A key
// that belongs to no phase resets nothing. The input state is not modified.
func HandleOptionChange(s State, changedKey, newChoiceCode string) (State, error) {
	if !CanTransition(s.Status, StatusSelecting) {
		return s, &OptionError{Code: CodeInvalidTransition, From: s.Status, To: StatusSelecting, Action: "OPTION_CHANGE"}
	}

	next := s.clone()
	for _, key := range ResetKeys(s, changedKey) {
		delete(next.Selections, key)
	}
	next.Selections[changedKey] = next.selectionFor(changedKey, newChoiceCode)
	next.resolve()
	next.Status = StatusSelecting
	next.Violations = []ConstraintViolation{}
	next.Errors = []string{}
	return next, nil
}

// ResetKeys lists the available option keys whose phase comes strictly after
// the phase of changedKey.
func ResetKeys(s State, changedKey string) []string {
	changed := keyPhase(s, changedKey)
	if changed < 0 {
		return nil
	}
	var out []string
	for key := range s.AvailableOptions {
		if keyPhase(s, key) > changed {
			out = append(out, key)
		}
	}
	return out
}

// keyPhase finds the phase of an option key through its definition. A key
// with no known definition falls back to being read as a class name.
func keyPhase(s State, key string) int {
	if ao, ok := s.AvailableOptions[key]; ok {
		return PhaseIndex(ao.Definition.OptionClass)
	}
	if s.Data != nil {
		for _, o := range s.Data.ProductOptions {
			if o.Key == key {
				return PhaseIndex(o.OptionClass)
			}
		}
	}
	return PhaseIndex(OptionClass(key))
}
