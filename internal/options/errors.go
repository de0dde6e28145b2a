package options

import "fmt"

// CodeInvalidTransition is the OptionError code for a rejected state change.
const CodeInvalidTransition = "INVALID_TRANSITION"

// OptionError is returned when the selection state machine rejects an action.
type OptionError struct {
	Code   string
	From   Status
	To     Status
	Action string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("options: %s: %s -> %s (%s)", e.Code, e.From, e.To, e.Action)
}
