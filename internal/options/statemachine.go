package options

import "slices"

// Status is a phase of the selection lifecycle.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoading     Status = "loading"
	StatusReady       Status = "ready"
	StatusSelecting   Status = "selecting"
	StatusValidating  Status = "validating"
	StatusConstrained Status = "constrained"
	StatusComplete    Status = "complete"
	StatusError       Status = "error"
)

var transitions = map[Status][]Status{
	StatusIdle:        {StatusLoading},
	StatusLoading:     {StatusReady, StatusError},
	StatusReady:       {StatusSelecting},
	StatusSelecting:   {StatusValidating, StatusSelecting, StatusError},
	StatusValidating:  {StatusConstrained, StatusComplete, StatusSelecting, StatusError},
	StatusConstrained: {StatusSelecting, StatusError},
	StatusError:       {StatusIdle, StatusLoading, StatusReady},
	StatusComplete:    {StatusSelecting, StatusIdle},
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// State is an immutable snapshot of a selection session. Every transition
// returns a new State.
type State struct {
	Status           Status                     `json:"status"`
	ProductID        *int64                     `json:"productId"`
	Data             *ProductData               `json:"-"`
	Selections       Selections                 `json:"selections"`
	AvailableOptions map[string]AvailableOption `json:"availableOptions"`
	DisabledOptions  map[string]DisabledReason  `json:"disabledOptions"`
	ValidationErrors []ValidationError          `json:"validationErrors"`
	Violations       []ConstraintViolation      `json:"violations"`
	Errors           []string                   `json:"errors"`
}

// NewState returns the idle state.
func NewState() State {
	return State{
		Status:           StatusIdle,
		Selections:       Selections{},
		AvailableOptions: map[string]AvailableOption{},
		DisabledOptions:  map[string]DisabledReason{},
		ValidationErrors: []ValidationError{},
		Violations:       []ConstraintViolation{},
		Errors:           []string{},
	}
}

// Action is an event applied to a State.
type Action interface {
	Name() string
	target() Status
}

type LoadProduct struct{ ProductID int64 }
type ProductLoaded struct{ Data ProductData }
type SelectOption struct{ OptionKey, ChoiceCode string }
type DeselectOption struct{ OptionKey string }

// Validate moves to validating. Violations carries the constraint evaluation
// of the current selections, which Finalize inspects.
type Validate struct{ Violations []ConstraintViolation }
type Reset struct{}
type Fail struct{ Err error }

func (LoadProduct) Name() string    { return "LOAD_PRODUCT" }
func (ProductLoaded) Name() string  { return "PRODUCT_LOADED" }
func (SelectOption) Name() string   { return "SELECT_OPTION" }
func (DeselectOption) Name() string { return "DESELECT_OPTION" }
func (Validate) Name() string       { return "VALIDATE" }
func (Reset) Name() string          { return "RESET" }
func (Fail) Name() string           { return "ERROR" }

func (LoadProduct) target() Status    { return StatusLoading }
func (ProductLoaded) target() Status  { return StatusReady }
func (SelectOption) target() Status   { return StatusSelecting }
func (DeselectOption) target() Status { return StatusSelecting }
func (Validate) target() Status       { return StatusValidating }
func (Reset) target() Status          { return StatusIdle }
func (Fail) target() Status           { return StatusError }

// Transition applies action to s. It returns an *OptionError with code
// INVALID_TRANSITION when the lifecycle does not allow the move.
func Transition(s State, action Action) (State, error) {
	to := action.target()
	if !CanTransition(s.Status, to) {
		return s, &OptionError{Code: CodeInvalidTransition, From: s.Status, To: to, Action: action.Name()}
	}

	next := s.clone()
	next.Status = to
	switch a := action.(type) {
	case LoadProduct:
		next = NewState()
		next.Status = to
		id := a.ProductID
		next.ProductID = &id
	case ProductLoaded:
		data := a.Data
		id := data.ProductID
		next.ProductID = &id
		next.Data = &data
		next.Selections = Selections{}
		next.resolve()
	case SelectOption:
		next.Selections[a.OptionKey] = next.selectionFor(a.OptionKey, a.ChoiceCode)
		next.resolve()
	case DeselectOption:
		delete(next.Selections, a.OptionKey)
		next.resolve()
	case Validate:
		next.Violations = append([]ConstraintViolation{}, a.Violations...)
	case Reset:
		next = NewState()
	case Fail:
		msg := "unknown error"
		if a.Err != nil {
			msg = a.Err.Error()
		}
		next.Errors = append(next.Errors, msg)
	}
	return next, nil
}

// Finalize leaves validating for complete when there are no violations, or
// for constrained otherwise.
func Finalize(s State) (State, error) {
	to := StatusComplete
	if len(s.Violations) > 0 {
		to = StatusConstrained
	}
	if s.Status != StatusValidating || !CanTransition(s.Status, to) {
		return s, &OptionError{Code: CodeInvalidTransition, From: s.Status, To: to, Action: "FINALIZE"}
	}
	next := s.clone()
	next.Status = to
	return next, nil
}

func (s State) clone() State {
	next := s
	next.Selections = s.Selections.Clone()
	next.AvailableOptions = make(map[string]AvailableOption, len(s.AvailableOptions))
	for k, v := range s.AvailableOptions {
		next.AvailableOptions[k] = v
	}
	next.DisabledOptions = make(map[string]DisabledReason, len(s.DisabledOptions))
	for k, v := range s.DisabledOptions {
		next.DisabledOptions[k] = v
	}
	next.ValidationErrors = append([]ValidationError{}, s.ValidationErrors...)
	next.Violations = append([]ConstraintViolation{}, s.Violations...)
	next.Errors = append([]string{}, s.Errors...)
	return next
}

// selectionFor builds a selection and copies the choice reference fields when
// the choice is known to the loaded catalog.
func (s State) selectionFor(key, code string) SelectedOption {
	sel := SelectedOption{OptionKey: key, ChoiceCode: code}
	ctx, ok := s.context()
	if !ok {
		return sel
	}
	defID := int64(-1)
	for _, o := range ctx.ProductOptions {
		if o.Key == key {
			defID = o.OptionDefinitionID
			break
		}
	}
	for _, c := range ctx.OptionChoices {
		if c.OptionDefinitionID == defID && c.Code == code {
			return *selectionFor(key, c, ctx.Sizes)
		}
	}
	return sel
}

// context rebuilds a resolution context from the loaded catalog, or from the
// definitions and choices of the currently available options.
func (s State) context() (ResolutionContext, bool) {
	if s.Data != nil {
		return ContextFor(*s.Data, s.Selections), true
	}
	if s.ProductID == nil || len(s.AvailableOptions) == 0 {
		return ResolutionContext{}, false
	}
	ctx := ResolutionContext{ProductID: *s.ProductID, CurrentSelections: s.Selections}
	for _, ao := range s.AvailableOptions {
		ctx.ProductOptions = append(ctx.ProductOptions, ao.Definition)
		ctx.OptionChoices = append(ctx.OptionChoices, ao.Choices...)
	}
	return ctx, true
}

// resolve recomputes the derived option maps in place. Without any catalog it
// leaves them untouched.
func (s *State) resolve() {
	ctx, ok := s.context()
	if !ok {
		return
	}
	res := Resolve(ctx)
	s.AvailableOptions = res.AvailableOptions
	s.DisabledOptions = res.DisabledOptions
	s.ValidationErrors = res.ValidationErrors
}
