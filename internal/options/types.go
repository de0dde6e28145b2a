// Package options resolves which option choices a product exposes for a given
// set of customer selections, and tracks the selection lifecycle.
package options

// OptionClass places an option in one phase of the priority chain.
type OptionClass string

const (
	ClassJobPreset       OptionClass = "jobPreset"
	ClassSize            OptionClass = "size"
	ClassPaper           OptionClass = "paper"
	ClassOption          OptionClass = "option"
	ClassColor           OptionClass = "color"
	ClassAdditionalColor OptionClass = "additionalColor"
)

// PriorityChain is the fixed resolution order. A change in one phase resets
// every selection in a later phase.
var PriorityChain = []OptionClass{
	ClassJobPreset,
	ClassSize,
	ClassPaper,
	ClassOption,
	ClassColor,
	ClassAdditionalColor,
}

// DependencyType selects how a dependency edge affects its child option.
type DependencyType string

const (
	DependencyVisibility DependencyType = "visibility"
	DependencyChoices    DependencyType = "choices"
	DependencyValue      DependencyType = "value"
)

// ReasonType explains why an option is disabled.
type ReasonType string

const (
	ReasonParentNotSelected    ReasonType = "PARENT_NOT_SELECTED"
	ReasonParentChoiceMismatch ReasonType = "PARENT_CHOICE_MISMATCH"
	ReasonConstraint           ReasonType = "CONSTRAINT"
	ReasonDependency           ReasonType = "DEPENDENCY"
)

// CodeRequiredOptionMissing is reported when a required option resolves to no
// selection even though choices exist.
const CodeRequiredOptionMissing = "REQUIRED_OPTION_MISSING"

// ProductOption is one option slot of a product.
type ProductOption struct {
	ID                 int64       `json:"id"`
	ProductID          int64       `json:"productId"`
	OptionDefinitionID int64       `json:"optionDefinitionId"`
	Key                string      `json:"key"`
	OptionClass        OptionClass `json:"optionClass"`
	Label              string      `json:"label"`
	IsRequired         bool        `json:"isRequired"`
	IsVisible          bool        `json:"isVisible"`
	IsInternal         bool        `json:"isInternal"`
	SortOrder          int         `json:"sortOrder"`
}

// OptionChoice is one selectable value of an option definition.
type OptionChoice struct {
	ID                 int64  `json:"id"`
	OptionDefinitionID int64  `json:"optionDefinitionId"`
	Code               string `json:"code"`
	Label              string `json:"label"`
	PriceKey           string `json:"priceKey,omitempty"`
	RefPaperID         *int64 `json:"refPaperId,omitempty"`
	RefPrintModeID     *int64 `json:"refPrintModeId,omitempty"`
	RefSizeID          *int64 `json:"refSizeId,omitempty"`
	RefPostProcessID   *int64 `json:"refPostProcessId,omitempty"`
	IsDefault          bool   `json:"isDefault"`
	SortOrder          int    `json:"sortOrder"`

	// UnitPrice is a flat per-piece surcharge for add-on choices.
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// OptionDependency is a directed edge between two option definitions.
// ParentOptionID and ChildOptionID hold option definition ids.
type OptionDependency struct {
	ID             int64          `json:"id"`
	ProductID      int64          `json:"productId"`
	ParentOptionID int64          `json:"parentOptionId"`
	ChildOptionID  int64          `json:"childOptionId"`
	ParentChoiceID *int64         `json:"parentChoiceId,omitempty"`
	DependencyType DependencyType `json:"dependencyType"`
}

// OptionConstraint is a compatibility or range rule between option fields.
// Empty string values mean "not set".
type OptionConstraint struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"productId"`
	ConstraintType string `json:"constraintType"`
	SourceField    string `json:"sourceField"`
	TargetField    string `json:"targetField"`
	Operator       string `json:"operator"`
	Value          string `json:"value,omitempty"`
	ValueMin       string `json:"valueMin,omitempty"`
	ValueMax       string `json:"valueMax,omitempty"`
	TargetValue    string `json:"targetValue,omitempty"`
	Priority       int    `json:"priority"`
	IsActive       bool   `json:"isActive"`
	Description    string `json:"description,omitempty"`
}

// SelectedOption is the current choice for one option key, with the reference
// fields downstream constraint evaluation reads.
type SelectedOption struct {
	OptionKey  string   `json:"optionKey"`
	ChoiceCode string   `json:"choiceCode"`
	ChoiceID   *int64   `json:"choiceId,omitempty"`
	RefPaperID *int64   `json:"refPaperId,omitempty"`
	CutWidth   *float64 `json:"cutWidth,omitempty"`
	CutHeight  *float64 `json:"cutHeight,omitempty"`
}

// Selections maps option keys to their current selection.
type Selections map[string]SelectedOption

// Clone returns an independent copy of s. A nil receiver yields an empty map.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// AvailableOption is a visible option with its resolved choices.
type AvailableOption struct {
	Definition ProductOption   `json:"definition"`
	Choices    []OptionChoice  `json:"choices"`
	Selected   *SelectedOption `json:"selected"`
	IsRequired bool            `json:"isRequired"`
}

// DisabledReason describes why an option was hidden or blocked.
type DisabledReason struct {
	Type           ReasonType `json:"type"`
	ParentOptionID int64      `json:"parentOptionId,omitempty"`
	Expected       *int64     `json:"expected,omitempty"`
	ConstraintID   int64      `json:"constraintId,omitempty"`
	Description    string     `json:"description,omitempty"`
}

// ConstraintViolation records a constraint that the current selections break.
type ConstraintViolation struct {
	ConstraintID   int64  `json:"constraintId"`
	ConstraintType string `json:"constraintType"`
	Message        string `json:"message"`
	SourceField    string `json:"sourceField"`
	TargetField    string `json:"targetField"`
}

// ValidationError is a non-fatal resolution finding.
type ValidationError struct {
	OptionKey string `json:"optionKey"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// SizeRef is the cut size a size choice points at through RefSizeID.
type SizeRef struct {
	ID        int64   `json:"id"`
	CutWidth  float64 `json:"cutWidth"`
	CutHeight float64 `json:"cutHeight"`
}

// ProductData is the option catalog of one product.
type ProductData struct {
	ProductID      int64              `json:"productId"`
	ProductOptions []ProductOption    `json:"productOptions"`
	OptionChoices  []OptionChoice     `json:"optionChoices"`
	Dependencies   []OptionDependency `json:"dependencies"`
	Constraints    []OptionConstraint `json:"constraints"`
	Sizes          []SizeRef          `json:"sizes"`
}

// ResolutionContext is the complete input of one resolution pass.
type ResolutionContext struct {
	ProductID         int64
	CurrentSelections Selections
	ProductOptions    []ProductOption
	OptionChoices     []OptionChoice
	Constraints       []OptionConstraint
	Dependencies      []OptionDependency
	Sizes             []SizeRef
}

// ContextFor builds a resolution context from a product catalog.
func ContextFor(data ProductData, selections Selections) ResolutionContext {
	return ResolutionContext{
		ProductID:         data.ProductID,
		CurrentSelections: selections,
		ProductOptions:    data.ProductOptions,
		OptionChoices:     data.OptionChoices,
		Constraints:       data.Constraints,
		Dependencies:      data.Dependencies,
		Sizes:             data.Sizes,
	}
}

// ResolutionResult is the outcome of one resolution pass.
type ResolutionResult struct {
	AvailableOptions  map[string]AvailableOption `json:"availableOptions"`
	DisabledOptions   map[string]DisabledReason  `json:"disabledOptions"`
	DefaultSelections map[string]string          `json:"defaultSelections"`
	ValidationErrors  []ValidationError          `json:"validationErrors"`
	// Order lists available option keys in resolution order.
	Order []string `json:"order"`
}

// DependencyResult is the outcome of evaluating one option's dependencies.
type DependencyResult struct {
	Visible bool
	Reason  *DisabledReason
	// Filtered reports whether a choices dependency narrowed the choice set.
	// FilteredChoices is only meaningful when Filtered is true.
	Filtered        bool
	FilteredChoices []string
}
