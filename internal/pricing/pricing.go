// Package pricing computes print product prices with seven pricing models
// over shared tier, imposition, loss and catalog lookup tables.
package pricing

import "fmt"

// Model names a pricing model.
type Model string

const (
	ModelFormula        Model = "formula"
	ModelFormulaCutting Model = "formula_cutting"
	ModelComponent      Model = "component"
	ModelFixedUnit      Model = "fixed_unit"
	ModelPackage        Model = "package"
	ModelFixedSize      Model = "fixed_size"
	ModelFixedPerUnit   Model = "fixed_per_unit"
)

// Common carries the fields every pricing input shares.
type Common struct {
	ProductID       int64
	CategoryID      int64
	Quantity        int
	SelectedOptions []SelectedOption
	Size            SizeSelection
	Lookup          LookupData
}

func (c Common) common() Common { return c }

// Input is one of the model-specific input structs of this package.
type Input interface {
	Model() Model
	common() Common
}

// SizeOf returns the finished size in is priced at.
func SizeOf(in Input) SizeSelection { return in.common().Size }

// Breakdown contains the line-item costs of a calculation. Amounts are whole
// currency units.
type Breakdown struct {
	PrintCost        int64 `json:"printCost"`
	PaperCost        int64 `json:"paperCost"`
	SpecialColorCost int64 `json:"specialColorCost"`
	CoatingCost      int64 `json:"coatingCost"`
	PostProcessCost  int64 `json:"postProcessCost"`
	BindingCost      int64 `json:"bindingCost"`
	FoilCost         int64 `json:"foilCost"`
	PackagingCost    int64 `json:"packagingCost"`
	CuttingCost      int64 `json:"cuttingCost"`
	DiscountAmount   int64 `json:"discountAmount"`
}

// Totals contains the roll-up values of a calculation.
type Totals struct {
	Total        int64 `json:"totalPrice"`
	TotalWithVAT int64 `json:"totalPriceWithVat"`
	UnitPrice    int64 `json:"unitPrice"`
}

// Result groups the full pricing output.
type Result struct {
	Model     Model     `json:"model"`
	Breakdown Breakdown `json:"breakdown"`
	Totals    Totals    `json:"totals"`
}

// Calculate validates the shared inputs and dispatches to the pricing model
// matching the concrete type of in.
func Calculate(in Input) (Result, error) {
	if err := ValidateQuantity(in.common().Quantity); err != nil {
		return Result{}, err
	}
	switch v := in.(type) {
	case FormulaInput:
		return CalculateFormula(v)
	case FormulaCuttingInput:
		return CalculateFormulaCutting(v)
	case ComponentInput:
		return CalculateComponent(v)
	case FixedUnitInput:
		return CalculateFixedUnit(v)
	case PackageInput:
		return CalculatePackage(v)
	case FixedSizeInput:
		return CalculateFixedSize(v)
	case FixedPerUnitInput:
		return CalculateFixedPerUnit(v)
	default:
		return Result{}, newError(CodeUnknownModel, "model", fmt.Sprintf("%T", in))
	}
}

// assemble derives the VAT-inclusive total and the unit price from total.
// quantity must already be validated.
func assemble(model Model, b Breakdown, total int64, quantity int) Result {
	t := dec(total)
	return Result{
		Model:     model,
		Breakdown: b,
		Totals: Totals{
			Total:        total,
			TotalWithVAT: floorInt(t.Mul(vatMultiplier)),
			UnitPrice:    floorInt(t.Div(decInt(quantity))),
		},
	}
}
