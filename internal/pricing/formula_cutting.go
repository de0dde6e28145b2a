package pricing

// FormulaCuttingInput is a formula product with die cutting on top.
type FormulaCuttingInput struct {
	FormulaInput
	CuttingType string
}

func (FormulaCuttingInput) Model() Model { return ModelFormulaCutting }

// CalculateFormulaCutting prices the formula components and adds the cutting
// cost for the finished quantity.
func CalculateFormulaCutting(in FormulaCuttingInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	b, err := formulaBreakdown(in.FormulaInput)
	if err != nil {
		return Result{}, err
	}
	if b.CuttingCost, err = LookupCuttingPrice(in.Lookup.PriceTiers, in.CuttingType, in.Quantity); err != nil {
		return Result{}, err
	}
	return assemble(ModelFormulaCutting, b, sumBreakdown(b), in.Quantity), nil
}
