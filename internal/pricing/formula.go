package pricing

// PriceCode references a tier table by option code.
type PriceCode struct {
	PriceCode string `json:"priceCode"`
}

// FormulaInput prices a sheet-printed product from paper, print, special
// colors, coating and post-processing.
type FormulaInput struct {
	Common
	Paper         Paper
	PrintMode     PrintMode
	SpecialColors []PriceCode
	Coating       *PriceCode
	PostProcesses []PostProcess
	SheetStandard SheetStandard
}

func (FormulaInput) Model() Model { return ModelFormula }

// CalculateFormula prices a formula product. Each component is rounded up and
// the total is their sum.
func CalculateFormula(in FormulaInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	b, err := formulaBreakdown(in)
	if err != nil {
		return Result{}, err
	}
	return assemble(ModelFormula, b, sumBreakdown(b), in.Quantity), nil
}

func formulaBreakdown(in FormulaInput) (Breakdown, error) {
	q := in.Quantity
	imp, err := resolveImposition(in.Size, in.SheetStandard, in.Lookup.ImpositionRules)
	if err != nil {
		return Breakdown{}, err
	}
	sheets := ceilDiv(q, imp)
	loss := LossQuantity(q, ResolveLossConfig(in.Lookup.LossConfigs, in.ProductID, in.CategoryID))

	var b Breakdown
	if b.PrintCost, err = tierCost(in.Lookup.PriceTiers, in.PrintMode.PriceCode, sheets, in.SheetStandard); err != nil {
		return Breakdown{}, err
	}

	// selling * (q + loss) / imp, dividing last to stay exact
	b.PaperCost = ceilInt(decF(in.Paper.SellingPer4Cut).Mul(decInt(q + loss)).Div(decInt(imp)))

	for _, sc := range in.SpecialColors {
		c, err := tierCost(in.Lookup.PriceTiers, sc.PriceCode, sheets, in.SheetStandard)
		if err != nil {
			return Breakdown{}, err
		}
		b.SpecialColorCost += c
	}

	if in.Coating != nil {
		if b.CoatingCost, err = tierCost(in.Lookup.PriceTiers, in.Coating.PriceCode, sheets, in.SheetStandard); err != nil {
			return Breakdown{}, err
		}
	}

	for _, pp := range in.PostProcesses {
		var c int64
		switch pp.PriceBasis {
		case PerSheet:
			sheet := pp.SheetStandard
			if sheet == "" {
				sheet = in.SheetStandard
			}
			c, err = tierCost(in.Lookup.PriceTiers, pp.PriceCode, sheets, sheet)
		case PerUnit:
			c, err = tierCost(in.Lookup.PriceTiers, pp.PriceCode, q, "")
		default:
			err = newError(CodeInvalidPriceBasis, "postProcess", pp.PriceCode, "priceBasis", string(pp.PriceBasis))
		}
		if err != nil {
			return Breakdown{}, err
		}
		b.PostProcessCost += c
	}
	return b, nil
}

// resolveImposition prefers an explicit imposition count on the size.
func resolveImposition(size SizeSelection, sheet SheetStandard, rules []ImpositionRule) (int, error) {
	if size.ImpositionCount != nil && *size.ImpositionCount > 0 {
		return *size.ImpositionCount, nil
	}
	return LookupImposition(rules, size.CutWidth, size.CutHeight, sheet)
}

// tierCost is the tier unit price for count, times count, rounded up.
func tierCost(tiers []PriceTier, code string, count int, sheet SheetStandard) (int64, error) {
	unit, err := LookupTier(tiers, code, count, sheet)
	if err != nil {
		return 0, err
	}
	return ceilInt(decF(unit).Mul(decInt(count))), nil
}

func sumBreakdown(b Breakdown) int64 {
	return b.PrintCost + b.PaperCost + b.SpecialColorCost + b.CoatingCost + b.PostProcessCost +
		b.BindingCost + b.FoilCost + b.PackagingCost + b.CuttingCost
}
