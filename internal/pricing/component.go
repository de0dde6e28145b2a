package pricing

// Part is the paper and print setup of one booklet component.
type Part struct {
	Paper           Paper
	PrintMode       PrintMode
	ImpositionCount *int
	SheetStandard   SheetStandard
}

// InnerBody is the text block of a booklet.
type InnerBody struct {
	Part
	PageCount int
}

// FoilEmboss is a foil stamp on the cover.
type FoilEmboss struct {
	FoilType string  `json:"foilType"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Packaging is a per-unit packaging charge.
type Packaging struct {
	UnitPrice float64 `json:"unitPrice"`
}

// ComponentInput prices a booklet as inner body, cover, binding and extras.
type ComponentInput struct {
	Common
	InnerBody    InnerBody
	Cover        Part
	Binding      Binding
	CoverCoating *PriceCode
	FoilEmboss   *FoilEmboss
	Packaging    *Packaging
}

func (ComponentInput) Model() Model { return ModelComponent }

// CalculateComponent sums inner paper and print, cover paper, print and
// coating, binding, foil and packaging.
func CalculateComponent(in ComponentInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	if err := ValidatePageCount(in.InnerBody.PageCount); err != nil {
		return Result{}, err
	}
	q := in.Quantity
	tiers := in.Lookup.PriceTiers
	loss := LossQuantity(q, ResolveLossConfig(in.Lookup.LossConfigs, in.ProductID, in.CategoryID))

	// Inner pages are printed double-sided: pageCount/2 sheets per copy.
	innerPaper, innerPrint, err := partCost(in.InnerBody.Part, in, loss, in.InnerBody.PageCount, 2)
	if err != nil {
		return Result{}, err
	}
	coverPaper, coverPrint, err := partCost(in.Cover, in, loss, 1, 1)
	if err != nil {
		return Result{}, err
	}

	var b Breakdown
	b.PaperCost = innerPaper + coverPaper
	b.PrintCost = innerPrint + coverPrint

	if in.CoverCoating != nil {
		imp, err := partImposition(in.Cover, in)
		if err != nil {
			return Result{}, err
		}
		if b.CoatingCost, err = tierCost(tiers, in.CoverCoating.PriceCode, ceilDiv(q, imp), in.Cover.SheetStandard); err != nil {
			return Result{}, err
		}
	}

	if b.BindingCost, err = tierCost(tiers, in.Binding.PriceCode, q, ""); err != nil {
		return Result{}, err
	}

	if in.FoilEmboss != nil {
		foil, err := LookupFoilPrice(in.Lookup.FoilPrices, in.FoilEmboss.FoilType, in.FoilEmboss.Width, in.FoilEmboss.Height)
		if err != nil {
			return Result{}, err
		}
		b.FoilCost = ceilInt(decF(foil))
	}

	if in.Packaging != nil {
		b.PackagingCost = ceilInt(decF(in.Packaging.UnitPrice).Mul(decInt(q)))
	}

	total := floorInt(dec(sumBreakdown(b)))
	return assemble(ModelComponent, b, total, q), nil
}

// partCost prices the paper and print of one part. The page multiplier is
// num/den, kept as a fraction so odd page counts stay exact.
func partCost(p Part, in ComponentInput, loss, num, den int) (paperCost, printCost int64, err error) {
	imp, err := partImposition(p, in)
	if err != nil {
		return 0, 0, err
	}
	q := in.Quantity
	paperCost = ceilInt(decF(p.Paper.SellingPer4Cut).Mul(decInt(q + loss)).Mul(decInt(num)).Div(decInt(imp * den)))

	sheets := int(ceilInt(decInt(q * num).Div(decInt(den * imp))))
	printCost, err = tierCost(in.Lookup.PriceTiers, p.PrintMode.PriceCode, sheets, p.SheetStandard)
	return paperCost, printCost, err
}

func partImposition(p Part, in ComponentInput) (int, error) {
	if p.ImpositionCount != nil && *p.ImpositionCount > 0 {
		return *p.ImpositionCount, nil
	}
	return LookupImposition(in.Lookup.ImpositionRules, in.Size.CutWidth, in.Size.CutHeight, p.SheetStandard)
}
