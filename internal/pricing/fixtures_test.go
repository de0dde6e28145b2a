package pricing

func ptr[T any](v T) *T { return &v }

var (
	paperArt250 = Paper{ID: 1, Name: "Art 250g", Weight: ptr(250.0), CostPer4Cut: 180, SellingPer4Cut: 240}
	paperArt300 = Paper{ID: 2, Name: "Art 300g", Weight: ptr(300.0), CostPer4Cut: 220, SellingPer4Cut: 300}

	printDouble = PrintMode{ID: 1, Name: "Double-sided color", PriceCode: "8", Sides: "double", ColorType: "color"}

	roundCut   = PostProcess{ID: 1, Name: "Round cut", PriceCode: "round_cut", PriceBasis: PerSheet, SheetStandard: SheetA3}
	lamination = PostProcess{ID: 2, Name: "Lamination", PriceCode: "lamination", PriceBasis: PerUnit}

	perfectBinding = Binding{ID: 1, Name: "Perfect binding", PriceCode: "perfect_binding", MinPages: 24, MaxPages: 400, PageStep: 2}

	size100x150 = SizeSelection{SizeID: 1, CutWidth: 100, CutHeight: 150, ImpositionCount: ptr(8)}
	sizeA5      = SizeSelection{SizeID: 5, CutWidth: 148, CutHeight: 210, ImpositionCount: ptr(4)}
)

func lookupFixture() LookupData {
	return LookupData{
		PriceTiers: []PriceTier{
			{OptionCode: "8", MinQty: 1, MaxQty: 10, UnitPrice: 2000, SheetStandard: SheetA3},
			{OptionCode: "8", MinQty: 11, MaxQty: 999999, UnitPrice: 1500, SheetStandard: SheetA3},
			{OptionCode: "8", MinQty: 1, MaxQty: 999999, UnitPrice: 2500, SheetStandard: SheetT3},
			{OptionCode: "spot_white", MinQty: 11, MaxQty: 20, UnitPrice: 800},
			{OptionCode: "coating_matte", MinQty: 1, MaxQty: 20, UnitPrice: 500},
			{OptionCode: "round_cut", MinQty: 1, MaxQty: 50, UnitPrice: 300, SheetStandard: SheetA3},
			{OptionCode: "lamination", MinQty: 1, MaxQty: 100, UnitPrice: 50},
			{OptionCode: "perfect_binding", MinQty: 1, MaxQty: 50, UnitPrice: 500},
			{OptionCode: "die_cut", MinQty: 1, MaxQty: 1000, UnitPrice: 20},
			{OptionCode: "discount_100", MinQty: 30, MaxQty: 99, UnitPrice: 0.90},
			{OptionCode: "discount_100", MinQty: 100, MaxQty: 999999, UnitPrice: 0.85},
		},
		ImpositionRules: []ImpositionRule{
			{CutWidth: 100, CutHeight: 150, SheetStandard: SheetA3, ImpositionCount: 8},
			{CutWidth: 92, CutHeight: 57, SheetStandard: SheetA3, ImpositionCount: 16},
			{CutWidth: 50, CutHeight: 50, SheetStandard: SheetA3, ImpositionCount: 24},
			{CutWidth: 148, CutHeight: 210, SheetStandard: SheetA3, ImpositionCount: 4},
			{CutWidth: 297, CutHeight: 420, SheetStandard: SheetA3, ImpositionCount: 1},
			{CutWidth: 100, CutHeight: 150, SheetStandard: SheetT3, ImpositionCount: 12},
		},
		LossConfigs: []LossQuantityConfig{
			{ScopeType: LossScopeProduct, ScopeID: ptr(int64(10)), LossRate: 0.05, MinLossQty: 20},
			{ScopeType: LossScopeCategory, ScopeID: ptr(int64(1)), LossRate: 0.04, MinLossQty: 15},
			{ScopeType: LossScopeGlobal, LossRate: 0.03, MinLossQty: 10},
		},
		FixedPrices: []FixedPriceRecord{
			{ProductID: 20, SizeID: ptr(int64(2)), PaperID: ptr(int64(1)), PrintModeID: ptr(int64(1)), SellingPrice: 15000, CostPrice: 9000, BaseQty: 100},
			{ProductID: 20, PaperID: ptr(int64(2)), SellingPrice: 18000, CostPrice: 11000, BaseQty: 100},
			{ProductID: 30, SizeID: ptr(int64(4)), SellingPrice: 5000, CostPrice: 3000, BaseQty: 1},
			{ProductID: 100, SizeID: ptr(int64(3)), SellingPrice: 3260, CostPrice: 2000, BaseQty: 1},
		},
		PackagePrices: []PackagePriceRecord{
			{ProductID: 40, SizeID: 1, PrintModeID: 1, PageCount: 24, MinQty: 1, MaxQty: 29, SellingPrice: 25000},
			{ProductID: 40, SizeID: 1, PrintModeID: 1, PageCount: 24, MinQty: 30, MaxQty: 99, SellingPrice: 20000},
			{ProductID: 40, SizeID: 1, PrintModeID: 1, PageCount: 24, MinQty: 100, MaxQty: 999999, SellingPrice: 15000},
		},
		FoilPrices: []FoilPriceRecord{
			{FoilType: "gold", Width: 50, Height: 50, SellingPrice: 3000},
			{FoilType: "silver", Width: 50, Height: 50, SellingPrice: 2500},
			{FoilType: "gold", Width: 100, Height: 100, SellingPrice: 5000},
		},
		Papers:        []Paper{paperArt250, paperArt300},
		PrintModes:    []PrintMode{printDouble},
		PostProcesses: []PostProcess{roundCut, lamination},
		Bindings:      []Binding{perfectBinding},
	}
}

func formulaFixture(quantity int) FormulaInput {
	return FormulaInput{
		Common: Common{
			ProductID:  1,
			CategoryID: 999,
			Quantity:   quantity,
			Size:       size100x150,
			Lookup:     lookupFixture(),
		},
		Paper:         paperArt250,
		PrintMode:     printDouble,
		SheetStandard: SheetA3,
	}
}

func componentFixture() ComponentInput {
	return ComponentInput{
		Common: Common{ProductID: 50, CategoryID: 2, Quantity: 50, Size: sizeA5, Lookup: lookupFixture()},
		InnerBody: InnerBody{
			Part:      Part{Paper: paperArt250, PrintMode: printDouble, ImpositionCount: ptr(4), SheetStandard: SheetA3},
			PageCount: 100,
		},
		Cover:   Part{Paper: paperArt300, PrintMode: printDouble, ImpositionCount: ptr(4), SheetStandard: SheetA3},
		Binding: perfectBinding,
	}
}
