package pricing

// FixedUnitInput prices from a catalog price quoted per base quantity.
type FixedUnitInput struct {
	Common
	PaperID     *int64
	PrintModeID *int64
}

func (FixedUnitInput) Model() Model { return ModelFixedUnit }

// CalculateFixedUnit scales the matching catalog price from its base quantity
// to the ordered quantity, rounding up.
func CalculateFixedUnit(in FixedUnitInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	sizeID := in.Size.SizeID
	rec, err := LookupFixedPrice(in.Lookup.FixedPrices, in.ProductID, &sizeID, in.PaperID, in.PrintModeID)
	if err != nil {
		return Result{}, err
	}
	base := rec.BaseQty
	if base < 1 {
		base = 1
	}
	total := ceilInt(decF(rec.SellingPrice).Mul(decInt(in.Quantity)).Div(decInt(base)))
	return assemble(ModelFixedUnit, Breakdown{PrintCost: total}, total, in.Quantity), nil
}

// FixedSizeInput prices a per-size catalog price plus per-unit add-ons.
type FixedSizeInput struct {
	Common
	AdditionalOptions []SelectedOption
}

func (FixedSizeInput) Model() Model { return ModelFixedSize }

// CalculateFixedSize charges (size price + add-on unit prices) per piece.
func CalculateFixedSize(in FixedSizeInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	sizeID := in.Size.SizeID
	rec, err := LookupFixedPrice(in.Lookup.FixedPrices, in.ProductID, &sizeID, nil, nil)
	if err != nil {
		return Result{}, err
	}
	q := decInt(in.Quantity)
	var b Breakdown
	b.PrintCost = ceilInt(decF(rec.SellingPrice).Mul(q))
	b.PostProcessCost = ceilInt(sumUnitPrices(in.AdditionalOptions).Mul(q))
	return assemble(ModelFixedSize, b, sumBreakdown(b), in.Quantity), nil
}

// AdditionalProduct is an add-on item sold with a fixed per-unit product.
type AdditionalProduct struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// FixedPerUnitInput prices a per-unit product with processing options,
// add-on products and quantity discounts.
type FixedPerUnitInput struct {
	Common
	ProcessingOptions  []SelectedOption
	AdditionalProducts []AdditionalProduct
}

func (FixedPerUnitInput) Model() Model { return ModelFixedPerUnit }

// CalculateFixedPerUnit applies the product's quantity discount to
// (size price + processing + add-ons) x quantity. The total rounds up and the
// discount rounds down.
func CalculateFixedPerUnit(in FixedPerUnitInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	sizeID := in.Size.SizeID
	rec, err := LookupFixedPrice(in.Lookup.FixedPrices, in.ProductID, &sizeID, nil, nil)
	if err != nil {
		return Result{}, err
	}
	q := decInt(in.Quantity)
	processing := sumUnitPrices(in.ProcessingOptions)
	for _, ap := range in.AdditionalProducts {
		processing = processing.Add(decF(ap.UnitPrice))
	}
	gross := decF(rec.SellingPrice).Add(processing).Mul(q)
	rate := decF(LookupQuantityDiscount(in.Lookup.PriceTiers, in.ProductID, in.Quantity))

	b := Breakdown{
		PrintCost:       ceilInt(decF(rec.SellingPrice).Mul(q)),
		PostProcessCost: ceilInt(processing.Mul(q)),
		DiscountAmount:  floorInt(gross.Mul(decInt(1).Sub(rate))),
	}
	total := ceilInt(gross.Mul(rate))
	return assemble(ModelFixedPerUnit, b, total, in.Quantity), nil
}

// PackageInput prices a packaged product by size, print mode and page count.
type PackageInput struct {
	Common
	PrintModeID int64
	PageCount   int
}

func (PackageInput) Model() Model { return ModelPackage }

// CalculatePackage looks up the band price. The price covers the whole
// quantity and is not multiplied.
func CalculatePackage(in PackageInput) (Result, error) {
	if err := ValidateQuantity(in.Quantity); err != nil {
		return Result{}, err
	}
	if err := ValidatePageCount(in.PageCount); err != nil {
		return Result{}, err
	}
	price, err := LookupPackagePrice(in.Lookup.PackagePrices, in.ProductID, in.Size.SizeID, in.PrintModeID, in.PageCount, in.Quantity)
	if err != nil {
		return Result{}, err
	}
	total := ceilInt(decF(price))
	return assemble(ModelPackage, Breakdown{PrintCost: total}, total, in.Quantity), nil
}
