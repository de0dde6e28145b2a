package pricing

import (
	"fmt"
	"math"
)

// impositionTolerance is the exclusive bound on how far a cut size may drift
// from a rule, in mm.
const impositionTolerance = 0.5

// LookupTier returns the unit price of the first tier matching code, quantity
// and sheet standard. An empty sheet standard on either side matches any.
func LookupTier(tiers []PriceTier, code string, quantity int, sheet SheetStandard) (float64, error) {
	for _, t := range tiers {
		if t.OptionCode != code || quantity < t.MinQty || quantity > t.MaxQty {
			continue
		}
		if sheet == "" || t.SheetStandard == "" || t.SheetStandard == sheet {
			return t.UnitPrice, nil
		}
	}
	return 0, newError(CodeTierNotFound, "optionCode", code, "quantity", quantity, "sheetStandard", string(sheet))
}

// LookupImposition returns the imposition count for a cut size on a sheet.
func LookupImposition(rules []ImpositionRule, width, height float64, sheet SheetStandard) (int, error) {
	for _, r := range rules {
		if math.Abs(r.CutWidth-width) < impositionTolerance &&
			math.Abs(r.CutHeight-height) < impositionTolerance &&
			r.SheetStandard == sheet {
			return r.ImpositionCount, nil
		}
	}
	return 0, newError(CodeImpositionNotFound, "cutWidth", width, "cutHeight", height, "sheetStandard", string(sheet))
}

// LookupFixedPrice returns the first record of productID whose set ids match.
// Nil ids on the record or on the query match anything.
func LookupFixedPrice(records []FixedPriceRecord, productID int64, sizeID, paperID, printModeID *int64) (FixedPriceRecord, error) {
	for _, r := range records {
		if r.ProductID != productID {
			continue
		}
		if idMatches(r.SizeID, sizeID) && idMatches(r.PaperID, paperID) && idMatches(r.PrintModeID, printModeID) {
			return r, nil
		}
	}
	return FixedPriceRecord{}, newError(CodeFixedPriceNotFound,
		"productId", productID, "sizeId", idParam(sizeID), "paperId", idParam(paperID), "printModeId", idParam(printModeID))
}

func idMatches(record, query *int64) bool {
	return record == nil || query == nil || *record == *query
}

func idParam(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// LookupPackagePrice returns the price of the band containing quantity for a
// product, size, print mode and page count.
func LookupPackagePrice(records []PackagePriceRecord, productID, sizeID, printModeID int64, pageCount, quantity int) (float64, error) {
	var candidates []PackagePriceRecord
	for _, r := range records {
		if r.ProductID == productID {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return 0, newError(CodePackagePriceNotFound, "productId", productID)
	}

	matched := false
	for _, r := range candidates {
		if r.SizeID != sizeID || r.PrintModeID != printModeID || r.PageCount != pageCount {
			continue
		}
		matched = true
		if quantity >= r.MinQty && quantity <= r.MaxQty {
			return r.SellingPrice, nil
		}
	}
	if !matched {
		return 0, newError(CodePageCountMismatch,
			"productId", productID, "sizeId", sizeID, "printModeId", printModeID, "pageCount", pageCount)
	}
	return 0, newError(CodePackagePriceNotFound,
		"productId", productID, "pageCount", pageCount, "quantity", quantity)
}

// LookupQuantityDiscount returns the discount multiplier of a product for a
// quantity, or 1 when no discount tier applies.
func LookupQuantityDiscount(tiers []PriceTier, productID int64, quantity int) float64 {
	rate, err := LookupTier(tiers, DiscountCode(productID), quantity, "")
	if err != nil {
		return 1
	}
	return rate
}

// DiscountCode is the tier option code holding a product's quantity discounts.
func DiscountCode(productID int64) string {
	return fmt.Sprintf("discount_%d", productID)
}

// LookupCuttingPrice returns the cutting cost of quantity pieces.
func LookupCuttingPrice(tiers []PriceTier, cuttingType string, quantity int) (int64, error) {
	unit, err := LookupTier(tiers, cuttingType, quantity, "")
	if err != nil {
		return 0, err
	}
	return ceilInt(decF(unit).Mul(decInt(quantity))), nil
}

// LookupFoilPrice returns the price of a foil stamp of the given type and area.
func LookupFoilPrice(records []FoilPriceRecord, foilType string, width, height float64) (float64, error) {
	for _, r := range records {
		if r.FoilType == foilType && r.Width == width && r.Height == height {
			return r.SellingPrice, nil
		}
	}
	return 0, newError(CodeFoilPriceNotFound, "foilType", foilType, "width", width, "height", height)
}

// FindPaper returns the paper with the given id.
func FindPaper(papers []Paper, id int64) (Paper, bool) {
	for _, p := range papers {
		if p.ID == id {
			return p, true
		}
	}
	return Paper{}, false
}
