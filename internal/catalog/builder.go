package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Simplici0/printquote/internal/options"
	"github.com/Simplici0/printquote/internal/pricing"
)

// ErrIncompleteSelection is returned when the selections lack something the
// product's pricing model needs.
var ErrIncompleteSelection = errors.New("incomplete selection")

// coverPrefix marks option keys that configure the cover of a booklet.
const coverPrefix = "cover"

// PriceRequest is a configuration to price.
type PriceRequest struct {
	Quantity   int
	Selections options.Selections
	// SizeID picks a predefined size. Zero falls back to the RefSizeID of the
	// selected size-class choice.
	SizeID       int64
	CustomWidth  *float64
	CustomHeight *float64
	PageCount    int
	Foil         *pricing.FoilEmboss
	Additional   []pricing.AdditionalProduct
}

// Catalog is everything the builder reads about one product.
type Catalog struct {
	Product Product
	Data    options.ProductData
	Lookup  pricing.LookupData
	Sizes   []Size
}

// resolvedChoice is a selection joined with its choice and option rows.
type resolvedChoice struct {
	option options.ProductOption
	choice options.OptionChoice
}

// part collects the paper and print setup read from one group of choices.
type part struct {
	paper     *pricing.Paper
	printMode *pricing.PrintMode
	coating   *pricing.PriceCode
}

// BuildPricingInput maps selections onto the input of the product's pricing
// model. It also returns the selections in pricing form, sorted by option key.
func BuildPricingInput(c Catalog, req PriceRequest) (pricing.Input, []pricing.SelectedOption, error) {
	chosen, err := resolveChoices(c.Data, req.Selections)
	if err != nil {
		return nil, nil, err
	}
	size, err := sizeSelection(c, req, chosen)
	if err != nil {
		return nil, nil, err
	}

	selected := make([]pricing.SelectedOption, 0, len(chosen))
	for _, rc := range chosen {
		selected = append(selected, toPricingOption(rc))
	}
	common := pricing.Common{
		ProductID:       c.Product.ID,
		CategoryID:      c.Product.CategoryID,
		Quantity:        req.Quantity,
		SelectedOptions: selected,
		Size:            size,
		Lookup:          c.Lookup,
	}

	in, err := buildModelInput(c, req, common, chosen)
	if err != nil {
		return nil, nil, err
	}
	return in, selected, nil
}

func buildModelInput(c Catalog, req PriceRequest, common pricing.Common, chosen []resolvedChoice) (pricing.Input, error) {
	switch c.Product.PricingModel {
	case pricing.ModelFormula, pricing.ModelFormulaCutting:
		f, err := formulaInput(c, common, chosen)
		if err != nil {
			return nil, err
		}
		if c.Product.PricingModel == pricing.ModelFormula {
			return f, nil
		}
		if c.Product.CuttingType == "" {
			return nil, fmt.Errorf("%w: product %d has no cutting type", ErrIncompleteSelection, c.Product.ID)
		}
		return pricing.FormulaCuttingInput{FormulaInput: f, CuttingType: c.Product.CuttingType}, nil

	case pricing.ModelComponent:
		return componentInput(c, req, common, chosen)

	case pricing.ModelFixedUnit:
		inner := readPart(c.Lookup, chosen, false)
		in := pricing.FixedUnitInput{Common: common}
		if inner.paper != nil {
			in.PaperID = &inner.paper.ID
		}
		if inner.printMode != nil {
			in.PrintModeID = &inner.printMode.ID
		}
		return in, nil

	case pricing.ModelFixedSize:
		return pricing.FixedSizeInput{Common: common, AdditionalOptions: unitPriced(chosen)}, nil

	case pricing.ModelFixedPerUnit:
		return pricing.FixedPerUnitInput{
			Common:             common,
			ProcessingOptions:  unitPriced(chosen),
			AdditionalProducts: req.Additional,
		}, nil

	case pricing.ModelPackage:
		inner := readPart(c.Lookup, chosen, false)
		if inner.printMode == nil {
			return nil, fmt.Errorf("%w: print mode", ErrIncompleteSelection)
		}
		return pricing.PackageInput{Common: common, PrintModeID: inner.printMode.ID, PageCount: req.PageCount}, nil

	default:
		return nil, fmt.Errorf("%w: product %d has pricing model %q", ErrIncompleteSelection, c.Product.ID, c.Product.PricingModel)
	}
}

func formulaInput(c Catalog, common pricing.Common, chosen []resolvedChoice) (pricing.FormulaInput, error) {
	p := readPart(c.Lookup, chosen, false)
	if p.paper == nil {
		return pricing.FormulaInput{}, fmt.Errorf("%w: paper", ErrIncompleteSelection)
	}
	if p.printMode == nil {
		return pricing.FormulaInput{}, fmt.Errorf("%w: print mode", ErrIncompleteSelection)
	}

	in := pricing.FormulaInput{
		Common:        common,
		Paper:         *p.paper,
		PrintMode:     *p.printMode,
		Coating:       p.coating,
		SheetStandard: c.Product.SheetStandard,
	}
	for _, rc := range chosen {
		if rc.option.OptionClass == options.ClassAdditionalColor && rc.choice.PriceKey != "" {
			in.SpecialColors = append(in.SpecialColors, pricing.PriceCode{PriceCode: rc.choice.PriceKey})
		}
		if rc.choice.RefPostProcessID != nil {
			pp, ok := findPostProcess(c.Lookup.PostProcesses, *rc.choice.RefPostProcessID)
			if !ok {
				return pricing.FormulaInput{}, fmt.Errorf("%w: post process %d", ErrNotFound, *rc.choice.RefPostProcessID)
			}
			in.PostProcesses = append(in.PostProcesses, pp)
		}
	}
	return in, nil
}

func componentInput(c Catalog, req PriceRequest, common pricing.Common, chosen []resolvedChoice) (pricing.ComponentInput, error) {
	inner := readPart(c.Lookup, chosen, false)
	cover := readPart(c.Lookup, chosen, true)
	if inner.paper == nil || inner.printMode == nil {
		return pricing.ComponentInput{}, fmt.Errorf("%w: inner paper and print mode", ErrIncompleteSelection)
	}
	if cover.paper == nil || cover.printMode == nil {
		return pricing.ComponentInput{}, fmt.Errorf("%w: cover paper and print mode", ErrIncompleteSelection)
	}

	in := pricing.ComponentInput{
		Common: common,
		InnerBody: pricing.InnerBody{
			Part:      pricing.Part{Paper: *inner.paper, PrintMode: *inner.printMode, SheetStandard: c.Product.SheetStandard},
			PageCount: req.PageCount,
		},
		Cover:        pricing.Part{Paper: *cover.paper, PrintMode: *cover.printMode, SheetStandard: c.Product.SheetStandard},
		CoverCoating: cover.coating,
		FoilEmboss:   req.Foil,
	}

	bound := false
	for _, rc := range chosen {
		if b, ok := findBinding(c.Lookup.Bindings, rc.choice.PriceKey); ok {
			in.Binding = b
			bound = true
		}
		if rc.choice.UnitPrice != nil && in.Packaging == nil {
			in.Packaging = &pricing.Packaging{UnitPrice: *rc.choice.UnitPrice}
		}
	}
	if !bound {
		return pricing.ComponentInput{}, fmt.Errorf("%w: binding", ErrIncompleteSelection)
	}
	return in, nil
}

// readPart reads paper, print mode and coating from the cover choices when
// cover is set, else from every other choice. A price key that names no
// binding and sits on a plain option is read as the coating.
func readPart(lk pricing.LookupData, chosen []resolvedChoice, cover bool) part {
	var p part
	for _, rc := range chosen {
		if strings.HasPrefix(rc.option.Key, coverPrefix) != cover {
			continue
		}
		ch := rc.choice
		if ch.RefPaperID != nil && p.paper == nil {
			if paper, ok := pricing.FindPaper(lk.Papers, *ch.RefPaperID); ok {
				p.paper = &paper
			}
		}
		if ch.RefPrintModeID != nil && p.printMode == nil {
			if pm, ok := findPrintMode(lk.PrintModes, *ch.RefPrintModeID); ok {
				p.printMode = &pm
			}
		}
		if rc.option.OptionClass == options.ClassOption && ch.PriceKey != "" && ch.RefPostProcessID == nil && p.coating == nil {
			if _, isBinding := findBinding(lk.Bindings, ch.PriceKey); !isBinding {
				p.coating = &pricing.PriceCode{PriceCode: ch.PriceKey}
			}
		}
	}
	return p
}

func unitPriced(chosen []resolvedChoice) []pricing.SelectedOption {
	var out []pricing.SelectedOption
	for _, rc := range chosen {
		if rc.choice.UnitPrice != nil {
			out = append(out, toPricingOption(rc))
		}
	}
	return out
}

// resolveChoices joins every selection with its option slot and choice row,
// sorted by option key.
func resolveChoices(data options.ProductData, sel options.Selections) ([]resolvedChoice, error) {
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]resolvedChoice, 0, len(keys))
	for _, key := range keys {
		s := sel[key]
		opt, ok := findOption(data.ProductOptions, key)
		if !ok {
			return nil, fmt.Errorf("option %q: %w", key, ErrNotFound)
		}
		ch, ok := findChoice(data.OptionChoices, opt.OptionDefinitionID, s)
		if !ok {
			return nil, fmt.Errorf("choice %q of option %q: %w", s.ChoiceCode, key, ErrNotFound)
		}
		out = append(out, resolvedChoice{option: opt, choice: ch})
	}
	return out, nil
}

func sizeSelection(c Catalog, req PriceRequest, chosen []resolvedChoice) (pricing.SizeSelection, error) {
	if req.CustomWidth != nil && req.CustomHeight != nil {
		return pricing.SizeSelection{
			SizeID:       req.SizeID,
			CutWidth:     *req.CustomWidth,
			CutHeight:    *req.CustomHeight,
			IsCustom:     true,
			CustomWidth:  req.CustomWidth,
			CustomHeight: req.CustomHeight,
		}, nil
	}

	id := req.SizeID
	if id == 0 {
		for _, rc := range chosen {
			if rc.option.OptionClass == options.ClassSize && rc.choice.RefSizeID != nil {
				id = *rc.choice.RefSizeID
				break
			}
		}
	}
	if id == 0 {
		return pricing.SizeSelection{}, fmt.Errorf("%w: size", ErrIncompleteSelection)
	}
	for _, sz := range c.Sizes {
		if sz.ID == id {
			return pricing.SizeSelection{
				SizeID:          sz.ID,
				CutWidth:        sz.CutWidth,
				CutHeight:       sz.CutHeight,
				ImpositionCount: sz.ImpositionCount,
			}, nil
		}
	}
	return pricing.SizeSelection{}, fmt.Errorf("size %d of product %d: %w", id, c.Product.ID, ErrNotFound)
}

func toPricingOption(rc resolvedChoice) pricing.SelectedOption {
	id := rc.choice.ID
	return pricing.SelectedOption{
		OptionKey:        rc.option.Key,
		ChoiceCode:       rc.choice.Code,
		ChoiceID:         &id,
		RefPaperID:       rc.choice.RefPaperID,
		RefPrintModeID:   rc.choice.RefPrintModeID,
		RefPostProcessID: rc.choice.RefPostProcessID,
		UnitPrice:        rc.choice.UnitPrice,
	}
}

func findOption(opts []options.ProductOption, key string) (options.ProductOption, bool) {
	for _, o := range opts {
		if o.Key == key {
			return o, true
		}
	}
	return options.ProductOption{}, false
}

// findChoice matches by choice id when the selection carries one, else by code.
func findChoice(choices []options.OptionChoice, defID int64, s options.SelectedOption) (options.OptionChoice, bool) {
	for _, c := range choices {
		if c.OptionDefinitionID != defID {
			continue
		}
		if s.ChoiceID != nil && c.ID == *s.ChoiceID {
			return c, true
		}
		if s.ChoiceID == nil && c.Code == s.ChoiceCode {
			return c, true
		}
	}
	return options.OptionChoice{}, false
}

func findPrintMode(modes []pricing.PrintMode, id int64) (pricing.PrintMode, bool) {
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return pricing.PrintMode{}, false
}

func findPostProcess(pps []pricing.PostProcess, id int64) (pricing.PostProcess, bool) {
	for _, pp := range pps {
		if pp.ID == id {
			return pp, true
		}
	}
	return pricing.PostProcess{}, false
}

func findBinding(bindings []pricing.Binding, priceCode string) (pricing.Binding, bool) {
	if priceCode == "" {
		return pricing.Binding{}, false
	}
	for _, b := range bindings {
		if b.PriceCode == priceCode {
			return b, true
		}
	}
	return pricing.Binding{}, false
}
