package pricing

import (
	"errors"
	"testing"
)

func TestLookupTier(t *testing.T) {
	tiers := lookupFixture().PriceTiers
	cases := []struct {
		name  string
		code  string
		qty   int
		sheet SheetStandard
		want  float64
	}{
		{"first band", "8", 10, SheetA3, 2000},
		{"second band", "8", 11, SheetA3, 1500},
		{"other sheet", "8", 5, SheetT3, 2500},
		{"any sheet takes first match", "8", 5, "", 2000},
		{"tier without sheet", "lamination", 100, SheetA3, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LookupTier(tiers, tc.code, tc.qty, tc.sheet)
			if err != nil {
				t.Fatalf("LookupTier: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unit price = %v, want %v", got, tc.want)
			}
		})
	}

	_, err := LookupTier(tiers, "lamination", 101, "")
	wantCode(t, err, CodeTierNotFound)
	pe := err.(*Error)
	if pe.Params["optionCode"] != "lamination" || pe.Params["quantity"] != 101 {
		t.Fatalf("params = %v", pe.Params)
	}
}

func TestLookupImposition(t *testing.T) {
	rules := lookupFixture().ImpositionRules
	if got, err := LookupImposition(rules, 100.4, 149.6, SheetA3); err != nil || got != 8 {
		t.Fatalf("within tolerance = %d, %v", got, err)
	}
	if got, err := LookupImposition(rules, 100, 150, SheetT3); err != nil || got != 12 {
		t.Fatalf("T3 = %d, %v", got, err)
	}
	_, err := LookupImposition(rules, 101, 150, SheetA3)
	if !errors.Is(err, ErrImpositionNotFound) {
		t.Fatalf("err = %v, want IMPOSITION_NOT_FOUND", err)
	}
	_, err = LookupImposition(rules, 100.5, 150, SheetA3)
	if !errors.Is(err, ErrImpositionNotFound) {
		t.Fatalf("drift of exactly 0.5mm: err = %v, want IMPOSITION_NOT_FOUND", err)
	}
}

func TestLookupPackagePrice(t *testing.T) {
	records := lookupFixture().PackagePrices
	for _, tc := range []struct {
		qty  int
		want float64
	}{{1, 25000}, {29, 25000}, {30, 20000}, {99, 20000}, {100, 15000}} {
		got, err := LookupPackagePrice(records, 40, 1, 1, 24, tc.qty)
		if err != nil || got != tc.want {
			t.Fatalf("qty %d = %v, %v; want %v", tc.qty, got, err, tc.want)
		}
	}

	_, err := LookupPackagePrice(records, 41, 1, 1, 24, 10)
	wantCode(t, err, CodePackagePriceNotFound)
	_, err = LookupPackagePrice(records, 40, 1, 1, 28, 10)
	wantCode(t, err, CodePageCountMismatch)
	_, err = LookupPackagePrice(records, 40, 1, 1, 24, 0)
	wantCode(t, err, CodePackagePriceNotFound)
}

func TestLookupQuantityDiscount(t *testing.T) {
	tiers := lookupFixture().PriceTiers
	if got := LookupQuantityDiscount(tiers, 100, 50); got != 0.90 {
		t.Fatalf("q=50 rate = %v", got)
	}
	if got := LookupQuantityDiscount(tiers, 100, 500); got != 0.85 {
		t.Fatalf("q=500 rate = %v", got)
	}
	if got := LookupQuantityDiscount(tiers, 100, 10); got != 1 {
		t.Fatalf("q=10 rate = %v", got)
	}
	if got := LookupQuantityDiscount(tiers, 7, 500); got != 1 {
		t.Fatalf("other product rate = %v", got)
	}
}

func TestLookupCuttingAndFoil(t *testing.T) {
	lookup := lookupFixture()
	got, err := LookupCuttingPrice(lookup.PriceTiers, "die_cut", 150)
	if err != nil || got != 3000 {
		t.Fatalf("cutting = %d, %v", got, err)
	}
	foil, err := LookupFoilPrice(lookup.FoilPrices, "gold", 100, 100)
	if err != nil || foil != 5000 {
		t.Fatalf("foil = %v, %v", foil, err)
	}
	_, err = LookupFoilPrice(lookup.FoilPrices, "copper", 50, 50)
	if !errors.Is(err, ErrFoilPriceNotFound) {
		t.Fatalf("err = %v, want FOIL_PRICE_NOT_FOUND", err)
	}
}

func TestResolveLossConfig(t *testing.T) {
	configs := lookupFixture().LossConfigs
	cases := []struct {
		name              string
		product, category int64
		want              LossConfig
	}{
		{"product scope", 10, 1, LossConfig{LossRate: 0.05, MinLossQty: 20}},
		{"category scope", 11, 1, LossConfig{LossRate: 0.04, MinLossQty: 15}},
		{"global scope", 11, 2, LossConfig{LossRate: 0.03, MinLossQty: 10}},
	}
	for _, tc := range cases {
		if got := ResolveLossConfig(configs, tc.product, tc.category); got != tc.want {
			t.Fatalf("%s = %+v, want %+v", tc.name, got, tc.want)
		}
	}
	if got := ResolveLossConfig(nil, 1, 1); got != DefaultLoss {
		t.Fatalf("fallback = %+v", got)
	}
	if got := LossQuantity(1000, DefaultLoss); got != 30 {
		t.Fatalf("loss(1000) = %d", got)
	}
	if got := LossQuantity(100, DefaultLoss); got != 10 {
		t.Fatalf("loss(100) = %d", got)
	}
}

func TestValidate(t *testing.T) {
	for _, q := range []int{1, 999999} {
		if err := ValidateQuantity(q); err != nil {
			t.Fatalf("quantity %d: %v", q, err)
		}
	}
	for _, p := range []int{3, 1001} {
		if err := ValidatePageCount(p); !errors.Is(err, ErrInvalidPageCount) {
			t.Fatalf("page count %d: err = %v", p, err)
		}
	}
}

func TestParseAndFormatSize(t *testing.T) {
	w, h, err := ParseSize("148x210")
	if err != nil || w != 148 || h != 210 {
		t.Fatalf("ParseSize = %v, %v, %v", w, h, err)
	}
	w, h, err = ParseSize(" 100X150 ")
	if err != nil || w != 100 || h != 150 {
		t.Fatalf("ParseSize uppercase = %v, %v, %v", w, h, err)
	}
	for _, bad := range []string{"", "148", "ax210", "0x10"} {
		if _, _, err := ParseSize(bad); err == nil {
			t.Fatalf("ParseSize(%q) succeeded", bad)
		}
	}

	if got := FormatSize(size100x150); got != "100 x 150 mm" {
		t.Fatalf("FormatSize = %q", got)
	}
	custom := SizeSelection{CutWidth: 100, CutHeight: 150, IsCustom: true, CustomWidth: ptr(120.5), CustomHeight: ptr(80.0)}
	if got := FormatSize(custom); got != "120.5 x 80 mm" {
		t.Fatalf("FormatSize custom = %q", got)
	}
	custom.CustomHeight = nil
	if got := FormatSize(custom); got != "100 x 150 mm" {
		t.Fatalf("FormatSize partial custom = %q", got)
	}
}
