package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/printquote/internal/pricing"
)

// LoadLookupData reads every pricing reference table. Fixed and package price
// records are limited to productID; the other tables are shared.
func (s *Store) LoadLookupData(ctx context.Context, productID int64) (pricing.LookupData, error) {
	var lk pricing.LookupData
	loaders := []struct {
		name string
		load func() error
	}{
		{"price tiers", func() (err error) { lk.PriceTiers, err = s.priceTiers(ctx); return }},
		{"imposition rules", func() (err error) { lk.ImpositionRules, err = s.impositionRules(ctx); return }},
		{"loss configs", func() (err error) { lk.LossConfigs, err = s.lossConfigs(ctx); return }},
		{"papers", func() (err error) { lk.Papers, err = s.papers(ctx); return }},
		{"print modes", func() (err error) { lk.PrintModes, err = s.printModes(ctx); return }},
		{"post processes", func() (err error) { lk.PostProcesses, err = s.postProcesses(ctx); return }},
		{"bindings", func() (err error) { lk.Bindings, err = s.bindings(ctx); return }},
		{"foil prices", func() (err error) { lk.FoilPrices, err = s.foilPrices(ctx); return }},
		{"fixed prices", func() (err error) { lk.FixedPrices, err = s.fixedPrices(ctx, productID); return }},
		{"package prices", func() (err error) { lk.PackagePrices, err = s.packagePrices(ctx, productID); return }},
	}
	for _, l := range loaders {
		if err := l.load(); err != nil {
			return pricing.LookupData{}, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return lk, nil
}

// scanAll runs query and appends one value per row using scan.
func scanAll[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) priceTiers(ctx context.Context) ([]pricing.PriceTier, error) {
	return scanAll(ctx, s.db, `
		SELECT option_code, min_qty, max_qty, unit_price, sheet_standard
		FROM price_tiers
		ORDER BY option_code, min_qty, id
	`, func(r *sql.Rows) (pricing.PriceTier, error) {
		var (
			t     pricing.PriceTier
			sheet string
		)
		err := r.Scan(&t.OptionCode, &t.MinQty, &t.MaxQty, &t.UnitPrice, &sheet)
		t.SheetStandard = pricing.SheetStandard(sheet)
		return t, err
	})
}

func (s *Store) impositionRules(ctx context.Context) ([]pricing.ImpositionRule, error) {
	return scanAll(ctx, s.db, `
		SELECT cut_width, cut_height, sheet_standard, imposition_count
		FROM imposition_rules
		ORDER BY id
	`, func(r *sql.Rows) (pricing.ImpositionRule, error) {
		var (
			ir    pricing.ImpositionRule
			sheet string
		)
		err := r.Scan(&ir.CutWidth, &ir.CutHeight, &sheet, &ir.ImpositionCount)
		ir.SheetStandard = pricing.SheetStandard(sheet)
		return ir, err
	})
}

func (s *Store) lossConfigs(ctx context.Context) ([]pricing.LossQuantityConfig, error) {
	return scanAll(ctx, s.db, `
		SELECT scope_type, scope_id, loss_rate, min_loss_qty
		FROM loss_configs
		ORDER BY id
	`, func(r *sql.Rows) (pricing.LossQuantityConfig, error) {
		var (
			c     pricing.LossQuantityConfig
			scope string
			id    sql.NullInt64
		)
		err := r.Scan(&scope, &id, &c.LossRate, &c.MinLossQty)
		c.ScopeType = pricing.LossScope(scope)
		c.ScopeID = int64Ptr(id)
		return c, err
	})
}

func (s *Store) papers(ctx context.Context) ([]pricing.Paper, error) {
	return scanAll(ctx, s.db, `
		SELECT id, name, weight, cost_per_4cut, selling_per_4cut
		FROM papers
		ORDER BY id
	`, func(r *sql.Rows) (pricing.Paper, error) {
		var (
			p      pricing.Paper
			weight sql.NullFloat64
		)
		err := r.Scan(&p.ID, &p.Name, &weight, &p.CostPer4Cut, &p.SellingPer4Cut)
		p.Weight = float64Ptr(weight)
		return p, err
	})
}

func (s *Store) printModes(ctx context.Context) ([]pricing.PrintMode, error) {
	return scanAll(ctx, s.db, `
		SELECT id, name, price_code, sides, color_type
		FROM print_modes
		ORDER BY id
	`, func(r *sql.Rows) (pricing.PrintMode, error) {
		var m pricing.PrintMode
		err := r.Scan(&m.ID, &m.Name, &m.PriceCode, &m.Sides, &m.ColorType)
		return m, err
	})
}

func (s *Store) postProcesses(ctx context.Context) ([]pricing.PostProcess, error) {
	return scanAll(ctx, s.db, `
		SELECT id, name, price_code, price_basis, sheet_standard
		FROM post_processes
		ORDER BY id
	`, func(r *sql.Rows) (pricing.PostProcess, error) {
		var (
			pp           pricing.PostProcess
			basis, sheet string
		)
		err := r.Scan(&pp.ID, &pp.Name, &pp.PriceCode, &basis, &sheet)
		pp.PriceBasis = pricing.PriceBasis(basis)
		pp.SheetStandard = pricing.SheetStandard(sheet)
		return pp, err
	})
}

func (s *Store) bindings(ctx context.Context) ([]pricing.Binding, error) {
	return scanAll(ctx, s.db, `
		SELECT id, name, price_code, min_pages, max_pages, page_step
		FROM bindings
		ORDER BY id
	`, func(r *sql.Rows) (pricing.Binding, error) {
		var b pricing.Binding
		err := r.Scan(&b.ID, &b.Name, &b.PriceCode, &b.MinPages, &b.MaxPages, &b.PageStep)
		return b, err
	})
}

func (s *Store) foilPrices(ctx context.Context) ([]pricing.FoilPriceRecord, error) {
	return scanAll(ctx, s.db, `
		SELECT foil_type, width, height, selling_price
		FROM foil_prices
		ORDER BY id
	`, func(r *sql.Rows) (pricing.FoilPriceRecord, error) {
		var f pricing.FoilPriceRecord
		err := r.Scan(&f.FoilType, &f.Width, &f.Height, &f.SellingPrice)
		return f, err
	})
}

func (s *Store) fixedPrices(ctx context.Context, productID int64) ([]pricing.FixedPriceRecord, error) {
	return scanAll(ctx, s.db, `
		SELECT product_id, size_id, paper_id, print_mode_id, selling_price, cost_price, base_qty
		FROM fixed_prices
		WHERE product_id = ?
		ORDER BY id
	`, func(r *sql.Rows) (pricing.FixedPriceRecord, error) {
		var (
			f                      pricing.FixedPriceRecord
			size, paper, printMode sql.NullInt64
		)
		err := r.Scan(&f.ProductID, &size, &paper, &printMode, &f.SellingPrice, &f.CostPrice, &f.BaseQty)
		f.SizeID = int64Ptr(size)
		f.PaperID = int64Ptr(paper)
		f.PrintModeID = int64Ptr(printMode)
		return f, err
	}, productID)
}

func (s *Store) packagePrices(ctx context.Context, productID int64) ([]pricing.PackagePriceRecord, error) {
	return scanAll(ctx, s.db, `
		SELECT product_id, size_id, print_mode_id, page_count, min_qty, max_qty, selling_price
		FROM package_prices
		WHERE product_id = ?
		ORDER BY id
	`, func(r *sql.Rows) (pricing.PackagePriceRecord, error) {
		var p pricing.PackagePriceRecord
		err := r.Scan(&p.ProductID, &p.SizeID, &p.PrintModeID, &p.PageCount, &p.MinQty, &p.MaxQty, &p.SellingPrice)
		return p, err
	}, productID)
}
