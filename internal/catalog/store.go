// Package catalog loads product option data and pricing reference tables from
// SQLite and persists assembled quotes.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/printquote/internal/constraints"
	"github.com/Simplici0/printquote/internal/options"
	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/publish"
	"github.com/Simplici0/printquote/internal/simulation"
)

// ErrNotFound is returned when a product or quote does not exist.
var ErrNotFound = errors.New("not found")

// Product is the catalog row of a sellable product.
type Product struct {
	ID               int64                 `json:"id"`
	CategoryID       int64                 `json:"categoryId"`
	Name             string                `json:"name"`
	PricingModel     pricing.Model         `json:"pricingModel"`
	IsPricingActive  bool                  `json:"isPricingActive"`
	HasDefaultRecipe bool                  `json:"hasDefaultRecipe"`
	SheetStandard    pricing.SheetStandard `json:"sheetStandard,omitempty"`
	CuttingType      string                `json:"cuttingType,omitempty"`
	EdicusCode       *string               `json:"edicusCode,omitempty"`
	MESItemCode      *string               `json:"mesItemCode,omitempty"`
}

// Size is a predefined finished size of a product.
type Size struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"productId"`
	Code            string  `json:"code"`
	CutWidth        float64 `json:"cutWidth"`
	CutHeight       float64 `json:"cutHeight"`
	ImpositionCount *int    `json:"impositionCount,omitempty"`
}

// Store reads and writes the catalog database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LoadProduct returns one product or ErrNotFound.
func (s *Store) LoadProduct(ctx context.Context, id int64) (Product, error) {
	var (
		p             Product
		model, sheet  string
		edicus, mesCd sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category_id, name, pricing_model, is_pricing_active, has_default_recipe,
			sheet_standard, cutting_type, edicus_code, mes_item_code
		FROM products
		WHERE id = ?
	`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &model, &p.IsPricingActive, &p.HasDefaultRecipe,
		&sheet, &p.CuttingType, &edicus, &mesCd)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Product{}, fmt.Errorf("load product %d: %w", id, err)
	}
	p.PricingModel = pricing.Model(model)
	p.SheetStandard = pricing.SheetStandard(sheet)
	p.EdicusCode = stringPtr(edicus)
	p.MESItemCode = stringPtr(mesCd)
	return p, nil
}

// Sizes lists the predefined sizes of a product in display order.
func (s *Store) Sizes(ctx context.Context, productID int64) ([]Size, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, code, cut_width, cut_height, imposition_count
		FROM product_sizes
		WHERE product_id = ?
		ORDER BY sort_order, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query sizes: %w", err)
	}
	defer rows.Close()

	sizes := make([]Size, 0)
	for rows.Next() {
		var (
			sz  Size
			imp sql.NullInt64
		)
		if err := rows.Scan(&sz.ID, &sz.ProductID, &sz.Code, &sz.CutWidth, &sz.CutHeight, &imp); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		if imp.Valid {
			n := int(imp.Int64)
			sz.ImpositionCount = &n
		}
		sizes = append(sizes, sz)
	}
	return sizes, rows.Err()
}

// LoadProductData returns the option catalog of a product: its option slots,
// the active choices of their definitions, dependencies, constraints and the
// cut sizes size choices refer to.
func (s *Store) LoadProductData(ctx context.Context, productID int64) (options.ProductData, error) {
	data := options.ProductData{ProductID: productID}
	var err error
	if data.ProductOptions, err = s.productOptions(ctx, productID); err != nil {
		return options.ProductData{}, err
	}
	if data.OptionChoices, err = s.optionChoices(ctx, productID); err != nil {
		return options.ProductData{}, err
	}
	if data.Dependencies, err = s.dependencies(ctx, productID); err != nil {
		return options.ProductData{}, err
	}
	if data.Constraints, err = s.constraints(ctx, productID); err != nil {
		return options.ProductData{}, err
	}
	sizes, err := s.Sizes(ctx, productID)
	if err != nil {
		return options.ProductData{}, err
	}
	data.Sizes = make([]options.SizeRef, 0, len(sizes))
	for _, sz := range sizes {
		data.Sizes = append(data.Sizes, options.SizeRef{ID: sz.ID, CutWidth: sz.CutWidth, CutHeight: sz.CutHeight})
	}
	return data, nil
}

func (s *Store) productOptions(ctx context.Context, productID int64) ([]options.ProductOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, option_definition_id, option_key, option_class, label,
			is_required, is_visible, is_internal, sort_order
		FROM product_options
		WHERE product_id = ?
		ORDER BY sort_order, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query product options: %w", err)
	}
	defer rows.Close()

	out := make([]options.ProductOption, 0)
	for rows.Next() {
		var (
			o     options.ProductOption
			class string
		)
		if err := rows.Scan(&o.ID, &o.ProductID, &o.OptionDefinitionID, &o.Key, &class, &o.Label,
			&o.IsRequired, &o.IsVisible, &o.IsInternal, &o.SortOrder); err != nil {
			return nil, fmt.Errorf("scan product option: %w", err)
		}
		o.OptionClass = options.OptionClass(class)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) optionChoices(ctx context.Context, productID int64) ([]options.OptionChoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.option_definition_id, c.code, c.label, c.price_key,
			c.ref_paper_id, c.ref_print_mode_id, c.ref_size_id, c.ref_post_process_id,
			c.unit_price, c.is_default, c.sort_order
		FROM option_choices c
		WHERE c.is_active
			AND c.option_definition_id IN (
				SELECT option_definition_id FROM product_options WHERE product_id = ?
			)
		ORDER BY c.option_definition_id, c.sort_order, c.id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query option choices: %w", err)
	}
	defer rows.Close()

	out := make([]options.OptionChoice, 0)
	for rows.Next() {
		var (
			c                                options.OptionChoice
			paper, printMode, size, postProc sql.NullInt64
			unit                             sql.NullFloat64
		)
		if err := rows.Scan(&c.ID, &c.OptionDefinitionID, &c.Code, &c.Label, &c.PriceKey,
			&paper, &printMode, &size, &postProc, &unit, &c.IsDefault, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan option choice: %w", err)
		}
		c.RefPaperID = int64Ptr(paper)
		c.RefPrintModeID = int64Ptr(printMode)
		c.RefSizeID = int64Ptr(size)
		c.RefPostProcessID = int64Ptr(postProc)
		c.UnitPrice = float64Ptr(unit)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) dependencies(ctx context.Context, productID int64) ([]options.OptionDependency, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, parent_option_id, child_option_id, parent_choice_id, dependency_type
		FROM option_dependencies
		WHERE product_id = ?
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer rows.Close()

	out := make([]options.OptionDependency, 0)
	for rows.Next() {
		var (
			d      options.OptionDependency
			choice sql.NullInt64
			typ    string
		)
		if err := rows.Scan(&d.ID, &d.ProductID, &d.ParentOptionID, &d.ChildOptionID, &choice, &typ); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		d.ParentChoiceID = int64Ptr(choice)
		d.DependencyType = options.DependencyType(typ)
		out = append(out, d)
	}
	return out, rows.Err()
}

// constraints returns every constraint of the product, active or not.
// Evaluation filters inactive rules itself.
func (s *Store) constraints(ctx context.Context, productID int64) ([]options.OptionConstraint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, constraint_type, source_field, target_field, operator,
			value, value_min, value_max, target_value, priority, is_active, description
		FROM option_constraints
		WHERE product_id = ?
		ORDER BY priority, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query constraints: %w", err)
	}
	defer rows.Close()

	out := make([]options.OptionConstraint, 0)
	for rows.Next() {
		var c options.OptionConstraint
		if err := rows.Scan(&c.ID, &c.ProductID, &c.ConstraintType, &c.SourceField, &c.TargetField, &c.Operator,
			&c.Value, &c.ValueMin, &c.ValueMax, &c.TargetValue, &c.Priority, &c.IsActive, &c.Description); err != nil {
			return nil, fmt.Errorf("scan constraint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ImplicitConstraints returns the derived constraint layer of a product, which
// explicit constraints override key by key.
func (s *Store) ImplicitConstraints(ctx context.Context, productID int64) ([]constraints.ImplicitConstraint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT constraint_key, constraint_type, source_field, target_field, product_id,
			operator, value, priority, is_active
		FROM implicit_constraints
		WHERE product_id = ?
		ORDER BY priority, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query implicit constraints: %w", err)
	}
	defer rows.Close()

	out := make([]constraints.ImplicitConstraint, 0)
	for rows.Next() {
		var c constraints.ImplicitConstraint
		if err := rows.Scan(&c.Key, &c.ConstraintType, &c.SourceField, &c.TargetField, &c.ProductID,
			&c.Operator, &c.Value, &c.Priority, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan implicit constraint: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletenessInput derives the publish gate input of a product from its
// catalog rows.
func (s *Store) CompletenessInput(ctx context.Context, productID int64) (publish.Input, error) {
	p, err := s.LoadProduct(ctx, productID)
	if err != nil {
		return publish.Input{}, err
	}
	in := publish.Input{
		HasDefaultRecipe: p.HasDefaultRecipe,
		HasPricingConfig: p.PricingModel != "",
		IsPricingActive:  p.IsPricingActive,
		EdicusCode:       p.EdicusCode,
		MESItemCode:      p.MESItemCode,
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(MAX(po.is_required), 0),
			COALESCE(MIN((
				SELECT COUNT(*) FROM option_choices c
				WHERE c.option_definition_id = po.option_definition_id AND c.is_active
			)), 0)
		FROM product_options po
		WHERE po.product_id = ?
	`, productID).Scan(&in.OptionTypeCount, &in.HasRequiredOption, &in.MinChoiceCount)
	if err != nil {
		return publish.Input{}, fmt.Errorf("count product options: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM option_constraints WHERE product_id = ? AND is_active
	`, productID).Scan(&in.ConstraintCount); err != nil {
		return publish.Input{}, fmt.Errorf("count constraints: %w", err)
	}
	return in, nil
}

// SimulationInput returns the option types, choices and simulation rules of
// a product. Internal options are left out.
func (s *Store) SimulationInput(ctx context.Context, productID int64) (simulation.Input, error) {
	data, err := s.LoadProductData(ctx, productID)
	if err != nil {
		return simulation.Input{}, err
	}
	p, err := s.LoadProduct(ctx, productID)
	if err != nil {
		return simulation.Input{}, err
	}

	in := simulation.Input{
		ProductID:   productID,
		PriceConfig: simulation.PriceConfig{PricingModel: string(p.PricingModel)},
	}
	for _, po := range data.ProductOptions {
		if po.IsInternal {
			continue
		}
		ot := simulation.OptionType{ID: po.ID, Key: po.Key, Name: po.Label}
		for _, c := range data.OptionChoices {
			if c.OptionDefinitionID == po.OptionDefinitionID {
				ot.Choices = append(ot.Choices, simulation.Choice{ID: c.ID, Code: c.Code, Name: c.Label, IsActive: true})
			}
		}
		in.OptionTypes = append(in.OptionTypes, ot)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, source_field, source_value, target_field, target_value, action, message, is_active
		FROM simulation_rules
		WHERE product_id = ?
		ORDER BY id
	`, productID)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("query simulation rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c simulation.Constraint
		if err := rows.Scan(&c.ID, &c.ProductID, &c.SourceField, &c.SourceValue, &c.TargetField,
			&c.TargetValue, &c.Action, &c.Message, &c.IsActive); err != nil {
			return simulation.Input{}, fmt.Errorf("scan simulation rule: %w", err)
		}
		in.Constraints = append(in.Constraints, c)
	}
	return in, rows.Err()
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func float64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
