package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoCatalog []byte

// tableOrder lists fixture tables parents first.
var tableOrder = []string{
	"products",
	"product_sizes",
	"product_options",
	"option_choices",
	"option_dependencies",
	"option_constraints",
	"implicit_constraints",
	"simulation_rules",
	"papers",
	"print_modes",
	"post_processes",
	"bindings",
	"price_tiers",
	"imposition_rules",
	"loss_configs",
	"fixed_prices",
	"package_prices",
	"foil_prices",
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Fixture maps table names to rows. Every row carries its primary key.
type Fixture map[string][]map[string]any

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

// Demo returns the embedded demo catalog.
func Demo() (Fixture, error) {
	return Parse(demoCatalog)
}

// Parse decodes a YAML fixture and rejects unknown tables.
func Parse(raw []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	known := make(map[string]bool, len(tableOrder))
	for _, t := range tableOrder {
		known[t] = true
	}
	for table := range f {
		if !known[table] {
			return nil, fmt.Errorf("seed fixture: unknown table %q", table)
		}
	}
	return f, nil
}

// Run inserts every fixture row that is not present yet, in one transaction.
// Rows are matched by primary key, so repeated runs insert nothing.
func Run(ctx context.Context, db *sql.DB, f Fixture) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, table := range tableOrder {
		for i, row := range f[table] {
			inserted, err := insertRow(ctx, tx, table, row)
			if err != nil {
				_ = tx.Rollback()
				return Stats{}, fmt.Errorf("seed %s row %d: %w", table, i, err)
			}
			if inserted {
				stats.Inserts++
			} else {
				stats.Skipped++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func insertRow(ctx context.Context, tx *sql.Tx, table string, row map[string]any) (bool, error) {
	if _, ok := row["id"]; !ok {
		return false, fmt.Errorf("row has no id")
	}

	cols := make([]string, 0, len(row))
	for c := range row {
		if !identifier.MatchString(c) {
			return false, fmt.Errorf("invalid column name %q", c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = row[c]
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	res, err := tx.ExecContext(ctx, fmt.Sprintf(
		`INSERT OR IGNORE INTO %s (%s) VALUES (%s)`, table, strings.Join(cols, ", "), placeholders,
	), args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
