package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Simplici0/printquote/internal/quote"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000"

type quoteTotals struct {
	Subtotal   int64 `json:"subtotal"`
	VATAmount  int64 `json:"vatAmount"`
	TotalPrice int64 `json:"totalPrice"`
	UnitPrice  int64 `json:"unitPrice"`
}

// QuoteListItem is the summary row of a stored quote.
type QuoteListItem struct {
	QuoteID       string    `json:"quoteId"`
	ProductName   string    `json:"productName"`
	OptionSummary string    `json:"optionSummary"`
	Quantity      int       `json:"quantity"`
	TotalPrice    int64     `json:"totalPrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SaveQuote stores an assembled quote.
func (s *Store) SaveQuote(ctx context.Context, q quote.Quote) error {
	items, err := json.Marshal(q.LineItems)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}
	totals, err := json.Marshal(quoteTotals{
		Subtotal:   q.Subtotal,
		VATAmount:  q.VATAmount,
		TotalPrice: q.TotalPrice,
		UnitPrice:  q.UnitPrice,
	})
	if err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			id, product_id, product_name, quantity, size_display, option_summary,
			line_items_json, totals_json, snapshot_hash, created_at, expires_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.QuoteID, q.ProductID, q.ProductName, q.Quantity, q.SizeDisplay, q.OptionSummary,
		string(items), string(totals), q.SnapshotHash,
		q.CreatedAt.UTC().Format(timeLayout), q.ExpiresAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert quote %s: %w", q.QuoteID, err)
	}
	return nil
}

// GetQuote returns a stored quote or ErrNotFound.
func (s *Store) GetQuote(ctx context.Context, id string) (quote.Quote, error) {
	var (
		q                  quote.Quote
		items, totals      string
		created, expiresAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, product_id, product_name, quantity, size_display, option_summary,
			line_items_json, totals_json, snapshot_hash, created_at, expires_at
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.QuoteID, &q.ProductID, &q.ProductName, &q.Quantity, &q.SizeDisplay, &q.OptionSummary,
		&items, &totals, &q.SnapshotHash, &created, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Quote{}, fmt.Errorf("quote %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return quote.Quote{}, fmt.Errorf("load quote %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(items), &q.LineItems); err != nil {
		return quote.Quote{}, fmt.Errorf("decode line items of quote %s: %w", id, err)
	}
	var t quoteTotals
	if err := json.Unmarshal([]byte(totals), &t); err != nil {
		return quote.Quote{}, fmt.Errorf("decode totals of quote %s: %w", id, err)
	}
	q.Subtotal, q.VATAmount, q.TotalPrice, q.UnitPrice = t.Subtotal, t.VATAmount, t.TotalPrice, t.UnitPrice

	if q.CreatedAt, err = parseTime(created); err != nil {
		return quote.Quote{}, err
	}
	if q.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

// ListQuotes returns stored quotes, newest first. A non-empty query keeps
// quotes whose product name or option summary contains it.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]QuoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_name, option_summary, quantity, totals_json, created_at
		FROM quotes
		WHERE (? = '' OR product_name LIKE ? OR option_summary LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteListItem, 0)
	for rows.Next() {
		var (
			item             QuoteListItem
			totals, creation string
		)
		if err := rows.Scan(&item.QuoteID, &item.ProductName, &item.OptionSummary, &item.Quantity, &totals, &creation); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.TotalPrice = totalFromJSON(totals)
		if item.CreatedAt, err = parseTime(creation); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}
	return quotes, rows.Err()
}

// totalFromJSON reads the VAT-inclusive total, falling back to zero on a
// malformed row.
func totalFromJSON(totalsJSON string) int64 {
	var t quoteTotals
	if err := json.Unmarshal([]byte(totalsJSON), &t); err != nil {
		return 0
	}
	return t.TotalPrice
}

func parseTime(v string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
	}
	return t, nil
}
