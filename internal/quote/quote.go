// Package quote turns a pricing result into a customer quote with line
// items, VAT, a short validity window and a tamper-evident snapshot hash.
package quote

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/printquote/internal/pricing"
)

// TTL is how long a quote stays valid after creation.
const TTL = 30 * time.Minute

// LineItem is one row of a quote.
type LineItem struct {
	Category    string `json:"category"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int64  `json:"amount"`
}

// Input is what a quote is assembled from.
type Input struct {
	ProductID       int64
	ProductName     string
	Pricing         pricing.Result
	SelectedOptions []pricing.SelectedOption
	Quantity        int
	Size            pricing.SizeSelection
}

// Quote is an assembled customer quote.
type Quote struct {
	QuoteID       string     `json:"quoteId"`
	ProductID     int64      `json:"productId"`
	ProductName   string     `json:"productName"`
	LineItems     []LineItem `json:"lineItems"`
	Subtotal      int64      `json:"subtotal"`
	VATAmount     int64      `json:"vatAmount"`
	TotalPrice    int64      `json:"totalPrice"`
	UnitPrice     int64      `json:"unitPrice"`
	Quantity      int        `json:"quantity"`
	SizeDisplay   string     `json:"sizeDisplay"`
	OptionSummary string     `json:"optionSummary"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	SnapshotHash  string     `json:"snapshotHash"`
}

// IsValid reports whether q has not yet expired at now.
func IsValid(q Quote, now time.Time) bool {
	return now.Before(q.ExpiresAt)
}

// Assembler builds quotes with an injectable clock and id source.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock sets the time source used for createdAt and validity checks.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithIDs sets the quote id generator.
func WithIDs(newID func() string) Option {
	return func(a *Assembler) { a.newID = newID }
}

// NewAssembler returns an Assembler using the wall clock and random UUIDs.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Valid reports whether q is still valid on the assembler's clock.
func (a *Assembler) Valid(q Quote) bool {
	return IsValid(q, a.now())
}

// Assemble builds a quote from in. The subtotal is the pricing total, VAT is
// rounded down and the unit price is the subtotal divided by quantity,
// rounded down.
func (a *Assembler) Assemble(in Input) (Quote, error) {
	if err := pricing.ValidateQuantity(in.Quantity); err != nil {
		return Quote{}, err
	}
	hash, err := SnapshotHash(in)
	if err != nil {
		return Quote{}, err
	}

	subtotal := in.Pricing.Totals.Total
	vat := pricing.Floor(decimal.NewFromInt(subtotal).Mul(pricing.VATRate))
	created := a.now()
	return Quote{
		QuoteID:       a.newID(),
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		LineItems:     LineItems(in.Pricing.Breakdown),
		Subtotal:      subtotal,
		VATAmount:     vat,
		TotalPrice:    subtotal + vat,
		UnitPrice:     pricing.Floor(decimal.NewFromInt(subtotal).Div(decimal.NewFromInt(int64(in.Quantity)))),
		Quantity:      in.Quantity,
		SizeDisplay:   pricing.FormatSize(in.Size),
		OptionSummary: OptionSummary(in.SelectedOptions),
		CreatedAt:     created,
		ExpiresAt:     created.Add(TTL),
		SnapshotHash:  hash,
	}, nil
}

// LineItems lists the non-zero breakdown components in a fixed order.
func LineItems(b pricing.Breakdown) []LineItem {
	fields := []struct {
		category, label string
		amount          int64
	}{
		{"print", "Print Cost", b.PrintCost},
		{"paper", "Paper Cost", b.PaperCost},
		{"special_color", "Special Color Cost", b.SpecialColorCost},
		{"coating", "Coating Cost", b.CoatingCost},
		{"post_process", "Post Process Cost", b.PostProcessCost},
		{"binding", "Binding Cost", b.BindingCost},
		{"foil", "Foil Cost", b.FoilCost},
		{"packaging", "Packaging Cost", b.PackagingCost},
		{"cutting", "Cutting Cost", b.CuttingCost},
		{"discount", "Discount Amount", b.DiscountAmount},
	}
	items := []LineItem{}
	for _, f := range fields {
		if f.amount == 0 {
			continue
		}
		items = append(items, LineItem{
			Category:    f.category,
			Label:       f.label,
			Description: f.label,
			Quantity:    1,
			UnitPrice:   f.amount,
			Amount:      f.amount,
		})
	}
	return items
}

// OptionSummary joins the choice codes of opts with ", ".
func OptionSummary(opts []pricing.SelectedOption) string {
	codes := make([]string, 0, len(opts))
	for _, o := range opts {
		codes = append(codes, o.ChoiceCode)
	}
	return strings.Join(codes, ", ")
}

type snapshotOption struct {
	OptionKey  string `json:"optionKey"`
	ChoiceCode string `json:"choiceCode"`
}

type snapshot struct {
	ProductID       int64                 `json:"productId"`
	SelectedOptions []snapshotOption      `json:"selectedOptions"`
	Quantity        int                   `json:"quantity"`
	SizeSelection   pricing.SizeSelection `json:"sizeSelection"`
	TotalPrice      int64                 `json:"totalPrice"`
}

// SnapshotHash is the lowercase hex SHA-256 of the canonical JSON (RFC 8785)
// of the product, option codes, quantity, size and total price.
func SnapshotHash(in Input) (string, error) {
	snap := snapshot{
		ProductID:       in.ProductID,
		SelectedOptions: make([]snapshotOption, 0, len(in.SelectedOptions)),
		Quantity:        in.Quantity,
		SizeSelection:   in.Size,
		TotalPrice:      in.Pricing.Totals.Total,
	}
	for _, o := range in.SelectedOptions {
		snap.SelectedOptions = append(snap.SelectedOptions, snapshotOption{OptionKey: o.OptionKey, ChoiceCode: o.ChoiceCode})
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize snapshot: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
