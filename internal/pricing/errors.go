package pricing

import (
	"fmt"
	"sort"
	"strings"
)

// Error codes carried by *Error.
const (
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeInvalidPageCount     = "INVALID_PAGE_COUNT"
	CodeInvalidSize          = "INVALID_SIZE"
	CodeTierNotFound         = "TIER_NOT_FOUND"
	CodeImpositionNotFound   = "IMPOSITION_NOT_FOUND"
	CodeFixedPriceNotFound   = "FIXED_PRICE_NOT_FOUND"
	CodePackagePriceNotFound = "PACKAGE_PRICE_NOT_FOUND"
	CodePageCountMismatch    = "PAGE_COUNT_MISMATCH"
	CodeFoilPriceNotFound    = "FOIL_PRICE_NOT_FOUND"
	CodePaperNotFound        = "PAPER_NOT_FOUND"
	CodeUnknownModel         = "UNKNOWN_MODEL"
	CodeInvalidPriceBasis    = "INVALID_PRICE_BASIS"
)

// Error is a pricing failure with a stable code and diagnostic parameters.
type Error struct {
	Code   string
	Params map[string]any
}

func (e *Error) Error() string {
	if len(e.Params) == 0 {
		return "pricing: " + e.Code
	}
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	return fmt.Sprintf("pricing: %s (%s)", e.Code, strings.Join(parts, ", "))
}

// Is matches any *Error with the same code, so errors.Is works against the
// sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidQuantity      = &Error{Code: CodeInvalidQuantity}
	ErrInvalidPageCount     = &Error{Code: CodeInvalidPageCount}
	ErrTierNotFound         = &Error{Code: CodeTierNotFound}
	ErrImpositionNotFound   = &Error{Code: CodeImpositionNotFound}
	ErrFixedPriceNotFound   = &Error{Code: CodeFixedPriceNotFound}
	ErrPackagePriceNotFound = &Error{Code: CodePackagePriceNotFound}
	ErrPageCountMismatch    = &Error{Code: CodePageCountMismatch}
	ErrFoilPriceNotFound    = &Error{Code: CodeFoilPriceNotFound}
)

// newError builds an *Error from alternating key/value pairs.
func newError(code string, kv ...any) *Error {
	e := &Error{Code: code, Params: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Params[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}
