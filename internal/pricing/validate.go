package pricing

const (
	MinQuantity  = 1
	MaxQuantity  = 999999
	MinPageCount = 4
	MaxPageCount = 1000
)

// ValidateQuantity rejects quantities outside [MinQuantity, MaxQuantity].
func ValidateQuantity(q int) error {
	if q < MinQuantity || q > MaxQuantity {
		return newError(CodeInvalidQuantity, "quantity", q, "min", MinQuantity, "max", MaxQuantity)
	}
	return nil
}

// ValidatePageCount rejects page counts outside [MinPageCount, MaxPageCount].
func ValidatePageCount(p int) error {
	if p < MinPageCount || p > MaxPageCount {
		return newError(CodeInvalidPageCount, "pageCount", p, "min", MinPageCount, "max", MaxPageCount)
	}
	return nil
}
