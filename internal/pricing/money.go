package pricing

import "github.com/shopspring/decimal"

// VATRate is the value-added tax applied on top of every total.
var VATRate = decimal.RequireFromString("0.1")

var vatMultiplier = decimal.NewFromInt(1).Add(VATRate)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decF(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decInt(v int) decimal.Decimal { return decimal.NewFromInt(int64(v)) }

// ceilInt rounds customer-charged amounts up.
func ceilInt(d decimal.Decimal) int64 { return d.Ceil().IntPart() }

// floorInt rounds discounts and unit prices down.
func floorInt(d decimal.Decimal) int64 { return d.Floor().IntPart() }

// Floor rounds v down in exact decimal arithmetic.
func Floor(v decimal.Decimal) int64 { return floorInt(v) }

// Ceil rounds v up in exact decimal arithmetic.
func Ceil(v decimal.Decimal) int64 { return ceilInt(v) }

// ceilDiv is the integer ceiling of a/b for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func sumUnitPrices(opts []SelectedOption) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range opts {
		if o.UnitPrice != nil {
			sum = sum.Add(decF(*o.UnitPrice))
		}
	}
	return sum
}
