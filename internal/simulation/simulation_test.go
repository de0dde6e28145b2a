package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionType(key string, codes ...string) OptionType {
	ot := OptionType{Key: key, Name: key}
	for i, c := range codes {
		ot.Choices = append(ot.Choices, Choice{ID: int64(i + 1), Code: c, Name: c, IsActive: true})
	}
	return ot
}

func cardInput() Input {
	return Input{
		ProductID: 1,
		OptionTypes: []OptionType{
			optionType("size", "90x50", "86x52"),
			optionType("paper", "art_250", "snow_120"),
			optionType("coating", "matte", "none"),
		},
		Constraints: []Constraint{
			{ID: 1, SourceField: "paper", SourceValue: "snow_120", TargetField: "coating", TargetValue: "matte", Action: ActionError, Message: "snow paper cannot be coated", IsActive: true},
			{ID: 2, SourceField: "size", SourceValue: "86x52", TargetField: "coating", TargetValue: "none", Action: ActionWarn, Message: "uncoated small cards scuff", IsActive: true},
			{ID: 3, SourceField: "size", SourceValue: "90x50", TargetField: "paper", TargetValue: "art_250", Action: ActionError, Message: "inactive rule", IsActive: false},
		},
		PriceConfig: PriceConfig{PricingModel: "fixed_unit", BasePrice: 12000},
	}
}

func TestCombinations(t *testing.T) {
	assert.Nil(t, Combinations(nil))

	combos := Combinations(cardInput().OptionTypes)
	require.Len(t, combos, 8)
	assert.Equal(t, map[string]string{"size": "90x50", "paper": "art_250", "coating": "matte"}, combos[0])
	assert.Equal(t, map[string]string{"size": "86x52", "paper": "snow_120", "coating": "none"}, combos[7])

	types := []OptionType{optionType("size", "a", "b"), {Key: "empty", Choices: []Choice{{Code: "x", IsActive: false}}}}
	assert.Len(t, Combinations(types), 2)
}

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), cardInput(), Options{Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 2, res.Errored)
	assert.Equal(t, 2, res.Warned)
	assert.Equal(t, 4, res.Passed)

	for _, c := range res.Cases {
		switch c.Status {
		case StatusError:
			assert.Nil(t, c.TotalPrice)
			assert.Equal(t, []string{"snow paper cannot be coated"}, c.Violations)
		default:
			require.NotNil(t, c.TotalPrice)
			assert.Equal(t, int64(12000), *c.TotalPrice)
		}
	}
	assert.Equal(t, "90x50", res.Cases[0].Selections["size"], "combination order is kept")
}

func TestRunTooLarge(t *testing.T) {
	in := Input{OptionTypes: []OptionType{
		optionType("a", codes(101)...),
		optionType("b", codes(100)...),
	}}

	res, err := Run(context.Background(), in, Options{})
	require.NoError(t, err)
	assert.True(t, res.TooLarge)
	assert.Equal(t, 10100, res.Total)
	assert.Equal(t, MaxCases, res.SampleSize)
	assert.Empty(t, res.Cases)

	var mu sync.Mutex
	var ticks []int
	res, err = Run(context.Background(), in, Options{Sample: true, Seed: 7, OnProgress: func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, MaxCases, total)
		ticks = append(ticks, done)
	}})
	require.NoError(t, err)
	assert.False(t, res.TooLarge)
	assert.Equal(t, MaxCases, res.Total)
	assert.Len(t, ticks, MaxCases/100)
	assert.Equal(t, MaxCases, ticks[len(ticks)-1])

	res, err = Run(context.Background(), in, Options{ForceRun: true})
	require.NoError(t, err)
	assert.Equal(t, 10100, res.Total)
}

func TestCombinationCount(t *testing.T) {
	assert.Equal(t, 0, CombinationCount(nil))
	assert.Equal(t, 8, CombinationCount(cardInput().OptionTypes))

	types := []OptionType{optionType("size", "a", "b"), {Key: "empty", Choices: []Choice{{Code: "x", IsActive: false}}}}
	assert.Equal(t, 2, CombinationCount(types))

	// 40 options of 10 choices overflow int and must not be built.
	wide := make([]OptionType, 40)
	for i := range wide {
		wide[i] = optionType(fmt.Sprintf("opt%d", i), codes(10)...)
	}
	assert.Equal(t, math.MaxInt, CombinationCount(wide))

	res, err := Run(context.Background(), Input{OptionTypes: wide}, Options{})
	require.NoError(t, err)
	assert.True(t, res.TooLarge)
	assert.Empty(t, res.Cases)

	res, err = Run(context.Background(), Input{OptionTypes: wide}, Options{Sample: true, Seed: 3, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, MaxCases, res.Total)
	assert.Len(t, res.Cases[0].Selections, 40)
}

func TestCombinationAtMatchesCombinations(t *testing.T) {
	types := cardInput().OptionTypes
	types = append(types, OptionType{Key: "empty", Choices: []Choice{{Code: "x"}}})
	for i, combo := range Combinations(types) {
		assert.Equal(t, combo, combinationAt(types, i))
	}
}

func TestSampleDeterministic(t *testing.T) {
	combos := Combinations([]OptionType{optionType("a", codes(50)...)})
	a := Sample(combos, 10, 42)
	b := Sample(combos, 10, 42)
	assert.Equal(t, a, b)
	assert.Len(t, a, 10)
	assert.Len(t, Sample(combos, 100, 1), 50)
}

func TestRunEvaluatorError(t *testing.T) {
	boom := errors.New("tier missing")
	_, err := Run(context.Background(), cardInput(), Options{Evaluate: func(context.Context, map[string]string) (Case, error) {
		return Case{}, boom
	}})
	assert.ErrorIs(t, err, boom)
}

func TestCheckConstraints(t *testing.T) {
	in := cardInput()
	status, msg := CheckConstraints(map[string]string{"size": "86x52", "paper": "snow_120", "coating": "none"}, in.Constraints)
	assert.Equal(t, StatusWarn, status)
	assert.Equal(t, "uncoated small cards scuff", msg)

	status, _ = CheckConstraints(map[string]string{"size": "90x50", "paper": "art_250", "coating": "none"}, in.Constraints)
	assert.Equal(t, StatusPass, status)
}

func codes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("c%03d", i)
	}
	return out
}
