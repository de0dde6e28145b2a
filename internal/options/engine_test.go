package options

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	data := cardFixture()
	res := Resolve(ContextFor(data, Selections{}))

	assert.Equal(t, []string{"size", "paper", "coating", "print"}, res.Order)
	assert.Equal(t, "86x52", res.DefaultSelections["size"], "first by sortOrder")
	assert.Equal(t, "ART_300", res.DefaultSelections["paper"], "isDefault wins")
	assert.Empty(t, res.ValidationErrors)

	// Defaults do not count as parent selections.
	assert.Equal(t, ReasonParentNotSelected, res.DisabledOptions["white"].Type)
	assert.Empty(t, res.AvailableOptions["coating"].Choices)
	assert.Nil(t, res.AvailableOptions["coating"].Selected)

	paper := res.AvailableOptions["paper"]
	require.NotNil(t, paper.Selected)
	assert.Equal(t, int64(202), *paper.Selected.ChoiceID)
	assert.Equal(t, int64(2), *paper.Selected.RefPaperID)
	assert.True(t, paper.IsRequired)

	size := res.AvailableOptions["size"]
	require.Len(t, size.Choices, 2)
	assert.Equal(t, "86x52", size.Choices[0].Code)
	assert.Nil(t, size.Selected.RefPaperID)
	require.NotNil(t, size.Selected.CutWidth)
	require.NotNil(t, size.Selected.CutHeight)
	assert.Equal(t, 86.0, *size.Selected.CutWidth)
	assert.Equal(t, 52.0, *size.Selected.CutHeight)
}

func TestResolveKeepsUserSelection(t *testing.T) {
	data := cardFixture()
	sel := Selections{"paper": {OptionKey: "paper", ChoiceCode: "ART_250", ChoiceID: ptr(int64(201)), RefPaperID: ptr(int64(1))}}
	res := Resolve(ContextFor(data, sel))

	assert.Equal(t, "ART_250", res.AvailableOptions["paper"].Selected.ChoiceCode)
	_, defaulted := res.DefaultSelections["paper"]
	assert.False(t, defaulted)

	coating := res.AvailableOptions["coating"].Choices
	codes := make([]string, 0, len(coating))
	for _, c := range coating {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"MATTE_250", "NONE"}, codes)

	assert.Equal(t, ReasonParentChoiceMismatch, res.DisabledOptions["white"].Type)
	assert.Equal(t, int64(202), *res.DisabledOptions["white"].Expected)
	assert.NotContains(t, res.Order, "white")
}

func TestEvaluateDependencies(t *testing.T) {
	data := cardFixture()
	white := data.ProductOptions[4]

	t.Run("parent not selected", func(t *testing.T) {
		res := EvaluateDependencies(white, ContextFor(data, Selections{}))
		assert.False(t, res.Visible)
		assert.Equal(t, ReasonParentNotSelected, res.Reason.Type)
		assert.Equal(t, int64(20), res.Reason.ParentOptionID)
	})

	t.Run("parent choice matches", func(t *testing.T) {
		sel := Selections{"paper": {OptionKey: "paper", ChoiceCode: "ART_300", ChoiceID: ptr(int64(202))}}
		res := EvaluateDependencies(white, ContextFor(data, sel))
		assert.True(t, res.Visible)
		assert.Nil(t, res.Reason)
	})

	t.Run("value dependency has no effect", func(t *testing.T) {
		res := EvaluateDependencies(data.ProductOptions[3], ContextFor(data, Selections{}))
		assert.True(t, res.Visible)
		assert.False(t, res.Filtered)
	})

	t.Run("other product dependency ignored", func(t *testing.T) {
		ctx := ContextFor(data, Selections{})
		ctx.ProductID = 2
		assert.True(t, EvaluateDependencies(white, ctx).Visible)
	})
}

func TestFilteredChoicesByDependency(t *testing.T) {
	data := cardFixture()
	ctx := ContextFor(data, Selections{})
	dep := data.Dependencies[0]

	assert.Empty(t, FilteredChoicesByDependency(dep, nil, ctx))

	art300 := &SelectedOption{OptionKey: "paper", ChoiceCode: "ART_300", RefPaperID: ptr(int64(2))}
	assert.Equal(t, []string{"MATTE_300", "NONE"}, FilteredChoicesByDependency(dep, art300, ctx))

	noRef := &SelectedOption{OptionKey: "paper", ChoiceCode: "CUSTOM"}
	assert.Equal(t, []string{"MATTE_250", "MATTE_300", "NONE"}, FilteredChoicesByDependency(dep, noRef, ctx))
}

func TestOptionKey(t *testing.T) {
	data := cardFixture()
	key, ok := OptionKey(30, data.ProductOptions)
	assert.True(t, ok)
	assert.Equal(t, "coating", key)
	_, ok = OptionKey(99, data.ProductOptions)
	assert.False(t, ok)
}

func TestResolveRequiredWithoutChoices(t *testing.T) {
	data := cardFixture()
	data.OptionChoices = data.OptionChoices[2:]
	res := Resolve(ContextFor(data, Selections{}))
	assert.Empty(t, res.AvailableOptions["size"].Choices)
	assert.Nil(t, res.AvailableOptions["size"].Selected)
	assert.Empty(t, res.ValidationErrors)
}

func TestResolveDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("same input yields identical output", prop.ForAll(
		func(paper string, withSize bool) bool {
			data := cardFixture()
			sel := Selections{"paper": {OptionKey: "paper", ChoiceCode: paper}}
			if withSize {
				sel["size"] = SelectedOption{OptionKey: "size", ChoiceCode: "90x50"}
			}
			before, _ := json.Marshal(sel)
			a, _ := json.Marshal(Resolve(ContextFor(data, sel)))
			b, _ := json.Marshal(Resolve(ContextFor(data, sel)))
			after, _ := json.Marshal(sel)
			return string(a) == string(b) && string(before) == string(after)
		},
		gen.OneConstOf("ART_250", "ART_300", "UNKNOWN"),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
