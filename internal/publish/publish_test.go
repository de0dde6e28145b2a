package publish

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func completeInput() Input {
	return Input{
		HasDefaultRecipe:  true,
		OptionTypeCount:   2,
		MinChoiceCount:    3,
		HasRequiredOption: true,
		HasPricingConfig:  true,
		IsPricingActive:   true,
		ConstraintCount:   3,
		EdicusCode:        strPtr("EDC001"),
	}
}

func itemOf(t *testing.T, r Result, name Item) ItemResult {
	t.Helper()
	for _, it := range r.Items {
		if it.Item == name {
			return it
		}
	}
	t.Fatalf("item %s missing", name)
	return ItemResult{}
}

func TestCheckCompleteness_AllComplete(t *testing.T) {
	r := CheckCompleteness(completeInput())
	if !r.Publishable || r.CompletedCount != 4 || r.TotalCount != 4 {
		t.Fatalf("result = %+v", r)
	}
	if got := itemOf(t, r, ItemOptions).Message; !strings.Contains(got, "2") {
		t.Fatalf("options message = %q", got)
	}
}

func TestCheckCompleteness_Options(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Input)
		message string
	}{
		{"no recipe", func(in *Input) { in.HasDefaultRecipe = false }, "No default recipe configured"},
		{"no option types", func(in *Input) { in.OptionTypeCount = 0 }, "Recipe must have at least 1 option type"},
		{"one choice", func(in *Input) { in.MinChoiceCount = 1 }, "Option types must have at least 2 choices"},
		{"nothing required", func(in *Input) { in.HasRequiredOption = false }, "At least 1 option must be marked as required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := completeInput()
			tc.mutate(&in)
			r := CheckCompleteness(in)
			item := itemOf(t, r, ItemOptions)
			if item.Completed || r.Publishable {
				t.Fatalf("expected failure, got %+v", r)
			}
			if item.Message != tc.message {
				t.Fatalf("message = %q, want %q", item.Message, tc.message)
			}
		})
	}

	in := completeInput()
	in.OptionTypeCount, in.MinChoiceCount = 1, 2
	if !itemOf(t, CheckCompleteness(in), ItemOptions).Completed {
		t.Fatal("1 option type with 2 choices should pass")
	}
}

func TestCheckCompleteness_Pricing(t *testing.T) {
	in := completeInput()
	in.HasPricingConfig, in.IsPricingActive = false, false
	if got := itemOf(t, CheckCompleteness(in), ItemPricing); got.Completed || !strings.Contains(got.Message, "No price") {
		t.Fatalf("no config = %+v", got)
	}
	in.HasPricingConfig = true
	if got := itemOf(t, CheckCompleteness(in), ItemPricing); got.Completed || !strings.Contains(got.Message, "inactive") {
		t.Fatalf("inactive = %+v", got)
	}
}

func TestCheckCompleteness_Constraints(t *testing.T) {
	in := completeInput()
	in.ConstraintCount = 0
	r := CheckCompleteness(in)
	item := itemOf(t, r, ItemConstraints)
	if !item.Completed || item.Message != "No constraints defined (review recommended)" {
		t.Fatalf("zero constraints = %+v", item)
	}
	if !r.Publishable {
		t.Fatal("zero constraints must not block publishing")
	}
	in.ConstraintCount = 5
	if got := itemOf(t, CheckCompleteness(in), ItemConstraints).Message; got != "5 constraint(s) defined" {
		t.Fatalf("message = %q", got)
	}
}

func TestCheckCompleteness_MESMapping(t *testing.T) {
	in := completeInput()
	in.EdicusCode = nil
	if itemOf(t, CheckCompleteness(in), ItemMESMapping).Completed {
		t.Fatal("missing codes should fail")
	}
	in.MESItemCode = strPtr("MES-9")
	if !itemOf(t, CheckCompleteness(in), ItemMESMapping).Completed {
		t.Fatal("MES item code alone should pass")
	}
}

func TestValidatePublishReadiness(t *testing.T) {
	if _, err := ValidatePublishReadiness(completeInput()); err != nil {
		t.Fatalf("complete product: %v", err)
	}

	in := completeInput()
	in.HasPricingConfig, in.IsPricingActive = false, false
	in.EdicusCode = nil
	_, err := ValidatePublishReadiness(in)

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if len(pe.MissingItems) != 2 || pe.MissingItems[0] != ItemPricing || pe.MissingItems[1] != ItemMESMapping {
		t.Fatalf("missing = %v", pe.MissingItems)
	}
	if !strings.Contains(err.Error(), "pricing") || !strings.Contains(err.Error(), "mesMapping") {
		t.Fatalf("message = %q", err.Error())
	}
	if pe.Completeness.Publishable || len(pe.Completeness.Items) != 4 {
		t.Fatalf("snapshot = %+v", pe.Completeness)
	}
}
