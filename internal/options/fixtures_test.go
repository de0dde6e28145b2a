package options

func ptr[T any](v T) *T { return &v }

// cardFixture is a business card product with one option per phase plus an
// additional color that only shows up for a particular paper.
func cardFixture() ProductData {
	return ProductData{
		ProductID: 1,
		ProductOptions: []ProductOption{
			{ID: 1, ProductID: 1, OptionDefinitionID: 10, Key: "size", OptionClass: ClassSize, IsRequired: true, IsVisible: true, SortOrder: 1},
			{ID: 2, ProductID: 1, OptionDefinitionID: 20, Key: "paper", OptionClass: ClassPaper, IsRequired: true, IsVisible: true, SortOrder: 2},
			{ID: 3, ProductID: 1, OptionDefinitionID: 30, Key: "coating", OptionClass: ClassOption, IsVisible: true, SortOrder: 3},
			{ID: 4, ProductID: 1, OptionDefinitionID: 40, Key: "print", OptionClass: ClassColor, IsRequired: true, IsVisible: true, SortOrder: 4},
			{ID: 5, ProductID: 1, OptionDefinitionID: 50, Key: "white", OptionClass: ClassAdditionalColor, IsVisible: true, SortOrder: 5},
		},
		OptionChoices: []OptionChoice{
			{ID: 101, OptionDefinitionID: 10, Code: "90x50", RefSizeID: ptr(int64(11)), SortOrder: 2},
			{ID: 102, OptionDefinitionID: 10, Code: "86x52", RefSizeID: ptr(int64(12)), SortOrder: 1},
			{ID: 201, OptionDefinitionID: 20, Code: "ART_250", RefPaperID: ptr(int64(1)), SortOrder: 1},
			{ID: 202, OptionDefinitionID: 20, Code: "ART_300", RefPaperID: ptr(int64(2)), IsDefault: true, SortOrder: 2},
			{ID: 301, OptionDefinitionID: 30, Code: "MATTE_250", RefPaperID: ptr(int64(1)), SortOrder: 1},
			{ID: 302, OptionDefinitionID: 30, Code: "MATTE_300", RefPaperID: ptr(int64(2)), SortOrder: 2},
			{ID: 303, OptionDefinitionID: 30, Code: "NONE", SortOrder: 3},
			{ID: 401, OptionDefinitionID: 40, Code: "DOUBLE", SortOrder: 1},
			{ID: 501, OptionDefinitionID: 50, Code: "WHITE", SortOrder: 1},
		},
		Dependencies: []OptionDependency{
			{ID: 1, ProductID: 1, ParentOptionID: 20, ChildOptionID: 30, DependencyType: DependencyChoices},
			{ID: 2, ProductID: 1, ParentOptionID: 20, ChildOptionID: 50, ParentChoiceID: ptr(int64(202)), DependencyType: DependencyVisibility},
			{ID: 3, ProductID: 1, ParentOptionID: 10, ChildOptionID: 40, DependencyType: DependencyValue},
		},
		Sizes: []SizeRef{
			{ID: 11, CutWidth: 90, CutHeight: 50},
			{ID: 12, CutWidth: 86, CutHeight: 52},
		},
	}
}
