package pricing

// SheetStandard names a press sheet format. The empty value matches any.
type SheetStandard string

const (
	SheetA3 SheetStandard = "A3"
	SheetT3 SheetStandard = "T3"
)

// PriceBasis decides whether a post-process is charged per sheet or per unit.
type PriceBasis string

const (
	PerSheet PriceBasis = "per_sheet"
	PerUnit  PriceBasis = "per_unit"
)

// LossScope is the level a loss configuration applies to.
type LossScope string

const (
	LossScopeProduct  LossScope = "product"
	LossScopeCategory LossScope = "category"
	LossScopeGlobal   LossScope = "global"
)

// PriceTier is one quantity band of a unit price table.
type PriceTier struct {
	OptionCode    string        `json:"optionCode"`
	MinQty        int           `json:"minQty"`
	MaxQty        int           `json:"maxQty"`
	UnitPrice     float64       `json:"unitPrice"`
	SheetStandard SheetStandard `json:"sheetStandard,omitempty"`
}

// ImpositionRule says how many cut pieces fit on one press sheet.
type ImpositionRule struct {
	CutWidth        float64       `json:"cutWidth"`
	CutHeight       float64       `json:"cutHeight"`
	SheetStandard   SheetStandard `json:"sheetStandard"`
	ImpositionCount int           `json:"impositionCount"`
}

// LossQuantityConfig sets the spoilage allowance for a scope. ScopeID is nil
// for the global scope.
type LossQuantityConfig struct {
	ScopeType  LossScope `json:"scopeType"`
	ScopeID    *int64    `json:"scopeId,omitempty"`
	LossRate   float64   `json:"lossRate"`
	MinLossQty int       `json:"minLossQty"`
}

// LossConfig is the effective loss rate and floor.
type LossConfig struct {
	LossRate   float64 `json:"lossRate"`
	MinLossQty int     `json:"minLossQty"`
}

// Paper is a stock with its per-4-cut sheet prices.
type Paper struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Weight         *float64 `json:"weight,omitempty"`
	CostPer4Cut    float64  `json:"costPer4Cut"`
	SellingPer4Cut float64  `json:"sellingPer4Cut"`
}

// PrintMode references the tier table of a print configuration.
type PrintMode struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	PriceCode string `json:"priceCode"`
	Sides     string `json:"sides,omitempty"`
	ColorType string `json:"colorType,omitempty"`
}

// PostProcess is a finishing step such as round cutting or lamination.
type PostProcess struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	PriceCode     string        `json:"priceCode"`
	PriceBasis    PriceBasis    `json:"priceBasis"`
	SheetStandard SheetStandard `json:"sheetStandard,omitempty"`
}

// Binding is a binding method priced per finished unit.
type Binding struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	PriceCode string `json:"priceCode"`
	MinPages  int    `json:"minPages"`
	MaxPages  int    `json:"maxPages"`
	PageStep  int    `json:"pageStep"`
}

// FixedPriceRecord is a catalog price. Nil ids match any value.
type FixedPriceRecord struct {
	ProductID    int64   `json:"productId"`
	SizeID       *int64  `json:"sizeId,omitempty"`
	PaperID      *int64  `json:"paperId,omitempty"`
	PrintModeID  *int64  `json:"printModeId,omitempty"`
	SellingPrice float64 `json:"sellingPrice"`
	CostPrice    float64 `json:"costPrice"`
	BaseQty      int     `json:"baseQty"`
}

// PackagePriceRecord prices a whole quantity band of a packaged product.
type PackagePriceRecord struct {
	ProductID    int64   `json:"productId"`
	SizeID       int64   `json:"sizeId"`
	PrintModeID  int64   `json:"printModeId"`
	PageCount    int     `json:"pageCount"`
	MinQty       int     `json:"minQty"`
	MaxQty       int     `json:"maxQty"`
	SellingPrice float64 `json:"sellingPrice"`
}

// FoilPriceRecord prices a foil stamp of a given type and area.
type FoilPriceRecord struct {
	FoilType     string  `json:"foilType"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	SellingPrice float64 `json:"sellingPrice"`
}

// SizeSelection is the chosen finished size.
type SizeSelection struct {
	SizeID          int64    `json:"sizeId"`
	CutWidth        float64  `json:"cutWidth"`
	CutHeight       float64  `json:"cutHeight"`
	ImpositionCount *int     `json:"impositionCount,omitempty"`
	IsCustom        bool     `json:"isCustom"`
	CustomWidth     *float64 `json:"customWidth,omitempty"`
	CustomHeight    *float64 `json:"customHeight,omitempty"`
}

// SelectedOption is a chosen option with the reference ids pricing reads.
type SelectedOption struct {
	OptionKey        string   `json:"optionKey"`
	ChoiceCode       string   `json:"choiceCode"`
	ChoiceID         *int64   `json:"choiceId,omitempty"`
	RefPaperID       *int64   `json:"refPaperId,omitempty"`
	RefPrintModeID   *int64   `json:"refPrintModeId,omitempty"`
	RefPostProcessID *int64   `json:"refPostProcessId,omitempty"`
	UnitPrice        *float64 `json:"unitPrice,omitempty"`
}

// LookupData holds every reference table the pricing models read.
type LookupData struct {
	PriceTiers      []PriceTier          `json:"priceTiers"`
	FixedPrices     []FixedPriceRecord   `json:"fixedPrices"`
	PackagePrices   []PackagePriceRecord `json:"packagePrices"`
	FoilPrices      []FoilPriceRecord    `json:"foilPrices"`
	ImpositionRules []ImpositionRule     `json:"impositionRules"`
	LossConfigs     []LossQuantityConfig `json:"lossConfigs"`
	Papers          []Paper              `json:"papers"`
	PrintModes      []PrintMode          `json:"printModes"`
	PostProcesses   []PostProcess        `json:"postProcesses"`
	Bindings        []Binding            `json:"bindings"`
}
