package engine

// PriceSource tags where a resolved reagent price came from.
type PriceSource string

const (
	SourceVendor  PriceSource = "vendor"  // fixed NPC price, always preferred
	SourceCrafted PriceSource = "crafted" // recursively resolved craft cost
	SourceAuction PriceSource = "auction" // market price from the series store
)

// ReagentCost is the resolved per-unit and total cost of one recipe input.
type ReagentCost struct {
	ItemID      int32       `json:"item_id"`
	Name        string      `json:"name"`
	Quantity    int32       `json:"quantity"`
	UnitPrice   float64     `json:"unit_price"`
	UnitPrice7d float64     `json:"unit_price_7d"`
	TotalCost   float64     `json:"total_cost"`
	TotalCost7d float64     `json:"total_cost_7d"`
	Source      PriceSource `json:"source"`
}

// CraftAnalysis is the full cost and profit breakdown for one recipe.
//
// TotalCost sums only the resolvable reagents; when MissingPrices is
// non-empty it is a lower bound, and ranking must exclude it. Profit fields
// are nil when the crafted item has no market data. ProfitPct is an explicit
// 0 (not nil) for a zero-cost recipe, so the ROI division never faults.
type CraftAnalysis struct {
	RecipeID    int32  `json:"recipe_id"`
	RecipeName  string `json:"recipe_name"`
	Profession  string `json:"profession"`
	TotalCost   float64 `json:"total_cost"`
	TotalCost7d float64 `json:"total_cost_7d"`

	SellPrice   *float64 `json:"sell_price"`
	SellPrice7d *float64 `json:"sell_price_7d"`

	Profit      *float64 `json:"profit"`
	ProfitPct   *float64 `json:"profit_pct"`
	Profit7d    *float64 `json:"profit_7d"`
	Profit7dPct *float64 `json:"profit_7d_pct"`

	Reagents      []ReagentCost `json:"reagents"`
	MissingPrices []string      `json:"missing_prices"`
}

// Resolvable reports whether every reagent price was found.
func (a *CraftAnalysis) Resolvable() bool {
	return len(a.MissingPrices) == 0
}
