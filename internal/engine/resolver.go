package engine

import (
	"gold-goblin/internal/catalog"
	"gold-goblin/internal/market"
)

// Resolver prices recipes against the vendor table, the recipe graph, and
// the market series store. It holds no mutable state of its own; every
// resolution pass carries its own context, so concurrent callers never
// share caches and a new pass always sees fresh market data.
type Resolver struct {
	catalog *catalog.Catalog
	store   *market.Store
}

// NewResolver creates a resolver over the given catalog and series store.
func NewResolver(cat *catalog.Catalog, store *market.Store) *Resolver {
	return &Resolver{catalog: cat, store: store}
}

// cachedPrice is a resolved reagent price memoized for one pass.
type cachedPrice struct {
	unit   float64
	unit7d float64
	source PriceSource
}

// resolveContext scopes memoization and cycle detection to a single
// resolution pass. The cache holds only successfully resolved prices;
// inProgress tracks items on the active call path so a recipe that
// (transitively) consumes its own output blocks instead of recursing
// forever. A depth counter would reject legitimate deep chains; the
// in-progress set only ever trips on genuine cycles.
type resolveContext struct {
	cache      map[int32]cachedPrice
	inProgress map[int32]bool
}

func newResolveContext() *resolveContext {
	return &resolveContext{
		cache:      make(map[int32]cachedPrice),
		inProgress: make(map[int32]bool),
	}
}

// Resolve computes the cost and profit breakdown for one recipe with a
// fresh pass context.
func (r *Resolver) Resolve(recipe *catalog.Recipe) *CraftAnalysis {
	return r.resolve(recipe, newResolveContext())
}

func (r *Resolver) resolve(recipe *catalog.Recipe, ctx *resolveContext) *CraftAnalysis {
	out := &CraftAnalysis{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Profession: recipe.Profession,
	}

	for _, rg := range recipe.Reagents {
		unit, unit7d, source, ok := r.bestReagentPrice(rg.ItemID, ctx)
		if !ok {
			out.MissingPrices = append(out.MissingPrices, rg.Name)
			continue
		}
		qty := float64(rg.Quantity)
		cost := ReagentCost{
			ItemID:      rg.ItemID,
			Name:        rg.Name,
			Quantity:    rg.Quantity,
			UnitPrice:   unit,
			UnitPrice7d: unit7d,
			TotalCost:   unit * qty,
			TotalCost7d: unit7d * qty,
			Source:      source,
		}
		out.TotalCost += cost.TotalCost
		out.TotalCost7d += cost.TotalCost7d
		out.Reagents = append(out.Reagents, cost)
	}

	// Profit needs the crafted item's own market price. Without a series
	// the cost breakdown still stands, but profit stays undefined.
	sell, sell7d, ok := r.marketPrice(recipe.ID)
	if !ok {
		return out
	}
	out.SellPrice = &sell
	out.SellPrice7d = &sell7d

	profit := sell - out.TotalCost
	out.Profit = &profit
	out.ProfitPct = ptr(safePct(profit, out.TotalCost))

	profit7d := sell7d - out.TotalCost7d
	out.Profit7d = &profit7d
	out.Profit7dPct = ptr(safePct(profit7d, out.TotalCost7d))

	return out
}

// bestReagentPrice finds the cheapest unit price for an item. Vendor prices
// win unconditionally: vendor stock is unlimited and frictionless, so there
// is never a reason to craft or bid instead. Otherwise the cheaper of the
// craft cost and the market price wins, compared on the current-price basis,
// with the craft path keeping exact ties.
func (r *Resolver) bestReagentPrice(itemID int32, ctx *resolveContext) (unit, unit7d float64, source PriceSource, ok bool) {
	if c, hit := ctx.cache[itemID]; hit {
		return c.unit, c.unit7d, c.source, true
	}

	if price, isVendor := r.catalog.VendorPrice(itemID); isVendor {
		ctx.cache[itemID] = cachedPrice{unit: price, unit7d: price, source: SourceVendor}
		return price, price, SourceVendor, true
	}

	craft, craft7d, craftOK := r.craftPrice(itemID, ctx)
	mkt, mkt7d, mktOK := r.marketPrice(itemID)

	switch {
	case craftOK && mktOK:
		if mkt < craft {
			unit, unit7d, source = mkt, mkt7d, SourceAuction
		} else {
			unit, unit7d, source = craft, craft7d, SourceCrafted
		}
	case craftOK:
		unit, unit7d, source = craft, craft7d, SourceCrafted
	case mktOK:
		unit, unit7d, source = mkt, mkt7d, SourceAuction
	default:
		// Unresolvable results are deliberately not cached: the state
		// machine keeps "no price" re-checkable on later paths.
		return 0, 0, "", false
	}

	ctx.cache[itemID] = cachedPrice{unit: unit, unit7d: unit7d, source: source}
	return unit, unit7d, source, true
}

// craftPrice resolves the cost of producing one unit of an item via its
// recipe. A reagent already being resolved on the current call path means
// the recipe graph loops back on itself; that branch reports no craft
// price and the caller falls back to the market.
func (r *Resolver) craftPrice(itemID int32, ctx *resolveContext) (float64, float64, bool) {
	recipe, ok := r.catalog.RecipeFor(itemID)
	if !ok {
		return 0, 0, false
	}
	if ctx.inProgress[itemID] {
		return 0, 0, false
	}

	ctx.inProgress[itemID] = true
	analysis := r.resolve(recipe, ctx)
	delete(ctx.inProgress, itemID)

	// A partially priced recipe cannot be crafted for its partial cost;
	// "can't price it" must never collapse into "cheap".
	if !analysis.Resolvable() {
		return 0, 0, false
	}
	return analysis.TotalCost, analysis.TotalCost7d, true
}

// marketPrice returns an item's current and 7-day average price from the
// series store. The 7-day window is anchored at the series' own latest
// point; for a non-empty series it can't be empty, but fall back to the
// current price rather than dropping the quote.
func (r *Resolver) marketPrice(itemID int32) (float64, float64, bool) {
	s, ok := r.store.Series(itemID)
	if !ok {
		return 0, 0, false
	}
	current, ok := s.CurrentPrice()
	if !ok {
		return 0, 0, false
	}
	avg7, ok := s.TrailingAvg(7)
	if !ok {
		avg7 = current
	}
	return current, avg7, true
}

// safePct computes part/whole*100, defined as 0 when the whole is not
// positive (a free recipe has no meaningful ROI).
func safePct(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func ptr(v float64) *float64 {
	return &v
}
