// Package report renders the terminal tables for the analysis commands.
package report

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"gold-goblin/internal/engine"
	"gold-goblin/internal/logger"
	"gold-goblin/internal/market"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"
	red   = "\033[31m"
	green = "\033[32m"
)

func gold(v float64) string {
	return fmt.Sprintf("%.2fg", v)
}

func goldPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return gold(*v)
}

// pct colors gains green and losses red.
func pct(v float64) string {
	switch {
	case v > 0:
		return fmt.Sprintf("%s+%.1f%%%s", green, v, reset)
	case v < 0:
		return fmt.Sprintf("%s%.1f%%%s", red, v, reset)
	default:
		return "0.0%"
	}
}

func pctPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return pct(*v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// MarketSummary prints per-item averages, trend and weekday flip pattern.
func MarketSummary(store *market.Store, maxRows int) {
	logger.Section("Market Summary")

	w := newTable()
	fmt.Fprintf(w, "%sItem\tAvg 30d\tAvg 7d\tTrend\tBuy Day\tSell Day\tFlip%s\n", bold, reset)

	rows := 0
	for _, itemID := range store.ItemIDs() {
		if maxRows > 0 && rows >= maxRows {
			break
		}
		series, _ := store.Series(itemID)
		stats, ok := series.Stats()
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			stats.Name,
			gold(stats.Avg30d),
			goldPtr(stats.Avg7d),
			pct(stats.TrendPct),
			stats.BestBuyDay,
			stats.BestSellDay,
			pct(stats.FlipProfitPct),
		)
		rows++
	}
	w.Flush()
}

// Opportunities prints the buy-now and sell-now tables.
func Opportunities(buys, sells []market.Opportunity, maxRows int) {
	logger.Section("Buy Opportunities")
	opportunityTable(buys, maxRows)

	logger.Section("Sell Opportunities")
	opportunityTable(sells, maxRows)
}

func opportunityTable(opps []market.Opportunity, maxRows int) {
	if len(opps) == 0 {
		fmt.Printf("  %snone%s\n", dim, reset)
		return
	}
	if maxRows > 0 && len(opps) > maxRows {
		opps = opps[:maxRows]
	}

	w := newTable()
	fmt.Fprintf(w, "%sItem\tCurrent\t3d Avg\tDeviation%s\n", bold, reset)
	for _, o := range opps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			o.Name, gold(o.CurrentPrice), gold(o.Avg3d), pct(o.PctDiff))
	}
	w.Flush()
}

// ProfitableCrafts prints ranked craft margins, then the full reagent
// breakdown for the best recipe.
func ProfitableCrafts(crafts []*engine.CraftAnalysis, maxRows int) {
	logger.Section("Profitable Crafts")
	if len(crafts) == 0 {
		fmt.Printf("  %snone above the profit threshold%s\n", dim, reset)
		return
	}

	shown := crafts
	if maxRows > 0 && len(shown) > maxRows {
		shown = shown[:maxRows]
	}

	w := newTable()
	fmt.Fprintf(w, "%sRecipe\tProfession\tCost\tSell\tProfit\tROI%s\n", bold, reset)
	for _, c := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.RecipeName,
			c.Profession,
			gold(c.TotalCost),
			goldPtr(c.SellPrice),
			goldPtr(c.Profit),
			pctPtr(c.ProfitPct),
		)
	}
	w.Flush()

	ReagentBreakdown(crafts[0])
}

// ReagentBreakdown prints the per-reagent cost table for one recipe.
func ReagentBreakdown(c *engine.CraftAnalysis) {
	logger.Section(fmt.Sprintf("Breakdown: %s", c.RecipeName))

	w := newTable()
	fmt.Fprintf(w, "%sReagent\tQty\tUnit\tTotal\tSource%s\n", bold, reset)
	for _, r := range c.Reagents {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s%s%s\n",
			r.Name, r.Quantity, gold(r.UnitPrice), gold(r.TotalCost), dim, r.Source, reset)
	}
	w.Flush()

	for _, name := range c.MissingPrices {
		logger.Warn("Price", fmt.Sprintf("no price found for %s", name))
	}
	logger.Stats("Total cost", gold(c.TotalCost))
	if c.Profit != nil {
		logger.Stats("Profit", fmt.Sprintf("%s (%s)", gold(*c.Profit), pctPtr(c.ProfitPct)))
	}
}

// Professions prints every recipe grouped by profession, cheapest first.
func Professions(groups map[string][]*engine.CraftAnalysis) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		logger.Section(name)
		w := newTable()
		fmt.Fprintf(w, "%sRecipe\tCost\tSell\tProfit%s\n", bold, reset)
		for _, c := range groups[name] {
			cost := gold(c.TotalCost)
			if !c.Resolvable() {
				cost += " (partial)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				c.RecipeName, cost, goldPtr(c.SellPrice), goldPtr(c.Profit))
		}
		w.Flush()
	}
}
