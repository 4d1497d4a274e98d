package engine

import "sort"

// RankProfitable resolves every recipe in the catalog in one shared pass
// (shared sub-reagents are priced once for the whole batch) and returns
// those fully priced and clearing the minimum ROI, ordered by descending
// absolute profit: big paydays first, even at lower percentage returns.
//
// Recipes with missing reagent prices carry a computed partial cost but
// are excluded here; the partial figure surfaces only in breakdown views.
func (r *Resolver) RankProfitable(minProfitPct float64) []*CraftAnalysis {
	ctx := newResolveContext()
	var profitable []*CraftAnalysis

	for _, recipe := range r.catalog.Recipes {
		analysis := r.resolve(recipe, ctx)
		if analysis.Profit == nil || !analysis.Resolvable() {
			continue
		}
		if *analysis.ProfitPct < minProfitPct {
			continue
		}
		profitable = append(profitable, analysis)
	}

	sort.SliceStable(profitable, func(i, j int) bool {
		return *profitable[i].Profit > *profitable[j].Profit
	})
	return profitable
}

// GroupByProfession resolves every recipe in one shared pass and groups the
// results by profession source, recipes name-sorted within each group.
func (r *Resolver) GroupByProfession() map[string][]*CraftAnalysis {
	ctx := newResolveContext()
	groups := make(map[string][]*CraftAnalysis)

	for _, recipe := range r.catalog.Recipes {
		profession := recipe.Profession
		if profession == "" {
			profession = "Unknown"
		}
		groups[profession] = append(groups[profession], r.resolve(recipe, ctx))
	}

	for _, analyses := range groups {
		sort.Slice(analyses, func(i, j int) bool {
			return analyses[i].RecipeName < analyses[j].RecipeName
		})
	}
	return groups
}
