package catalog

import "sort"

// Item is a tracked auction-house item.
type Item struct {
	ID   int32
	Name string
}

// VendorItem is an item purchasable from an NPC vendor at a fixed price.
// Vendor stock is unlimited, so the price never varies with time.
type VendorItem struct {
	ID        int32   `json:"-"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"vendor_price"` // gold
}

// Reagent is one input of a recipe.
type Reagent struct {
	ItemID   int32  `json:"id"`
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// Recipe produces one unit of the item with ID equal to the recipe ID.
// A reagent may itself be the output of another recipe.
type Recipe struct {
	ID         int32     `json:"id"`
	Name       string    `json:"name"`
	Profession string    `json:"source"`
	Reagents   []Reagent `json:"reagents"`
}

// Catalog holds all static game data: tracked items, vendor prices, and recipes.
// Loaded once at startup and read-only afterwards.
type Catalog struct {
	Items   map[int32]string // itemID -> display name
	Vendor  map[int32]*VendorItem
	Recipes []*Recipe

	itemOrder      []int32           // ascending ID, for deterministic iteration
	recipeByOutput map[int32]*Recipe // output itemID -> recipe
}

// New builds a catalog from already-parsed data and derives its indexes.
func New(items map[int32]string, vendor map[int32]*VendorItem, recipes []*Recipe) *Catalog {
	if items == nil {
		items = make(map[int32]string)
	}
	if vendor == nil {
		vendor = make(map[int32]*VendorItem)
	}
	c := &Catalog{Items: items, Vendor: vendor, Recipes: recipes}
	c.buildIndexes()
	return c
}

// ItemIDs returns all tracked item IDs in ascending order.
func (c *Catalog) ItemIDs() []int32 {
	return c.itemOrder
}

// ItemName returns the display name for an item ID.
func (c *Catalog) ItemName(itemID int32) (string, bool) {
	name, ok := c.Items[itemID]
	return name, ok
}

// VendorPrice returns the fixed vendor price for an item, if it is a vendor item.
func (c *Catalog) VendorPrice(itemID int32) (float64, bool) {
	v, ok := c.Vendor[itemID]
	if !ok {
		return 0, false
	}
	return v.UnitPrice, true
}

// RecipeFor returns the recipe whose output is the given item, if any.
func (c *Catalog) RecipeFor(itemID int32) (*Recipe, bool) {
	r, ok := c.recipeByOutput[itemID]
	return r, ok
}

// buildIndexes derives the lookup structures after loading.
func (c *Catalog) buildIndexes() {
	c.itemOrder = make([]int32, 0, len(c.Items))
	for id := range c.Items {
		c.itemOrder = append(c.itemOrder, id)
	}
	sort.Slice(c.itemOrder, func(i, j int) bool { return c.itemOrder[i] < c.itemOrder[j] })

	c.recipeByOutput = make(map[int32]*Recipe, len(c.Recipes))
	for _, r := range c.Recipes {
		c.recipeByOutput[r.ID] = r
	}
}
