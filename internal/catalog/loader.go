package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gold-goblin/internal/logger"
)

// Load reads items.json, vendor_items.json, and recipes.json from dataDir.
// Catalog files are required; a broken catalog is a config defect, not a
// recoverable runtime condition.
func Load(dataDir string) (*Catalog, error) {
	c := &Catalog{
		Items:  make(map[int32]string),
		Vendor: make(map[int32]*VendorItem),
	}

	if err := c.loadItems(filepath.Join(dataDir, "items.json")); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if err := c.loadVendorItems(filepath.Join(dataDir, "vendor_items.json")); err != nil {
		return nil, fmt.Errorf("load vendor items: %w", err)
	}
	if err := c.loadRecipes(filepath.Join(dataDir, "recipes.json")); err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	c.buildIndexes()

	logger.Info("Catalog", fmt.Sprintf("Loaded %d items, %d vendor items, %d recipes",
		len(c.Items), len(c.Vendor), len(c.Recipes)))
	return c, nil
}

func (c *Catalog) loadItems(path string) error {
	var raw struct {
		Items map[string]string `json:"items"`
	}
	if err := readJSON(path, &raw); err != nil {
		return err
	}
	for idStr, name := range raw.Items {
		id, err := parseItemID(idStr)
		if err != nil {
			return err
		}
		c.Items[id] = name
	}
	return nil
}

func (c *Catalog) loadVendorItems(path string) error {
	var raw struct {
		VendorItems map[string]*VendorItem `json:"vendor_items"`
	}
	if err := readJSON(path, &raw); err != nil {
		if os.IsNotExist(err) {
			// No vendor file means no vendor items, not a broken catalog.
			logger.Warn("Catalog", "No vendor_items.json found")
			return nil
		}
		return err
	}
	for idStr, v := range raw.VendorItems {
		id, err := parseItemID(idStr)
		if err != nil {
			return err
		}
		if v.UnitPrice <= 0 {
			return fmt.Errorf("vendor item %d (%s): price must be positive, got %v", id, v.Name, v.UnitPrice)
		}
		v.ID = id
		c.Vendor[id] = v
	}
	return nil
}

func (c *Catalog) loadRecipes(path string) error {
	var raw struct {
		Recipes []*Recipe `json:"recipes"`
	}
	if err := readJSON(path, &raw); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Catalog", "No recipes.json found")
			return nil
		}
		return err
	}
	seen := make(map[int32]bool, len(raw.Recipes))
	for _, r := range raw.Recipes {
		if seen[r.ID] {
			return fmt.Errorf("duplicate recipe id %d (%s)", r.ID, r.Name)
		}
		seen[r.ID] = true
		for _, rg := range r.Reagents {
			if rg.Quantity <= 0 {
				return fmt.Errorf("recipe %d (%s): reagent %s quantity must be positive", r.ID, r.Name, rg.Name)
			}
		}
	}
	c.Recipes = raw.Recipes
	return nil
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func parseItemID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad item id %q: %w", s, err)
	}
	return int32(id), nil
}
