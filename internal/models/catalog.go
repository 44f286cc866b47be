package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrUnknownItem     = errors.New("unknown catalog item")
	ErrInvalidStyle    = errors.New("style not offered for this item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CatalogItem is one sellable product with its base price (rupees) and
// the styles it can be ordered in.
type CatalogItem struct {
	Name      string   `json:"name"`
	BasePrice int64    `json:"base_price"`
	Styles    []string `json:"styles"`
}

// Catalog is the static product configuration loaded at startup. Style
// surcharges are additive fees on top of an item's base price; styles
// carrying a surcharge also require checkout instructions.
type Catalog struct {
	Items      []CatalogItem    `json:"items"`
	Surcharges map[string]int64 `json:"surcharges"`
}

// DefaultCatalog returns the built-in Tumble Cup product line.
func DefaultCatalog() *Catalog {
	styles := []string{"Style 1", "Style 2", "Style 3", "Style 4", "Custom", "Hand Painted"}
	return &Catalog{
		Items: []CatalogItem{
			{Name: "Classic Tumbler", BasePrice: 3999, Styles: styles},
			{Name: "Can Glass", BasePrice: 1999, Styles: styles},
			{Name: "Coffee Cup", BasePrice: 2399, Styles: styles},
		},
		Surcharges: map[string]int64{
			"Custom":       500,
			"Hand Painted": 1000,
		},
	}
}

// LoadCatalog reads a catalog from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if c.Surcharges == nil {
		c.Surcharges = map[string]int64{}
	}
	return &c, nil
}

func (c *Catalog) Item(name string) (*CatalogItem, bool) {
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i], true
		}
	}
	return nil, false
}

func (i *CatalogItem) HasStyle(style string) bool {
	for _, s := range i.Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Surcharge returns the additive fee for a style, 0 for plain styles.
func (c *Catalog) Surcharge(style string) int64 {
	return c.Surcharges[style]
}

// RequiresInstructions reports whether a style needs free-text
// instructions at checkout (the surcharge styles: Custom, Hand Painted).
func (c *Catalog) RequiresInstructions(style string) bool {
	_, ok := c.Surcharges[style]
	return ok
}

// UnitPrice resolves an item's effective per-unit price for a style.
func (c *Catalog) UnitPrice(itemName, style string) (int64, error) {
	item, ok := c.Item(itemName)
	if !ok {
		return 0, ErrUnknownItem
	}
	if !item.HasStyle(style) {
		return 0, ErrInvalidStyle
	}
	return item.BasePrice + c.Surcharge(style), nil
}
