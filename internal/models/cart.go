package models

// CartLine is one (item, style) combination in a cart. UnitPrice is locked
// in when the line is first added and is not recomputed on merge.
type CartLine struct {
	ItemName  string `json:"item_name"`
	Style     string `json:"style"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (l CartLine) Total() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Cart holds one checkout session's lines. It is a plain value owned by
// the session store; nothing mutates it concurrently.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) line(itemName, style string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ItemName == itemName && c.Lines[i].Style == style {
			return &c.Lines[i]
		}
	}
	return nil
}

// Add merges quantity into an existing (item, style) line or appends a new
// one priced at unitPrice.
func (c *Cart) Add(itemName, style string, quantity int, unitPrice int64) {
	if l := c.line(itemName, style); l != nil {
		l.Quantity += quantity
		return
	}
	c.Lines = append(c.Lines, CartLine{
		ItemName:  itemName,
		Style:     style,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// Remove drops the (item, style) line. Removing an absent line is a no-op.
func (c *Cart) Remove(itemName, style string) {
	for i := range c.Lines {
		if c.Lines[i].ItemName == itemName && c.Lines[i].Style == style {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is the sum of quantity x unit price over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].Total()
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for i := range c.Lines {
		n += c.Lines[i].Quantity
	}
	return n
}

// RequiresInstructions reports whether any line's style needs checkout
// instructions under the given catalog.
func (c *Cart) RequiresInstructions(catalog *Catalog) bool {
	for i := range c.Lines {
		if catalog.RequiresInstructions(c.Lines[i].Style) {
			return true
		}
	}
	return false
}
