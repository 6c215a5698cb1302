// Package cart holds the session-scoped shopping cart. Carts are not
// persisted server-side; they live in memory for the session owner and
// become authoritative data only when checkout freezes them into an order.
package cart

import (
	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
)

// Line is one selected product. UnitPriceCents and Restricted are
// snapshots taken at add-time; later catalog changes do not affect them.
type Line struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Restricted     bool   `json:"restricted"`
}

// SubtotalCents returns unit price times quantity
func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart is an ordered collection of lines. Methods are not safe for
// concurrent use; Store serializes access per user.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges qty into an existing line for the same product, or appends a
// new line. Quantities below 1 count as 1.
func (c *Cart) Add(p models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity += qty
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID:      p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		UnitPriceCents: p.PriceCents,
		Quantity:       qty,
		Restricted:     p.Restricted,
	})
}

// SetQuantity updates a line's quantity, clamping values below 1 to 1.
// Decrementing never removes a line; removal is explicit via Remove.
// Returns false if no line exists for the product.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return true
		}
	}
	return false
}

// Remove deletes the line for the product. Returns false if absent.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalCents sums unit price times quantity over all lines
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.SubtotalCents()
	}
	return total
}

// HasRestricted reports whether any line is a restricted product
func (c *Cart) HasRestricted() bool {
	for _, l := range c.Lines {
		if l.Restricted {
			return true
		}
	}
	return false
}

// Checkout returns frozen copies of the lines and the total for order
// creation. The cart itself is untouched; the caller clears it only after
// the order is durably created.
func (c *Cart) Checkout() ([]Line, int64, error) {
	if c.IsEmpty() {
		return nil, 0, apperr.EmptyCart("your cart is empty")
	}
	frozen := make([]Line, len(c.Lines))
	copy(frozen, c.Lines)
	return frozen, c.TotalCents(), nil
}
