package checkout

import "pantry-backend/internal/model"

// Cart is the ephemeral, session-local line-item accumulator. It is never
// persisted; every line snapshots the product's price and stock ceiling
// as seen at add time.
type Cart struct {
	Lines []model.CartLine
}

// Add puts one unit of the product in the cart. An existing line grows by
// one only while below the product's stock ceiling; a new line is added
// only when the product has stock. Over-limit adds are silent no-ops.
func (c *Cart) Add(p model.Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			if c.Lines[i].Quantity < c.Lines[i].Stock {
				c.Lines[i].Quantity++
			}
			return
		}
	}
	if p.Stock <= 0 {
		return
	}
	c.Lines = append(c.Lines, model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Quantity:  1,
	})
}

// Remove takes one unit of the product out of the cart; the line is
// dropped entirely when it would fall below one.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
		} else {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
		return
	}
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Quantity reports how many units of the product are in the cart.
func (c *Cart) Quantity(productID string) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}
