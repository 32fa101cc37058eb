// Package cart maintains the in-memory shopping cart: an ordered list of
// line items keyed by product name, with totals derived from the items on
// every mutation.
package cart

import (
	"sync"

	"github.com/lumenhome/lumen/internal/observe"
)

// LineItem is one distinct product name with an aggregated quantity.
// The unit price is fixed on first add; repeat adds only bump the quantity.
type LineItem struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

// Snapshot is a read-only composite view of the cart.
type Snapshot struct {
	Items      []LineItem
	TotalPrice float64
	ItemCount  int
}

// Cart owns the line items exclusively; callers mutate it only through its
// operations. Every mutation recomputes the totals and publishes
// {items, totalPrice} through the embedded state container.
type Cart struct {
	observe.Container

	mu    sync.Mutex
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the named product. If an item with the same name
// already exists its quantity is incremented by 1 and its price is left
// unchanged (first-seen price wins); otherwise a new line item is appended
// with quantity 1.
//
// The name must be non-empty; an empty name is rejected and reported via the
// false return, not an error. priceText is parsed with ParsePrice: malformed
// input is treated as a price of 0 rather than failing the add.
func (c *Cart) AddItem(name, priceText string) bool {
	if name == "" {
		return false
	}

	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].Name == name {
			c.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, LineItem{
			Name:      name,
			UnitPrice: ParsePrice(priceText),
			Quantity:  1,
		})
	}
	c.mu.Unlock()

	c.publish()
	return true
}

// RemoveItem removes the line item whose name matches exactly
// (case-sensitive). Removing an absent name is a no-op, not an error.
func (c *Cart) RemoveItem(name string) {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Name == name {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.publish()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.publish()
}

// ItemCount returns the sum of quantities over all line items, 0 when empty.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for i := range c.items {
		count += c.items[i].Quantity
	}
	return count
}

// TotalPrice returns the sum of unit price times quantity over all items.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

// Snapshot returns a read-only composite view. The items slice is a copy;
// mutating it does not affect the cart.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	count := 0
	for i := range items {
		count += items[i].Quantity
	}
	return Snapshot{
		Items:      items,
		TotalPrice: totalOf(items),
		ItemCount:  count,
	}
}

// publish recomputes the derived totals from the current items and pushes
// the new state to observers. Totals are never cached between mutations.
func (c *Cart) publish() {
	c.mu.Lock()
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	c.SetState(map[string]any{
		"items":      items,
		"totalPrice": totalOf(items),
	})
}

func totalOf(items []LineItem) float64 {
	total := 0.0
	for i := range items {
		total += items[i].UnitPrice * float64(items[i].Quantity)
	}
	return total
}
