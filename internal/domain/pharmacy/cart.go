package pharmacy

import "sync"

// Cart is the in-memory order being assembled. It lives for the session only;
// nothing is persisted until checkout.
type Cart struct {
	mu    sync.Mutex
	items []OrderItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of the medicine in the cart. Adding a medicine already
// present bumps its quantity instead of creating a second line.
func (c *Cart) Add(m Medicine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MedicineID == m.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, OrderItem{
		MedicineID:   m.ID,
		MedicineName: m.Name,
		Quantity:     1,
		Price:        m.Price,
	})
}

// UpdateQuantity adjusts a line's quantity by delta, clamped to a minimum of
// one. Reaching the floor never removes the line; only Remove does that.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(medicineID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MedicineID == medicineID {
			q := c.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.items[i].Quantity = q
			return
		}
	}
}

// Remove drops the line for the medicine entirely.
func (c *Cart) Remove(medicineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].MedicineID == medicineID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Total recomputes the cart total from the current lines on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Empty() bool {
	return c.Len() == 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
