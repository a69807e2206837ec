package cart

import (
	"github.com/shopspring/decimal"

	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
)

// Line is one cart entry: a product in a single variant with a positive
// quantity. The store never holds a line at quantity zero or below.
type Line struct {
	Key      string
	Product  catalog.Product
	Variant  Variant
	Quantity int
}

// Subtotal is the line price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds the cart lines of one session in insertion order. It is
// not safe for concurrent use; the session manager serializes access.
type Store struct {
	lines map[string]*Line
	order []string
}

func NewStore() *Store {
	return &Store{lines: make(map[string]*Line)}
}

// Add accumulates qty onto the line for the product and variant,
// creating the line at the end of the cart when it is new. A resulting
// quantity of zero or below removes the line instead of storing it.
func (s *Store) Add(p catalog.Product, v Variant, qty int) {
	key := Key(p.Code, v)
	if line, ok := s.lines[key]; ok {
		s.setQuantity(key, line.Quantity+qty)
		return
	}
	if qty <= 0 {
		return
	}
	s.lines[key] = &Line{Key: key, Product: p, Variant: v, Quantity: qty}
	s.order = append(s.order, key)
}

// SetQuantity replaces the quantity of an existing line with the coerced
// value of raw. A value of zero or below removes the line. Unknown keys
// are ignored so a stale client cannot resurrect a removed line.
func (s *Store) SetQuantity(key string, raw any) {
	if _, ok := s.lines[key]; !ok {
		return
	}
	s.setQuantity(key, CoerceQuantity(raw))
}

// AdjustQuantity shifts the quantity of an existing line by delta,
// removing the line when the result drops to zero or below. It reports
// whether the key was present.
func (s *Store) AdjustQuantity(key string, delta int) bool {
	line, ok := s.lines[key]
	if !ok {
		return false
	}
	s.setQuantity(key, line.Quantity+delta)
	return true
}

func (s *Store) setQuantity(key string, qty int) {
	if qty <= 0 {
		s.Remove(key)
		return
	}
	s.lines[key].Quantity = qty
}

// Remove deletes the line. Unknown keys are a no-op.
func (s *Store) Remove(key string) {
	if _, ok := s.lines[key]; !ok {
		return
	}
	delete(s.lines, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = make(map[string]*Line)
	s.order = nil
}

// Get returns a copy of the line for key.
func (s *Store) Get(key string) (Line, bool) {
	line, ok := s.lines[key]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Lines returns copies of all lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.lines[key])
	}
	return out
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	return len(s.order)
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.order) == 0
}

// CountItems sums the quantities across all lines.
func (s *Store) CountItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Total sums the subtotals across all lines.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, key := range s.order {
		total = total.Add(s.lines[key].Subtotal())
	}
	return total
}
