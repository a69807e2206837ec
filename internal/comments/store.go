// Package comments holds the free-text annotations of one session: a
// note per product code plus a single order-level note. Text is stored
// verbatim, including empty strings, so a buyer can blank out a comment
// they typed earlier.
package comments

type Store struct {
	perProduct map[string]string
	orderNote  string
}

func NewStore() *Store {
	return &Store{perProduct: make(map[string]string)}
}

// SetProduct records the note for a product code, replacing any
// previous value.
func (s *Store) SetProduct(code, text string) {
	s.perProduct[code] = text
}

// Product returns the note for a product code.
func (s *Store) Product(code string) (string, bool) {
	text, ok := s.perProduct[code]
	return text, ok
}

// RemoveProduct deletes the note for a product code.
func (s *Store) RemoveProduct(code string) {
	delete(s.perProduct, code)
}

// SetOrderNote records the order-level note.
func (s *Store) SetOrderNote(text string) {
	s.orderNote = text
}

// OrderNote returns the order-level note.
func (s *Store) OrderNote() string {
	return s.orderNote
}

// Clear drops every note.
func (s *Store) Clear() {
	s.perProduct = make(map[string]string)
	s.orderNote = ""
}

// IsEmpty reports whether the store holds no notes at all.
func (s *Store) IsEmpty() bool {
	return len(s.perProduct) == 0 && s.orderNote == ""
}

// Snapshot serializes the per-product notes.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.perProduct))
	for code, text := range s.perProduct {
		out[code] = text
	}
	return out
}

// Restore rebuilds a store from serialized state.
func Restore(perProduct map[string]string, orderNote string) *Store {
	store := NewStore()
	for code, text := range perProduct {
		store.perProduct[code] = text
	}
	store.orderNote = orderNote
	return store
}
