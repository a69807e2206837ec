package cart

import (
	"sort"

	"github.com/ferabensrl/mare-pedidos-backend/internal/catalog"
)

// StoredLine is the serialized shape of a cart line. Seq preserves the
// cart's insertion order across a JSON round trip, since object keys
// come back unordered.
type StoredLine struct {
	Product  catalog.Product `json:"producto"`
	Color    string          `json:"color"`
	Quantity int             `json:"cantidad"`
	Seq      int             `json:"seq"`
}

// Snapshot serializes the cart keyed by line key.
func (s *Store) Snapshot() map[string]StoredLine {
	out := make(map[string]StoredLine, len(s.order))
	for i, key := range s.order {
		line := s.lines[key]
		out[key] = StoredLine{
			Product:  line.Product,
			Color:    line.Variant.Label(),
			Quantity: line.Quantity,
			Seq:      i,
		}
	}
	return out
}

// Restore rebuilds a store from a snapshot, ordering lines by Seq and
// dropping any entry whose quantity is no longer positive.
func Restore(snapshot map[string]StoredLine) *Store {
	type entry struct {
		key    string
		stored StoredLine
	}
	entries := make([]entry, 0, len(snapshot))
	for key, stored := range snapshot {
		if stored.Quantity <= 0 {
			continue
		}
		entries = append(entries, entry{key: key, stored: stored})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stored.Seq != entries[j].stored.Seq {
			return entries[i].stored.Seq < entries[j].stored.Seq
		}
		return entries[i].key < entries[j].key
	})

	store := NewStore()
	for _, e := range entries {
		store.lines[e.key] = &Line{
			Key:      e.key,
			Product:  e.stored.Product,
			Variant:  ParseLabel(e.stored.Color),
			Quantity: e.stored.Quantity,
		}
		store.order = append(store.order, e.key)
	}
	return store
}
