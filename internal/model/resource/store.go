package resource

// Store exposes resource lookup to handlers and the dialogue engine.
type Store interface {
	Lookup(category string) []Resource
	Categories() []string
}

// MemoryStore implements Store with a static in-memory catalog loaded once
// at process start.
type MemoryStore struct {
	items map[string][]Resource
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied catalog.
func NewMemoryStore(items map[string][]Resource) *MemoryStore {
	catalog := make(map[string][]Resource, len(items))
	for category, list := range items {
		catalog[category] = append([]Resource(nil), list...)
	}
	return &MemoryStore{items: catalog}
}

// Lookup returns the ordered resource list for a category, empty if unknown.
func (s *MemoryStore) Lookup(category string) []Resource {
	return append([]Resource(nil), s.items[category]...)
}

// Categories lists the known category keys.
func (s *MemoryStore) Categories() []string {
	keys := make([]string, 0, len(s.items))
	for category := range s.items {
		keys = append(keys, category)
	}
	return keys
}
