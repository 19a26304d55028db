// Package memstate provides in-memory implementations of the pair engine's
// storage and token capabilities. The test fixtures and the pairsim CLI both
// run the engine against them.
package memstate

// MemStore is an in-memory types.Store.
type MemStore struct {
	records map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string][]byte)}
}

func (s *MemStore) Get(key []byte) []byte {
	bz, ok := s.records[string(key)]
	if !ok {
		return nil
	}
	out := make([]byte, len(bz))
	copy(out, bz)
	return out
}

func (s *MemStore) Set(key, value []byte) {
	bz := make([]byte, len(value))
	copy(bz, value)
	s.records[string(key)] = bz
}

func (s *MemStore) Has(key []byte) bool {
	_, ok := s.records[string(key)]
	return ok
}

func (s *MemStore) Delete(key []byte) {
	delete(s.records, string(key))
}
