package cart

import "sync"

// Store keeps one cart per user for the lifetime of the process. Carts are
// deliberately not durable: the session owner is the single writer and the
// cart stops mattering the moment an order is created from it.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns a snapshot copy of the user's cart
func (s *Store) Get(userID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[userID]
	if !ok {
		return Cart{}
	}
	snapshot := Cart{Lines: make([]Line, len(c.Lines))}
	copy(snapshot.Lines, c.Lines)
	return snapshot
}

// Update applies fn to the user's cart under the store lock and returns a
// snapshot of the result.
func (s *Store) Update(userID string, fn func(*Cart)) Cart {
	s.mu.Lock()
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}
	fn(c)
	snapshot := Cart{Lines: make([]Line, len(c.Lines))}
	copy(snapshot.Lines, c.Lines)
	s.mu.Unlock()
	return snapshot
}

// Clear drops the user's cart. Called only after an order was durably
// created, or on explicit request.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}
