package catalog

import "sync"

// Search holds the dashboard-wide search query shared by the admin
// views. The query is a plain string; filtering happens client side on
// whatever list the active view renders.
type Search struct {
	mu    sync.RWMutex
	query string
}

// NewSearch creates an empty search state.
func NewSearch() *Search {
	return &Search{}
}

// Query returns the current query string.
func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Set replaces the query.
func (s *Search) Set(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Clear resets the query to empty.
func (s *Search) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
}
