package handlers

import "sync"

// SelectionStore tracks which group each administrator picked during the
// two-step analysis dialog. State lives in memory only and resets on
// restart; a period tap without a prior group selection is treated as
// stale and rejected.
type SelectionStore struct {
	mu       sync.Mutex
	selected map[int64]int64 // user ID -> group ID
}

// NewSelectionStore creates an empty selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selected: make(map[int64]int64)}
}

// Set records the selected group for a user, replacing any previous choice.
func (s *SelectionStore) Set(userID, groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[userID] = groupID
}

// Get returns the selected group for a user and whether one exists.
func (s *SelectionStore) Get(userID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groupID, ok := s.selected[userID]
	return groupID, ok
}
