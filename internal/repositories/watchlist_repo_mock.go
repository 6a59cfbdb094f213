package repositories

import (
	"fmt"
	"sync"

	"stockpro/internal/models"
)

// MockWatchlistRepository is an in-memory implementation of WatchlistRepository.
type MockWatchlistRepository struct {
	entries map[string][]models.WatchlistEntry // keyed by user ID
	nextID  uint
	mu      sync.Mutex
}

// NewMockWatchlistRepository creates a new instance of MockWatchlistRepository.
func NewMockWatchlistRepository() *MockWatchlistRepository {
	return &MockWatchlistRepository{
		entries: make(map[string][]models.WatchlistEntry),
	}
}

// ListByUser returns the user's entries in insertion order.
func (r *MockWatchlistRepository) ListByUser(userID string) ([]models.WatchlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]models.WatchlistEntry, len(r.entries[userID]))
	copy(list, r.entries[userID])
	return list, nil
}

// AddIfAbsent appends the entry unless the symbol is already present.
// The existence check and the append happen under one lock, matching the
// atomicity of the database implementation.
func (r *MockWatchlistRepository) AddIfAbsent(entry *models.WatchlistEntry) (bool, error) {
	if entry.UserID == "" {
		return false, fmt.Errorf("watchlist entry requires a user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries[entry.UserID] {
		if e.Symbol == entry.Symbol {
			return false, nil
		}
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries[entry.UserID] = append(r.entries[entry.UserID], *entry)
	return true, nil
}

// Remove deletes the user's entry for the symbol, if any.
func (r *MockWatchlistRepository) Remove(userID, symbol string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.entries[userID]
	for i, e := range list {
		if e.Symbol == symbol {
			r.entries[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
