package repositories

import "stockpro/internal/models"

// WatchlistRepository defines the interface for watchlist store access.
// Add and Remove are conditional writes so concurrent requests for the
// same user cannot lose updates.
type WatchlistRepository interface {
	ListByUser(userID string) ([]models.WatchlistEntry, error)
	// AddIfAbsent inserts the entry unless the user already follows the
	// symbol. It returns false when the symbol was already present.
	AddIfAbsent(entry *models.WatchlistEntry) (bool, error)
	// Remove deletes the user's entry for the symbol. It returns false
	// when no such entry existed.
	Remove(userID, symbol string) (bool, error)
}
