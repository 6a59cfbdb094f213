package repositories

import (
	"fmt"
	"stockpro/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMWatchlistRepository is a GORM implementation of WatchlistRepository.
type GORMWatchlistRepository struct {
	db *gorm.DB
}

// NewGORMWatchlistRepository creates a new instance of GORMWatchlistRepository.
func NewGORMWatchlistRepository(db *gorm.DB) *GORMWatchlistRepository {
	return &GORMWatchlistRepository{
		db: db,
	}
}

// ListByUser retrieves all watchlist entries for a user in insertion order.
func (r *GORMWatchlistRepository) ListByUser(userID string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := r.db.Order("id asc").Find(&entries, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist for user %s: %w", userID, err)
	}
	return entries, nil
}

// AddIfAbsent inserts the entry with ON CONFLICT DO NOTHING on the
// (user_id, symbol) unique index, so the duplicate check and the insert
// are a single atomic statement.
func (r *GORMWatchlistRepository) AddIfAbsent(entry *models.WatchlistEntry) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoNothing: true,
	}).Create(entry)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add %s to watchlist for user %s: %w", entry.Symbol, entry.UserID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Remove deletes the user's entry for the symbol, if any.
func (r *GORMWatchlistRepository) Remove(userID, symbol string) (bool, error) {
	res := r.db.Delete(&models.WatchlistEntry{}, "user_id = ? AND symbol = ?", userID, symbol)
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove %s from watchlist for user %s: %w", symbol, userID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
