package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"stockpro/internal/models"
	"stockpro/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newWatchlistRepo(t *testing.T) *repositories.GORMWatchlistRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.WatchlistEntry{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}
	return repositories.NewGORMWatchlistRepository(db)
}

func TestGORMWatchlistRepository_AddIfAbsent(t *testing.T) {
	repo := newWatchlistRepo(t)

	added, err := repo.AddIfAbsent(&models.WatchlistEntry{UserID: "user-1", Symbol: "AAPL", AddedAt: time.Now()})
	assert.NoError(t, err)
	assert.True(t, added)

	// Second insert for the same (user, symbol) is swallowed by the
	// conflict clause, not reported as an error
	added, err = repo.AddIfAbsent(&models.WatchlistEntry{UserID: "user-1", Symbol: "AAPL", AddedAt: time.Now()})
	assert.NoError(t, err)
	assert.False(t, added)

	// Same symbol for another user is a separate entry
	added, err = repo.AddIfAbsent(&models.WatchlistEntry{UserID: "user-2", Symbol: "AAPL", AddedAt: time.Now()})
	assert.NoError(t, err)
	assert.True(t, added)

	entries, err := repo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGORMWatchlistRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := newWatchlistRepo(t)

	for _, symbol := range []string{"MSFT", "AAPL", "GOOGL"} {
		added, err := repo.AddIfAbsent(&models.WatchlistEntry{UserID: "user-1", Symbol: symbol, AddedAt: time.Now()})
		assert.NoError(t, err)
		assert.True(t, added)
	}

	entries, err := repo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "MSFT", entries[0].Symbol)
	assert.Equal(t, "AAPL", entries[1].Symbol)
	assert.Equal(t, "GOOGL", entries[2].Symbol)
}

func TestGORMWatchlistRepository_Remove(t *testing.T) {
	repo := newWatchlistRepo(t)

	added, err := repo.AddIfAbsent(&models.WatchlistEntry{UserID: "user-1", Symbol: "AAPL", AddedAt: time.Now()})
	assert.NoError(t, err)
	assert.True(t, added)

	removed, err := repo.Remove("user-1", "AAPL")
	assert.NoError(t, err)
	assert.True(t, removed)

	// Removing again reports absence without error
	removed, err = repo.Remove("user-1", "AAPL")
	assert.NoError(t, err)
	assert.False(t, removed)

	entries, err := repo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
