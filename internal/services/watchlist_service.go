package services

import (
	"fmt"
	"log"
	"time"

	"stockpro/internal/models"
	"stockpro/internal/repositories"
	"stockpro/pkg/rabbitmq"
)

// WatchlistService handles business logic for per-user watchlists.
type WatchlistService struct {
	repo     repositories.WatchlistRepository
	mqClient *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(repo repositories.WatchlistRepository, mqClient *rabbitmq.Client) *WatchlistService {
	return &WatchlistService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// List returns the user's watchlist in insertion order.
func (s *WatchlistService) List(userID string) ([]models.WatchlistEntry, error) {
	return s.repo.ListByUser(userID)
}

// AddRequest carries the symbol and optional cached metadata for an add.
type AddRequest struct {
	Symbol       string
	CompanyName  string
	CurrentPrice float64
	ProfitLoss   float64
}

// Add appends a symbol to the user's watchlist and returns the updated
// list. The symbol is normalized to uppercase before the 1-5 letter check
// and the duplicate check, so "aapl" and "AAPL" are the same entry.
func (s *WatchlistService) Add(userID string, req AddRequest) ([]models.WatchlistEntry, error) {
	symbol := models.NormalizeSymbol(req.Symbol)
	if !models.ValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, req.Symbol)
	}

	entry := &models.WatchlistEntry{
		UserID:       userID,
		Symbol:       symbol,
		CompanyName:  req.CompanyName,
		CurrentPrice: req.CurrentPrice,
		ProfitLoss:   req.ProfitLoss,
		AddedAt:      time.Now(),
	}
	added, err := s.repo.AddIfAbsent(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s to watchlist: %w", symbol, err)
	}
	if !added {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, symbol)
	}

	s.publishEvent("watchlist.added", userID, symbol)

	return s.repo.ListByUser(userID)
}

// Remove deletes a symbol from the user's watchlist and returns the
// updated list. Removing an absent symbol is a no-op, not an error.
func (s *WatchlistService) Remove(userID, symbol string) ([]models.WatchlistEntry, error) {
	symbol = models.NormalizeSymbol(symbol)

	removed, err := s.repo.Remove(userID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to remove %s from watchlist: %w", symbol, err)
	}
	if removed {
		s.publishEvent("watchlist.removed", userID, symbol)
	}

	return s.repo.ListByUser(userID)
}

// publishEvent emits a watchlist change event for downstream consumers.
// Publishing is best-effort: a broker failure must not fail the request.
func (s *WatchlistService) publishEvent(event, userID, symbol string) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishWatchlistEvent(map[string]interface{}{
		"event":  event,
		"userID": userID,
		"symbol": symbol,
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event for user %s: %v", event, userID, err)
	}
}
