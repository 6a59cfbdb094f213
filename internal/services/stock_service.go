package services

import (
	"context"
	"fmt"
	"strings"

	"stockpro/internal/models"
)

// historyRangeDays is how much daily history stock detail views include.
const historyRangeDays = 30

// maxSearchResults caps symbol suggestions per query.
const maxSearchResults = 5

// MarketDataProvider is the external quote/history gateway consumed by
// StockService.
type MarketDataProvider interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetHistory(ctx context.Context, symbol string, rangeDays int) ([]models.DailyBar, error)
}

// StockService proxies market data and serves symbol search.
type StockService struct {
	market   MarketDataProvider
	listings []models.StockListing
}

// NewStockService creates a new StockService.
func NewStockService(market MarketDataProvider) *StockService {
	return &StockService{
		market:   market,
		listings: defaultListings,
	}
}

// GetStock fetches the current quote and recent history for a symbol.
// The two provider calls run concurrently.
func (s *StockService) GetStock(ctx context.Context, rawSymbol string) (*models.StockDetail, error) {
	symbol := models.NormalizeSymbol(rawSymbol)
	if !models.ValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, rawSymbol)
	}

	type historyResult struct {
		bars []models.DailyBar
		err  error
	}
	historyCh := make(chan historyResult, 1)
	go func() {
		bars, err := s.market.GetHistory(ctx, symbol, historyRangeDays)
		historyCh <- historyResult{bars: bars, err: err}
	}()

	quote, err := s.market.GetQuote(ctx, symbol)
	history := <-historyCh
	if err != nil {
		return nil, err
	}
	if history.err != nil {
		return nil, history.err
	}

	return &models.StockDetail{
		Symbol:         symbol,
		CurrentData:    *quote,
		HistoricalData: history.bars,
	}, nil
}

// Search returns up to maxSearchResults listings whose symbol or company
// name contains the query, case-insensitively.
func (s *StockService) Search(query string) []models.StockListing {
	term := strings.ToLower(strings.TrimSpace(query))
	suggestions := make([]models.StockListing, 0, maxSearchResults)
	for _, listing := range s.listings {
		if strings.Contains(strings.ToLower(listing.Symbol), term) ||
			strings.Contains(strings.ToLower(listing.Name), term) {
			suggestions = append(suggestions, listing)
			if len(suggestions) == maxSearchResults {
				break
			}
		}
	}
	return suggestions
}

// defaultListings is the built-in search catalogue of major symbols.
var defaultListings = []models.StockListing{
	{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Exchange: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Exchange: "NYSE"},
	{Symbol: "BAC", Name: "Bank of America Corp.", Exchange: "NYSE"},
	{Symbol: "WMT", Name: "Walmart Inc.", Exchange: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Exchange: "NYSE"},
	{Symbol: "V", Name: "Visa Inc.", Exchange: "NYSE"},
	{Symbol: "PG", Name: "Procter & Gamble Co.", Exchange: "NYSE"},
	{Symbol: "MA", Name: "Mastercard Inc.", Exchange: "NYSE"},
	{Symbol: "UNH", Name: "UnitedHealth Group Inc.", Exchange: "NYSE"},
	{Symbol: "HD", Name: "Home Depot Inc.", Exchange: "NYSE"},
	{Symbol: "INTC", Name: "Intel Corporation", Exchange: "NASDAQ"},
	{Symbol: "VZ", Name: "Verizon Communications Inc.", Exchange: "NYSE"},
	{Symbol: "ADBE", Name: "Adobe Inc.", Exchange: "NASDAQ"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Exchange: "NASDAQ"},
}
