package models

import (
	"regexp"
	"strings"
	"time"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// NormalizeSymbol trims and uppercases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidSymbol reports whether the (already normalized) symbol is a
// 1-5 letter ticker.
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// WatchlistEntry is one followed instrument for a user. The price fields
// are snapshots taken when the entry was added, not live data.
type WatchlistEntry struct {
	ID           uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	UserID       string    `json:"user_id" gorm:"type:varchar(36);index;uniqueIndex:idx_user_symbol;not null"`
	Symbol       string    `json:"symbol" gorm:"type:varchar(5);uniqueIndex:idx_user_symbol;not null"`
	CompanyName  string    `json:"company_name,omitempty" gorm:"type:varchar(255)"`
	CurrentPrice float64   `json:"current_price,omitempty"`
	ProfitLoss   float64   `json:"profit_loss,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}
