package models

// StockListing is a search catalogue entry for symbol suggestions.
type StockListing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// StockDetail combines the live quote with recent history for one symbol.
type StockDetail struct {
	Symbol         string     `json:"symbol"`
	CurrentData    Quote      `json:"currentData"`
	HistoricalData []DailyBar `json:"historicalData"`
}

// Quote is a snapshot of current market data for a symbol.
type Quote struct {
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	CompanyName   string  `json:"companyName"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	Volume        int64   `json:"volume"`
}

// DailyBar is one day of OHLCV history.
type DailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
