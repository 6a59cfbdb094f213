package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"stockpro/internal/models"
)

// DefaultBaseURL is the public Yahoo-style chart API the backend proxies.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

var (
	// ErrSymbolNotFound indicates the provider has no data for the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnavailable indicates the provider failed (timeout, rate limit,
	// malformed response). Provider-specific errors never escape this package.
	ErrUnavailable = errors.New("market data unavailable")
)

// Client fetches quotes and daily history from the chart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a market data client. An empty baseURL selects the
// real provider; tests point it at a local server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// chartResponse mirrors the provider's chart payload.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol               string  `json:"symbol"`
		RegularMarketPrice   float64 `json:"regularMarketPrice"`
		ChartPreviousClose   float64 `json:"chartPreviousClose"`
		RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
		RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
		RegularMarketVolume  int64   `json:"regularMarketVolume"`
		ShortName            string  `json:"shortName"`
		LongName             string  `json:"longName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// fetchChart retrieves the chart document for a symbol, retrying transient
// failures. A provider 4xx (unknown symbol) is not retried.
func (c *Client) fetchChart(ctx context.Context, symbol string, rangeDays int) (*chartResult, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%dd", c.baseURL, symbol, rangeDays)

	var result chartResult
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", "Mozilla/5.0")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusNotFound:
				return retry.Unrecoverable(ErrSymbolNotFound)
			case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
				return retry.Unrecoverable(fmt.Errorf("provider returned status %d", resp.StatusCode))
			case resp.StatusCode != http.StatusOK:
				return fmt.Errorf("provider returned status %d", resp.StatusCode)
			}

			var payload chartResponse
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				return fmt.Errorf("failed to decode provider response: %w", err)
			}
			if payload.Chart.Error != nil || len(payload.Chart.Result) == 0 {
				return retry.Unrecoverable(ErrSymbolNotFound)
			}

			result = payload.Chart.Result[0]
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) {
			return nil, ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &result, nil
}

// GetQuote returns the current market snapshot for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	chart, err := c.fetchChart(ctx, symbol, 1)
	if err != nil {
		return nil, err
	}

	meta := chart.Meta
	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	changePercent := 0.0
	if meta.ChartPreviousClose != 0 {
		changePercent = change / meta.ChartPreviousClose * 100
	}

	companyName := meta.ShortName
	if companyName == "" {
		companyName = meta.LongName
	}

	return &models.Quote{
		Price:         meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: changePercent,
		CompanyName:   companyName,
		DayHigh:       meta.RegularMarketDayHigh,
		DayLow:        meta.RegularMarketDayLow,
		Volume:        meta.RegularMarketVolume,
	}, nil
}

// GetHistory returns up to rangeDays of daily bars, oldest first. Days the
// provider reports without a close (holidays, halts) are skipped.
func (c *Client) GetHistory(ctx context.Context, symbol string, rangeDays int) ([]models.DailyBar, error) {
	chart, err := c.fetchChart(ctx, symbol, rangeDays)
	if err != nil {
		return nil, err
	}

	if len(chart.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: response carried no quote indicators", ErrUnavailable)
	}
	quote := chart.Indicators.Quote[0]

	bars := make([]models.DailyBar, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bars = append(bars, models.DailyBar{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   deref(quote.Open, i),
			High:   deref(quote.High, i),
			Low:    deref(quote.Low, i),
			Close:  *quote.Close[i],
			Volume: derefInt(quote.Volume, i),
		})
	}
	return bars, nil
}

func deref(vals []*float64, i int) float64 {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return 0
}

func derefInt(vals []*int64, i int) int64 {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return 0
}
