// Package yahoo is a minimal Yahoo Finance client covering the two feeds
// PRISM syncs: quote fundamentals and daily price history.
package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
)

const (
	defaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	defaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Client is a Yahoo Finance API client
type Client struct {
	client   *http.Client
	quoteURL string
	chartURL string
	log      zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		quoteURL: defaultQuoteURL,
		chartURL: defaultChartURL,
		log:      log.With().Str("client", "yahoo").Logger(),
	}
}

// SetBaseURLs overrides the API endpoints, used by tests.
func (c *Client) SetBaseURLs(quoteURL, chartURL string) {
	c.quoteURL = quoteURL
	c.chartURL = chartURL
}

// GetFundamentals fetches the fundamentals record for a ticker. Fields
// Yahoo does not report come back nil; ratio fields keep Yahoo's fraction
// convention (the scorer handles scale detection).
func (c *Client) GetFundamentals(ticker string) (*domain.FirmFundamentals, error) {
	info, err := c.getQuoteInfo(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote info: %w", err)
	}

	return &domain.FirmFundamentals{
		Ticker:        ticker,
		MarketCap:     getFloat64(info, "marketCap"),
		ROE:           getFloat64(info, "returnOnEquity"),
		ProfitMargin:  getFloat64(info, "profitMargins"),
		RevenueGrowth: getFloat64(info, "revenueGrowth"),
		GrossMargin:   getFloat64(info, "grossMargins"),
		DebtToEquity:  getFloat64(info, "debtToEquity"),
		FCF:           getFloat64(info, "freeCashflow"),
	}, nil
}

// GetDailyHistory fetches daily close/volume bars for the given range.
//
// Supported ranges: 1mo, 3mo, 6mo, 1y, 2y, 5y, max
func (c *Client) GetDailyHistory(ticker, period string) (domain.PriceSeries, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", period)

	body, err := c.get(c.chartURL + "/" + url.PathEscape(ticker) + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data: %w", err)
	}

	var result struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close  []float64 `json:"close"`
						Volume []int64   `json:"volume"`
					} `json:"quote"`
					AdjClose []struct {
						AdjClose []float64 `json:"adjclose"`
					} `json:"adjclose"`
				} `json:"indicators"`
			} `json:"result"`
			Error interface{} `json:"error"`
		} `json:"chart"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Chart.Error)
	}
	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("No historical data returned")
		return domain.PriceSeries{}, nil
	}

	chartData := result.Chart.Result[0]
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("No quote data in response")
		return domain.PriceSeries{}, nil
	}
	quote := chartData.Indicators.Quote[0]

	var adjClose []float64
	if len(chartData.Indicators.AdjClose) > 0 {
		adjClose = chartData.Indicators.AdjClose[0].AdjClose
	}

	var series domain.PriceSeries
	for i, ts := range chartData.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			// Yahoo pads holidays with null (zero) rows
			continue
		}

		close := quote.Close[i]
		if i < len(adjClose) && adjClose[i] != 0 {
			close = adjClose[i]
		}

		var volume int64
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		series = append(series, domain.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close:  close,
			Volume: volume,
		})
	}

	return series, nil
}

// getQuoteInfo fetches the raw quote fields for one ticker.
func (c *Client) getQuoteInfo(ticker string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Add("symbols", ticker)
	params.Add("fields", "symbol,marketCap,returnOnEquity,profitMargins,revenueGrowth,"+
		"grossMargins,debtToEquity,freeCashflow,longName,shortName,quoteType")

	body, err := c.get(c.quoteURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	var result struct {
		QuoteResponse struct {
			Result []map[string]interface{} `json:"result"`
			Error  interface{}              `json:"error"`
		} `json:"quoteResponse"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.QuoteResponse.Error)
	}
	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	return result.QuoteResponse.Result[0], nil
}

func (c *Client) get(reqURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

func getFloat64(info map[string]interface{}, key string) *float64 {
	if raw, ok := info[key]; ok {
		switch v := raw.(type) {
		case float64:
			return &v
		case map[string]interface{}:
			// some fields arrive as {"raw": 1.23, "fmt": "1.23"}
			if rawValue, ok := v["raw"].(float64); ok {
				return &rawValue
			}
		}
	}
	return nil
}
