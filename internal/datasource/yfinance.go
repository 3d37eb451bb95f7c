package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/feedwatch/pkg/models"
	"github.com/seenimoa/feedwatch/pkg/utils"
)

// DefaultYFinanceURL is the Yahoo Finance chart API host.
const DefaultYFinanceURL = "https://query1.finance.yahoo.com"

// YFinanceOptions configures the quote source.
type YFinanceOptions struct {
	BaseURL           string
	CacheTTL          time.Duration
	RequestsPerSecond float64
	Client            *http.Client
}

// YFinance fetches quotes and daily closes from the Yahoo Finance chart API.
type YFinance struct {
	baseURL string
	client  *http.Client
	cache   *Cache
	limiter *Limiter
}

// NewYFinance creates a new Yahoo Finance data source.
func NewYFinance(opts YFinanceOptions) *YFinance {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYFinanceURL
	}
	if opts.Client == nil {
		opts.Client = NewHTTPClient(0)
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 5
	}
	return &YFinance{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.Client,
		cache:   NewCache(opts.CacheTTL),
		limiter: NewLimiter("yfinance", opts.RequestsPerSecond),
	}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance v8 API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol             string   `json:"symbol"`
	Currency           string   `json:"currency"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64    `json:"regularMarketTime"`
	PreviousClose      *float64 `json:"previousClose"`
	ChartPreviousClose *float64 `json:"chartPreviousClose"`
}

type yfIndicators struct {
	Quote []yfQuote `json:"quote"`
}

type yfQuote struct {
	Close []*float64 `json:"close"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// GetQuote returns the latest price and the change from the previous close.
func (y *YFinance) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	symbol := utils.NormalizeTicker(ticker)

	cacheKey := "quote:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Quote), nil
	}

	result, err := y.chart(ctx, symbol, "1d")
	if err != nil {
		return nil, err
	}

	meta := result.Meta
	if meta.RegularMarketPrice == nil {
		return nil, fmt.Errorf("yfinance quote %s: %w", symbol, ErrNoData)
	}
	price := decimal.NewFromFloat(*meta.RegularMarketPrice)

	prev := price
	switch {
	case meta.PreviousClose != nil:
		prev = decimal.NewFromFloat(*meta.PreviousClose)
	case meta.ChartPreviousClose != nil:
		prev = decimal.NewFromFloat(*meta.ChartPreviousClose)
	}

	change := price.Sub(prev)
	changePct := decimal.Zero
	if prev.IsPositive() {
		changePct = change.Div(prev).Mul(decimal.NewFromInt(100))
	}

	asOf := time.Now()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0)
	}

	if meta.Symbol != "" {
		symbol = utils.FromYFinanceTicker(meta.Symbol)
	}

	quote := &models.Quote{
		Symbol:    symbol,
		Currency:  meta.Currency,
		Price:     price,
		PrevClose: prev,
		Change:    change,
		ChangePct: changePct,
		AsOf:      asOf,
	}

	y.cache.Set(cacheKey, quote)
	return quote, nil
}

// GetHistory returns daily closes covering at least the last days days, oldest first.
func (y *YFinance) GetHistory(ctx context.Context, ticker string, days int) (*models.PriceHistory, error) {
	symbol := utils.NormalizeTicker(ticker)
	rng := utils.RangeForDays(days)

	cacheKey := "hist:" + symbol + ":" + rng
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.PriceHistory), nil
	}

	result, err := y.chart(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	history := &models.PriceHistory{
		Symbol: symbol,
		Prices: parseYFCloses(result),
	}

	y.cache.Set(cacheKey, history)
	return history, nil
}

// --- Helpers ---

func (y *YFinance) chart(ctx context.Context, symbol, rng string) (*yfChartResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrTickerNotFound)
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	yfTicker := utils.ToYFinanceTicker(symbol)
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		y.baseURL, url.PathEscape(yfTicker), rng)

	body, err := doGet(ctx, y.client, endpoint, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		var httpErr *ErrHTTP
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrTickerNotFound, symbol, err)
		}
		return nil, fmt.Errorf("%s chart %s: %w", y.Name(), yfTicker, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance chart: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrTickerNotFound, symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}
	return &resp.Chart.Result[0], nil
}

// parseYFCloses pairs timestamps with closes, dropping days without a close.
func parseYFCloses(result *yfChartResult) []models.DailyPrice {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := result.Indicators.Quote[0].Close

	prices := make([]models.DailyPrice, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		prices = append(prices, models.DailyPrice{
			Date:  time.Unix(ts, 0).UTC().Format(utils.DateLayout),
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}
	return prices
}
