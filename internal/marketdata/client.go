package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/config"
	"github.com/mbattaglia/cedear-screener/pkg/httputil"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
	"github.com/mbattaglia/cedear-screener/pkg/redis"
)

// YahooClient fetches history and fundamentals from the Yahoo Finance
// JSON endpoints. All price and fundamental data enters through this
// client; results are cached with per-kind TTLs so repeated screening
// requests inside a window hit Redis instead of the provider.
type YahooClient struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	cfg        config.MarketDataConfig
	params     TechnicalParams
	logger     *logger.Logger
}

// NewYahooClient creates a Yahoo Finance client.
func NewYahooClient(httpClient *httputil.Client, cache *redis.Cache, cfg config.MarketDataConfig, log *logger.Logger) *YahooClient {
	return &YahooClient{
		httpClient: httpClient,
		cache:      cache,
		cfg:        cfg,
		params:     DefaultTechnicalParams(),
		logger:     log,
	}
}

// chartResponse mirrors the chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []struct {
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
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// quoteSummaryResponse mirrors the quoteSummary API envelope. Every
// numeric field arrives wrapped in a {raw, fmt} object and may be absent.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    yahooValue `json:"trailingPE"`
				DividendYield yahooValue `json:"dividendYield"`
				Beta          yahooValue `json:"beta"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
				DebtToEquity   yahooValue `json:"debtToEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			Price struct {
				RegularMarketPrice yahooValue `json:"regularMarketPrice"`
			} `json:"price"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GetHistory fetches the daily candles of one symbol over the last days.
func (c *YahooClient) GetHistory(ctx context.Context, symbol string, days int) ([]Candle, error) {
	cacheKey := fmt.Sprintf("history:%s:%d", symbol, days)
	var cached []Candle
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	url := fmt.Sprintf("%s/%s?range=%dd&interval=1d", c.cfg.ChartBaseURL, symbol, days)
	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse history for %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("history for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("history for %s: empty result", symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Null bars (holidays, halted sessions) are skipped entirely.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("history for %s: no usable candles", symbol)
	}

	if err := c.cache.Set(ctx, cacheKey, candles, c.cfg.HistoryTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache history")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(candles),
	}).Debug("Fetched history")
	return candles, nil
}

// GetIndicators computes the technical indicator set for each symbol.
// A symbol whose history cannot be fetched or is too short is logged and
// omitted; the remaining symbols still screen.
func (c *YahooClient) GetIndicators(ctx context.Context, symbols []string) (map[string]contracts.IndicatorSet, error) {
	result := make(map[string]contracts.IndicatorSet, len(symbols))

	for _, symbol := range symbols {
		candles, err := c.GetHistory(ctx, symbol, c.cfg.HistoryDays)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol: history unavailable")
			continue
		}

		indicators, err := BuildIndicatorSet(symbol, candles, c.params)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol: indicators failed")
			continue
		}
		result[symbol] = indicators
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"resolved":  len(result),
	}).Info("Computed indicators")
	return result, nil
}

// GetFundamentals fetches the fundamental metrics of each symbol.
// Individual metrics the provider does not report stay nil.
func (c *YahooClient) GetFundamentals(ctx context.Context, symbols []string) (map[string]contracts.FundamentalSet, error) {
	result := make(map[string]contracts.FundamentalSet, len(symbols))

	for _, symbol := range symbols {
		fundamentals, err := c.fetchFundamentals(ctx, symbol)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Warn("Skipping symbol: fundamentals unavailable")
			continue
		}
		result[symbol] = fundamentals
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"resolved":  len(result),
	}).Info("Fetched fundamentals")
	return result, nil
}

func (c *YahooClient) fetchFundamentals(ctx context.Context, symbol string) (contracts.FundamentalSet, error) {
	cacheKey := fmt.Sprintf("fundamentals:%s", symbol)
	var cached contracts.FundamentalSet
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	url := fmt.Sprintf(
		"%s/%s?modules=summaryDetail,financialData,defaultKeyStatistics,assetProfile,price",
		c.cfg.QuoteBaseURL, symbol,
	)
	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return contracts.FundamentalSet{}, fmt.Errorf("fetch fundamentals for %s: %w", symbol, err)
	}

	var resp quoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return contracts.FundamentalSet{}, fmt.Errorf("parse fundamentals for %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return contracts.FundamentalSet{}, fmt.Errorf("fundamentals for %s: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return contracts.FundamentalSet{}, fmt.Errorf("fundamentals for %s: empty result", symbol)
	}

	r := resp.QuoteSummary.Result[0]
	fundamentals := contracts.FundamentalSet{
		Symbol:        symbol,
		PERatio:       r.SummaryDetail.TrailingPE.Raw,
		PriceToBook:   r.DefaultKeyStatistics.PriceToBook.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw,
		ROE:           r.FinancialData.ReturnOnEquity.Raw,
		DebtToEquity:  r.FinancialData.DebtToEquity.Raw,
		Beta:          r.SummaryDetail.Beta.Raw,
		Sector:        r.AssetProfile.Sector,
	}
	if r.Price.RegularMarketPrice.Raw != nil {
		fundamentals.Price = *r.Price.RegularMarketPrice.Raw
	}

	if err := c.cache.Set(ctx, cacheKey, fundamentals, c.cfg.FundamentalsTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache fundamentals")
	}

	return fundamentals, nil
}

func (c *YahooClient) fetchJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
