package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbattaglia/cedear-screener/pkg/config"
	"github.com/mbattaglia/cedear-screener/pkg/httputil"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
	"github.com/mbattaglia/cedear-screener/pkg/redis"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [100.0, 101.0, null],
          "high":   [102.0, 103.0, null],
          "low":    [99.0, 100.0, null],
          "close":  [101.5, 102.5, null],
          "volume": [1000, 1100, null]
        }]
      }
    }],
    "error": null
  }
}`

const quoteSummaryFixture = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "trailingPE": {"raw": 28.5, "fmt": "28.50"},
        "dividendYield": {"raw": 0.0055, "fmt": "0.55%"},
        "beta": {"raw": 1.25, "fmt": "1.25"}
      },
      "financialData": {
        "returnOnEquity": {"raw": 1.47, "fmt": "147.00%"},
        "debtToEquity": {"raw": 176.3, "fmt": "176.30"}
      },
      "defaultKeyStatistics": {
        "priceToBook": {"raw": 35.1, "fmt": "35.10"}
      },
      "assetProfile": {"sector": "Technology"},
      "price": {"regularMarketPrice": {"raw": 189.5, "fmt": "189.50"}}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, serverURL string) *YahooClient {
	t.Helper()

	noCache, err := redis.New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)

	cfg := config.MarketDataConfig{
		ChartBaseURL:    serverURL + "/chart",
		QuoteBaseURL:    serverURL + "/quoteSummary",
		HistoryDays:     60,
		RequestTimeout:  5 * time.Second,
		HistoryTTL:      15 * time.Minute,
		FundamentalsTTL: time.Hour,
	}

	log := logger.NewNop()
	httpClient := httputil.New(cfg.RequestTimeout, log).DisableRetry()
	return NewYahooClient(httpClient, redis.NewCache(noCache, "test"), cfg, log)
}

func TestYahooClient_GetHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chart/AAPL", r.URL.Path)
		assert.Equal(t, "60d", r.URL.Query().Get("range"))
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	candles, err := client.GetHistory(context.Background(), "AAPL", 60)
	require.NoError(t, err)
	require.Len(t, candles, 2, "null bars are skipped")

	assert.Equal(t, 101.5, candles[0].Close)
	assert.Equal(t, int64(1000), candles[0].Volume)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), candles[0].Timestamp)
	assert.Equal(t, 102.5, candles[1].Close)
}

func TestYahooClient_GetHistory_Errors(t *testing.T) {
	t.Run("API error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).GetHistory(context.Background(), "ZZZZ", 60)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No data found")
	})

	t.Run("HTTP failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).GetHistory(context.Background(), "AAPL", 60)
		require.Error(t, err)
	})
}

func TestYahooClient_GetFundamentals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quoteSummary/AAPL", r.URL.Path)
		w.Write([]byte(quoteSummaryFixture))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.GetFundamentals(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Contains(t, result, "AAPL")

	f := result["AAPL"]
	require.NotNil(t, f.PERatio)
	assert.Equal(t, 28.5, *f.PERatio)
	require.NotNil(t, f.DividendYield)
	assert.Equal(t, 0.0055, *f.DividendYield)
	require.NotNil(t, f.DebtToEquity)
	assert.Equal(t, 176.3, *f.DebtToEquity)
	assert.Equal(t, "Technology", f.Sector)
	assert.Equal(t, 189.5, f.Price)
}

func TestYahooClient_GetFundamentals_PartialFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{"summaryDetail":{},"financialData":{},"defaultKeyStatistics":{},"assetProfile":{},"price":{}}],"error":null}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.GetFundamentals(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Contains(t, result, "AAPL")

	f := result["AAPL"]
	assert.Nil(t, f.PERatio, "absent metrics stay nil, never zero")
	assert.Nil(t, f.Beta)
	assert.Empty(t, f.Sector)
}

func TestYahooClient_GetIndicators_SkipsFailedSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chart/AAPL" {
			w.Write([]byte(bigChartFixture()))
			return
		}
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.GetIndicators(context.Background(), []string{"AAPL", "ZZZZ"})
	require.NoError(t, err)
	assert.Contains(t, result, "AAPL")
	assert.NotContains(t, result, "ZZZZ", "unresolvable symbols are omitted")
}

// bigChartFixture builds a 40-day chart response, enough history for the
// indicator windows.
func bigChartFixture() string {
	fixture := `{"chart":{"result":[{"timestamp":[`
	for i := 0; i < 40; i++ {
		if i > 0 {
			fixture += ","
		}
		fixture += "1700000000"
	}
	fixture += `],"indicators":{"quote":[{"close":[`
	for i := 0; i < 40; i++ {
		if i > 0 {
			fixture += ","
		}
		fixture += "100.0"
	}
	fixture += `],"volume":[`
	for i := 0; i < 40; i++ {
		if i > 0 {
			fixture += ","
		}
		fixture += "1000"
	}
	fixture += `]}]}}],"error":null}}`
	return fixture
}
