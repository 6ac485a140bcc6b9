package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/httputil"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// BYMAScraper resolves CEDEAR quotes on the Buenos Aires exchange by
// scraping the Yahoo quote pages of the .BA listings. The ARS listing
// trades as SYMBOL.BA, the USD listing as SYMBOLD.BA.
type BYMAScraper struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewBYMAScraper creates a scraper for local CEDEAR quotes.
func NewBYMAScraper(httpClient *httputil.Client, baseURL string, log *logger.Logger) *BYMAScraper {
	return &BYMAScraper{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     log,
	}
}

// GetLocalQuotes fetches ARS and USD CEDEAR quotes for each symbol.
// Symbols whose local listings cannot be resolved simply come back
// without those fields; quote enrichment never blocks screening.
func (s *BYMAScraper) GetLocalQuotes(ctx context.Context, symbols []string) (map[string]contracts.LocalQuote, error) {
	result := make(map[string]contracts.LocalQuote, len(symbols))

	for _, symbol := range symbols {
		var quote contracts.LocalQuote

		arsSymbol := symbol + ".BA"
		if price, change, err := s.scrapeQuote(ctx, arsSymbol); err != nil {
			s.logger.WithError(err).WithField("symbol", arsSymbol).Warn("Local ARS quote unavailable")
		} else {
			quote.PriceARS = price
			quote.DailyChangePctARS = change
		}

		usdSymbol := symbol + "D.BA"
		if price, change, err := s.scrapeQuote(ctx, usdSymbol); err != nil {
			s.logger.WithError(err).WithField("symbol", usdSymbol).Warn("Local USD quote unavailable")
		} else {
			quote.PriceUSD = price
			quote.DailyChangePctUSD = change
		}

		if quote.PriceARS != nil || quote.PriceUSD != nil {
			result[symbol] = quote
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"resolved":  len(result),
	}).Info("Fetched local quotes")
	return result, nil
}

// scrapeQuote extracts the regular market price and daily change percent
// from one quote page.
func (s *BYMAScraper) scrapeQuote(ctx context.Context, symbol string) (*float64, *float64, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, symbol)

	resp, err := s.httpClient.Get(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	price := s.extractStreamerValue(doc, symbol, "regularMarketPrice")
	if price == nil {
		return nil, nil, fmt.Errorf("price not found for %s", symbol)
	}
	change := s.extractStreamerValue(doc, symbol, "regularMarketChangePercent")

	return price, change, nil
}

// extractStreamerValue pulls a numeric field out of the page's
// fin-streamer elements, preferring the machine-readable data-value
// attribute over the rendered text.
func (s *BYMAScraper) extractStreamerValue(doc *goquery.Document, symbol, field string) *float64 {
	selector := fmt.Sprintf(`fin-streamer[data-symbol="%s"][data-field="%s"]`, symbol, field)

	var value *float64
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw, ok := sel.Attr("data-value")
		if !ok {
			raw = sel.Text()
		}
		if parsed, err := parseQuoteNumber(raw); err == nil {
			value = &parsed
			return false
		}
		return true
	})
	return value
}

// parseQuoteNumber parses a number as rendered on the quote page:
// thousands separators, a percent suffix, or an explicit plus sign.
func parseQuoteNumber(raw string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "%", "", "+", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(cleaned, 64)
}
