package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// Disclaimer accompanies every analysis response. The screener is an
// educational tool, not investment advice.
const Disclaimer = "This analysis is informational and educational only. " +
	"It is not financial advice or an investment recommendation. " +
	"Indicators reflect past behavior and do not guarantee future results."

// defaultTopN is how many entries the top endpoint returns by default.
const defaultTopN = 6

// Screener is the screening service consumed by the handlers.
type Screener interface {
	TopN(ctx context.Context, strategy contracts.Strategy, n int) ([]contracts.RankedEntry, error)
	RankAll(ctx context.Context, strategy contracts.Strategy) ([]contracts.RankedEntry, error)
	Universe() *contracts.Universe
}

// ScreenerHandler handles the screening API endpoints.
type ScreenerHandler struct {
	screener Screener
	logger   *logger.Logger
}

// NewScreenerHandler creates a new screener handler.
func NewScreenerHandler(screener Screener, log *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		screener: screener,
		logger:   log,
	}
}

// rankingResponse is the envelope of every ranking endpoint.
type rankingResponse struct {
	Date       string                  `json:"date"`
	Strategy   contracts.Strategy      `json:"strategy"`
	Disclaimer string                  `json:"disclaimer"`
	Count      int                     `json:"count"`
	Results    []contracts.RankedEntry `json:"results"`
}

// GetTop returns the top entries under one strategy.
// GET /api/top?strategy=momentum|value|defensive|global&n=6&breakdown=true
func (h *ScreenerHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	strategy := parseStrategy(r, contracts.StrategyMomentum)
	if !strategy.Valid() && strategy != contracts.StrategyGlobal {
		respondError(w, http.StatusBadRequest, "unknown strategy: "+string(strategy))
		return
	}

	n := parseIntParam(r, "n", defaultTopN)
	if n < 1 {
		respondError(w, http.StatusBadRequest, "n must be >= 1")
		return
	}

	top, err := h.screener.TopN(r.Context(), strategy, n)
	if err != nil {
		h.logger.WithError(err).WithField("strategy", strategy).Error("Screening failed")
		respondError(w, http.StatusServiceUnavailable, "market data unavailable")
		return
	}

	if !parseBoolParam(r, "breakdown", true) {
		top = stripBreakdowns(top)
	}

	respondJSON(w, http.StatusOK, rankingResponse{
		Date:       time.Now().Format("2006-01-02"),
		Strategy:   strategy,
		Disclaimer: Disclaimer,
		Count:      len(top),
		Results:    top,
	})
}

// GetAll returns the full ranked universe under one strategy.
// GET /api/cedears?strategy=momentum&breakdown=false
func (h *ScreenerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	strategy := parseStrategy(r, contracts.StrategyMomentum)
	if !strategy.Valid() && strategy != contracts.StrategyGlobal {
		respondError(w, http.StatusBadRequest, "unknown strategy: "+string(strategy))
		return
	}

	ranked, err := h.screener.RankAll(r.Context(), strategy)
	if err != nil {
		h.logger.WithError(err).WithField("strategy", strategy).Error("Screening failed")
		respondError(w, http.StatusServiceUnavailable, "market data unavailable")
		return
	}

	if !parseBoolParam(r, "breakdown", false) {
		ranked = stripBreakdowns(ranked)
	}

	respondJSON(w, http.StatusOK, rankingResponse{
		Date:       time.Now().Format("2006-01-02"),
		Strategy:   strategy,
		Disclaimer: Disclaimer,
		Count:      len(ranked),
		Results:    ranked,
	})
}

// GetDetail returns the analysis of one symbol under one strategy.
// GET /api/cedears/{symbol}?strategy=momentum
func (h *ScreenerHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	if !h.screener.Universe().Contains(symbol) {
		respondError(w, http.StatusNotFound, "symbol not in universe: "+symbol)
		return
	}

	strategy := parseStrategy(r, contracts.StrategyMomentum)
	if !strategy.Valid() && strategy != contracts.StrategyGlobal {
		respondError(w, http.StatusBadRequest, "unknown strategy: "+string(strategy))
		return
	}

	ranked, err := h.screener.RankAll(r.Context(), strategy)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Screening failed")
		respondError(w, http.StatusServiceUnavailable, "market data unavailable")
		return
	}

	for _, entry := range ranked {
		if entry.Symbol == symbol {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"date":       time.Now().Format("2006-01-02"),
				"disclaimer": Disclaimer,
				"cedear":     entry,
			})
			return
		}
	}

	respondError(w, http.StatusServiceUnavailable, "no data available for "+symbol)
}

// universeItem is one listing in the universe response.
type universeItem struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
	Ratio   int    `json:"ratio"`
}

// GetUniverse returns the configured CEDEAR universe.
// GET /api/universe
func (h *ScreenerHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	u := h.screener.Universe()

	items := make([]universeItem, 0, u.Count())
	for symbol, listing := range u.Listings {
		items = append(items, universeItem{
			Symbol:  symbol,
			Company: listing.Company,
			Ratio:   listing.Ratio,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Symbol < items[j].Symbol })

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(items),
		"cedears": items,
	})
}

func parseStrategy(r *http.Request, fallback contracts.Strategy) contracts.Strategy {
	raw := r.URL.Query().Get("strategy")
	if raw == "" {
		return fallback
	}
	return contracts.Strategy(strings.ToLower(raw))
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseBoolParam(r *http.Request, name string, fallback bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func stripBreakdowns(entries []contracts.RankedEntry) []contracts.RankedEntry {
	stripped := make([]contracts.RankedEntry, len(entries))
	copy(stripped, entries)
	for i := range stripped {
		stripped[i].Breakdown = nil
	}
	return stripped
}
