package trades

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradewatch-backend/lib/scrapers/capitoltrades"
	"tradewatch-backend/lib/telemetry"
	"tradewatch-backend/services/analyst"

	"github.com/stretchr/testify/require"
)

type stubScraper struct {
	rows []capitoltrades.RawTradeRecord
	err  error
	page int
}

func (s *stubScraper) ScrapeRecent(ctx context.Context, page int) ([]capitoltrades.RawTradeRecord, error) {
	s.page = page
	return s.rows, s.err
}

type stubScorer struct {
	calls int
}

func (s *stubScorer) Score(ctx context.Context, trade analyst.TradeContext) analyst.TradeScore {
	s.calls++
	avg := 0.5
	return analyst.TradeScore{WeightedAverage: &avg}
}

func sampleRows() []capitoltrades.RawTradeRecord {
	return []capitoltrades.RawTradeRecord{
		{
			Politician:      "Nancy Pelosi (House)",
			Issuer:          "Widget Inc (WDGT:US)",
			Ticker:          "WDGT",
			PublishedDate:   "12 Jan 2024",
			TradedDate:      "10 Jan 2024",
			Owner:           "Spouse",
			TransactionType: "Buy",
			AmountRange:     "1K–15K",
			Source:          capitoltrades.BaseUrl,
		},
		{
			Politician: "Someone Else (Senate)",
			Issuer:     "Acme Corp",
		},
	}
}

func TestGetRecentTrades(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:trades")
	defer cleanup()

	roster, err := LoadCommitteeRoster()
	require.NoError(t, err)

	scraper := &stubScraper{rows: sampleRows()}
	scorer := &stubScorer{}
	service := NewService(scraper, scorer, roster)

	envelope := service.GetRecentTrades(context.Background(), 3)
	require.True(t, envelope.Success)
	require.Equal(t, 2, envelope.Count)
	require.Len(t, envelope.Trades, 2)
	require.Equal(t, 3, scraper.page)
	require.Equal(t, 2, scorer.calls)

	first := envelope.Trades[0]
	require.Equal(t, "Nancy Pelosi", first.Member)
	require.Equal(t, []string{"Financial Services"}, first.Committees)
	require.NotNil(t, first.Analysis)
	require.Equal(t, 0.5, *first.Analysis.WeightedAverage)

	// member not on the roster, no scorer failure either way
	require.Nil(t, envelope.Trades[1].Committees)
}

func TestGetRecentTradesScrapeFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:trades")
	defer cleanup()

	scraper := &stubScraper{err: errors.New("connection refused")}
	service := NewService(scraper, nil, nil)

	envelope := service.GetRecentTrades(context.Background(), 1)
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Trades)
	require.Empty(t, envelope.Trades)
	require.Contains(t, envelope.Message, "failed to fetch trades")
	require.Contains(t, envelope.Message, "connection refused")
}

func TestHandleGetTrades(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:trades")
	defer cleanup()

	scraper := &stubScraper{rows: sampleRows()}
	service := NewService(scraper, nil, nil)

	mux := http.NewServeMux()
	service.RegisterRoutes(mux, "*")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trades?page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, 2, scraper.page)

	var envelope Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.Equal(t, 2, envelope.Count)
}

func TestHandleGetTradesBadPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:trades")
	defer cleanup()

	service := NewService(&stubScraper{}, nil, nil)
	mux := http.NewServeMux()
	service.RegisterRoutes(mux, "*")

	for _, page := range []string{"zero", "0", "-2"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trades?page="+page, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, "page %q", page)
	}
}

func TestHandleGetTradesPreflight(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:trades")
	defer cleanup()

	service := NewService(&stubScraper{}, nil, nil)
	mux := http.NewServeMux()
	service.RegisterRoutes(mux, "http://localhost:5173")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/trades", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/trades", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
