package trades

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"tradewatch-backend/lib/scrapers/capitoltrades"
	"tradewatch-backend/services/analyst"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/trades")

// Scraper is satisfied by capitoltrades.Client, kept as an interface so
// tests can feed canned rows.
type Scraper interface {
	ScrapeRecent(ctx context.Context, page int) ([]capitoltrades.RawTradeRecord, error)
}

// Scorer is satisfied by analyst.Service. A nil scorer disables
// enrichment entirely.
type Scorer interface {
	Score(ctx context.Context, trade analyst.TradeContext) analyst.TradeScore
}

type Service struct {
	scraper Scraper
	scorer  Scorer
	roster  *CommitteeRoster
}

func NewService(scraper Scraper, scorer Scorer, roster *CommitteeRoster) Service {
	return Service{
		scraper: scraper,
		scorer:  scorer,
		roster:  roster,
	}
}

// GetRecentTrades scrapes one listing page and maps it into the
// serving shape. A failed fetch becomes a Success=false envelope, the
// serving process never crashes over an upstream hiccup.
func (s Service) GetRecentTrades(ctx context.Context, page int) Envelope {
	ctx, span := tracer.Start(ctx, "trades:GetRecentTrades")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	rows, err := s.scraper.ScrapeRecent(ctx, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Envelope{
			Trades:  []Trade{},
			Message: fmt.Sprintf("failed to fetch trades: %s", err),
			Success: false,
		}
	}

	out := make([]Trade, 0, len(rows))
	for _, row := range rows {
		trade := FromRaw(row)
		if s.roster != nil {
			trade.Committees = s.roster.Lookup(trade.Member)
		}
		if s.scorer != nil {
			score := s.scorer.Score(ctx, analyst.TradeContext{
				Member:     trade.Member,
				Ticker:     trade.Ticker,
				Company:    trade.Company,
				Type:       trade.Type,
				AmountMin:  trade.AmountMin,
				AmountMax:  trade.AmountMax,
				Committees: trade.Committees,
			})
			trade.Analysis = &score
		}
		out = append(out, trade)
	}

	return Envelope{
		Trades:  out,
		Message: fmt.Sprintf("scraped %d trades", len(out)),
		Success: true,
		Count:   len(out),
	}
}

// RegisterRoutes mounts the trades API onto mux. allowOrigin feeds the
// CORS header, "*" in development.
func (s Service) RegisterRoutes(mux *http.ServeMux, allowOrigin string) {
	mux.HandleFunc("/api/trades", s.handleGetTrades(allowOrigin))
}

func (s Service) handleGetTrades(allowOrigin string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestId, _ := random.String(8)

		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = n
		}

		envelope := s.GetRecentTrades(r.Context(), page)

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(envelope)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to encode trades response",
				"request_id", requestId, "err", err)
			return
		}
		slog.InfoContext(r.Context(), "served trades",
			"request_id", requestId,
			"page", page,
			"count", envelope.Count,
			"success", envelope.Success,
		)
	}
}
