package trades

import (
	"context"
	"database/sql"
	"time"

	"tradewatch-backend/lib/scrapers/capitoltrades"

	"go.opentelemetry.io/otel/codes"
)

// SaveSnapshot persists one page's raw rows for offline inspection. It
// sits beside the CSV dump and never participates in serving.
func SaveSnapshot(ctx context.Context, db *sql.DB, page int, rows []capitoltrades.RawTradeRecord) error {
	ctx, span := tracer.Start(ctx, "trades:SaveSnapshot")
	defer span.End()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return err
	}
	defer tx.Rollback()

	scrapedAt := time.Now().UTC().Format(time.RFC3339)
	for _, r := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trade_snapshot (
				scraped_at, page, politician, issuer, ticker,
				published_date, traded_date, owner, transaction_type,
				amount_range, reported_price, source
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			scrapedAt, page, r.Politician, r.Issuer, r.Ticker,
			r.PublishedDate, r.TradedDate, r.Owner, r.TransactionType,
			r.AmountRange, r.ReportedPrice, r.Source,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to insert snapshot row")
			return err
		}
	}

	return tx.Commit()
}
