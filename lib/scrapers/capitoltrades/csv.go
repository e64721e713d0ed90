package capitoltrades

import (
	"encoding/csv"
	"io"
)

var csvHeader = []string{
	"politician", "issuer", "ticker", "published_date", "traded_date",
	"owner", "transaction_type", "amount_range", "reported_price", "source",
}

// WriteCSV dumps rows for offline inspection, one line per record in
// extraction order.
func WriteCSV(w io.Writer, rows []RawTradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		err := cw.Write([]string{
			r.Politician, r.Issuer, r.Ticker, r.PublishedDate, r.TradedDate,
			r.Owner, r.TransactionType, r.AmountRange, r.ReportedPrice, r.Source,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
