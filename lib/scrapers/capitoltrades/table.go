package capitoltrades

import (
	"tradewatch-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// column headers the trades table is expected to carry, each mapped to
// the canonical field it feeds
var tableColumns = map[string]func(*RawTradeRecord, string){
	"Politician":    func(r *RawTradeRecord, v string) { r.Politician = v },
	"Traded Issuer": func(r *RawTradeRecord, v string) { r.Issuer = v },
	"Published":     func(r *RawTradeRecord, v string) { r.PublishedDate = v },
	"Traded":        func(r *RawTradeRecord, v string) { r.TradedDate = v },
	"Owner":         func(r *RawTradeRecord, v string) { r.Owner = v },
	"Type":          func(r *RawTradeRecord, v string) { r.TransactionType = v },
	"Size":          func(r *RawTradeRecord, v string) { r.AmountRange = v },
	"Price":         func(r *RawTradeRecord, v string) { r.ReportedPrice = v },
}

// Price only shows up on some renders, the rest are required
var requiredColumns = []string{
	"Politician", "Traded Issuer", "Published", "Traded", "Owner", "Type", "Size",
}

// extractTable scans every table in the document for one whose header
// set covers the expected schema. The first match in document order
// wins, no match is a normal outcome rather than an error.
func extractTable(doc *goquery.Document, source string) ([]RawTradeRecord, bool) {
	var rows []RawTradeRecord

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		headers := tableHeaders(table)
		if !hasRequiredColumns(headers) {
			return true // keep looking
		}

		trs := table.Find("tbody tr")
		if table.Find("thead tr").Length() == 0 && trs.Length() > 0 {
			// without a thead the header row got parsed into the
			// implied tbody, skip it
			trs = trs.Slice(1, trs.Length())
		}

		trs.Each(func(_ int, tr *goquery.Selection) {
			record := RawTradeRecord{Source: source}
			matched := false
			tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
				if i >= len(headers) {
					return
				}
				assign, ok := tableColumns[headers[i]]
				if !ok {
					return
				}
				assign(&record, htmlutil.Flatten(cell.Text()))
				matched = true
			})
			if matched {
				rows = append(rows, record)
			}
		})
		return false // schema matched, ignore later tables
	})

	return rows, len(rows) > 0
}

func tableHeaders(table *goquery.Selection) []string {
	cells := table.Find("thead tr").First().Find("th, td")
	if cells.Length() == 0 {
		cells = table.Find("tr").First().Find("th, td")
	}
	var headers []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, htmlutil.Flatten(cell.Text()))
	})
	return headers
}

func hasRequiredColumns(headers []string) bool {
	set := map[string]bool{}
	for _, h := range headers {
		set[h] = true
	}
	for _, want := range requiredColumns {
		if !set[want] {
			return false
		}
	}
	return true
}
