package capitoltrades

import (
	"regexp"

	"tradewatch-backend/lib/htmlutil"
	"tradewatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// maximum number of ancestors to climb from a detail link before the
// anchor is given up on
const maxCardDepth = 6

var (
	detailLinkRegex  = regexp.MustCompile(`(?i)goto trade detail page`)
	tickerUSRegex    = regexp.MustCompile(`\b([A-Z]{1,6}):US\b`)
	tickerParenRegex = regexp.MustCompile(`\(([A-Z]{1,6})\)`)
	dateRegex        = regexp.MustCompile(`\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`)
	ownerRegex       = regexp.MustCompile(`(?i)\b(?:Spouse|Self|Joint|Undisclosed)\b`)
	txTypeRegex      = regexp.MustCompile(`(?i)\b(?:buy|sell|exchange)\b`)
	amountRegex      = regexp.MustCompile(`\$?\d[\d,]*\s*[–-]\s*\$?\d[\d,]*|1K–15K|15K–50K|50K–100K|100K–250K|250K–500K|500K–1M|Over 1M`)
	priceRegex       = regexp.MustCompile(`\$\d[\d,]*\.?\d*`)
)

// extractCards handles the card-based render of the listing: repeated
// blocks around "Goto trade detail page." anchors, each holding the
// politician in an h2 and the issuer in an h3, with the remaining
// fields loose in the card's text.
func extractCards(doc *goquery.Document, source string) ([]RawTradeRecord, bool) {
	var rows []RawTradeRecord

	anchors := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return detailLinkRegex.MatchString(a.Text())
	})

	anchors.Each(func(_ int, anchor *goquery.Selection) {
		card, ok := findCard(anchor)
		if !ok {
			// a card that never materialized within the depth bound is
			// skipped, not an error
			return
		}

		block := htmlutil.Flatten(card.Text())
		record := RawTradeRecord{
			Politician: htmlutil.Flatten(card.Find("h2").First().Text()),
			Issuer:     htmlutil.Flatten(card.Find("h3").First().Text()),
			Source:     source,
		}

		// each pass below is independent, a miss just leaves its field
		// empty and never blocks the others
		if m := tickerUSRegex.FindStringSubmatch(block); m != nil {
			record.Ticker = m[1]
		} else if m := tickerParenRegex.FindStringSubmatch(block); m != nil {
			record.Ticker = m[1]
		}

		// the page renders the published date before the traded date,
		// an ordering taken on faith from the source markup
		dates := dateRegex.FindAllString(block, 2)
		if len(dates) >= 1 {
			record.PublishedDate = dates[0]
		}
		if len(dates) >= 2 {
			record.TradedDate = dates[1]
		}

		if m := ownerRegex.FindString(block); m != "" {
			record.Owner = textutil.TitleCase(m)
		}
		if m := txTypeRegex.FindString(block); m != "" {
			record.TransactionType = textutil.TitleCase(m)
		}
		record.AmountRange = amountRegex.FindString(block)
		record.ReportedPrice = priceRegex.FindString(block)

		rows = append(rows, record)
	})

	return rows, len(rows) > 0
}

// findCard climbs from the detail link to the nearest ancestor holding
// both the politician (h2) and issuer (h3) headings.
func findCard(anchor *goquery.Selection) (*goquery.Selection, bool) {
	node := anchor
	for i := 0; i <= maxCardDepth; i++ {
		if node.Length() == 0 {
			return nil, false
		}
		if node.Find("h2").Length() > 0 && node.Find("h3").Length() > 0 {
			return node, true
		}
		node = node.Parent()
	}
	return nil, false
}
