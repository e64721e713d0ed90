package trades

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tradewatch-backend/lib/scrapers/capitoltrades"
)

var (
	parenAnnotation  = regexp.MustCompile(`\s*\([^)]*\)`)
	memberAnnotation = regexp.MustCompile(`\b(?:Democrat|Republican|Independent|House|Senate)\b`)
	multiSpace       = regexp.MustCompile(`\s+`)
	tickerUSRegex    = regexp.MustCompile(`\b([A-Z]{1,6}):US\b`)
	tickerParenRegex = regexp.MustCompile(`\(([A-Z]{1,6})\)`)
	rangeBoundRegex  = regexp.MustCompile(`\$?([\d,]+)`)
	usSuffixRegex    = regexp.MustCompile(`:US\b`)
)

// cleanMemberName strips the party and chamber annotations the listing
// glues onto the politician's name.
func cleanMemberName(politician string) string {
	name := parenAnnotation.ReplaceAllString(politician, "")
	name = memberAnnotation.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.Trim(name, " \t\n")
}

func chamberOf(politician string) string {
	switch {
	case strings.Contains(politician, "House"):
		return "House"
	case strings.Contains(politician, "Senate"):
		return "Senate"
	}
	return ""
}

// deriveTicker recovers a ticker from the issuer text when the record
// itself carries none, e.g. "Acme Corp:US" or "Widget Inc (WDGT)".
func deriveTicker(issuer string) string {
	if m := tickerUSRegex.FindStringSubmatch(issuer); m != nil {
		return m[1]
	}
	if m := tickerParenRegex.FindStringSubmatch(issuer); m != nil {
		return m[1]
	}
	return ""
}

// the listing is not consistent about date rendering, so parsing tries
// every layout that has been observed before giving up
var dateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2006-01-02",
	"Jan 2, 2006",
}

// normalizeTimestamp converts a raw date string to RFC 3339 at UTC
// midnight. The raw text is returned untouched when no layout matches,
// clients prefer an odd string over a fabricated date.
func normalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return raw
}

// disclosure buckets as rendered by the listing
var amountBuckets = map[string][2]float64{
	"1K–15K":    {1_000, 15_000},
	"15K–50K":   {15_000, 50_000},
	"50K–100K":  {50_000, 100_000},
	"100K–250K": {100_000, 250_000},
	"250K–500K": {250_000, 500_000},
	"500K–1M":   {500_000, 1_000_000},
	"Over 1M":   {1_000_000, 0},
}

// amountBounds resolves a bucket label or a literal "$N – $M" range to
// numeric bounds. Unknown labels resolve to zeroes, the original text
// is kept alongside either way.
func amountBounds(amountRange string) (float64, float64) {
	if bounds, ok := amountBuckets[amountRange]; ok {
		return bounds[0], bounds[1]
	}
	matches := rangeBoundRegex.FindAllStringSubmatch(amountRange, 2)
	if len(matches) == 2 {
		low, err1 := strconv.ParseFloat(strings.ReplaceAll(matches[0][1], ",", ""), 64)
		high, err2 := strconv.ParseFloat(strings.ReplaceAll(matches[1][1], ",", ""), 64)
		if err1 == nil && err2 == nil {
			return low, high
		}
	}
	return 0, 0
}

// mapTransactionType maps the listing's verbs onto the API's types. An
// unrecognized verb maps to the empty string on purpose: the upstream
// system defaulted unknowns to "sale", which conflated absence with an
// actual sale.
func mapTransactionType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy":
		return "purchase"
	case "sell":
		return "sale"
	case "exchange":
		return "exchange"
	}
	return ""
}

// deriveId builds a stable identifier, the listing exposes none of its
// own.
func deriveId(r capitoltrades.RawTradeRecord) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		r.Politician, r.Issuer, r.PublishedDate, r.TradedDate, r.AmountRange,
	}, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

// FromRaw maps one extracted record into the presentation shape.
// Committee population and scoring are layered on by the service.
func FromRaw(r capitoltrades.RawTradeRecord) Trade {
	ticker := r.Ticker
	if ticker == "" {
		ticker = deriveTicker(r.Issuer)
	}
	amountMin, amountMax := amountBounds(r.AmountRange)

	company := parenAnnotation.ReplaceAllString(strings.TrimSpace(r.Issuer), "")
	company = strings.TrimSpace(usSuffixRegex.ReplaceAllString(company, ""))

	return Trade{
		Id:         deriveId(r),
		Timestamp:  normalizeTimestamp(r.PublishedDate),
		Member:     cleanMemberName(r.Politician),
		Chamber:    chamberOf(r.Politician),
		Ticker:     ticker,
		Company:    company,
		Type:       mapTransactionType(r.TransactionType),
		AmountMin:  amountMin,
		AmountMax:  amountMax,
		AmountText: r.AmountRange,
		Source:     r.Source,
	}
}
