package capitoltrades

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// detailLinkMarker and the "Politician" column header are the two
// content markers: a response carrying neither is the transient CDN
// loading shell, not a real listing.
const detailLinkMarker = "Goto trade detail page"

func looksLikeShell(html string) bool {
	return !strings.Contains(html, detailLinkMarker) &&
		!strings.Contains(html, "Politician")
}

// FetchWithRetry fetches url once and, when the body looks like the
// loading shell, waits RetryDelay and fetches exactly one more time.
// Fetch errors are returned as-is and never retried.
func (c *Client) FetchWithRetry(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchWithRetry")
	defer span.End()

	html, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if !looksLikeShell(html) {
		return html, nil
	}

	span.AddEvent("shell detected")
	slog.DebugContext(ctx, "got loading shell, refetching once", "url", url)
	time.Sleep(c.RetryDelay)
	return c.Fetch(ctx, url)
}

// strategies are tried in order, the first one yielding rows wins. The
// table render is cheaper and more reliable when present, so it always
// goes first.
type strategy struct {
	name    string
	extract func(doc *goquery.Document, source string) ([]RawTradeRecord, bool)
}

var strategies = []strategy{
	{name: "table", extract: extractTable},
	{name: "cards", extract: extractCards},
}

// PageUrl builds the listing URL for a 1-based page index, page 1 is
// the bare listing.
func (c *Client) PageUrl(page int) string {
	if page <= 1 {
		return c.BaseUrl
	}
	return fmt.Sprintf("%s?page=%d", c.BaseUrl, page)
}

// ScrapeRecent fetches one listing page and extracts whatever trade
// records it can. Both strategies coming up empty is a normal outcome
// and yields an empty (never nil) slice, a failed fetch is the only
// error path.
func (c *Client) ScrapeRecent(ctx context.Context, page int) ([]RawTradeRecord, error) {
	ctx, span := tracer.Start(ctx, "client:ScrapeRecent")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	url := c.PageUrl(page)
	html, err := c.FetchWithRetry(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	for _, s := range strategies {
		rows, found := s.extract(doc, url)
		if found {
			slog.DebugContext(ctx, "extracted trade records",
				"strategy", s.name, "rows", len(rows))
			span.SetAttributes(
				attribute.String("strategy", s.name),
				attribute.Int("rows", len(rows)),
			)
			return rows, nil
		}
	}

	slog.DebugContext(ctx, "no strategy yielded rows", "url", url)
	return []RawTradeRecord{}, nil
}
