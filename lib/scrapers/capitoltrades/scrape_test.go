package capitoltrades

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tradewatch-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const shellFixture = `<html><body><div id="root">Loading...</div></body></html>`

func newTestClient(t *testing.T, baseUrl string) *Client {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/capitoltrades")
	t.Cleanup(cleanup)

	client, err := NewClient(ClientOptions{
		BaseUrl:    baseUrl,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestScrapeRecentTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tableFixture)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane Doe (House)", rows[0].Politician)
	require.Equal(t, server.URL, rows[0].Source)
}

// a document carrying a well-formed table must never surface card
// output, even when cards are present too
func TestScrapeRecentTablePrecedence(t *testing.T) {
	mixed := tableFixture + cardFixture
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, mixed)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane Doe (House)", rows[0].Politician)
	// card-only fields stay empty when the table path won
	require.Empty(t, rows[0].Ticker)
}

func TestScrapeRecentCardFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, cardFixture)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "John Smith", rows[0].Politician)
	require.Equal(t, "WDGT", rows[0].Ticker)
}

func TestScrapeRecentPageUrl(t *testing.T) {
	var gotPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.String())
		fmt.Fprint(w, tableFixture)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "/?page=3", gotPath.Load())
	// every record is stamped with the URL it actually came from
	require.Equal(t, server.URL+"?page=3", rows[0].Source)
}

// neither a matching table nor detail links is an empty result, not an
// error
func TestScrapeRecentGracefulEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><h1>Politician activity</h1></body></html>")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

// a shell response triggers exactly one refetch
func TestScrapeRecentShellRetry(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, shellFixture)
			return
		}
		fmt.Fprint(w, tableFixture)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.EqualValues(t, 2, calls.Load())
}

func TestScrapeRecentShellTwice(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, shellFixture)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	rows, err := client.ScrapeRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, rows)
	// bounded to one extra attempt, never more
	require.EqualValues(t, 2, calls.Load())
}

// an http failure propagates and is never retried, the shell refetch
// only applies to 2xx responses that lack real content
func TestScrapeRecentFetchError(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ScrapeRecent(context.Background(), 1)
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}
