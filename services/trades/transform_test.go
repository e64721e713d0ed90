package trades

import (
	"testing"

	"tradewatch-backend/lib/scrapers/capitoltrades"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromRaw(t *testing.T) {
	raw := capitoltrades.RawTradeRecord{
		Politician:      "Jane Doe (House)",
		Issuer:          "Widget Inc (WDGT:US)",
		Ticker:          "WDGT",
		PublishedDate:   "12 Jan 2024",
		TradedDate:      "10 Jan 2024",
		Owner:           "Self",
		TransactionType: "Buy",
		AmountRange:     "15K–50K",
		Source:          capitoltrades.BaseUrl,
	}

	got := FromRaw(raw)
	want := Trade{
		Id:         got.Id,
		Timestamp:  "2024-01-12T00:00:00Z",
		Member:     "Jane Doe",
		Chamber:    "House",
		Ticker:     "WDGT",
		Company:    "Widget Inc",
		Type:       "purchase",
		AmountMin:  15_000,
		AmountMax:  50_000,
		AmountText: "15K–50K",
		Source:     capitoltrades.BaseUrl,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected trade (-want +got):\n%s", diff)
	}
	require.Len(t, got.Id, 16)
}

func TestFromRawDerivesTicker(t *testing.T) {
	got := FromRaw(capitoltrades.RawTradeRecord{
		Politician: "John Smith (Senate)",
		Issuer:     "Microsoft (MSFT)",
	})
	require.Equal(t, "MSFT", got.Ticker)
	require.Equal(t, "Senate", got.Chamber)
}

func TestCleanMemberName(t *testing.T) {
	cases := map[string]string{
		"Jane Doe (House)":            "Jane Doe",
		"John Smith Republican House": "John Smith",
		"Jane  Doe Democrat Senate":   "Jane Doe",
		"Jane Doe":                    "Jane Doe",
	}
	for in, want := range cases {
		require.Equal(t, want, cleanMemberName(in), "input %q", in)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	require.Equal(t, "2024-01-12T00:00:00Z", normalizeTimestamp("12 Jan 2024"))
	require.Equal(t, "2024-01-12T00:00:00Z", normalizeTimestamp("2024-01-12"))
	require.Equal(t, "2024-01-12T00:00:00Z", normalizeTimestamp("12 January 2024"))
	// an unparseable date passes through untouched instead of being
	// replaced with a fabricated one
	require.Equal(t, "yesterday", normalizeTimestamp("yesterday"))
	require.Equal(t, "", normalizeTimestamp("  "))
}

func TestAmountBounds(t *testing.T) {
	low, high := amountBounds("15K–50K")
	require.Equal(t, 15_000.0, low)
	require.Equal(t, 50_000.0, high)

	low, high = amountBounds("Over 1M")
	require.Equal(t, 1_000_000.0, low)
	require.Equal(t, 0.0, high)

	low, high = amountBounds("$1,001 – $15,000")
	require.Equal(t, 1_001.0, low)
	require.Equal(t, 15_000.0, high)

	low, high = amountBounds("")
	require.Equal(t, 0.0, low)
	require.Equal(t, 0.0, high)
}

// an unmapped verb must not silently turn into a sale
func TestMapTransactionType(t *testing.T) {
	require.Equal(t, "purchase", mapTransactionType("Buy"))
	require.Equal(t, "sale", mapTransactionType("sell"))
	require.Equal(t, "exchange", mapTransactionType("Exchange"))
	require.Equal(t, "", mapTransactionType("received"))
	require.Equal(t, "", mapTransactionType(""))
}

func TestDeriveIdStable(t *testing.T) {
	a := capitoltrades.RawTradeRecord{Politician: "Jane Doe", Issuer: "Acme", PublishedDate: "12 Jan 2024"}
	b := a
	require.Equal(t, deriveId(a), deriveId(b))

	b.TradedDate = "10 Jan 2024"
	require.NotEqual(t, deriveId(a), deriveId(b))
}
