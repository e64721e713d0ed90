package trades

import (
	"context"
	"testing"

	"tradewatch-backend/lib/testutil"
	"tradewatch-backend/services/trades/db"

	"github.com/stretchr/testify/require"
)

func TestSaveSnapshot(t *testing.T) {
	service, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "trades",
		DbSchema: db.Schema,
	})
	defer cleanup()

	err := SaveSnapshot(context.Background(), service.DB, 2, sampleRows())
	require.NoError(t, err)

	var count int
	err = service.DB.QueryRow("SELECT COUNT(*) FROM trade_snapshot").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	var politician, amountRange string
	err = service.DB.QueryRow(
		"SELECT politician, amount_range FROM trade_snapshot WHERE page = 2 ORDER BY id LIMIT 1",
	).Scan(&politician, &amountRange)
	require.NoError(t, err)
	require.Equal(t, "Nancy Pelosi (House)", politician)
	require.Equal(t, "1K–15K", amountRange)
}
