package commands

import (
	"log/slog"
	"os"
	"time"

	"tradewatch-backend/lib/restyutil"
	"tradewatch-backend/lib/scrapers/capitoltrades"
	"tradewatch-backend/lib/serviceutil"
	"tradewatch-backend/lib/sqliteutil"
	"tradewatch-backend/services/trades"
	"tradewatch-backend/services/trades/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	scrapePage      *int
	scrapeCsv       *string
	scrapeDb        *string
	scrapeDebugHttp *string
)

func init() {
	scrapePage = scrapeCmd.Flags().Int("page", 1, "The listing page to scrape.")
	scrapeCsv = scrapeCmd.Flags().String("csv", "", "Write raw rows to this CSV file.")
	scrapeDb = scrapeCmd.Flags().String("db", "", "Write raw rows to this sqlite database.")
	scrapeDebugHttp = scrapeCmd.Flags().String("debug-http", "", "Dump raw HTTP exchanges to this directory.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--page <n>] [--csv <path/to/out.csv>] [--db <path/to/out.db>]",
	Short: "Scrapes one page of trade disclosures and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		if *scrapeDebugHttp != "" {
			capitoltrades.SetHttpCaptureOutput(restyutil.NewFilesystemOutput(*scrapeDebugHttp))
		}

		client, err := capitoltrades.NewClient(capitoltrades.ClientOptions{})
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		t1 := time.Now()
		rows, err := client.ScrapeRecent(cmd.Context(), *scrapePage)
		if err != nil {
			serviceutil.Fatal("failed to scrape", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds(), "rows", len(rows))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Politician", "Issuer", "Ticker", "Published", "Traded",
			"Owner", "Type", "Size",
		})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.Politician, r.Issuer, r.Ticker, r.PublishedDate, r.TradedDate,
				r.Owner, r.TransactionType, r.AmountRange,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if *scrapeCsv != "" {
			f, err := os.Create(*scrapeCsv)
			if err != nil {
				serviceutil.Fatal("failed to create csv file", err)
			}
			defer f.Close()
			if err := capitoltrades.WriteCSV(f, rows); err != nil {
				serviceutil.Fatal("failed to write csv", err)
			}
			slog.Info("wrote csv", "path", *scrapeCsv)
		}

		if *scrapeDb != "" {
			out, err := sqliteutil.OpenDB(db.Schema, *scrapeDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer out.Close()
			if err := trades.SaveSnapshot(cmd.Context(), out, *scrapePage, rows); err != nil {
				serviceutil.Fatal("failed to save snapshot", err)
			}
			slog.Info("wrote snapshot", "path", *scrapeDb)
		}
	},
}
