package main

import (
	"log/slog"
	"net/http"

	"tradewatch-backend/lib/configutil"
	"tradewatch-backend/lib/scrapers/capitoltrades"
	"tradewatch-backend/lib/serviceutil"
	"tradewatch-backend/lib/telemetry"
	"tradewatch-backend/services/analyst"
	"tradewatch-backend/services/trades"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "tradesd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	port := config.Port
	if port == 0 {
		port = 8400
	}
	allowedOrigin := config.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	scraper, err := capitoltrades.NewClient(capitoltrades.ClientOptions{
		BaseUrl:    config.Scraper.BaseUrl,
		RetryDelay: config.Scraper.RetryDelay(),
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize scraper", err)
	}

	roster, err := trades.LoadCommitteeRoster()
	if err != nil {
		serviceutil.Fatal("failed to load committee roster", err)
	}

	var scorer trades.Scorer
	if config.Openai.ApiKey != "" {
		service := analyst.NewService(config.Openai)
		scorer = service
	} else {
		slog.Info("no openai api key configured, trade analysis disabled")
	}

	service := trades.NewService(scraper, scorer, roster)
	mux := http.NewServeMux()
	service.RegisterRoutes(mux, allowedOrigin)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serviceutil.StartHttpServer(port, mux)
}
