package main

import (
	"time"

	"tradewatch-backend/services/analyst"
)

type ScraperConfig struct {
	// overrides the public listing URL, useful when pointing at a
	// mirror or a local capture
	BaseUrl string `json:"base_url"`
	// pause before the single refetch of an unrendered page, in
	// milliseconds
	RetryDelayMs int `json:"retry_delay_ms"`
}

func (c ScraperConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

type Config struct {
	Port    int            `json:"port"`
	Scraper ScraperConfig  `json:"scraper"`
	Openai  analyst.Config `json:"openai"`
	// CORS origin allowed to call the API, "*" when unset
	AllowedOrigin string `json:"allowed_origin"`
}
