package capitoltrades

// RawTradeRecord is one trade mention as extracted from the listing
// page, with no normalization applied. Optional fields hold the empty
// string when the page did not yield a confident match, nothing is
// ever defaulted to a guessed value.
type RawTradeRecord struct {
	Politician      string `json:"politician"`
	Issuer          string `json:"issuer"`
	Ticker          string `json:"ticker,omitempty"`
	PublishedDate   string `json:"published_date,omitempty"`
	TradedDate      string `json:"traded_date,omitempty"`
	Owner           string `json:"owner,omitempty"`
	TransactionType string `json:"transaction_type,omitempty"`
	AmountRange     string `json:"amount_range,omitempty"`
	ReportedPrice   string `json:"reported_price,omitempty"`
	Source          string `json:"source"`
}
