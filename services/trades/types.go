package trades

import "tradewatch-backend/services/analyst"

// Trade is the presentation-layer record served to clients, one per
// extracted RawTradeRecord.
type Trade struct {
	Id          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Member      string              `json:"member"`
	Chamber     string              `json:"chamber,omitempty"`
	Ticker      string              `json:"ticker"`
	Company     string              `json:"company,omitempty"`
	Type        string              `json:"type,omitempty"`
	AmountMin   float64             `json:"amountMin,omitempty"`
	AmountMax   float64             `json:"amountMax,omitempty"`
	AmountText  string              `json:"amountText,omitempty"`
	Committees  []string            `json:"committees,omitempty"`
	Description string              `json:"description,omitempty"`
	Source      string              `json:"source,omitempty"`
	Analysis    *analyst.TradeScore `json:"analysis,omitempty"`
}

// Envelope is the response shape of the trades API. Trades is always
// present, possibly empty, and Success=false carries the failure in
// Message instead of an error status.
type Envelope struct {
	Trades  []Trade `json:"trades"`
	Message string  `json:"message"`
	Success bool    `json:"success"`
	Count   int     `json:"count"`
}
