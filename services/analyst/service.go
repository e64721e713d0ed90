package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/analyst")

const defaultModel = "gpt-4o-mini"

// ChatClient is the minimal surface needed from an OpenAI-compatible
// backend, kept narrow so tests can stub it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Service struct {
	client ChatClient
	model  string
}

func NewService(cfg Config) Service {
	clientCfg := openai.DefaultConfig(cfg.ApiKey)
	if cfg.BaseUrl != "" {
		clientCfg.BaseURL = cfg.BaseUrl
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return Service{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func NewServiceWithClient(client ChatClient, model string) Service {
	if model == "" {
		model = defaultModel
	}
	return Service{client: client, model: model}
}

// TradeContext carries the already-normalized facts about one trade
// that the model is asked to judge.
type TradeContext struct {
	Member     string
	Ticker     string
	Company    string
	Type       string
	AmountMin  float64
	AmountMax  float64
	Committees []string
}

// TradeScore is the fixed shape every scored trade carries. Nil
// sub-scores mean the trade went unscored, the record itself is always
// kept.
type TradeScore struct {
	WeightedAverage    *float64 `json:"weighted_average"`
	CommitteeAlignment *float64 `json:"committee_alignment"`
	TradeSize          *float64 `json:"trade_size"`
	Recency            *float64 `json:"recency"`
	MatchedCommittee   string   `json:"matched_committee,omitempty"`
}

func Unscored() TradeScore {
	return TradeScore{}
}

const scoreSystemPrompt = `You rate disclosed congressional stock trades for how much ` +
	`independent attention they deserve. Respond with a JSON object holding ` +
	`"committee_alignment", "trade_size" and "recency" scores from 0 to 100, a ` +
	`"weighted_average" of the three, and "matched_committee" naming the committee that ` +
	`aligns with the traded company, or an empty string when none does.`

// Score asks the model to rate one trade. Any provider failure
// degrades to the unscored state rather than dropping the trade.
func (s Service) Score(ctx context.Context, trade TradeContext) TradeScore {
	ctx, span := tracer.Start(ctx, "analyst:Score")
	defer span.End()
	span.SetAttributes(
		attribute.String("member", trade.Member),
		attribute.String("ticker", trade.Ticker),
	)

	res, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scoreSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(trade)},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring request failed")
		slog.WarnContext(ctx, "trade left unscored", "member", trade.Member, "err", err)
		return Unscored()
	}
	if len(res.Choices) == 0 {
		span.SetStatus(codes.Error, "scoring response held no choices")
		return Unscored()
	}

	var out struct {
		WeightedAverage    float64 `json:"weighted_average"`
		CommitteeAlignment float64 `json:"committee_alignment"`
		TradeSize          float64 `json:"trade_size"`
		Recency            float64 `json:"recency"`
		MatchedCommittee   string  `json:"matched_committee"`
	}
	content := strings.TrimSpace(res.Choices[0].Message.Content)
	err = json.Unmarshal([]byte(content), &out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring response was not valid json")
		return Unscored()
	}

	return TradeScore{
		WeightedAverage:    &out.WeightedAverage,
		CommitteeAlignment: &out.CommitteeAlignment,
		TradeSize:          &out.TradeSize,
		Recency:            &out.Recency,
		MatchedCommittee:   out.MatchedCommittee,
	}
}

func buildPrompt(trade TradeContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Member: %s\n", trade.Member)
	fmt.Fprintf(&b, "Ticker: %s\n", trade.Ticker)
	if trade.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", trade.Company)
	}
	if trade.Type != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", trade.Type)
	}
	if trade.AmountMin > 0 || trade.AmountMax > 0 {
		fmt.Fprintf(&b, "Amount: $%.0f - $%.0f\n", trade.AmountMin, trade.AmountMax)
	}
	if len(trade.Committees) > 0 {
		fmt.Fprintf(&b, "Committees: %s\n", strings.Join(trade.Committees, ", "))
	}
	return b.String()
}
