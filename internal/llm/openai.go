package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulseboard/internal/logger"
	"pulseboard/internal/models"

	"github.com/sashabaranov/go-openai"
)

// maxPromptRows caps the rows serialized into a prompt
const maxPromptRows = 200

const systemPrompt = "You are a concise data analyst. Summarize the table you are given in at most " +
	"five short Markdown bullet points. Mention notable extremes and spreads. Do not invent data."

// OpenAIClient writes short Markdown narratives for result tables
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client. baseURL may be empty for the public API.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: 60 * time.Second,
		log:     logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// SummarizePrices narrates a price table
func (c *OpenAIClient) SummarizePrices(ctx context.Context, table models.PriceTable) (string, error) {
	if len(table) > maxPromptRows {
		table = table[:maxPromptRows]
	}
	payload, err := json.Marshal(table)
	if err != nil {
		return "", fmt.Errorf("failed to marshal price table: %w", err)
	}
	return c.complete(ctx, "Cryptocurrency spot prices (asset, currency, price):\n"+string(payload))
}

// SummarizeQuakes narrates an earthquake table
func (c *OpenAIClient) SummarizeQuakes(ctx context.Context, table models.QuakeTable) (string, error) {
	total := len(table)
	if total > maxPromptRows {
		table = table[:maxPromptRows]
	}
	payload, err := json.Marshal(table)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quake table: %w", err)
	}
	return c.complete(ctx, fmt.Sprintf("USGS earthquake events (%d total, first %d shown):\n%s", total, len(table), payload))
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   600,
		Temperature: 0.3,
	})
	if err != nil {
		c.log.Error("OpenAI API error", err, map[string]interface{}{"model": c.model})
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Info("Generated narrative", map[string]interface{}{"chars": len(text), "model": c.model})
	return text, nil
}
