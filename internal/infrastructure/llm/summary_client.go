package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"InterviewScanner/internal/config"
	"InterviewScanner/internal/ports"
)

// SummaryClient posts aggregated batch statistics to an OpenAI-compatible
// chat API for an optional narrative summary. The core only hands numbers
// over; the system prompt forbids the narrator from changing them.
type SummaryClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.SummaryClient = (*SummaryClient)(nil)

// NewSummaryClient builds a client from configuration.
func NewSummaryClient(cfg config.SummaryConfig) *SummaryClient {
	return &SummaryClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SendDigest posts the JSON statistics payload as a user message.
func (c *SummaryClient) SendDigest(ctx context.Context, payload []byte) error {
	if c == nil {
		return fmt.Errorf("summary client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return fmt.Errorf("summary client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt)},
			{"role": "user", "content": string(payload)},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal summary payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("summary api error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "面談分析の集計結果を簡潔な日本語レポートにまとめてください。数値は一切変更しないこと。"
	}
	return prompt
}
