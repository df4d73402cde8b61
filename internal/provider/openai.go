package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// openAIBackend calls the OpenAI chat completions endpoint.
type openAIBackend struct {
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newOpenAIBackend(cfg Config) *openAIBackend {
	return &openAIBackend{
		model:      cfg.model(defaultOpenAIModel),
		baseURL:    cfg.baseURL(defaultOpenAIBaseURL),
		httpClient: &http.Client{Timeout: cfg.timeout()},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openAIBackend) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req := openAIRequest{
		Model:       o.model,
		MaxTokens:   defaultMaxTokens,
		Temperature: temperature,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: ErrorTransient, Provider: KindOpenAI, Err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: ErrorTransient, Provider: KindOpenAI, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(KindOpenAI, resp.StatusCode, string(body))
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return "", &Error{Kind: ErrorMalformed, Provider: KindOpenAI, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(openAIResp.Choices) == 0 {
		return "", &Error{Kind: ErrorMalformed, Provider: KindOpenAI, Err: fmt.Errorf("empty response from API")}
	}

	return openAIResp.Choices[0].Message.Content, nil
}
