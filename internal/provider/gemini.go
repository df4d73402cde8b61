package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// Shared client defaults. ~50 requests per minute with small bursts keeps
// every provider under its free-tier quota.
const (
	defaultTimeout   = 60 * time.Second
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
	defaultMaxTokens = 2048
	temperature      = 0.3
)

// geminiBackend calls the Gemini generateContent endpoint.
type geminiBackend struct {
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newGeminiBackend(cfg Config) *geminiBackend {
	return &geminiBackend{
		model:      cfg.model(defaultGeminiModel),
		baseURL:    cfg.baseURL(defaultGeminiBaseURL),
		httpClient: &http.Client{Timeout: cfg.timeout()},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiBackend) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Config: geminiGenConfig{
			Temperature:     temperature,
			MaxOutputTokens: defaultMaxTokens,
		},
	}
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, g.model, url.QueryEscape(apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: ErrorTransient, Provider: KindGemini, Err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: ErrorTransient, Provider: KindGemini, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(KindGemini, resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", &Error{Kind: ErrorMalformed, Provider: KindGemini, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Kind: ErrorMalformed, Provider: KindGemini, Err: fmt.Errorf("empty response from API")}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
