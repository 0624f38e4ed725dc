// Package assist wraps the Gemini text backend for the two editing
// helpers the dashboard offers: translating content between Dutch and
// English, and suggesting titles or descriptions.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
)

// Gemini 2.5 Flash Lite: 15 RPM / 1000 RPD on the free tier, hence the
// rate-limit-aware retry protocol below.
const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-lite:generateContent"

const (
	maxAttempts       = 3
	baseRetryDelay    = 5 * time.Second
	defaultRetryAfter = 30 * time.Second
)

var (
	ErrUpstream      = errors.New("assist backend error")
	ErrEmptyResponse = errors.New("empty response from assist backend")
)

// RateLimitError is returned once the quota signal persists through all
// attempts; RetryAfter is the backend's hint (or the default) so the UI
// can disable the action for that long.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewClient returns nil when no API key is configured; callers treat a
// nil client as the feature being disabled.
func NewClient(apiKey, endpoint string) *Client {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      time.Sleep,
	}
}

// Translate converts text between the two site languages. Blank input
// returns an empty result without touching the network.
func (c *Client) Translate(ctx context.Context, text string, from, to locale.Locale) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return c.generate(ctx, translatePrompt(text, from, to))
}

// Suggest produces a title (3-8 words) or description (2-4 sentences)
// for a portfolio item, optionally steered by existing content.
func (c *Client) Suggest(ctx context.Context, sctx SuggestionContext, field Field, loc locale.Locale) (string, error) {
	return c.generate(ctx, suggestPrompt(sctx, field, loc))
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
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
	Error *geminiError `json:"error"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// generate runs one prompt through the bounded retry protocol: only a
// rate-limit signal is retried, everything else fails on the spot.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: client not configured", ErrUpstream)
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", fmt.Errorf("assist marshal payload: %w", err)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, hint, rateLimited, err := c.request(ctx, payload)
		if err != nil {
			return "", err
		}
		if !rateLimited {
			return text, nil
		}
		if attempt == maxAttempts {
			return "", &RateLimitError{RetryAfter: hint}
		}
		c.sleep(retryWait(attempt, hint))
	}
	return "", &RateLimitError{RetryAfter: defaultRetryAfter}
}

func (c *Client) request(ctx context.Context, payload []byte) (text string, hint time.Duration, rateLimited bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", 0, false, fmt.Errorf("assist create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if after, ok := parseRateLimit(body); ok {
			return "", after, true, nil
		}
		return "", 0, false, fmt.Errorf("%w: status=%d body=%s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, false, fmt.Errorf("assist decode response: %w", err)
	}
	if out.Error != nil {
		return "", 0, false, fmt.Errorf("%w: %s", ErrUpstream, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", 0, false, ErrEmptyResponse
	}
	result := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if result == "" {
		return "", 0, false, ErrEmptyResponse
	}
	return result, 0, false, nil
}

var retryHint = regexp.MustCompile(`(?i)retry in (\d+(?:\.\d+)?)`)

// parseRateLimit inspects an error body for the quota-exhausted signal
// (code 429) and extracts the suggested wait from the human-readable
// message, falling back to a conservative default.
func parseRateLimit(body []byte) (time.Duration, bool) {
	var parsed struct {
		Error *geminiError `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return 0, false
	}
	if parsed.Error.Code != http.StatusTooManyRequests {
		return 0, false
	}
	if m := retryHint.FindStringSubmatch(parsed.Error.Message); m != nil {
		if secs, err := strconv.ParseFloat(m[1], 64); err == nil {
			return time.Duration(secs * float64(time.Second)), true
		}
	}
	return defaultRetryAfter, true
}

// retryWait picks the sleep before the next attempt: the backend's hint
// when it is longer than the scaled floor of 5s x attempt.
func retryWait(attempt int, hint time.Duration) time.Duration {
	scaled := time.Duration(attempt) * baseRetryDelay
	if hint > scaled {
		return hint
	}
	return scaled
}
