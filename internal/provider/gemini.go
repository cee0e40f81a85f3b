package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"focusd/internal/logging"

	"github.com/sethvargo/go-retry"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.0-flash"

	// Raw Google API keys carry this prefix; anything else is assumed to be
	// an OAuth-style bearer token. The Generative Language API accepts both
	// through the same endpoint, with different auth plumbing.
	googleAPIKeyPrefix = "AIza"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// GeminiClient calls the generateContent endpoint. The auth scheme branches
// on the key's lexical shape: raw API keys go as a query parameter plus the
// x-goog-api-key header, everything else as a bearer token.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

func NewGeminiClient(log logging.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{},
		log:        log.With("provider", "gemini"),
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Call(ctx context.Context, apiKey, prompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = geminiDefaultModel
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	isRawKey := strings.HasPrefix(apiKey, googleAPIKeyPrefix)
	if isRawKey {
		endpoint += "?key=" + url.QueryEscape(apiKey)
	}

	attempt := 0

	var result string
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(backoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		callCtx, cancel := context.WithTimeout(ctx, opts.timeout())
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if isRawKey {
			req.Header.Set("x-goog-api-key", apiKey)
		} else {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warn(ctx, "transport error", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err := fmt.Errorf("Gemini API error: %s: %s", resp.Status, respBody)
			c.log.Warn(ctx, "non-success status", "attempt", attempt, "status", resp.StatusCode)
			return retry.RetryableError(err)
		}

		var payload any
		if err := json.Unmarshal(respBody, &payload); err != nil {
			return fmt.Errorf("unparseable Gemini response: %w", err)
		}

		result = ParseGenerateContentResponse(payload)
		return nil
	})
	if err != nil {
		return "", err
	}

	c.log.Debug(ctx, "call succeeded", "model", model, "attempts", attempt)
	return result, nil
}
