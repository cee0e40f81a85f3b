package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"focusd/internal/logging"

	"github.com/sethvargo/go-retry"
)

const (
	chatGPTBaseURL      = "https://api.openai.com/v1"
	chatGPTDefaultModel = "gpt-4o-mini"
	chatGPTMaxTokens    = 800
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// ChatGPTClient calls the OpenAI-compatible chat-completions endpoint with
// bearer-token auth.
type ChatGPTClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

func NewChatGPTClient(log logging.Logger) *ChatGPTClient {
	return &ChatGPTClient{
		baseURL:    chatGPTBaseURL,
		httpClient: &http.Client{},
		log:        log.With("provider", "chatgpt"),
	}
}

func (c *ChatGPTClient) Name() string { return "chatgpt" }

func (c *ChatGPTClient) Call(ctx context.Context, apiKey, prompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = chatGPTDefaultModel
	}

	body, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: chatGPTMaxTokens,
	})
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/chat/completions"
	attempt := 0

	var result string
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(backoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		callCtx, cancel := context.WithTimeout(ctx, opts.timeout())
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+apiKey)

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
			err := fmt.Errorf("ChatGPT API error: %s: %s", resp.Status, respBody)
			c.log.Warn(ctx, "non-success status", "attempt", attempt, "status", resp.StatusCode)
			return retry.RetryableError(err)
		}

		var payload any
		if err := json.Unmarshal(respBody, &payload); err != nil {
			// a 2xx body that is not JSON is a protocol mismatch, not a
			// transient fault
			return fmt.Errorf("unparseable ChatGPT response: %w", err)
		}

		result = ParseChatResponse(payload)
		return nil
	})
	if err != nil {
		return "", err
	}

	c.log.Debug(ctx, "call succeeded", "model", model, "attempts", attempt)
	return result, nil
}
