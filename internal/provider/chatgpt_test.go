package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"focusd/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatGPTForTest(t *testing.T, handler http.HandlerFunc) *ChatGPTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewChatGPTClient(logging.NewDefault("error"))
	c.baseURL = srv.URL
	return c
}

func TestChatGPTCall_Success(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	c := newChatGPTForTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hello from chatgpt"}}]}`))
	})

	out, err := c.Call(context.Background(), "sk-test", "summarize my day", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Hello from chatgpt", out)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, chatGPTDefaultModel, gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "summarize my day", gotBody.Messages[0].Content)
	assert.Equal(t, chatGPTMaxTokens, gotBody.MaxTokens)
}

func TestChatGPTCall_ModelOverride(t *testing.T) {
	var gotBody chatRequest
	c := newChatGPTForTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := c.Call(context.Background(), "sk-test", "p", Options{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", gotBody.Model)
}

func TestChatGPTCall_RetriesThenSucceeds(t *testing.T) {
	var stamps []time.Time
	c := newChatGPTForTest(t, func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		if len(stamps) < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"third time lucky"}}]}`))
	})

	out, err := c.Call(context.Background(), "sk-test", "p", Options{})
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", out)
	require.Len(t, stamps, 3)

	// backoff grows between attempts
	gap1 := stamps[1].Sub(stamps[0])
	gap2 := stamps[2].Sub(stamps[1])
	assert.GreaterOrEqual(t, gap1, backoffBase)
	assert.GreaterOrEqual(t, gap2, gap1)
}

func TestChatGPTCall_ExhaustedBudget(t *testing.T) {
	attempts := 0
	c := newChatGPTForTest(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "still broken", http.StatusInternalServerError)
	})

	_, err := c.Call(context.Background(), "sk-test", "p", Options{})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "still broken")
}

func TestChatGPTCall_BadJSONIsTerminal(t *testing.T) {
	attempts := 0
	c := newChatGPTForTest(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	})

	_, err := c.Call(context.Background(), "sk-test", "p", Options{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "protocol mismatch must not be retried")
	assert.Contains(t, err.Error(), "unparseable")
}
