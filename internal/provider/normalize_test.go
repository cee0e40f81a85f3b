package provider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParseChatResponse_Variants(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "message content",
			json: `{"choices":[{"message":{"content":"Hello from chatgpt"}}]}`,
			want: "Hello from chatgpt",
		},
		{
			name: "legacy text",
			json: `{"choices":[{"text":"Legacy text"}]}`,
			want: "Legacy text",
		},
		{
			name: "content parts",
			json: `{"choices":[{"message":{"content":{"parts":["Hel","lo"]}}}]}`,
			want: "Hello",
		},
		{
			name: "parts skip non-strings",
			json: `{"choices":[{"message":{"content":{"parts":["a",5,"b"]}}}]}`,
			want: "ab",
		},
		{
			name: "top-level text",
			json: `{"text":"plain"}`,
			want: "plain",
		},
		{
			name: "first match wins over later keys",
			json: `{"choices":[{"message":{"content":"primary"},"text":"duplicate"}],"text":"duplicate"}`,
			want: "primary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseChatResponse(decode(t, tt.json)))
		})
	}
}

func TestParseChatResponse_Fallback(t *testing.T) {
	out := ParseChatResponse(decode(t, `{"unexpected":{"shape":1}}`))
	assert.JSONEq(t, `{"unexpected":{"shape":1}}`, out)
}

func TestParseGenerateContentResponse_Variants(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "content string",
			json: `{"candidates":[{"content":"Gemini says hi"}]}`,
			want: "Gemini says hi",
		},
		{
			name: "content text",
			json: `{"candidates":[{"content":{"text":"hi there"}}]}`,
			want: "hi there",
		},
		{
			name: "content parts mixed",
			json: `{"candidates":[{"content":{"parts":["a",{"text":"b"},{"content":"c"}]}}]}`,
			want: "abc",
		},
		{
			name: "legacy output content string",
			json: `{"output":{"candidates":[{"content":"legacy"}]}}`,
			want: "legacy",
		},
		{
			name: "legacy output content text",
			json: `{"output":{"candidates":[{"content":{"text":"legacy text"}}]}}`,
			want: "legacy text",
		},
		{
			name: "legacy output parts",
			json: `{"output":{"candidates":[{"content":{"parts":["x",{"text":"y"}]}}]}}`,
			want: "xy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGenerateContentResponse(decode(t, tt.json)))
		})
	}
}

func TestParseGenerateContentResponse_EmptyPartsFallThrough(t *testing.T) {
	// an all-empty parts array matches nothing and falls through to the
	// legacy shape, then to the diagnostic fallback
	out := ParseGenerateContentResponse(decode(t, `{"candidates":[{"content":{"parts":[]}}]}`))
	assert.JSONEq(t, `{"candidates":[{"content":{"parts":[]}}]}`, out)
}

func TestNormalize_NeverPanicsOnOddInput(t *testing.T) {
	for _, s := range []string{`null`, `[]`, `"just a string"`, `42`, `{"choices":null}`, `{"choices":"nope"}`, `{"candidates":[{}]}`} {
		assert.NotPanics(t, func() {
			_ = ParseChatResponse(decode(t, s))
			_ = ParseGenerateContentResponse(decode(t, s))
		}, s)
	}
}
