package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The two provider ecosystems each shipped several incompatible response
// schemas over time. Normalization is an ordered list of shape matchers:
// each matcher probes one schema variant, the first match wins, and probing
// stops there so text present under multiple keys is never duplicated. When
// nothing matches, the whole payload is serialized as a diagnostic fallback —
// these functions never fail.

type shapeMatcher func(v any) (string, bool)

// dig walks a decoded JSON value by map keys (string) and array indexes (int).
func dig(v any, path ...any) (any, bool) {
	cur := v
	for _, p := range path {
		switch key := p.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			if cur, ok = m[key]; !ok {
				return nil, false
			}
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

func digString(v any, path ...any) (string, bool) {
	got, ok := dig(v, path...)
	if !ok {
		return "", false
	}
	s, ok := got.(string)
	return s, ok
}

// joinParts concatenates text carried by a parts array, where each part may
// be a bare string, {"text": ...}, or {"content": ...}. No separator: the
// provider already split a single stream.
func joinParts(parts []any, allowContentKey bool) string {
	var b strings.Builder
	for _, p := range parts {
		if s, ok := p.(string); ok {
			b.WriteString(s)
			continue
		}
		if s, ok := digString(p, "text"); ok {
			b.WriteString(s)
			continue
		}
		if allowContentKey {
			if s, ok := digString(p, "content"); ok {
				b.WriteString(s)
			}
		}
	}
	return b.String()
}

var chatShapes = []shapeMatcher{
	// current chat-completion shape
	func(v any) (string, bool) { return digString(v, "choices", 0, "message", "content") },
	// legacy completion shape
	func(v any) (string, bool) { return digString(v, "choices", 0, "text") },
	// content split into string parts
	func(v any) (string, bool) {
		got, ok := dig(v, "choices", 0, "message", "content", "parts")
		if !ok {
			return "", false
		}
		parts, ok := got.([]any)
		if !ok {
			return "", false
		}
		return joinParts(parts, false), true
	},
	// bare top-level text
	func(v any) (string, bool) { return digString(v, "text") },
}

var generateContentShapes = []shapeMatcher{
	// content as a plain string
	func(v any) (string, bool) { return digString(v, "candidates", 0, "content") },
	// content object carrying text
	func(v any) (string, bool) { return digString(v, "candidates", 0, "content", "text") },
	// content object carrying parts
	func(v any) (string, bool) {
		got, ok := dig(v, "candidates", 0, "content", "parts")
		if !ok {
			return "", false
		}
		parts, ok := got.([]any)
		if !ok {
			return "", false
		}
		if joined := joinParts(parts, true); joined != "" {
			return joined, true
		}
		return "", false
	},
	// legacy output.candidates wrapper, same text/parts handling
	func(v any) (string, bool) {
		content, ok := dig(v, "output", "candidates", 0, "content")
		if !ok {
			return "", false
		}
		if s, ok := content.(string); ok {
			return s, true
		}
		if s, ok := digString(content, "text"); ok {
			return s, true
		}
		if got, ok := dig(content, "parts"); ok {
			if parts, ok := got.([]any); ok {
				if joined := joinParts(parts, false); joined != "" {
					return joined, true
				}
			}
		}
		return "", false
	},
}

func normalize(v any, shapes []shapeMatcher) string {
	for _, match := range shapes {
		if s, ok := match(v); ok {
			return s
		}
	}
	// diagnostic fallback: hand the caller the payload itself
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// ParseChatResponse maps a decoded chat-completion payload to plain text.
func ParseChatResponse(v any) string {
	return normalize(v, chatShapes)
}

// ParseGenerateContentResponse maps a decoded generate-content payload to
// plain text.
func ParseGenerateContentResponse(v any) string {
	return normalize(v, generateContentShapes)
}
