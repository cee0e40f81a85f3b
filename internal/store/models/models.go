// Package models holds the row types shared by the store repositories.
package models

// Template is a per-user prompt template. Body is plain text with literal
// substitution markers ({{user_id}}, {{prompt}}).
type Template struct {
	UserID int64
	Name   string
	Body   string
}

// JournalEntry is a persisted generated artifact. Content is stored after
// PII redaction, never raw.
type JournalEntry struct {
	ID        int64
	UserID    int64
	CreatedAt string
	Provider  string
	Model     *string
	Content   string
	Tokens    *int64
}
