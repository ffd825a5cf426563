// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	chatIDKey contextKey = "ctxutil.chatID"
	slugKey   contextKey = "ctxutil.slug"
	runIDKey  contextKey = "ctxutil.runID"
)

// WithChatID adds a chat ID to the context.
// Chat ID identifies the Telegram conversation an event belongs to.
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatIDKey, chatID)
}

// GetChatID retrieves the chat ID from the context.
// Returns the chat ID and true if found, zero and false otherwise.
func GetChatID(ctx context.Context) (int64, bool) {
	chatID, ok := ctx.Value(chatIDKey).(int64)
	return chatID, ok
}

// WithSlug adds a program slug to the context.
// Used by the ingestion pipeline so per-slug log records carry the
// identifier of the program being processed.
func WithSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, slugKey, slug)
}

// GetSlug retrieves the program slug from the context.
// Returns the slug if found, empty string otherwise.
func GetSlug(ctx context.Context) string {
	if v := ctx.Value(slugKey); v != nil {
		if slug, ok := v.(string); ok && slug != "" {
			return slug
		}
	}
	return ""
}

// WithRunID adds an ingestion run ID to the context for log correlation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the ingestion run ID from the context.
// Returns the run ID and true if found, empty string and false otherwise.
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}
