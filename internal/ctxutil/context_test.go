package ctxutil

import (
	"context"
	"testing"
)

func TestChatID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, ok := GetChatID(ctx); ok {
		t.Error("Expected no chat ID on empty context")
	}

	ctx = WithChatID(ctx, 123456789)
	chatID, ok := GetChatID(ctx)
	if !ok {
		t.Fatal("Expected chat ID to be present")
	}
	if chatID != 123456789 {
		t.Errorf("Expected chat ID 123456789, got %d", chatID)
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if slug := GetSlug(ctx); slug != "" {
		t.Errorf("Expected empty slug on empty context, got %q", slug)
	}

	ctx = WithSlug(ctx, "ai_product")
	if slug := GetSlug(ctx); slug != "ai_product" {
		t.Errorf("Expected slug ai_product, got %q", slug)
	}
}

func TestRunID(t *testing.T) {
	t.Parallel()

	ctx := WithRunID(context.Background(), "run-42")
	runID, ok := GetRunID(ctx)
	if !ok || runID != "run-42" {
		t.Errorf("Expected run-42, got %q (ok=%v)", runID, ok)
	}
}

func TestValuesAreIndependent(t *testing.T) {
	t.Parallel()

	base := WithChatID(context.Background(), 7)
	child := WithSlug(base, "ai")

	if _, ok := GetChatID(child); !ok {
		t.Error("Expected chat ID to propagate to child context")
	}
	if GetSlug(base) != "" {
		t.Error("Parent context must not see child slug")
	}
}
