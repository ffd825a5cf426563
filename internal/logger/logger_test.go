package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/abitbot/abit-advisor-go/internal/ctxutil"
)

func TestNewWithWriterJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("ingest").WithField("slug", "ai").Info("program saved")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected valid JSON output: %v", err)
	}

	if record["message"] != "program saved" {
		t.Errorf("Expected message key, got %v", record["message"])
	}
	if record["level"] != "info" {
		t.Errorf("Expected lowercase level, got %v", record["level"])
	}
	if record["module"] != "ingest" {
		t.Errorf("Expected module field, got %v", record["module"])
	}
	if record["slug"] != "ai" {
		t.Errorf("Expected slug field, got %v", record["slug"])
	}
	if _, ok := record["timestamp"]; !ok {
		t.Error("Expected timestamp key")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	log.Warn("should pass")
	if !strings.Contains(buf.String(), "should pass") {
		t.Error("Expected warn record to be emitted")
	}
	if !strings.Contains(buf.String(), `"level":"warning"`) {
		t.Errorf("Expected warning level rename, got %q", buf.String())
	}
}

func TestContextHandlerInjectsTracingValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	ctx := ctxutil.WithChatID(context.Background(), 42)
	ctx = ctxutil.WithSlug(ctx, "ai_product")
	ctx = ctxutil.WithRunID(ctx, "run-1")

	log.InfoContext(ctx, "ingesting")

	out := buf.String()
	for _, want := range []string{`"chat_id":"42"`, `"slug":"ai_product"`, `"run_id":"run-1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in output, got %q", want, out)
		}
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	var first, second bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&first, nil),
		nil, // nil handlers are skipped
		slog.NewJSONHandler(&second, nil),
	)
	log := slog.New(h)

	log.Info("hello")

	if !strings.Contains(first.String(), "hello") {
		t.Error("Expected first handler to receive the record")
	}
	if !strings.Contains(second.String(), "hello") {
		t.Error("Expected second handler to receive the record")
	}
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var debugOut, errorOut bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorOut, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected handler enabled at debug when any child accepts it")
	}

	log := slog.New(h)
	log.Debug("verbose")

	if !strings.Contains(debugOut.String(), "verbose") {
		t.Error("Expected debug handler to receive record")
	}
	if errorOut.Len() != 0 {
		t.Errorf("Expected error handler to skip debug record, got %q", errorOut.String())
	}
}
