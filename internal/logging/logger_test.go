package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerJSONIncludesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "JSON", Level: "debug", Service: "svc", Version: "v1", Output: &buf})

	logger.Debug("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry[FieldService] != "svc" || entry[FieldVersion] != "v1" {
		t.Fatalf("expected common fields, got %+v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("expected %v for %q, got %v", want, raw, got)
		}
	}
}

func TestContextLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewTextHandler(&buf, nil)).With(slog.String(FieldRequestID, "abc"))
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := WithLogger(context.Background(), scoped)
	FromContext(ctx, fallback).Info("scoped")

	if !strings.Contains(buf.String(), "request_id=abc") {
		t.Fatalf("expected scoped logger to be used, got %q", buf.String())
	}
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatal("expected fallback when context has no logger")
	}
	if got := FromContext(nil, fallback); got != fallback {
		t.Fatal("expected fallback for nil context")
	}
	if ctx := WithLogger(context.Background(), nil); FromContext(ctx, fallback) != fallback {
		t.Fatal("expected nil logger to be ignored")
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "noop")
	Warn(nil, "noop")
	Error(nil, "noop", nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "failed", errTest("boom"), FieldGameID, "g1")
	if !strings.Contains(buf.String(), "error=boom") || !strings.Contains(buf.String(), "game_id=g1") {
		t.Fatalf("expected error and field in output, got %q", buf.String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
