package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentTracker, Output: &buf})

	l.InfoContext(context.Background(), "Expense added", "id", 1)
	l.DebugContext(context.Background(), "hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec[FieldComponent] != ComponentTracker || rec["msg"] != "Expense added" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestWithComponentKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).With(FieldRequestID, "abc").WithComponent(ComponentHTTP)
	l.WarnContext(context.Background(), "slow")

	out := buf.String()
	if !strings.Contains(out, "request_id=abc") || !strings.Contains(out, "component=http") {
		t.Errorf("missing attrs: %q", out)
	}
	if l.Component() != ComponentHTTP {
		t.Errorf("component = %q", l.Component())
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithOperation(OpSync).
		WithError(errors.New("boom")).
		WithError(nil)
	if f[FieldOperation] != OpSync || f[FieldError] != "boom" {
		t.Errorf("unexpected fields: %v", f)
	}
	if len(f.ToSlice()) != 4 {
		t.Errorf("slice = %v", f.ToSlice())
	}
}

func TestContextLoggerAndLogHTTPEnd(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	ctx := NewContext(context.Background(), l)

	if FromContext(ctx) != l {
		t.Fatal("logger not found in context")
	}
	LogHTTPEnd(ctx, httptest.NewRequest(http.MethodPost, "/api/sync", nil), http.StatusBadGateway, 12, "127.0.0.1")

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "status_code=502") {
		t.Errorf("unexpected log: %q", out)
	}
}

func TestForComponentKeepsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).With(FieldRequestID, "req-1")
	ctx := NewContext(context.Background(), l)

	ForComponent(ctx, ComponentTracker).InfoContext(ctx, "Expense added", FieldOperation, OpAdd)

	out := buf.String()
	for _, want := range []string{"component=tracker", "request_id=req-1", "operation=add"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if ForComponent(context.Background(), ComponentStorage).Component() != ComponentStorage {
		t.Error("fallback logger lost its component")
	}
}

func TestFromContextDefault(t *testing.T) {
	if FromContext(context.Background()).Component() != "unknown" {
		t.Error("expected fallback logger")
	}
}
