package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	return out
}

func TestLogHandler_MasksConfiguredKeys(t *testing.T) {
	t.Parallel()

	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, &Config{
		ServiceName: "gotask",
		MaskFields:  []string{"password", " Refresh_Token "},
	}, nil))

	// Act
	logger.Info("login",
		"password", "hunter22",
		"body", `{"username":"alice","password":"hunter22","nested":{"refresh_token":"abc"}}`,
		slog.Group("req", slog.String("refresh_token", "abc")),
	)

	// Assert
	line := decodeLine(t, &buf)
	if line["password"] != maskedValue {
		t.Fatalf("password not masked: %v", line["password"])
	}
	body, _ := line["body"].(string)
	if strings.Contains(body, "hunter22") || strings.Contains(body, "abc") {
		t.Fatalf("body not masked: %s", body)
	}
	if !strings.Contains(body, "alice") {
		t.Fatalf("unmasked field lost: %s", body)
	}
	req, _ := line["req"].(map[string]any)
	if req["refresh_token"] != maskedValue {
		t.Fatalf("group field not masked: %v", req)
	}
	if line["service"] != "gotask" {
		t.Fatalf("service attribute missing: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", line)
	}
	if line["severity"] != "INFO" {
		t.Fatalf("expected severity INFO, got %v", line["severity"])
	}
}

func TestLogHandler_CorrelationID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, &Config{}, nil))

	ctx := SetCorrelationID(context.Background(), "cid-123")
	logger.InfoContext(ctx, "hello")

	line := decodeLine(t, &buf)
	if line["_cID"] != "cid-123" {
		t.Fatalf("expected _cID, got %v", line)
	}
}

func TestLogHandler_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, &Config{LogLevel: "warn"}, nil))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %s", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatalf("expected warn to be logged")
	}
}

func TestGetCorrelationID_Empty(t *testing.T) {
	t.Parallel()

	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestNewNoop(t *testing.T) {
	t.Parallel()

	ins := NewNoop()
	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()

	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}
