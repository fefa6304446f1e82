package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestInfoCarriesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithFields(context.Background(), map[string]any{"filename": "123.mp4"})
	logg.Info(ctx, "media.uploaded")

	entry := decodeLine(t, &buf)
	if entry["service"] != "api" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["filename"] != "123.mp4" {
		t.Fatalf("expected filename field, got %v", entry["filename"])
	}
	if entry["message"] != "media.uploaded" {
		t.Fatalf("unexpected message %v", entry["message"])
	}
}

func TestErrorIncludesErrAndStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Error(context.Background(), "request.error", errors.New("boom"))

	entry := decodeLine(t, &buf)
	if entry["error"] != "boom" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
	if entry["stack"] == nil {
		t.Fatal("expected stack field on error logs")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf, Level: zerolog.InfoLevel})

	logg.Debug(context.Background(), "metadata document absent")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("warn") != zerolog.WarnLevel {
		t.Fatal("expected warn level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected empty to default to info")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected unknown to default to info")
	}
}
