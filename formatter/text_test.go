package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

func TestTextFormatter_Basic(t *testing.T) {
	f := NewTextFormatter(Config{})
	rec := record.NewBuffer(128, 32)
	rec.Level = core.Info
	rec.Logger = "app.widgets"
	rec.Timestamp = time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC)
	rec.Message = "test message"

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "INFO") {
		t.Errorf("want INFO in output, got %q", s)
	}
	if !strings.Contains(s, "test message") {
		t.Errorf("want message in output, got %q", s)
	}
}

func TestTextFormatter_Scenario4_KeyValue(t *testing.T) {
	f := NewTextFormatter(Config{Mode: record.KeyValue})
	rec := record.NewBuffer(128, 32)
	rec.Message = "Tomorrow is another day."
	rec.Logger = "app"

	rec.AppendKeyString("NumSeconds")
	rec.AppendI32(86400, "")

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "Tomorrow is another day.") {
		t.Errorf("want body in output, got %q", s)
	}
	if !strings.Contains(s, "NumSeconds=86400") {
		t.Errorf("want NumSeconds=86400 in output, got %q", s)
	}
}

func TestTextFormatter_Unformatted_QuotesStrings(t *testing.T) {
	f := NewTextFormatter(Config{Mode: record.Unformatted})
	rec := record.NewBuffer(128, 32)
	rec.AppendString("alice", "")
	rec.AppendI32(7, "")

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"alice", 7`) {
		t.Errorf("want quoted unformatted dump, got %q", s)
	}
}

func TestTextFormatter_Truncated_AppendsSuffix(t *testing.T) {
	f := NewTextFormatter(Config{TruncatedMessageSuffix: " [TRUNCATED]"})
	rec := record.NewBuffer(4, 4)
	for i := 0; i < 10; i++ {
		rec.AppendI64(int64(i), "")
	}
	if !rec.Truncated() {
		t.Fatal("expected buffer to be truncated given a 4-byte payload")
	}

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), "[TRUNCATED]") {
		t.Errorf("want truncation suffix in output, got %q", out)
	}
}
