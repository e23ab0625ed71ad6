package formatter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

func TestJSONFormatter_Basic(t *testing.T) {
	f := NewJSONFormatter(Config{})
	rec := record.NewBuffer(128, 32)
	rec.Level = core.Warn
	rec.Logger = "app.widgets"
	rec.Timestamp = time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC)
	rec.Message = "disk nearly full"

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", decoded["level"])
	}
	if decoded["logger"] != "app.widgets" {
		t.Errorf("logger = %v, want app.widgets", decoded["logger"])
	}
	if decoded["msg"] != "disk nearly full" {
		t.Errorf("msg = %v, want %q", decoded["msg"], "disk nearly full")
	}
}

func TestJSONFormatter_KeyValueFields(t *testing.T) {
	f := NewJSONFormatter(Config{})
	rec := record.NewBuffer(128, 32)
	rec.Message = "request handled"
	rec.AppendKeyString("status")
	rec.AppendI32(200, "")

	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["status"] != "200" {
		t.Errorf("status = %v, want \"200\"", decoded["status"])
	}
}
