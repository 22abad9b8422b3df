package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": Debug, "": Info, " INFO ": Info, "warning": Warn, "error": Error} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != JSON {
		t.Fatalf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != Text {
		t.Fatalf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Info, JSON, &buf).With(Field{Key: "subsystem", Value: "detection"})
	logger.Info("computed", Field{Key: "pd", Value: 0.5}, Field{Key: "", Value: "dropped"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "computed" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["subsystem"] != "detection" || entry["pd"] != 0.5 {
		t.Fatalf("missing fields in %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatal("empty key should be dropped")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Warn, Text, &buf)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", Field{Key: "k", Value: 1})
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("filtered entries written: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=1") {
		t.Fatalf("expected warn entry, got %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("default logger must not be nil")
	}
	var buf bytes.Buffer
	prev := Default()
	defer SetDefault(prev)
	SetDefault(New(Debug, Text, &buf))
	SetDefault(nil)
	Default().Debug("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatal("SetDefault(nil) should keep the current logger")
	}
}
