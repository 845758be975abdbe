package models

import (
	"encoding/json"
	"testing"
)

func TestSource_RoundTripNames(t *testing.T) {
	for _, s := range []Source{SourceOpenSubtitles, SourceSubscene, SourceSubDB} {
		if got := ParseSource(s.String()); got != s {
			t.Errorf("ParseSource(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := ParseSource("  OpenSubtitles "); got != SourceOpenSubtitles {
		t.Errorf("Expected case and whitespace insensitive parsing, got %v", got)
	}
	if got := ParseSource("addic7ed"); got != SourceUnknown {
		t.Errorf("Expected unknown source, got %v", got)
	}
	if got := Source(42).String(); got != "unknown" {
		t.Errorf("Expected \"unknown\" for out-of-range value, got %q", got)
	}
}

func TestSource_JSON(t *testing.T) {
	type wrapper struct {
		Source Source `json:"source"`
	}

	data, err := json.Marshal(wrapper{Source: SourceSubscene})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"source":"subscene"}` {
		t.Fatalf("Unexpected JSON %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"source":"subdb"}`), &w); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if w.Source != SourceSubDB {
		t.Errorf("Expected SourceSubDB, got %v", w.Source)
	}
}
