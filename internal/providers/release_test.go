package providers

import (
	"strings"
	"testing"

	"github.com/moviereview/subtitles/internal/models"
)

func TestParseRelease_Movie(t *testing.T) {
	r := ParseRelease("The.Matrix.1999.1080p.BluRay.x264-SPARKS")
	if r == nil {
		t.Fatal("Expected release info")
	}
	if !strings.Contains(strings.ToLower(r.Title), "matrix") {
		t.Errorf("Unexpected title %q", r.Title)
	}
	if r.Year != 1999 {
		t.Errorf("Expected year 1999, got %d", r.Year)
	}
	if r.Resolution != models.Quality1080p {
		t.Errorf("Expected 1080p, got %v", r.Resolution)
	}
}

func TestParseRelease_Episode(t *testing.T) {
	r := ParseRelease("Better.Call.Saul.S02E05.720p.HDTV.x264-KILLERS")
	if r == nil {
		t.Fatal("Expected release info")
	}
	if r.Season != 2 || r.Episode != 5 {
		t.Errorf("Expected S02E05, got S%02dE%02d", r.Season, r.Episode)
	}
	if r.Resolution != models.Quality720p {
		t.Errorf("Expected 720p, got %v", r.Resolution)
	}
}

func TestParseRelease_Empty(t *testing.T) {
	if r := ParseRelease("   "); r != nil {
		t.Errorf("Expected nil for a blank name, got %+v", r)
	}
}
