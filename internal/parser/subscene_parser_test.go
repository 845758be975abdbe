package parser

import (
	"strings"
	"testing"

	"github.com/moviereview/subtitles/internal/testutil"
)

func TestSubsceneSearchParser_ParseHtml(t *testing.T) {
	t.Parallel()
	html := testutil.GenerateSubsceneSearchHTML([]testutil.SubsceneTitleOptions{
		{Name: "The Matrix", Year: 1999},
		{Name: "The Matrix Reloaded", Year: 2003},
		{Name: "The Matrix", Year: 1999}, // duplicated in the "popular" section
		{Name: "Matrix Chronicles"},
	})

	var p Parser[SubsceneTitle] = NewSubsceneSearchParser()
	titles, err := p.ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if len(titles) != 3 {
		t.Fatalf("Expected 3 unique titles, got %d: %+v", len(titles), titles)
	}

	first := titles[0]
	if first.Name != "The Matrix" || first.Year != 1999 || first.Path != "/subtitles/the-matrix" {
		t.Errorf("Unexpected first title %+v", first)
	}
	if titles[2].Year != 0 || titles[2].Name != "Matrix Chronicles" {
		t.Errorf("Expected title without year, got %+v", titles[2])
	}
}

func TestSubsceneSearchParser_Empty(t *testing.T) {
	t.Parallel()
	titles, err := NewSubsceneSearchParser().ParseHtml(strings.NewReader(testutil.GenerateEmptyHTML()))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if len(titles) != 0 {
		t.Errorf("Expected no titles, got %d", len(titles))
	}
}

func TestSubsceneTitleParser_ParseHtml(t *testing.T) {
	t.Parallel()
	html := testutil.GenerateSubsceneTitleHTML([]testutil.SubsceneRowOptions{
		{Language: "English", Release: "The.Matrix.1999.1080p.BluRay.x264-SPARKS", Uploader: "neo", Positive: true},
		{Language: "French", Release: "The.Matrix.1999.720p.BluRay", HearingImpaired: true},
	})

	var p Parser[SubsceneRow] = NewSubsceneTitleParser()
	rows, err := p.ParseHtml(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows (advert skipped), got %d", len(rows))
	}

	en := rows[0]
	if en.Language != "English" || en.Release != "The.Matrix.1999.1080p.BluRay.x264-SPARKS" {
		t.Errorf("Unexpected language/release %+v", en)
	}
	if en.Uploader != "neo" || en.HearingImpaired {
		t.Errorf("Unexpected uploader/HI %+v", en)
	}
	if en.Path != "/subtitles/the-matrix/english/1000" || en.ID != "1000" {
		t.Errorf("Unexpected path/id %+v", en)
	}
	if !rows[1].HearingImpaired {
		t.Error("Expected second row to be hearing impaired")
	}
}

func TestParseSubsceneDownloadLink(t *testing.T) {
	t.Parallel()
	link, err := ParseSubsceneDownloadLink(strings.NewReader(testutil.GenerateSubsceneDetailHTML("/subtitles/english-text/abc123")))
	if err != nil {
		t.Fatalf("ParseSubsceneDownloadLink failed: %v", err)
	}
	if link != "/subtitles/english-text/abc123" {
		t.Errorf("link = %q", link)
	}

	if _, err := ParseSubsceneDownloadLink(strings.NewReader(testutil.GenerateEmptyHTML())); err == nil {
		t.Error("Expected an error when the page has no download button")
	}
}
