package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/models"
)

func TestSubDB_SearchWithoutHashContributesNothing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	p, _ := NewSubDB(SubDBConfig{BaseURL: server.URL})
	subs, err := p.Search(context.Background(), models.SearchRequest{Query: "Heat", IMDBID: "tt0113277"})
	if err != nil || len(subs) != 0 {
		t.Fatalf("Expected no results and no error, got %v, %v", subs, err)
	}
	if called {
		t.Error("Expected no HTTP call without a movie hash")
	}
}

func TestSubDB_Search(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Query().Get("action") != "search" || r.URL.Query().Get("hash") != "edc1981d6459c6111fe36205b4aff6c2" {
			t.Errorf("Unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte("en,pt,es\n"))
	}))
	defer server.Close()

	p, _ := NewSubDB(SubDBConfig{BaseURL: server.URL, UserAgent: "MovieReviewApp/1.0"})
	subs, err := p.Search(context.Background(), models.SearchRequest{
		Query:     "Heat",
		Language:  "pt",
		MovieHash: "EDC1981D6459C6111FE36205B4AFF6C2",
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !strings.HasPrefix(gotUA, "SubDB/1.0 (MovieReviewApp/1.0;") {
		t.Errorf("Unexpected User-Agent %q", gotUA)
	}
	if len(subs) != 1 {
		t.Fatalf("Expected only the requested language, got %d results", len(subs))
	}

	sub := subs[0]
	if sub.Language != "pt" || sub.Source != models.SourceSubDB || sub.Format != "srt" || !sub.MovieHashMatch {
		t.Errorf("Unexpected result %+v", sub)
	}
	if !strings.Contains(sub.DownloadURL, "action=download") || !strings.Contains(sub.DownloadURL, "language=pt") {
		t.Errorf("Unexpected download URL %s", sub.DownloadURL)
	}
}

func TestSubDB_SearchAllLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("en,fr"))
	}))
	defer server.Close()

	p, _ := NewSubDB(SubDBConfig{BaseURL: server.URL})
	subs, err := p.Search(context.Background(), models.SearchRequest{MovieHash: "abc"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(subs) != 2 || subs[0].Language != "en" || subs[1].Language != "fr" {
		t.Errorf("Unexpected results %+v", subs)
	}
	if subs[0].Name != "abc" {
		t.Errorf("Expected the hash as name without a query, got %q", subs[0].Name)
	}
}

func TestSubDB_SearchNotFoundAndErrors(t *testing.T) {
	status := http.StatusNotFound
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	p, _ := NewSubDB(SubDBConfig{BaseURL: server.URL})
	subs, err := p.Search(context.Background(), models.SearchRequest{MovieHash: "abc"})
	if err != nil || len(subs) != 0 {
		t.Fatalf("Expected 404 to mean no results, got %v, %v", subs, err)
	}

	status = http.StatusBadGateway
	_, err = p.Search(context.Background(), models.SearchRequest{MovieHash: "abc"})
	if !errors.Is(err, &apperrors.ErrProviderStatus{}) {
		t.Fatalf("Expected ErrProviderStatus, got %v", err)
	}
}

func TestSubDB_Resolve(t *testing.T) {
	p, _ := NewSubDB(SubDBConfig{BaseURL: "http://api.thesubdb.com"})
	target := "http://api.thesubdb.com/?action=download&hash=abc&language=en"

	if !p.CanResolve(target) {
		t.Fatal("Expected SubDB to resolve its own URLs")
	}
	if p.CanResolve("https://dl.example.com/a.srt") {
		t.Error("Expected SubDB to ignore foreign URLs")
	}

	d, err := p.Resolve(context.Background(), target)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if d.URL != target || d.Format != "srt" || !strings.HasPrefix(d.Header.Get("User-Agent"), "SubDB/1.0") {
		t.Errorf("Unexpected download %+v", d)
	}
}
