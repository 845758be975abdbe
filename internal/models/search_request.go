package models

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchRequest describes a subtitle search. At least one of Query or IMDBID
// must be set.
type SearchRequest struct {
	Query     string
	IMDBID    string
	Season    int
	Episode   int
	Language  string
	MovieHash string
}

// HasIdentifier reports whether the request names something to search for.
func (r SearchRequest) HasIdentifier() bool {
	return strings.TrimSpace(r.Query) != "" || strings.TrimSpace(r.IMDBID) != ""
}

// CacheKey returns a canonical key covering every search parameter.
// Field values are query-escaped so separators inside values cannot collide.
func (r SearchRequest) CacheKey() string {
	v := url.Values{}
	v.Set("q", r.Query)
	v.Set("imdb", r.IMDBID)
	v.Set("s", strconv.Itoa(r.Season))
	v.Set("e", strconv.Itoa(r.Episode))
	v.Set("lang", r.Language)
	v.Set("hash", r.MovieHash)
	// Encode sorts by key
	return "search:" + v.Encode()
}

// SearchRequestFromQuery reads a request from URL query parameters. Both
// "moviehash" and "movieHash" are accepted.
func SearchRequestFromQuery(q url.Values) SearchRequest {
	hash := q.Get("moviehash")
	if hash == "" {
		hash = q.Get("movieHash")
	}
	return SearchRequest{
		Query:     q.Get("query"),
		IMDBID:    q.Get("imdbId"),
		Season:    ParseInt(q.Get("season")),
		Episode:   ParseInt(q.Get("episode")),
		Language:  q.Get("language"),
		MovieHash: hash,
	}
}

// ParseInt parses an optional positive number. Blank, malformed and negative
// values all mean "not set".
func ParseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
