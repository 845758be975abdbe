package models

import (
	"time"
)

// Subtitle is a single search result returned to callers. Results are built
// per search and only ever persisted inside the search cache.
type Subtitle struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"` // release name as published by the provider
	Language    string  `json:"language"`
	Source      Source  `json:"source"`
	DownloadURL string  `json:"downloadUrl"`
	Format      string  `json:"format"`
	Size        int64   `json:"size"`
	Hash        string  `json:"hash"` // content hash used for deduplication, may be empty
	Score       float64 `json:"score"`

	// Relevance signals reported by the provider
	MovieHashMatch   bool      `json:"movieHashMatch"`
	HearingImpaired  bool      `json:"hearingImpaired"`
	ForeignPartsOnly bool      `json:"foreignPartsOnly"`
	DownloadCount    int       `json:"downloadCount"`
	UploadedAt       time.Time `json:"uploadedAt,omitzero"`

	Release *Release `json:"release,omitempty"`
}

// Release holds the fields parsed out of a scene release name
type Release struct {
	Title      string  `json:"title,omitempty"`
	Year       int     `json:"year,omitempty"`
	Season     int     `json:"season,omitempty"`
	Episode    int     `json:"episode,omitempty"`
	Resolution Quality `json:"resolution"`
	Quality    string  `json:"quality,omitempty"` // WEB-DL, BluRay, HDTV...
	Codec      string  `json:"codec,omitempty"`
	Group      string  `json:"group,omitempty"`
}
