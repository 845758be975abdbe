package models

// DownloadRequest represents a request to fetch and normalize a subtitle file
type DownloadRequest struct {
	URL    string // Absolute URL of the subtitle file or archive
	Format string // "gz", "zip", "rar" trigger unpacking; anything else is parsed as-is
}

// DownloadResult represents a fetched and parsed subtitle file
type DownloadResult struct {
	Format string // detected text format: "srt", "vtt" or "ssa"
	Cues   []Cue
}
