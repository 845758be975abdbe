package models

// Cue is a single timed subtitle entry. Offsets are in milliseconds.
type Cue struct {
	Index int    `json:"index"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Text  string `json:"text"`
}
