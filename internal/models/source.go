package models

import "strings"

// Source identifies the provider a subtitle result came from
type Source int

const (
	SourceUnknown Source = iota
	SourceOpenSubtitles
	SourceSubscene
	SourceSubDB
)

// String returns the wire name of the source
func (s Source) String() string {
	switch s {
	case SourceOpenSubtitles:
		return "opensubtitles"
	case SourceSubscene:
		return "subscene"
	case SourceSubDB:
		return "subdb"
	default:
		return "unknown"
	}
}

// ParseSource converts a wire name to a Source
func ParseSource(name string) Source {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "opensubtitles":
		return SourceOpenSubtitles
	case "subscene":
		return SourceSubscene
	case "subdb":
		return SourceSubDB
	default:
		return SourceUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *Source) UnmarshalJSON(data []byte) error {
	*s = ParseSource(strings.Trim(string(data), `"`))
	return nil
}
