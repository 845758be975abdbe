package parser

import (
	"errors"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/moviereview/subtitles/internal/apperrors"
	"github.com/moviereview/subtitles/internal/models"
)

// Text formats understood by ParseCues.
const (
	FormatSRT = "srt"
	FormatVTT = "vtt"
	FormatSSA = "ssa"
)

// DetectFormat guesses the subtitle text format from its header.
func DetectFormat(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return FormatVTT
	case strings.HasPrefix(trimmed, "[Script Info]"), strings.Contains(text, "\n[Events]"):
		return FormatSSA
	default:
		return FormatSRT
	}
}

// ParseCues parses subtitle text (SRT, WebVTT or SSA/ASS) into cues.
// Blank input yields no cues; non-blank input that produces no cue at all is
// reported as a parse error since it is almost always an HTML error page or a
// binary file served under a subtitle URL.
func ParseCues(text string) (*models.DownloadResult, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	format := DetectFormat(text)

	if strings.TrimSpace(text) == "" {
		return &models.DownloadResult{Format: format, Cues: []models.Cue{}}, nil
	}

	var (
		subs *astisub.Subtitles
		err  error
	)
	r := strings.NewReader(text)
	switch format {
	case FormatVTT:
		subs, err = astisub.ReadFromWebVTT(r)
	case FormatSSA:
		subs, err = astisub.ReadFromSSA(r)
	default:
		subs, err = astisub.ReadFromSRT(r)
	}
	if err != nil {
		return nil, &apperrors.ErrSubtitleParse{Format: format, Err: err}
	}
	if subs == nil || len(subs.Items) == 0 {
		return nil, &apperrors.ErrSubtitleParse{Format: format, Err: errors.New("no cues found")}
	}

	cues := make([]models.Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		cues = append(cues, models.Cue{
			Index: i + 1,
			Start: item.StartAt.Milliseconds(),
			End:   item.EndAt.Milliseconds(),
			Text:  itemText(item),
		})
	}

	return &models.DownloadResult{Format: format, Cues: cues}, nil
}

func itemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		parts := make([]string, 0, len(line.Items))
		for _, li := range line.Items {
			if t := strings.TrimSpace(li.Text); t != "" {
				parts = append(parts, t)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
