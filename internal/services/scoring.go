package services

import (
	"math"
	"time"

	"github.com/moviereview/subtitles/internal/models"
)

const (
	movieHashMatchBonus  = 10.0
	hearingImpairedBonus = 5.0
	foreignPartsPenalty  = 5.0
	maxDownloadBonus     = 10.0
	downloadsPerPoint    = 1000.0
	maxRecencyBonus      = 10.0
)

// ScoreSubtitle computes the relevance score of a result at the given time.
// The total never drops below zero and has no upper bound.
func ScoreSubtitle(sub models.Subtitle, now time.Time) float64 {
	score := 0.0
	if sub.MovieHashMatch {
		score += movieHashMatchBonus
	}
	if sub.HearingImpaired {
		score += hearingImpairedBonus
	}
	if sub.ForeignPartsOnly {
		score -= foreignPartsPenalty
	}

	score += math.Min(float64(sub.DownloadCount)/downloadsPerPoint, maxDownloadBonus)

	// Unknown upload dates earn nothing; future dates count as today
	if !sub.UploadedAt.IsZero() {
		daysOld := math.Max(now.Sub(sub.UploadedAt).Hours()/24, 0)
		score += math.Max(maxRecencyBonus-daysOld, 0)
	}

	return math.Max(score, 0)
}
