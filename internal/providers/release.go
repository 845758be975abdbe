package providers

import (
	"strings"

	ptn "github.com/razsteinmetz/go-ptn"

	"github.com/moviereview/subtitles/internal/models"
)

// ParseRelease extracts title, year, episode and encoding details from a
// scene release name. It returns nil when nothing useful could be parsed.
func ParseRelease(name string) *models.Release {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	info, err := ptn.Parse(name)
	if err != nil || info == nil {
		return nil
	}

	release := &models.Release{
		Title:      strings.TrimSpace(info.Title),
		Year:       info.Year,
		Season:     info.Season,
		Episode:    info.Episode,
		Resolution: models.ParseQuality(info.Resolution),
		Quality:    info.Quality,
		Codec:      info.Codec,
		Group:      info.Group,
	}
	if release.Title == "" && release.Year == 0 && release.Resolution == models.QualityUnknown {
		return nil
	}
	return release
}
