package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/moviereview/subtitles/internal/config"
)

var titleYearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)

// SubsceneTitle is a single entry of a subscene title search.
type SubsceneTitle struct {
	Name string
	Year int
	Path string
}

// SubsceneRow is a single subtitle listed on a subscene title page.
type SubsceneRow struct {
	ID              string
	Path            string
	Language        string
	Release         string
	Uploader        string
	HearingImpaired bool
}

// SubsceneSearchParser parses the title search result page.
type SubsceneSearchParser struct{}

// NewSubsceneSearchParser creates a new search page parser
func NewSubsceneSearchParser() *SubsceneSearchParser {
	return &SubsceneSearchParser{}
}

// ParseHtml extracts every title link of the search result page, deduplicated by path.
func (p *SubsceneSearchParser) ParseHtml(body io.Reader) ([]SubsceneTitle, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	seen := make(map[string]struct{})
	var titles []SubsceneTitle
	doc.Find("div.search-result div.title a").Each(func(i int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		name := strings.TrimSpace(link.Text())
		title := SubsceneTitle{Name: name, Path: href}
		if m := titleYearRe.FindStringSubmatch(name); m != nil {
			title.Year, _ = strconv.Atoi(m[1])
			title.Name = strings.TrimSpace(titleYearRe.ReplaceAllString(name, ""))
		}
		titles = append(titles, title)
	})

	logger.Debug().Int("titles", len(titles)).Msg("Parsed subscene search page")
	return titles, nil
}

// SubsceneTitleParser parses the subtitle table of a title page.
type SubsceneTitleParser struct{}

// NewSubsceneTitleParser creates a new title page parser
func NewSubsceneTitleParser() *SubsceneTitleParser {
	return &SubsceneTitleParser{}
}

// ParseHtml extracts the subtitle rows. Rows without a link (ads, headers) are skipped.
func (p *SubsceneTitleParser) ParseHtml(body io.Reader) ([]SubsceneRow, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var rows []SubsceneRow
	doc.Find("table tbody tr").Each(func(i int, tr *goquery.Selection) {
		link := tr.Find("td.a1 a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		spans := link.Find("span")
		if spans.Length() < 2 {
			logger.Debug().Int("row", i).Msg("Skipping subscene row without language and release")
			return
		}

		row := SubsceneRow{
			Path:            href,
			Language:        strings.TrimSpace(spans.Eq(0).Text()),
			Release:         strings.TrimSpace(spans.Eq(1).Text()),
			Uploader:        strings.TrimSpace(tr.Find("td.a5 a").First().Text()),
			HearingImpaired: tr.Find("td.a41").Length() > 0,
		}
		if idx := strings.LastIndex(strings.TrimSuffix(href, "/"), "/"); idx >= 0 {
			row.ID = strings.TrimSuffix(href, "/")[idx+1:]
		}
		rows = append(rows, row)
	})

	logger.Debug().Int("rows", len(rows)).Msg("Parsed subscene title page")
	return rows, nil
}

// ParseSubsceneDownloadLink returns the archive link of a subtitle detail page.
func ParseSubsceneDownloadLink(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	href, ok := doc.Find("#downloadButton").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", fmt.Errorf("download button not found")
	}
	return strings.TrimSpace(href), nil
}
