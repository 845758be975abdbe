package testutil

import (
	"fmt"
	"strings"
)

// SubsceneTitleOptions describes one entry of a generated subscene search page.
type SubsceneTitleOptions struct {
	Name string
	Year int
	Path string // "/subtitles/the-matrix" when empty
}

// SubsceneRowOptions describes one row of a generated subscene title page.
type SubsceneRowOptions struct {
	Path            string
	Language        string // "English", "French", etc.
	Release         string
	Uploader        string
	HearingImpaired bool
	Positive        bool
}

// GenerateSubsceneSearchHTML generates a search result page shaped like the
// real subscene.com "searchbytitle" page.
func GenerateSubsceneSearchHTML(titles []SubsceneTitleOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<body>
<div class="search-result">
	<h2 class="exact">Exact</h2>
	<ul>
`)
	for _, title := range titles {
		path := title.Path
		if path == "" {
			path = "/subtitles/" + slug(title.Name)
		}
		label := title.Name
		if title.Year > 0 {
			label = fmt.Sprintf("%s (%d)", title.Name, title.Year)
		}
		fmt.Fprintf(&sb, `		<li>
			<div class="title">
				<a href="%s">%s</a>
			</div>
			<div class="subtle count">12 subtitles</div>
		</li>
`, path, label)
	}
	sb.WriteString(`	</ul>
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateSubsceneTitleHTML generates a title page with its subtitle table.
func GenerateSubsceneTitleHTML(rows []SubsceneRowOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<body>
<div class="subtitles byFilm">
<table>
	<thead>
		<tr><td class="a1">Subtitle title</td><td class="a3">Files</td><td class="a40">H.I.</td><td class="a5">Owner</td><td class="a6">Comment</td></tr>
	</thead>
	<tbody>
		<tr><td class="banner-inlist" colspan="5"><div id="ad">advert</div></td></tr>
`)
	for i, row := range rows {
		if row.Language == "" {
			row.Language = "English"
		}
		if row.Uploader == "" {
			row.Uploader = "uploader"
		}
		if row.Path == "" {
			row.Path = fmt.Sprintf("/subtitles/the-matrix/%s/%d", strings.ToLower(row.Language), 1000+i)
		}
		rating := "neutral-icon"
		if row.Positive {
			rating = "positive-icon"
		}
		hi := `<td class="a40"></td>`
		if row.HearingImpaired {
			hi = `<td class="a41"></td>`
		}

		fmt.Fprintf(&sb, `		<tr>
			<td class="a1">
				<a href="%s">
					<span class="l r %s">
						%s
					</span>
					<span>
						%s
					</span>
				</a>
			</td>
			<td class="a3">1</td>
			%s
			<td class="a5"><a href="/u/%d">%s</a></td>
			<td class="a6"><div>synced</div></td>
		</tr>
`, row.Path, rating, row.Language, row.Release, hi, i, row.Uploader)
	}
	sb.WriteString(`	</tbody>
</table>
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateSubsceneDetailHTML generates a subtitle detail page with its download button.
func GenerateSubsceneDetailHTML(downloadPath string) string {
	return GenerateHTMLWithBody(fmt.Sprintf(`<div class="subtitle">
	<div class="top left">
		<div class="header"><h1><span>The Matrix</span></h1></div>
	</div>
	<div class="download">
		<a href="%s" rel="nofollow" id="downloadButton" class="button positive">Download English Subtitle</a>
	</div>
</div>`, downloadPath))
}

// GenerateEmptyHTML returns a minimal HTML document with an empty body.
func GenerateEmptyHTML() string {
	return `<html><body></body></html>`
}

// GenerateHTMLWithBody wraps custom body content in a standard HTML shell.
func GenerateHTMLWithBody(bodyHTML string) string {
	return `<html><body>` + bodyHTML + `</body></html>`
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
