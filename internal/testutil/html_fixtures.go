package testutil

import (
	"fmt"
	"html"
	"strings"
)

// DownloadLinkOptions describes one anchor of the download section of a detail page
type DownloadLinkOptions struct {
	Href     string
	Label    string // visible text, e.g. "1080p.BluRay"
	NoFollow bool   // adds rel="nofollow"
}

// DetailPageOptions contains options for generating a movie detail page
type DetailPageOptions struct {
	Title         string // rendered as <h1 class="title"> when non-empty
	DownloadLinks []DownloadLinkOptions
	ExtraHTML     string
}

// GenerateListingHTML builds a browse page in the shape of the real listing:
// one movie card per link followed by unrelated navigation anchors.
func GenerateListingHTML(movieLinks []string, unrelated ...string) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><title>Browse Movies</title></head>
<body>
<div class="browse-content">
	<section>
		<div class="row">
`)
	for i, link := range movieLinks {
		href := html.EscapeString(link)
		fmt.Fprintf(&sb, `			<div class="browse-movie-wrap col-xs-10 col-sm-4 col-md-5 col-lg-4">
				<a href="%s" class="browse-movie-link"><figure><img class="img-responsive" src="/assets/images/movies/%d/medium-cover.jpg" alt="cover"></figure></a>
				<div class="browse-movie-bottom">
					<a href="%s" class="browse-movie-title">Movie %d</a>
				</div>
			</div>
`, href, i, href, i)
	}
	sb.WriteString(`		</div>
	</section>
	<ul class="tsc_pagination">
`)
	for _, link := range unrelated {
		fmt.Fprintf(&sb, "\t\t<li><a href=\"%s\">link</a></li>\n", html.EscapeString(link))
	}
	sb.WriteString(`	</ul>
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateDetailHTML builds a movie detail page with an optional title heading
// and a download section containing the given anchors.
func GenerateDetailHTML(opts DetailPageOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><title>Movie</title></head>
<body>
<div id="movie-info">
`)
	if opts.Title != "" {
		fmt.Fprintf(&sb, "\t<h1 class=\"title\">%s</h1>\n", html.EscapeString(opts.Title))
	}
	sb.WriteString("\t<p class=\"hidden-md hidden-lg\">\n")
	for _, link := range opts.DownloadLinks {
		rel := ""
		if link.NoFollow {
			rel = ` rel="nofollow"`
		}
		fmt.Fprintf(&sb, "\t\t<a href=\"%s\"%s title=\"Download\">%s</a>\n", html.EscapeString(link.Href), rel, html.EscapeString(link.Label))
	}
	sb.WriteString("\t</p>\n</div>\n")
	sb.WriteString(opts.ExtraHTML)
	sb.WriteString("\n</body>\n</html>")

	return sb.String()
}
