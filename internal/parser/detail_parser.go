package parser

import (
	"io"
	"strings"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	titleSelector    = "h1.title"
	downloadSelector = `a[rel~="nofollow"]`
)

// DetailParser implements the SingleResultParser interface for movie detail pages
type DetailParser struct {
	torrentPrefix string
	resolution    models.Resolution
}

// NewDetailParser creates a parser that picks the first torrent link under
// torrentPrefix whose label mentions resolution
func NewDetailParser(torrentPrefix string, resolution models.Resolution) *DetailParser {
	return &DetailParser{
		torrentPrefix: torrentPrefix,
		resolution:    resolution,
	}
}

// ParseHtml extracts the page title and preferred download link.
// Either field is left empty when the page does not provide it.
func (p *DetailParser) ParseHtml(body io.Reader) (models.MovieDetails, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse detail HTML")
		return models.MovieDetails{}, apperrors.NewParseError("detail page", "", err)
	}

	details := models.MovieDetails{
		Title:        p.extractTitle(doc.Selection),
		DownloadLink: p.extractDownloadLink(doc.Selection),
	}

	logger.Debug().
		Str("title", details.Title).
		Str("downloadLink", details.DownloadLink).
		Str("resolution", p.resolution.String()).
		Msg("Parsed movie detail page")

	return details, nil
}

func (p *DetailParser) extractTitle(sel *goquery.Selection) string {
	heading := sel.Find(titleSelector).First()
	if heading.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(heading.Text()), " ")
}

func (p *DetailParser) extractDownloadLink(sel *goquery.Selection) string {
	var link string
	sel.Find(downloadSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || p.torrentPrefix == "" || !strings.HasPrefix(href, p.torrentPrefix) {
			return true
		}
		if !p.resolution.MatchesLabel(strings.TrimSpace(a.Text())) {
			return true
		}
		link = href
		return false
	})
	return link
}
