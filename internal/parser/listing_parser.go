package parser

import (
	"io"
	"strings"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// ListingParser extracts movie detail links from a listing page
type ListingParser struct {
	moviePrefix string
}

// NewListingParser creates a parser keeping only hrefs that start with moviePrefix
func NewListingParser(moviePrefix string) *ListingParser {
	return &ListingParser{
		moviePrefix: moviePrefix,
	}
}

// ParseHtml returns the distinct movie links of the document in document order.
// A page without any matching anchor yields an empty slice and no error.
func (p *ListingParser) ParseHtml(body io.Reader) ([]models.MovieLink, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse listing HTML")
		return nil, apperrors.NewParseError("listing page", "", err)
	}

	links := p.extractLinks(doc.Selection)
	logger.Debug().Int("links", len(links)).Str("prefix", p.moviePrefix).Msg("Extracted movie links from listing")
	return links, nil
}

func (p *ListingParser) extractLinks(sel *goquery.Selection) []models.MovieLink {
	seen := make(map[models.MovieLink]struct{})
	var links []models.MovieLink

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if p.moviePrefix == "" || !strings.HasPrefix(href, p.moviePrefix) {
			return
		}
		link := models.MovieLink(href)
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}
