package client

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// PageURL returns the request URL of a listing page: baseURL itself for page 1
// and baseURL with a page=N query parameter otherwise. Existing query parameters are kept.
func PageURL(baseURL string, page int) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("invalid page number %d", page)
	}
	if page == 1 {
		return baseURL, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", apperrors.NewParseError("listing url", baseURL, err)
	}
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// FetchListingPage fetches a listing page and extracts the movie links it contains
func (c *client) FetchListingPage(ctx context.Context, baseURL string, page int) (models.PageBatch, error) {
	logger := config.GetLogger()

	pageURL, err := PageURL(baseURL, page)
	if err != nil {
		return models.PageBatch{Page: page}, err
	}
	batch := models.PageBatch{Page: page, URL: pageURL}

	logger.Info().Int("page", page).Str("url", pageURL).Msg("Fetching movie links")

	fetched, err := c.fetchPage(ctx, "fetch listing page", pageURL)
	if err != nil {
		return batch, err
	}
	logger.Debug().Str("url", fetched.finalURL).Msg("Fetched listing page")

	links, err := c.listingParser.ParseHtml(bytes.NewReader(fetched.body))
	if err != nil {
		return batch, err
	}
	batch.Links = links

	return batch, nil
}

// Pages yields one batch per listing page, in order, until the consumer stops or ctx is done.
// Errors are yielded alongside the (partially filled) batch; the next page is still
// available if the consumer keeps iterating.
func (c *client) Pages(ctx context.Context, baseURL string) iter.Seq2[models.PageBatch, error] {
	return func(yield func(models.PageBatch, error) bool) {
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(models.PageBatch{Page: page}, err)
				return
			}
			batch, err := c.FetchListingPage(ctx, baseURL, page)
			if !yield(batch, err) {
				return
			}
		}
	}
}
