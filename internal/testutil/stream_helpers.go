package testutil

import (
	"iter"

	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// CollectPages pulls at most limit batches from a page sequence, stopping early on the first error.
// This is a test helper and should not be used in production code.
func CollectPages(pages iter.Seq2[models.PageBatch, error], limit int) ([]models.PageBatch, error) {
	var batches []models.PageBatch
	for batch, err := range pages {
		if err != nil {
			return batches, err
		}
		batches = append(batches, batch)
		if len(batches) >= limit {
			break
		}
	}
	return batches, nil
}

// LinkStrings converts movie links to plain strings for comparisons.
func LinkStrings(links []models.MovieLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = string(l)
	}
	return out
}
