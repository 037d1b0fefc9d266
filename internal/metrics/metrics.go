package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Crawl metrics
var (
	// ListingPagesTotal counts listing page fetches by result ("links", "empty", "error").
	ListingPagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grabber_listing_pages_total",
			Help: "Total number of listing pages fetched.",
		},
		[]string{"result"},
	)

	// MoviesTotal counts movies leaving the pipeline by outcome.
	MoviesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grabber_movies_total",
			Help: "Total number of movies processed.",
		},
		[]string{"outcome"},
	)

	// TorrentDownloadsTotal counts download attempts by status ("downloaded", "existing", "failed").
	TorrentDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grabber_torrent_downloads_total",
			Help: "Total number of torrent downloads.",
		},
		[]string{"status"},
	)

	// ErrorsTotal counts failures seen by the pipeline by kind ("transport", "parse", "filesystem", "unknown").
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grabber_errors_total",
			Help: "Total number of errors encountered while crawling and downloading.",
		},
		[]string{"kind"},
	)

	// DownloadedBytesTotal counts bytes written to torrent files.
	DownloadedBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grabber_downloaded_bytes_total",
			Help: "Total number of bytes written to torrent files.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ListingPagesTotal,
		MoviesTotal,
		TorrentDownloadsTotal,
		ErrorsTotal,
		DownloadedBytesTotal,
	)
}
