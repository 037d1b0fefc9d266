package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/apperrors"
	"github.com/Belphemur/TorrentGrabber/internal/client"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/metrics"
	"github.com/Belphemur/TorrentGrabber/internal/models"
	"github.com/Belphemur/TorrentGrabber/internal/services"

	"github.com/rs/zerolog"
)

// Movie outcomes used for logging and metrics
const (
	outcomeDownloaded = "downloaded"
	outcomeExisting   = "existing"
	outcomeSkipped    = "skipped"
	outcomeFailed     = "failed"
)

// Options are the run parameters of a Pipeline
type Options struct {
	ListingURL string
	OutputDir  string
	MovieDelay time.Duration // pause after each movie
	PageDelay  time.Duration // pause after each listing page
	MaxPages   int           // 0 means no limit
}

// Sleeper pauses for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Pipeline crawls listing pages, resolves new movies and downloads their torrents.
// A Pipeline runs strictly sequentially and owns its CrawlState for the duration of Run.
type Pipeline struct {
	client     client.Client
	downloader services.TorrentDownloader
	opts       Options
	sleep      Sleeper
	report     func(error)
	logger     zerolog.Logger
}

// Option customises a Pipeline built by New
type Option func(*Pipeline)

// WithSleeper replaces the pacing delay implementation
func WithSleeper(s Sleeper) Option {
	return func(p *Pipeline) {
		p.sleep = s
	}
}

// WithErrorReporter receives every failure that causes a movie to be skipped or failed
func WithErrorReporter(fn func(error)) Option {
	return func(p *Pipeline) {
		p.report = fn
	}
}

// WithLogger replaces the process logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline over the given client and downloader
func New(c client.Client, d services.TorrentDownloader, opts Options, options ...Option) *Pipeline {
	p := &Pipeline{
		client:     c,
		downloader: d,
		opts:       opts,
		sleep:      sleepContext,
		report:     func(error) {},
		logger:     config.GetLogger(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Run crawls until a listing page yields no links or no new links, MaxPages is reached or ctx is done.
// Per-movie failures are logged and counted; they never stop the crawl.
// The returned error is non-nil only for invalid options or cancellation.
func (p *Pipeline) Run(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{}
	if p.opts.ListingURL == "" {
		return summary, errors.New("pipeline: listing URL is required")
	}
	if p.opts.OutputDir == "" {
		return summary, errors.New("pipeline: output directory is required")
	}

	p.logger.Info().Str("dir", p.opts.OutputDir).Msg("Files will be saved to output directory")

	state := models.NewCrawlState()
	for batch, err := range p.client.Pages(ctx, p.opts.ListingURL) {
		if ctx.Err() != nil {
			summary.StopReason = models.StopCancelled
			break
		}

		reason := p.processPage(ctx, state, batch, err, summary)
		if reason != "" {
			summary.StopReason = reason
			break
		}

		if p.opts.MaxPages > 0 && state.Page >= p.opts.MaxPages {
			p.logger.Info().Int("maxPages", p.opts.MaxPages).Msg("Page limit reached. Stopping.")
			summary.StopReason = models.StopMaxPages
			break
		}
		state.Advance()

		if err := p.sleep(ctx, p.opts.PageDelay); err != nil {
			summary.StopReason = models.StopCancelled
			break
		}
	}

	p.logger.Info().
		Int("pages", summary.Pages).
		Int("discovered", summary.Discovered).
		Int("downloaded", summary.Downloaded).
		Int("existing", summary.Existing).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Str("stopReason", string(summary.StopReason)).
		Msg("Finished processing all pages.")

	if summary.StopReason == models.StopCancelled {
		return summary, ctx.Err()
	}
	return summary, nil
}

// RunEvery runs the crawl and, when interval is positive, repeats it after each pause until ctx is done.
// Each crawl starts from an empty CrawlState; components such as the detail cache keep their state.
// onRun, if not nil, receives every crawl's summary and error.
func (p *Pipeline) RunEvery(ctx context.Context, interval time.Duration, onRun func(*models.RunSummary, error)) error {
	for crawl := 1; ; crawl++ {
		summary, err := p.Run(ctx)
		if onRun != nil {
			onRun(summary, err)
		}
		if err != nil || interval <= 0 {
			return err
		}

		p.logger.Info().Int("crawl", crawl).Dur("interval", interval).Msg("Waiting for the next crawl")
		if err := p.sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// processPage applies the stop conditions to one fetched page and processes its new links.
// It returns a non-empty StopReason when the crawl must end.
func (p *Pipeline) processPage(ctx context.Context, state *models.CrawlState, batch models.PageBatch, fetchErr error, summary *models.RunSummary) models.StopReason {
	if fetchErr != nil {
		metrics.ListingPagesTotal.WithLabelValues("error").Inc()
		kind := p.recordError(fetchErr)
		p.logger.Warn().Err(fetchErr).Str("kind", string(kind)).Int("page", batch.Page).Msg("Error fetching movie links. Stopping.")
		return models.StopNoLinks
	}
	summary.Pages++

	if len(batch.Links) == 0 {
		metrics.ListingPagesTotal.WithLabelValues("empty").Inc()
		p.logger.Info().Int("page", batch.Page).Msg("No movie links found on this page. Stopping.")
		return models.StopNoLinks
	}
	metrics.ListingPagesTotal.WithLabelValues("links").Inc()

	fresh := state.Diff(batch.Links)
	if len(fresh) == 0 {
		p.logger.Info().Int("page", batch.Page).Msg("No new movie links found on this page. Stopping.")
		return models.StopNoNewLinks
	}
	state.Merge(fresh)
	summary.Discovered += len(fresh)

	p.logger.Info().Int("page", batch.Page).Int("count", len(fresh)).Msg("Found new movies")

	for _, link := range fresh {
		if ctx.Err() != nil {
			return models.StopCancelled
		}
		outcome := p.processMovie(ctx, link, summary)
		metrics.MoviesTotal.WithLabelValues(outcome).Inc()

		if err := p.sleep(ctx, p.opts.MovieDelay); err != nil {
			return models.StopCancelled
		}
	}

	return ""
}

// processMovie resolves one link and downloads its torrent when both title and link are known
func (p *Pipeline) processMovie(ctx context.Context, link models.MovieLink, summary *models.RunSummary) string {
	logger := p.logger.With().Str("movie", link.String()).Logger()
	logger.Info().Msg("Processing movie")

	details, err := p.client.ResolveDetails(ctx, link)
	if err != nil {
		kind := p.recordError(err)
		logger.Warn().Err(err).Str("kind", string(kind)).Str("reason", "details unavailable").Msg("Skipping movie")
		summary.Skipped++
		return outcomeSkipped
	}
	if !details.Complete() {
		reason := "missing title"
		if details.HasTitle() {
			reason = "missing download link"
		}
		logger.Warn().Str("title", details.Title).Str("reason", reason).Msg("Skipping movie")
		summary.Skipped++
		return outcomeSkipped
	}

	logger.Info().Str("title", details.Title).Msg("Resolved movie details")

	result, err := p.downloader.Download(ctx, details.DownloadLink, details.Title, p.opts.OutputDir)
	if err != nil {
		if errors.Is(err, services.ErrEmptyFilename) {
			logger.Warn().Str("title", details.Title).Str("reason", "unusable title").Msg("Skipping movie")
			summary.Skipped++
			return outcomeSkipped
		}
		kind := p.recordError(fmt.Errorf("download %q: %w", details.Title, err))
		logger.Error().Err(err).Str("kind", string(kind)).Str("title", details.Title).Msg("Download failed")
		summary.Failed++
		return outcomeFailed
	}

	switch result.Status {
	case models.DownloadStatusExisting:
		summary.Existing++
		return outcomeExisting
	default:
		logger.Info().Str("path", result.Target.DestinationPath).Msg("Download completed successfully")
		summary.Downloaded++
		return outcomeDownloaded
	}
}

// recordError classifies err, counts it and hands it to the error reporter
func (p *Pipeline) recordError(err error) apperrors.Kind {
	kind := apperrors.KindOf(err)
	metrics.ErrorsTotal.WithLabelValues(string(kind)).Inc()
	p.report(err)
	return kind
}

// sleepContext waits for d unless ctx finishes first
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
