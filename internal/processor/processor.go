// Package processor runs the crawl pipeline: discovery, artist pages,
// album versions and release pages, one output line per artist.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaki95/discogs-scraper/internal/domain"
	"github.com/jaki95/discogs-scraper/internal/output"
	"github.com/jaki95/discogs-scraper/internal/progress"
)

// Stages are the page-level operations the pipeline is built from.
// Failures are reported through zero values, never errors.
type Stages interface {
	DiscoverArtists(ctx context.Context, genre string) []domain.ArtistLink
	ScrapeArtist(ctx context.Context, artistURL, genre string) *domain.ArtistRecord
	ResolveVersion(ctx context.Context, masterURL string) (string, bool)
	ScrapeAlbum(ctx context.Context, releaseURL string) *domain.AlbumDetail
}

// Processor drives the stages sequentially
type Processor struct {
	stages   Stages
	sink     output.Sink
	tracker  *progress.Tracker
	logger   *slog.Logger
	location string
	runID    string
}

// Option customises a Processor.
type Option func(*Processor)

// WithTracker reports progress to t.
func WithTracker(t *progress.Tracker) Option {
	return func(p *Processor) { p.tracker = t }
}

// WithLogger sets the logger used for per-artist and per-album lines.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithRun records the run ID and output location in the summary.
func WithRun(runID, location string) Option {
	return func(p *Processor) {
		p.runID = runID
		p.location = location
	}
}

// New creates a new processor
func New(stages Stages, sink output.Sink, opts ...Option) *Processor {
	p := &Processor{
		stages:  stages,
		sink:    sink,
		tracker: progress.NewTracker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run crawls genre. Only a sink failure or cancellation stops it early;
// the summary covers everything done up to that point.
func (p *Processor) Run(ctx context.Context, genre string) (*Summary, error) {
	summary := &Summary{
		RunID:    p.runID,
		Genre:    genre,
		Location: p.location,
		started:  time.Now(),
	}
	defer summary.finish()

	p.tracker.UpdateProgress(progress.StageDiscovering, 0, fmt.Sprintf("Searching %s artists", genre))
	artists := p.stages.DiscoverArtists(ctx, genre)
	summary.ArtistsDiscovered = len(artists)
	p.logger.Info("Artists found", "genre", genre, "count", len(artists))

	for i, link := range artists {
		if err := ctx.Err(); err != nil {
			p.tracker.SetError(err)
			return summary, err
		}

		p.tracker.UpdateArtistProgress(i+1, len(artists), i, link.Name)

		record := p.crawlArtist(ctx, link, genre, summary)
		if err := ctx.Err(); err != nil {
			// An interrupted artist is incomplete and is not written.
			p.tracker.SetError(err)
			return summary, err
		}
		if record == nil {
			summary.ArtistsDropped++
			continue
		}

		if err := p.sink.Append(record); err != nil {
			err = fmt.Errorf("failed to persist artist %q: %w", record.Name, err)
			p.tracker.SetError(err)
			return summary, err
		}
		summary.ArtistsWritten++
		p.logger.Info("Artist saved", "artist", record.Name, "albums", len(record.Albums))
	}

	p.tracker.UpdateArtistProgress(len(artists), len(artists), len(artists), "")
	p.tracker.UpdateProgress(progress.StageComplete, 100, "Crawl completed")
	return summary, nil
}

// crawlArtist builds the full record for one artist, or nil if the artist page
// could not be read. Every album is attempted before the record is returned.
func (p *Processor) crawlArtist(ctx context.Context, link domain.ArtistLink, genre string, summary *Summary) *domain.ArtistRecord {
	p.logger.Info("Collecting artist", "artist", link.Name, "url", link.URL)

	record := p.stages.ScrapeArtist(ctx, link.URL, genre)
	if record == nil {
		p.logger.Warn("Artist skipped", "artist", link.Name, "url", link.URL)
		return nil
	}

	for i := range record.Albums {
		if ctx.Err() != nil {
			break
		}
		album := &record.Albums[i]
		summary.AlbumsSeen++

		versionURL, ok := p.stages.ResolveVersion(ctx, album.Link)
		if !ok {
			summary.AlbumsUnresolved++
			p.logger.Warn("No version found for album", "artist", record.Name, "album", album.Name, "url", album.Link)
			continue
		}

		detail := p.stages.ScrapeAlbum(ctx, versionURL)
		if detail == nil {
			summary.AlbumsFailed++
			p.logger.Warn("Album details unavailable", "artist", record.Name, "album", album.Name, "url", versionURL)
			continue
		}

		album.Enrich(detail)
		summary.AlbumsEnriched++
		p.logger.Info("Album collected", "artist", record.Name, "album", album.Name, "tracks", len(detail.Tracks))
	}

	return record
}
