package discogs

import (
	"context"
	"fmt"

	"github.com/jaki95/discogs-scraper/internal/browser"
	"github.com/jaki95/discogs-scraper/internal/domain"
	"github.com/jaki95/discogs-scraper/internal/extract"
)

// ScrapeAlbum reads label, styles and tracklist from a release page.
// It returns nil if the tracklist never appears. Once it has, every missing
// field falls back to its sentinel and a partial detail is still returned.
func (s *Scraper) ScrapeAlbum(ctx context.Context, releaseURL string) *domain.AlbumDetail {
	sel := s.selectors.Release
	var detail *domain.AlbumDetail

	err := s.withPage(ctx, releaseURL, func(page browser.Page) error {
		if err := page.WaitFor(ctx, sel.Tracklist, s.elementTimeout); err != nil {
			return fmt.Errorf("waiting for tracklist: %w", err)
		}
		detail = domain.NewAlbumDetail()

		root, err := page.Root()
		if err != nil {
			return err
		}

		detail.RecordLabel = extract.Text(sel.Label).Or(domain.LabelNotFound).One(root)
		detail.Styles = extract.Text(sel.Styles).All(root)

		number := extract.Text(sel.TrackNumber).Or(domain.UnknownField)
		title := extract.Text(sel.TrackTitle).Or(domain.UnknownField)
		duration := extract.Text(sel.TrackTime).Or(domain.UnknownDuration)

		root.Locate(sel.TrackRow).Each(func(_ int, row browser.Elements) {
			detail.Tracks = append(detail.Tracks, domain.Track{
				Number: number.One(row),
				Name:   title.One(row),
				Time:   duration.One(row),
			})
		})
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to collect album info", "url", releaseURL, "error", err)
	}

	return detail
}
