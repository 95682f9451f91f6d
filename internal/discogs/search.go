package discogs

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jaki95/discogs-scraper/internal/browser"
	"github.com/jaki95/discogs-scraper/internal/domain"
	"github.com/jaki95/discogs-scraper/internal/extract"
)

// DiscoverArtists searches genre and returns up to MaxArtists results in page order.
// Empty result slots are skipped. On failure whatever was read so far is returned.
func (s *Scraper) DiscoverArtists(ctx context.Context, genre string) []domain.ArtistLink {
	searchURL := strings.ReplaceAll(s.searchURL, "{genre}", url.QueryEscape(genre))
	artists := []domain.ArtistLink{}

	err := s.withPage(ctx, searchURL, func(page browser.Page) error {
		if err := page.WaitFor(ctx, s.selectors.Search.Results, s.elementTimeout); err != nil {
			return fmt.Errorf("waiting for search results: %w", err)
		}

		root, err := page.Root()
		if err != nil {
			return err
		}

		for position := 1; position <= MaxArtists; position++ {
			slot := root.Locate(fmt.Sprintf(s.selectors.Search.Slot, position)).First()
			if slot.Count() == 0 {
				continue
			}
			href, ok := extract.Field{Attr: "href"}.Lookup(slot)
			if !ok || href == "" {
				s.logger.Debug("Search result without link", "position", position)
				continue
			}
			artists = append(artists, domain.ArtistLink{
				Name: extract.Field{}.One(slot),
				URL:  s.absolute(href),
			})
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to collect artist links", "genre", genre, "url", searchURL, "error", err)
	}

	s.logger.Info("Discovered artists", "genre", genre, "count", len(artists))
	return artists
}
