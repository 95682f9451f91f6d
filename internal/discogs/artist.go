package discogs

import (
	"context"
	"fmt"

	"github.com/jaki95/discogs-scraper/internal/browser"
	"github.com/jaki95/discogs-scraper/internal/domain"
	"github.com/jaki95/discogs-scraper/internal/extract"
)

// ScrapeArtist reads an artist page and its first MaxAlbums discography entries.
// It returns nil when the artist name never appears. A discography that cannot be
// opened leaves the record with no albums instead of dropping it.
func (s *Scraper) ScrapeArtist(ctx context.Context, artistURL, genre string) *domain.ArtistRecord {
	sel := s.selectors.Artist
	var record *domain.ArtistRecord

	err := s.withPage(ctx, artistURL, func(page browser.Page) error {
		if err := page.WaitFor(ctx, sel.Name, s.elementTimeout); err != nil {
			return fmt.Errorf("waiting for artist name: %w", err)
		}

		root, err := page.Root()
		if err != nil {
			return err
		}

		record = domain.NewArtistRecord(genre, extract.Text(sel.Name).One(root))
		record.Members = extract.Text(sel.Members).All(root)
		record.Sites = extract.Href(sel.Sites).All(root)

		albums, err := s.readDiscography(ctx, page)
		if err != nil {
			s.logger.Warn("Failed to read discography", "artist", record.Name, "url", artistURL, "error", err)
			return nil
		}
		record.Albums = albums
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to collect artist info", "url", artistURL, "error", err)
		return nil
	}

	return record
}

func (s *Scraper) readDiscography(ctx context.Context, page browser.Page) ([]domain.Album, error) {
	sel := s.selectors.Artist

	if err := page.Click(ctx, sel.AlbumsTab); err != nil {
		return nil, fmt.Errorf("opening albums tab: %w", err)
	}
	if err := page.WaitFor(ctx, sel.Discography, s.elementTimeout); err != nil {
		return nil, fmt.Errorf("waiting for discography: %w", err)
	}

	root, err := page.Root()
	if err != nil {
		return nil, err
	}

	albums := []domain.Album{}
	rows := root.Locate(sel.AlbumRow)
	for i := 0; i < rows.Count() && len(albums) < MaxAlbums; i++ {
		row := rows.Nth(i)

		// Rows without a title link are headings or placeholders.
		link := row.Locate(sel.AlbumLink).First()
		href, ok := extract.Field{Attr: "href"}.Lookup(link)
		if !ok || href == "" {
			continue
		}

		albums = append(albums, domain.Album{
			Name: extract.Field{}.One(link),
			Link: s.absolute(href),
			Year: extract.Text(sel.AlbumYear).One(row),
		})
	}

	return albums, nil
}
