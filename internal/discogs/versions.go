package discogs

import (
	"context"
	"errors"

	"github.com/jaki95/discogs-scraper/internal/browser"
	"github.com/jaki95/discogs-scraper/internal/extract"
)

var errNoVersions = errors.New("no versions listed")

// ResolveVersion returns the first release listed on a master page, in document order.
// Master pages carry no tracklist, so album details are read from that release.
func (s *Scraper) ResolveVersion(ctx context.Context, masterURL string) (string, bool) {
	var versionURL string

	err := s.withPage(ctx, masterURL, func(page browser.Page) error {
		root, err := page.Root()
		if err != nil {
			return err
		}

		href, ok := extract.Href(s.selectors.Versions.Link).Lookup(root)
		if !ok || href == "" {
			return errNoVersions
		}
		versionURL = s.absolute(href)
		return nil
	})
	if errors.Is(err, errNoVersions) {
		s.logger.Debug("Master release has no versions", "url", masterURL)
		return "", false
	}
	if err != nil {
		s.logger.Error("Failed to open album versions", "url", masterURL, "error", err)
		return "", false
	}

	return versionURL, true
}
