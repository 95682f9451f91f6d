// Package discogs implements the crawl stages against Discogs pages.
//
// Every stage opens its own page, closes it on every exit path and reports
// failure through its return value: stage errors are logged here and never
// returned to the caller.
package discogs

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jaki95/discogs-scraper/config"
	"github.com/jaki95/discogs-scraper/internal/browser"
)

// Hard caps on how much of each listing is read.
const (
	MaxArtists = 10
	MaxAlbums  = 10
)

type Scraper struct {
	browser        browser.Browser
	baseURL        *url.URL
	searchURL      string
	pageTimeout    time.Duration
	elementTimeout time.Duration
	selectors      config.Selectors
	logger         *slog.Logger
}

func NewScraper(b browser.Browser, cfg *config.Config, logger *slog.Logger) (*Scraper, error) {
	base, err := url.Parse(cfg.Site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.Site.BaseURL, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scraper{
		browser:        b,
		baseURL:        base,
		searchURL:      cfg.Site.SearchURL,
		pageTimeout:    cfg.Browser.PageLoadTimeout.Std(),
		elementTimeout: cfg.Browser.ElementTimeout.Std(),
		selectors:      cfg.Selectors,
		logger:         logger,
	}, nil
}

// withPage opens url, hands the page to fn and closes it afterwards,
// also when fn panics.
func (s *Scraper) withPage(ctx context.Context, url string, fn func(browser.Page) error) (err error) {
	page, err := s.browser.Open(ctx, url, s.pageTimeout)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while reading %s: %v", url, r)
		}
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("Failed to close page", "url", url, "error", cerr)
		}
	}()

	return fn(page)
}

// absolute resolves href against the site base URL.
func (s *Scraper) absolute(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return s.baseURL.String() + href
	}
	return s.baseURL.ResolveReference(ref).String()
}
