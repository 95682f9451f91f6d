package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/gocolly/colly"
)

// StaticBrowser fetches server-rendered HTML without executing JavaScript.
type StaticBrowser struct {
	userAgent string
}

func NewStaticBrowser(opts Options) *StaticBrowser {
	return &StaticBrowser{userAgent: opts.UserAgent}
}

func (b *StaticBrowser) Open(ctx context.Context, url string, loadTimeout time.Duration) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := []func(*colly.Collector){colly.AllowURLRevisit()}
	if b.userAgent != "" {
		options = append(options, colly.UserAgent(b.userAgent))
	}
	c := colly.NewCollector(options...)
	c.SetRequestTimeout(loadTimeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
		r.Headers.Set("Cache-Control", "max-age=0")
	})

	var (
		body     []byte
		finalURL = url
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		finalURL = r.Request.URL.String()
	})

	slog.Debug("Fetching page", "url", url)
	if err := c.Visit(url); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: loading %s: %v", ErrTimeout, url, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	return NewHTMLPage(finalURL, string(body))
}

func (b *StaticBrowser) Close() error {
	return nil
}
