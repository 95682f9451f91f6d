package discogs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaki95/discogs-scraper/config"
	"github.com/jaki95/discogs-scraper/internal/browser"
)

const baseURL = "https://www.discogs.com"

// fakeBrowser serves fixed markup per URL and counts open and closed pages.
type fakeBrowser struct {
	mu     sync.Mutex
	pages  map[string]string
	opened int
	closed int
}

func newFakeBrowser(pages map[string]string) *fakeBrowser {
	return &fakeBrowser{pages: pages}
}

func (b *fakeBrowser) Open(ctx context.Context, url string, _ time.Duration) (browser.Page, error) {
	markup, ok := b.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", browser.ErrNavigation, url)
	}
	page, err := browser.NewHTMLPage(url, markup)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.opened++
	b.mu.Unlock()
	return &countingPage{Page: page, browser: b}, nil
}

func (b *fakeBrowser) Close() error {
	return nil
}

func (b *fakeBrowser) balanced() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened == b.closed
}

type countingPage struct {
	browser.Page
	browser *fakeBrowser
}

func (p *countingPage) Close() error {
	p.browser.mu.Lock()
	p.browser.closed++
	p.browser.mu.Unlock()
	return p.Page.Close()
}

func newTestScraper(t *testing.T, b browser.Browser) *Scraper {
	t.Helper()
	cfg := config.Default()
	cfg.Browser.ElementTimeout = config.Duration(time.Millisecond)
	s, err := NewScraper(b, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func searchPage(names ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><ul id="search_results">`)
	for i, name := range names {
		if name == "" {
			b.WriteString(`<li><div class="card_body"><h4></h4></div></li>`)
			continue
		}
		fmt.Fprintf(&b, `<li><div class="card_body"><h4><a href="/artist/%d-%s">%s</a></h4></div></li>`, i+1, name, name)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

type albumRow struct {
	title string
	href  string
	year  string
}

func artistPage(name string, members, sites []string, albums []albumRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body><h1 class="MuiTypography-root">%s</h1><table class="profile">`, name)
	if len(members) > 0 {
		b.WriteString(`<tr><th>Membros:</th><td>`)
		for _, m := range members {
			fmt.Fprintf(&b, `<a class="link_1ctor" href="/artist/x">%s</a>, `, m)
		}
		b.WriteString(`</td></tr>`)
	}
	if len(sites) > 0 {
		b.WriteString(`<tr><th>Sites:</th><td>`)
		for _, s := range sites {
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, s, s)
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</table><p class="facet_1Bq8g">Álbuns</p>`)
	b.WriteString(`<div class="discographyGrid_31ecR"><table><tbody>`)
	for _, a := range albums {
		b.WriteString(`<tr><td class="title_oY1q1">`)
		if a.href != "" {
			fmt.Fprintf(&b, `<a class="link_1ctor" href="%s">%s</a>`, a.href, a.title)
		}
		b.WriteString(`</td>`)
		if a.year != "" {
			fmt.Fprintf(&b, `<td class="year_2QrBV">%s</td>`, a.year)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div></body></html>`)
	return b.String()
}

func versionsPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><section id="versions"><table><tbody>`)
	for i, href := range hrefs {
		fmt.Fprintf(&b, `<tr><td class="title_3z5nf cell_WT9P-"><a href="%s">Version %d</a></td></tr>`, href, i+1)
	}
	b.WriteString(`</tbody></table></section></body></html>`)
	return b.String()
}

type trackRow struct {
	number string
	title  string
	time   string
}

func releasePage(label string, styles []string, tracks []trackRow) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="info">`)
	if label != "" {
		fmt.Fprintf(&b, `<tr><th>Label:</th><td>%s</td></tr>`, label)
	}
	b.WriteString(`<tr><th>Style:</th><td>`)
	for _, s := range styles {
		fmt.Fprintf(&b, `<a href="/style/%s">%s</a>`, s, s)
	}
	b.WriteString(`</td></tr></table><section id="release-tracklist"><table><tbody>`)
	for _, tr := range tracks {
		b.WriteString(`<tr>`)
		if tr.number != "" {
			fmt.Fprintf(&b, `<td class="trackPos_2RCje"><span>%s</span></td>`, tr.number)
		}
		if tr.title != "" {
			fmt.Fprintf(&b, `<td class="trackTitle_CTKp4"><span>%s</span></td>`, tr.title)
		}
		if tr.time != "" {
			fmt.Fprintf(&b, `<td class="duration_2t4qr"><span>%s</span></td>`, tr.time)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></section></body></html>`)
	return b.String()
}
