package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// htmlPage serves an already loaded document. Nothing on it changes after load,
// so waits either succeed immediately or time out immediately.
type htmlPage struct {
	url string
	doc *goquery.Document
}

// NewHTMLPage parses markup into a Page.
func NewHTMLPage(url, markup string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", url, err)
	}
	return &htmlPage{url: url, doc: doc}, nil
}

func (p *htmlPage) URL() string {
	return p.url
}

func (p *htmlPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %q not present after %s", ErrTimeout, selector, timeout)
	}
	return nil
}

// Click only checks the target exists; server-rendered markup already contains
// whatever a client-side tab would reveal.
func (p *htmlPage) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, selector)
	}
	return nil
}

func (p *htmlPage) Root() (Elements, error) {
	return newElements(p.doc.Selection), nil
}

func (p *htmlPage) Close() error {
	return nil
}
