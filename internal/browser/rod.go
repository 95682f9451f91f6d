package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodBrowser drives a local Chromium. One browser process serves the whole run;
// every Open creates a fresh tab.
type RodBrowser struct {
	browser        *rod.Browser
	launcher       *launcher.Launcher
	userAgent      string
	elementTimeout time.Duration
}

func NewRodBrowser(opts Options) (*RodBrowser, error) {
	l := launcher.New().Headless(opts.Headless)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	elementTimeout := opts.ElementTimeout
	if elementTimeout <= 0 {
		elementTimeout = 60 * time.Second
	}

	slog.Debug("Browser started", "headless", opts.Headless, "controlURL", controlURL)
	return &RodBrowser{
		browser:        b,
		launcher:       l,
		userAgent:      opts.UserAgent,
		elementTimeout: elementTimeout,
	}, nil
}

func (b *RodBrowser) Open(ctx context.Context, url string, loadTimeout time.Duration) (Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: opening tab: %v", ErrNavigation, err)
	}

	rp := &rodPage{page: page, url: url, elementTimeout: b.elementTimeout}

	if b.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
			rp.Close()
			return nil, fmt.Errorf("%w: setting user agent: %v", ErrNavigation, err)
		}
	}

	loading := page.Context(ctx).Timeout(loadTimeout)
	defer loading.CancelTimeout()

	wait := loading.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := loading.Navigate(url); err != nil {
		rp.Close()
		return nil, classify(fmt.Sprintf("loading %s", url), err, ErrNavigation)
	}
	wait()

	if err := loading.GetContext().Err(); err != nil {
		rp.Close()
		return nil, classify(fmt.Sprintf("loading %s", url), err, ErrNavigation)
	}

	return rp, nil
}

func (b *RodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Cleanup()
	return err
}

type rodPage struct {
	page           *rod.Page
	url            string
	elementTimeout time.Duration

	snapshot *goquery.Document
}

func (p *rodPage) URL() string {
	return p.url
}

func (p *rodPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	p.snapshot = nil

	waiting := p.page.Context(ctx).Timeout(timeout)
	defer waiting.CancelTimeout()

	if _, err := waiting.Element(selector); err != nil {
		return classify(fmt.Sprintf("waiting for %q", selector), err, ErrNotFound)
	}
	return nil
}

func (p *rodPage) Click(ctx context.Context, selector string) error {
	p.snapshot = nil

	waiting := p.page.Context(ctx).Timeout(p.elementTimeout)
	defer waiting.CancelTimeout()

	el, err := waiting.Element(selector)
	if err != nil {
		return classify(fmt.Sprintf("locating %q", selector), err, ErrNotFound)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// Root parses the rendered DOM once per wait/click and serves reads from that copy.
func (p *rodPage) Root() (Elements, error) {
	if p.snapshot == nil {
		html, err := p.page.HTML()
		if err != nil {
			return Elements{}, fmt.Errorf("failed to read page html: %w", err)
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return Elements{}, fmt.Errorf("failed to parse page html: %w", err)
		}
		p.snapshot = doc
	}
	return newElements(p.snapshot.Selection), nil
}

func (p *rodPage) Close() error {
	p.snapshot = nil
	return p.page.Close()
}

// classify maps deadline errors to ErrTimeout and everything else to fallback.
func classify(action string, err, fallback error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, action, err)
	}
	return fmt.Errorf("%w: %s: %v", fallback, action, err)
}
