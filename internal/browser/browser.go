package browser

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTimeout    = errors.New("timed out waiting for page")
	ErrNavigation = errors.New("navigation failed")
	ErrNotFound   = errors.New("element not found")
)

const (
	DriverRod    = "rod"
	DriverStatic = "static"
)

// Browser opens page sessions. Each Page owns one tab and must be closed by the caller.
type Browser interface {
	Open(ctx context.Context, url string, loadTimeout time.Duration) (Page, error)
	Close() error
}

// Page is a single navigated tab.
type Page interface {
	URL() string

	// WaitFor blocks until selector matches at least one element or timeout elapses.
	// A missed deadline is reported as ErrTimeout.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error

	Click(ctx context.Context, selector string) error

	// Root returns the current document. It reflects the page as of the last
	// wait or click, so call it again after either.
	Root() (Elements, error)

	Close() error
}

// Options configures a browser driver.
type Options struct {
	Driver         string
	Headless       bool
	Bin            string
	UserAgent      string
	ElementTimeout time.Duration
}

// New returns the driver named by opts.Driver.
func New(opts Options) (Browser, error) {
	switch opts.Driver {
	case DriverStatic:
		return NewStaticBrowser(opts), nil
	case DriverRod, "":
		return NewRodBrowser(opts)
	default:
		return nil, errors.New("unknown browser driver: " + opts.Driver)
	}
}
