// Package extract reads values out of a page without failing on absent markup.
package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jaki95/discogs-scraper/internal/browser"
)

// Field locates a value relative to a scope. An empty Selector reads the scope
// itself and an empty Attr reads text content.
type Field struct {
	Selector string
	Attr     string
	Fallback string
}

// Text is shorthand for a text field without fallback.
func Text(selector string) Field {
	return Field{Selector: selector}
}

// Href is shorthand for the href attribute of selector.
func Href(selector string) Field {
	return Field{Selector: selector, Attr: "href"}
}

// Or returns a copy of f with fallback set.
func (f Field) Or(fallback string) Field {
	f.Fallback = fallback
	return f
}

// Lookup reads the first match. ok is false when nothing matched
// or the first match lacks the attribute.
func (f Field) Lookup(scope browser.Elements) (string, bool) {
	first := f.matches(scope).First()
	if first.Count() == 0 {
		return "", false
	}
	return f.value(first)
}

// One reads the first match, or the fallback.
func (f Field) One(scope browser.Elements) string {
	if v, ok := f.Lookup(scope); ok {
		return v
	}
	return f.Fallback
}

// All reads every match in document order. Attribute reads skip elements
// that lack the attribute. The result is never nil.
func (f Field) All(scope browser.Elements) []string {
	values := []string{}
	f.matches(scope).Each(func(_ int, el browser.Elements) {
		if v, ok := f.value(el); ok {
			values = append(values, v)
		}
	})
	return values
}

func (f Field) matches(scope browser.Elements) browser.Elements {
	if f.Selector == "" {
		return scope
	}
	return scope.Locate(f.Selector)
}

func (f Field) value(el browser.Elements) (string, bool) {
	if f.Attr == "" {
		return Clean(el.Text()), true
	}
	v, ok := el.Attr(f.Attr)
	if !ok {
		return "", false
	}
	return Clean(v), true
}

// Clean trims surrounding whitespace and normalises to NFC.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
