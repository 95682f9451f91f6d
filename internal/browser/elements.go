package browser

import (
	"github.com/PuerkitoBio/goquery"
)

// Elements is an ordered set of matched DOM nodes. The zero value is an empty set.
type Elements struct {
	sel *goquery.Selection
}

func newElements(sel *goquery.Selection) Elements {
	return Elements{sel: sel}
}

func (e Elements) Count() int {
	if e.sel == nil {
		return 0
	}
	return e.sel.Length()
}

// Nth returns the i-th element (zero based) as a set of at most one element.
func (e Elements) Nth(i int) Elements {
	if i < 0 || i >= e.Count() {
		return Elements{}
	}
	return newElements(e.sel.Eq(i))
}

func (e Elements) First() Elements {
	return e.Nth(0)
}

// Text returns the combined text content of the set.
func (e Elements) Text() string {
	if e.sel == nil {
		return ""
	}
	return e.sel.Text()
}

// Attr returns the attribute of the first element.
func (e Elements) Attr(name string) (string, bool) {
	if e.Count() == 0 {
		return "", false
	}
	return e.sel.First().Attr(name)
}

// Locate finds descendants of the set matching selector.
func (e Elements) Locate(selector string) Elements {
	if e.sel == nil {
		return Elements{}
	}
	return newElements(e.sel.Find(selector))
}

// Each calls fn for every element in document order.
func (e Elements) Each(fn func(i int, el Elements)) {
	for i := 0; i < e.Count(); i++ {
		fn(i, e.Nth(i))
	}
}
