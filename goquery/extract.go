// Package goquery extracts content locators from viewer markup using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookgrab"
)

// Extractor reads locators out of HTML snapshots of a viewer.
type Extractor struct {
	layout bookgrab.Layout
}

// NewExtractor creates an Extractor for the given layout.
func NewExtractor(layout bookgrab.Layout) *Extractor {
	return &Extractor{layout: layout}
}

// ExtractLocator returns the locator of a single unit given its outer HTML.
// The attribute is returned verbatim. The bool result is false if the unit
// has not rendered its content element or the attribute is missing or blank.
func (e *Extractor) ExtractLocator(html string) (bookgrab.Locator, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	return e.locator(doc.Selection)
}

func (e *Extractor) locator(scope *goquery.Selection) (bookgrab.Locator, bool) {
	val, exists := scope.Find(e.layout.Content).First().Attr(e.layout.Attr)
	if !exists {
		return "", false
	}
	if strings.TrimSpace(val) == "" {
		return "", false
	}
	return bookgrab.Locator(val), true
}
