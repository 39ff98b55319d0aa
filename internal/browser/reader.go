// Package browser wraps the Playwright session for the page objects: a
// narrow read interface over rendered elements, a bounded poll primitive,
// and the browser fixture shared by the e2e suite and the audit CLI.
package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Reader is the page-read boundary the reconciliation layer scrapes
// through. Keeping it this narrow lets row extraction be exercised against
// a fake without a browser.
type Reader interface {
	// ReadText returns the current visible text of the first element
	// matching selector, waiting for it to become visible.
	ReadText(selector string) (string, error)
	// ReadInputValue returns a form control's current value.
	ReadInputValue(selector string) (string, error)
	// Count returns the number of elements matching selector.
	Count(selector string) (int, error)
}

// PageReader implements Reader over a live Playwright page.
type PageReader struct {
	page playwright.Page
}

// NewPageReader wraps a Playwright page.
func NewPageReader(page playwright.Page) *PageReader {
	return &PageReader{page: page}
}

// Page exposes the underlying Playwright page for interactions (click,
// fill, drag) that sit outside the read boundary.
func (r *PageReader) Page() playwright.Page {
	return r.page
}

func (r *PageReader) ReadText(selector string) (string, error) {
	loc := r.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("element %q not visible: %w", selector, err)
	}
	text, err := loc.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", selector, err)
	}
	return text, nil
}

func (r *PageReader) ReadInputValue(selector string) (string, error) {
	value, err := r.page.Locator(selector).First().InputValue()
	if err != nil {
		return "", fmt.Errorf("failed to read value of %q: %w", selector, err)
	}
	return value, nil
}

func (r *PageReader) Count(selector string) (int, error) {
	count, err := r.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", selector, err)
	}
	return count, nil
}
