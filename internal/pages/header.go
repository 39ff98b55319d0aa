// Package pages holds the Page Object Model for the storefront: one type
// per rendered view, wrapping Playwright locators behind intent-level
// methods. Scraped text flows out through the money/match/reconcile
// packages; nothing here asserts, pages only read and act.
package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
)

// Header nav tabs. The storefront theme renders the menu with fixed item
// ids, so tabs are addressed by id rather than by label text.
const (
	TabHome        = "#menu-item-381"
	TabStore       = "#menu-item-45"
	TabMen         = "#menu-item-266"
	TabWomen       = "#menu-item-267"
	TabAccessories = "#menu-item-671"
	TabAbout       = "#menu-item-828"
	TabContactUs   = "#menu-item-829"
)

const (
	selCartBadgeCount  = ".ast-site-header-cart-li .count"
	selCartHeaderTotal = ".ast-woo-header-cart-total"
	selSearchToggle    = ".ast-search-menu-icon.slide-search"
	selSearchField     = ".ast-header-search input"
	selFooterLinks     = ".ast-footer-overlay a"
)

// Header drives the global header and footer shared by every page.
type Header struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewHeader(page playwright.Page) *Header {
	return &Header{page: page, reader: browser.NewPageReader(page)}
}

// GoTo opens url and waits for the DOM to load.
func (h *Header) GoTo(url string) error {
	_, err := h.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// OpenTab clicks a header nav tab.
func (h *Header) OpenTab(tab string) error {
	if err := h.page.Locator(tab + " a").First().Click(); err != nil {
		return fmt.Errorf("failed to open tab %s: %w", tab, err)
	}
	return nil
}

// BadgeCount returns the cart badge's item count text.
func (h *Header) BadgeCount() (string, error) {
	text, err := h.reader.ReadText(selCartBadgeCount)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// HeaderAmount returns the cart total rendered next to the badge.
func (h *Header) HeaderAmount() (decimal.Decimal, error) {
	text, err := h.reader.ReadText(selCartHeaderTotal)
	if err != nil {
		return decimal.Zero, err
	}
	return money.ParsePrice(text)
}

// WaitForBadge polls until the badge shows count. The badge updates over
// AJAX after add-to-cart, so an immediate read can be stale.
func (h *Header) WaitForBadge(count string, timeout time.Duration) error {
	return browser.PollUntil(
		fmt.Sprintf("cart badge shows %s", count),
		timeout, 250*time.Millisecond,
		func() (bool, error) {
			got, err := h.BadgeCount()
			if err != nil {
				return false, err
			}
			return got == count, nil
		})
}

// FooterLinks returns the text of every footer link.
func (h *Header) FooterLinks() ([]string, error) {
	links := h.page.Locator(selFooterLinks)
	texts, err := links.AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to read footer links: %w", err)
	}
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = money.Normalize(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// Search opens the header search and submits term.
func (h *Header) Search(term string) error {
	if err := h.page.Locator(selSearchToggle).Click(); err != nil {
		return fmt.Errorf("failed to open search: %w", err)
	}
	field := h.page.Locator(selSearchField)
	if err := field.Fill(term); err != nil {
		return fmt.Errorf("failed to fill search field: %w", err)
	}
	if err := field.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	return nil
}
