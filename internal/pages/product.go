package pages

import (
	"fmt"
	"strconv"

	"github.com/playwright-community/playwright-go"
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
)

const (
	selPdpTitle      = ".product_title.entry-title"
	selPdpSalePrice  = ".summary.entry-summary p.price ins .woocommerce-Price-amount"
	selPdpPrice      = ".summary.entry-summary p.price .woocommerce-Price-amount"
	selPdpQty        = ".input-text.qty.text"
	selPdpAddToCart  = ".single_add_to_cart_button.button.alt"
	selPdpNotice     = ".woocommerce-notices-wrapper"
	selPdpViewCart   = ".woocommerce-notices-wrapper .button.wc-forward"
	selPdpBreadcrumb = ".woocommerce-breadcrumb"
)

// Product drives a product detail page.
type Product struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewProduct(page playwright.Page) *Product {
	return &Product{page: page, reader: browser.NewPageReader(page)}
}

func (p *Product) Title() (string, error) {
	text, err := p.reader.ReadText(selPdpTitle)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// PriceText returns the effective price text: the sale price when the
// product is on sale, otherwise the regular price.
func (p *Product) PriceText() (string, error) {
	onSale, err := p.reader.Count(selPdpSalePrice)
	if err != nil {
		return "", err
	}
	sel := selPdpPrice
	if onSale > 0 {
		sel = selPdpSalePrice
	}
	text, err := p.reader.ReadText(sel)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// Price returns the parsed effective price.
func (p *Product) Price() (decimal.Decimal, error) {
	text, err := p.PriceText()
	if err != nil {
		return decimal.Zero, err
	}
	return money.ParsePrice(text)
}

// SetQuantity fills the qty input.
func (p *Product) SetQuantity(qty int) error {
	if err := p.page.Locator(selPdpQty).Fill(strconv.Itoa(qty)); err != nil {
		return fmt.Errorf("failed to set quantity: %w", err)
	}
	return nil
}

// AddToCart submits the add-to-cart form and waits for the confirmation
// notice.
func (p *Product) AddToCart() error {
	if err := p.page.Locator(selPdpAddToCart).Click(); err != nil {
		return fmt.Errorf("failed to click add to cart: %w", err)
	}
	if err := p.page.Locator(selPdpNotice).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("add-to-cart notice did not appear: %w", err)
	}
	return nil
}

// ViewCart follows the "View cart" link in the notice.
func (p *Product) ViewCart() error {
	if err := p.page.Locator(selPdpViewCart).Click(); err != nil {
		return fmt.Errorf("failed to open cart from notice: %w", err)
	}
	return nil
}

// Breadcrumb returns the breadcrumb trail text.
func (p *Product) Breadcrumb() (string, error) {
	text, err := p.reader.ReadText(selPdpBreadcrumb)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}
