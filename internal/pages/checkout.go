package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
	"github.com/atid-store/storecheck/internal/reconcile"
)

const (
	selReviewRow      = "tr.cart_item"
	selReviewRowName  = "td.product-name"
	selReviewRowQty   = "td.product-name .product-quantity"
	selReviewRowTotal = "td.product-total .woocommerce-Price-amount"

	selCheckoutSubtotal = ".cart-subtotal .woocommerce-Price-amount"
	selCheckoutShipping = "tr.shipping .woocommerce-Price-amount"
	selCheckoutDiscount = "tr.cart-discount .woocommerce-Price-amount"
	selCheckoutTotal    = ".order-total .woocommerce-Price-amount"

	selPlaceOrder   = "#place_order"
	selErrorNotices = "ul.woocommerce-error"

	selShippingLocalPickup    = "#shipping_method_0_local_pickup1"
	selShippingExpress        = "#shipping_method_0_flat_rate3"
	selShippingRegisteredMail = "#shipping_method_0_flat_rate4"
)

// BillingInfo is the checkout billing form payload.
type BillingInfo struct {
	FirstName string
	LastName  string
	Company   string
	Address   string
	Apartment string
	Postcode  string
	City      string
	Phone     string
	Email     string
}

// ShippingOption selects one of the storefront's configured methods.
type ShippingOption string

const (
	ShippingLocalPickup    ShippingOption = "local pickup"
	ShippingExpress        ShippingOption = "delivery express"
	ShippingRegisteredMail ShippingOption = "registered mail"
)

// Checkout drives the checkout page: order review rows, billing details,
// shipping options.
type Checkout struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewCheckout(page playwright.Page) *Checkout {
	return &Checkout{page: page, reader: browser.NewPageReader(page)}
}

// Rows scrapes the order review table. A review row renders the name cell
// as "Product Name  × 2" with the quantity in a child element and only a
// line total, no unit price, so RawRow.Price is left empty and the quantity
// is cut out of the name text.
func (c *Checkout) Rows() ([]reconcile.RawRow, error) {
	rows := c.page.Locator(selReviewRow)
	if err := rows.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return nil, fmt.Errorf("no order review rows visible: %w", err)
	}

	count, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count order review rows: %w", err)
	}

	raw := make([]reconcile.RawRow, 0, count)
	for i := 0; i < count; i++ {
		row := rows.Nth(i)

		nameCell, err := row.Locator(selReviewRowName).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read name of review row %d: %w", i, err)
		}
		qtyText, err := row.Locator(selReviewRowQty).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read qty of review row %d: %w", i, err)
		}
		total, err := row.Locator(selReviewRowTotal).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read total of review row %d: %w", i, err)
		}

		raw = append(raw, reconcile.RawRow{
			Name:     reviewRowName(nameCell, qtyText),
			Quantity: qtyText,
			Subtotal: total,
		})
	}
	return raw, nil
}

// reviewRowName cuts the "× 2" quantity suffix out of an order review name
// cell, leaving just the product name.
func reviewRowName(nameCell, qtyText string) string {
	name := money.Normalize(nameCell)
	qty := money.Normalize(qtyText)
	if qty != "" {
		name = strings.Replace(name, qty, "", 1)
	}
	return strings.TrimSpace(name)
}

// Lines scrapes and parses the order review into a line map.
func (c *Checkout) Lines() (*reconcile.LineMap, error) {
	rows, err := c.Rows()
	if err != nil {
		return nil, err
	}
	return reconcile.BuildLineMap(rows)
}

// Snapshot reads the order review lines plus the totals block.
func (c *Checkout) Snapshot() (reconcile.Snapshot, error) {
	lines, err := c.Lines()
	if err != nil {
		return reconcile.Snapshot{}, err
	}

	read := func(sel string) (decimal.Decimal, error) {
		return readOptionalAmount(c.reader, sel)
	}

	subtotal, err := read(selCheckoutSubtotal)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("checkout subtotal: %w", err)
	}
	shipping, err := read(selCheckoutShipping)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("checkout shipping: %w", err)
	}
	discount, err := read(selCheckoutDiscount)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("checkout discount: %w", err)
	}
	total, err := read(selCheckoutTotal)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("checkout total: %w", err)
	}

	return reconcile.Snapshot{
		Lines:    lines,
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount.Abs(),
		Total:    total,
	}, nil
}

// FillBillingDetails fills the billing form.
func (c *Checkout) FillBillingDetails(info BillingInfo) error {
	fields := []struct {
		selector string
		value    string
	}{
		{"#billing_first_name", info.FirstName},
		{"#billing_last_name", info.LastName},
		{"#billing_company", info.Company},
		{"#billing_address_1", info.Address},
		{"#billing_address_2", info.Apartment},
		{"#billing_postcode", info.Postcode},
		{"#billing_city", info.City},
		{"#billing_phone", info.Phone},
		{"#billing_email", info.Email},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := c.page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.selector, err)
		}
	}
	return nil
}

// SelectShipping picks a shipping method and waits for the totals to
// re-render.
func (c *Checkout) SelectShipping(option ShippingOption) error {
	var sel string
	switch option {
	case ShippingLocalPickup:
		sel = selShippingLocalPickup
	case ShippingExpress:
		sel = selShippingExpress
	case ShippingRegisteredMail:
		sel = selShippingRegisteredMail
	default:
		return fmt.Errorf("unknown shipping option %q", option)
	}

	if err := c.page.Locator(sel).Check(); err != nil {
		return fmt.Errorf("failed to select shipping option %q: %w", option, err)
	}
	if err := c.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("checkout did not settle after shipping change: %w", err)
	}
	return nil
}

// PlaceOrder submits the order.
func (c *Checkout) PlaceOrder() error {
	if err := c.page.Locator(selPlaceOrder).Click(); err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	return nil
}

// ErrorNotices returns the checkout validation notice text.
func (c *Checkout) ErrorNotices() (string, error) {
	text, err := c.reader.ReadText(selErrorNotices)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}
