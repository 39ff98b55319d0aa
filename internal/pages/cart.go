package pages

import (
	"fmt"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/match"
	"github.com/atid-store/storecheck/internal/money"
	"github.com/atid-store/storecheck/internal/reconcile"
)

const (
	selCartRow         = ".woocommerce-cart-form__cart-item.cart_item"
	selCartRowName     = ".product-name a"
	selCartRowPrice    = "td.product-price .woocommerce-Price-amount"
	selCartRowQty      = "input.input-text.qty.text"
	selCartRowSubtotal = "td.product-subtotal .woocommerce-Price-amount"
	selCartRowRemove   = "a.remove"

	selUpdateCart   = "button[name='update_cart']"
	selCartSubtotal = ".cart-subtotal .woocommerce-Price-amount"
	selCartShipping = "tr.shipping .woocommerce-Price-amount"
	selCartDiscount = "tr.cart-discount .woocommerce-Price-amount"
	selCartTotal    = "tr.order-total .woocommerce-Price-amount"

	selCouponField  = "#coupon_code"
	selApplyCoupon  = "[name='apply_coupon']"
	selRemoveCoupon = ".woocommerce-remove-coupon"
	selCouponError  = "ul.woocommerce-error"

	selEmptyCartMessage = ".cart-empty.woocommerce-info"
	selProceedCheckout  = ".wc-proceed-to-checkout"
)

// Cart drives the cart page and feeds the reconciliation engine with its
// scraped rows.
type Cart struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewCart(page playwright.Page) *Cart {
	return &Cart{page: page, reader: browser.NewPageReader(page)}
}

// Rows scrapes every cart line as raw text, in DOM order.
func (c *Cart) Rows() ([]reconcile.RawRow, error) {
	rows := c.page.Locator(selCartRow)
	if err := rows.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return nil, fmt.Errorf("no cart rows visible: %w", err)
	}

	count, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count cart rows: %w", err)
	}

	raw := make([]reconcile.RawRow, 0, count)
	for i := 0; i < count; i++ {
		row := rows.Nth(i)

		name, err := row.Locator(selCartRowName).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read name of cart row %d: %w", i, err)
		}
		// last amount skips the struck-through regular price on sale lines
		price, err := row.Locator(selCartRowPrice).Last().InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read price of cart row %d: %w", i, err)
		}
		qty, err := row.Locator(selCartRowQty).InputValue()
		if err != nil {
			return nil, fmt.Errorf("failed to read qty of cart row %d: %w", i, err)
		}
		subtotal, err := row.Locator(selCartRowSubtotal).Last().InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read subtotal of cart row %d: %w", i, err)
		}

		raw = append(raw, reconcile.RawRow{Name: name, Price: price, Quantity: qty, Subtotal: subtotal})
	}
	return raw, nil
}

// Lines scrapes and parses the cart into a line map.
func (c *Cart) Lines() (*reconcile.LineMap, error) {
	rows, err := c.Rows()
	if err != nil {
		return nil, err
	}
	return reconcile.BuildLineMap(rows)
}

func (c *Cart) readAmount(sel string) (decimal.Decimal, error) {
	return readOptionalAmount(c.reader, sel)
}

// Snapshot reads the whole cart: lines plus the totals block. The discount
// is stored as an absolute amount whatever sign the theme renders it with.
func (c *Cart) Snapshot() (reconcile.Snapshot, error) {
	lines, err := c.Lines()
	if err != nil {
		return reconcile.Snapshot{}, err
	}

	subtotal, err := c.readAmount(selCartSubtotal)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("cart subtotal: %w", err)
	}
	shipping, err := c.readAmount(selCartShipping)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("cart shipping: %w", err)
	}
	discount, err := c.readAmount(selCartDiscount)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("cart discount: %w", err)
	}
	total, err := c.readAmount(selCartTotal)
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("cart total: %w", err)
	}

	return reconcile.Snapshot{
		Lines:    lines,
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount.Abs(),
		Total:    total,
	}, nil
}

// row resolves term against the scraped line names and returns the matching
// row locator.
func (c *Cart) row(term string) (playwright.Locator, error) {
	lines, err := c.Lines()
	if err != nil {
		return nil, err
	}
	res, err := match.Match(term, lines.Names())
	if err != nil {
		return nil, err
	}
	return c.page.Locator(selCartRow).Filter(playwright.LocatorFilterOptions{
		Has: c.page.Locator(selCartRowName, playwright.PageLocatorOptions{
			HasText: res.Name,
		}),
	}).First(), nil
}

// SetQuantity fills the qty input of the line matching term and blurs it so
// the storefront enables the update button.
func (c *Cart) SetQuantity(term string, qty int) error {
	row, err := c.row(term)
	if err != nil {
		return err
	}
	input := row.Locator(selCartRowQty)
	if err := input.Fill(strconv.Itoa(qty)); err != nil {
		return fmt.Errorf("failed to fill qty for %q: %w", term, err)
	}
	if err := input.Blur(); err != nil {
		return fmt.Errorf("failed to blur qty input for %q: %w", term, err)
	}
	return nil
}

// UpdateCart submits the cart form and waits for the re-render.
func (c *Cart) UpdateCart() error {
	if err := c.page.Locator(selUpdateCart).Click(); err != nil {
		return fmt.Errorf("failed to click update cart: %w", err)
	}
	if err := c.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("cart did not settle after update: %w", err)
	}
	return nil
}

// SetAndUpdateQuantity changes a line's quantity and waits until its
// subtotal actually changes, guarding against reading the stale render.
func (c *Cart) SetAndUpdateQuantity(term string, qty int, timeout time.Duration) error {
	row, err := c.row(term)
	if err != nil {
		return err
	}
	before, err := row.Locator(selCartRowSubtotal).Last().InnerText()
	if err != nil {
		return fmt.Errorf("failed to read subtotal before update: %w", err)
	}

	if err := c.SetQuantity(term, qty); err != nil {
		return err
	}
	if err := c.UpdateCart(); err != nil {
		return err
	}

	return browser.PollUntil(
		fmt.Sprintf("line subtotal for %q changes after qty update", term),
		timeout, 250*time.Millisecond,
		func() (bool, error) {
			row, err := c.row(term)
			if err != nil {
				return false, err
			}
			after, err := row.Locator(selCartRowSubtotal).Last().InnerText()
			if err != nil {
				return false, err
			}
			return money.Normalize(after) != money.Normalize(before), nil
		})
}

// RemoveLine clicks the remove link of the line matching term and waits for
// the row to detach.
func (c *Cart) RemoveLine(term string) error {
	row, err := c.row(term)
	if err != nil {
		return err
	}
	if err := row.Locator(selCartRowRemove).Click(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", term, err)
	}
	if err := row.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateDetached,
		Timeout: playwright.Float(5000),
	}); err != nil {
		return fmt.Errorf("cart row for %q did not detach: %w", term, err)
	}
	return nil
}

// IsEmpty reports whether the empty-cart notice is shown.
func (c *Cart) IsEmpty() (bool, error) {
	count, err := c.reader.Count(selEmptyCartMessage)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmptyMessage returns the empty-cart notice text.
func (c *Cart) EmptyMessage() (string, error) {
	text, err := c.reader.ReadText(selEmptyCartMessage)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// ApplyCoupon fills and submits the coupon form.
func (c *Cart) ApplyCoupon(code string) error {
	if err := c.page.Locator(selCouponField).Fill(code); err != nil {
		return fmt.Errorf("failed to fill coupon code: %w", err)
	}
	if err := c.page.Locator(selApplyCoupon).Click(); err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}
	return nil
}

// RemoveCoupon removes the applied coupon and waits for the discount row to
// disappear.
func (c *Cart) RemoveCoupon() error {
	if err := c.page.Locator(selRemoveCoupon).Click(); err != nil {
		return fmt.Errorf("failed to remove coupon: %w", err)
	}
	if err := c.page.Locator(selCartDiscount).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateDetached,
		Timeout: playwright.Float(5000),
	}); err != nil {
		return fmt.Errorf("discount row did not disappear: %w", err)
	}
	return nil
}

// DiscountVisible reports whether a coupon discount row is rendered.
func (c *Cart) DiscountVisible() (bool, error) {
	count, err := c.reader.Count(selCartDiscount)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CouponError returns the storefront's coupon error notice text.
func (c *Cart) CouponError() (string, error) {
	text, err := c.reader.ReadText(selCouponError)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// Total reads and parses the current order total.
func (c *Cart) Total() (decimal.Decimal, error) {
	text, err := c.reader.ReadText(selCartTotal)
	if err != nil {
		return decimal.Zero, err
	}
	return money.ParsePrice(text)
}

// WaitForTotal polls until the order total reaches expected, absorbing the
// AJAX delay after coupon and shipping changes.
func (c *Cart) WaitForTotal(expected decimal.Decimal, timeout time.Duration) error {
	return browser.PollUntil(
		fmt.Sprintf("cart total becomes %s", expected.StringFixed(2)),
		timeout, 250*time.Millisecond,
		func() (bool, error) {
			got, err := c.Total()
			if err != nil {
				return false, err
			}
			return money.Close(got, expected), nil
		})
}

// ProceedToCheckout follows the checkout button.
func (c *Cart) ProceedToCheckout() error {
	if err := c.page.Locator(selProceedCheckout).Click(); err != nil {
		return fmt.Errorf("failed to proceed to checkout: %w", err)
	}
	return nil
}
