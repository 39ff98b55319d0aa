package pages

import (
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
)

// readOptionalAmount parses the first element matching sel, returning zero
// when no element is rendered at all. Totals rows like shipping and coupon
// discount are simply absent when not applicable, which is not an error;
// a present row whose text holds no number still is.
func readOptionalAmount(reader *browser.PageReader, sel string) (decimal.Decimal, error) {
	count, err := reader.Count(sel)
	if err != nil {
		return decimal.Zero, err
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	text, err := reader.ReadText(sel)
	if err != nil {
		return decimal.Zero, err
	}
	return money.ParsePrice(text)
}
