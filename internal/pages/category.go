package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/match"
	"github.com/atid-store/storecheck/internal/money"
)

const (
	selProductCard      = "ul.products li.product"
	selProductCardTitle = ".woocommerce-loop-product__title"
	// last amount in the card skips the struck-through regular price on
	// sale items
	selProductCardPrice = "span.price .woocommerce-Price-amount"
	selAddToCartButton  = "a.add_to_cart_button"

	selCategoryTitle = ".woocommerce-products-header__title.page-title"
	selResultCount   = ".woocommerce-result-count"

	selBestSellerTitle = "ul.product_list_widget li .product-title"

	selSliderTrack     = ".price_slider.ui-slider"
	selSliderMinHandle = ".ui-widget-content > span:nth-child(2)"
	selSliderMaxHandle = ".ui-widget-content > span:nth-child(3)"
	selSliderFromLabel = ".price_slider_amount .price_label .from"
	selSliderToLabel   = ".price_slider_amount .price_label .to"
	selSliderFilterBtn = ".price_slider_amount .button"
)

// Category drives a product listing page (the Store tab or a category
// archive): product cards, the price-slider filter, and per-card actions.
type Category struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewCategory(page playwright.Page) *Category {
	return &Category{page: page, reader: browser.NewPageReader(page)}
}

// Title returns the archive page title.
func (c *Category) Title() (string, error) {
	text, err := c.reader.ReadText(selCategoryTitle)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// ProductNames returns the card titles in listing order.
func (c *Category) ProductNames() ([]string, error) {
	cards := c.page.Locator(selProductCard)
	if err := cards.First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return nil, fmt.Errorf("no product cards visible: %w", err)
	}

	count, err := cards.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count product cards: %w", err)
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := cards.Nth(i).Locator(selProductCardTitle).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read title of card %d: %w", i, err)
		}
		names = append(names, money.Normalize(text))
	}
	return names, nil
}

// card resolves term against the card titles and returns the matching card
// locator.
func (c *Category) card(term string) (playwright.Locator, error) {
	names, err := c.ProductNames()
	if err != nil {
		return nil, err
	}
	res, err := match.Match(term, names)
	if err != nil {
		return nil, err
	}
	return c.page.Locator(selProductCard).
		Filter(playwright.LocatorFilterOptions{HasText: res.Name}).First(), nil
}

// PriceTextByName returns the rendered price text of the product whose card
// title contains term.
func (c *Category) PriceTextByName(term string) (string, error) {
	card, err := c.card(term)
	if err != nil {
		return "", err
	}
	text, err := card.Locator(selProductCardPrice).Last().InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read listing price for %q: %w", term, err)
	}
	return money.Normalize(text), nil
}

// PriceByName returns the parsed listing price of the product whose card
// title contains term.
func (c *Category) PriceByName(term string) (decimal.Decimal, error) {
	text, err := c.PriceTextByName(term)
	if err != nil {
		return decimal.Zero, err
	}
	return money.ParsePrice(text)
}

// ListedPrices returns every card's parsed price in listing order.
func (c *Category) ListedPrices() ([]decimal.Decimal, error) {
	names, err := c.ProductNames()
	if err != nil {
		return nil, err
	}

	prices := make([]decimal.Decimal, 0, len(names))
	cards := c.page.Locator(selProductCard)
	for i := range names {
		text, err := cards.Nth(i).Locator(selProductCardPrice).Last().InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read price of card %d (%s): %w", i, names[i], err)
		}
		price, err := money.ParsePrice(text)
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i, names[i], err)
		}
		prices = append(prices, price)
	}
	return prices, nil
}

// OpenProduct clicks through to the product page whose title contains term.
func (c *Category) OpenProduct(term string) error {
	card, err := c.card(term)
	if err != nil {
		return err
	}
	if err := card.Locator(selProductCardTitle).Click(); err != nil {
		return fmt.Errorf("failed to open product %q: %w", term, err)
	}
	return nil
}

// AddToCart clicks the card's add-to-cart button without leaving the
// listing.
func (c *Category) AddToCart(term string) error {
	card, err := c.card(term)
	if err != nil {
		return err
	}
	if err := card.Locator(selAddToCartButton).Click(); err != nil {
		return fmt.Errorf("failed to add %q to cart from listing: %w", term, err)
	}
	return nil
}

// BestSellers returns the product titles in the sidebar best-sellers widget.
func (c *Category) BestSellers() ([]string, error) {
	texts, err := c.page.Locator(selBestSellerTitle).AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to read best sellers: %w", err)
	}
	titles := make([]string, 0, len(texts))
	for _, t := range texts {
		titles = append(titles, money.Normalize(t))
	}
	return titles, nil
}

// FilterBounds reads the price slider's current from/to labels.
func (c *Category) FilterBounds() (min, max decimal.Decimal, err error) {
	fromText, err := c.reader.ReadText(selSliderFromLabel)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	toText, err := c.reader.ReadText(selSliderToLabel)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if min, err = money.ParsePrice(fromText); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if max, err = money.ParsePrice(toText); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return min, max, nil
}

// DragMaxHandle drags the slider's max handle to the given fraction of the
// track width (0 = left edge, 1 = right edge). The widget only reacts to
// real pointer movement, so the drag is performed through the mouse.
func (c *Category) DragMaxHandle(fraction float64) error {
	track, err := c.page.Locator(selSliderTrack).BoundingBox()
	if err != nil {
		return fmt.Errorf("failed to measure slider track: %w", err)
	}
	handle, err := c.page.Locator(selSliderMaxHandle).BoundingBox()
	if err != nil {
		return fmt.Errorf("failed to measure slider handle: %w", err)
	}

	startX := handle.X + handle.Width/2
	startY := handle.Y + handle.Height/2
	targetX := track.X + track.Width*fraction

	mouse := c.page.Mouse()
	if err := mouse.Move(startX, startY); err != nil {
		return fmt.Errorf("slider drag: %w", err)
	}
	if err := mouse.Down(); err != nil {
		return fmt.Errorf("slider drag: %w", err)
	}
	// intermediate steps so the widget sees a continuous drag
	if err := mouse.Move(targetX, startY, playwright.MouseMoveOptions{
		Steps: playwright.Int(10),
	}); err != nil {
		return fmt.Errorf("slider drag: %w", err)
	}
	if err := mouse.Up(); err != nil {
		return fmt.Errorf("slider drag: %w", err)
	}
	return nil
}

// ApplyFilter submits the price filter.
func (c *Category) ApplyFilter() error {
	if err := c.page.Locator(selSliderFilterBtn).Click(); err != nil {
		return fmt.Errorf("failed to apply price filter: %w", err)
	}
	return nil
}
