//go:build e2e

// Package e2e exercises a live WooCommerce storefront end to end: catalog
// browsing, cart math, checkout, coupons, search, and static pages. The
// suite needs a running storefront; point STORE_BASE_URL at it (defaults to
// the demo store) and install browsers first via:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
package e2e

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/config"
	"github.com/atid-store/storecheck/internal/pages"
	"github.com/atid-store/storecheck/internal/testdata"
)

const defaultBaseURL = "https://shop.atid.store"

var (
	fixture *browser.Fixture
	cfg     config.StoreConfig
)

// TestMain sets up and tears down the shared browser for all tests
func TestMain(m *testing.M) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	var err error
	cfg, err = config.LoadStoreConfig(func(key string) string {
		if key == "STORE_BASE_URL" && os.Getenv(key) == "" {
			return defaultBaseURL
		}
		return os.Getenv(key)
	})
	if err != nil {
		fmt.Printf("failed to load store config: %v\n", err)
		os.Exit(1)
	}

	fixture, err = browser.NewFixture(cfg.Headless)
	if err != nil {
		fmt.Printf("failed to set up browser: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	fixture.Close()
	os.Exit(code)
}

// newPage opens an isolated page (fresh cart session) and registers cleanup.
func newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := fixture.NewPage()
	require.NoError(t, err, "failed to open page")
	t.Cleanup(func() { page.Close() })
	return page
}

func storeURL(path string) string {
	return strings.TrimRight(cfg.BaseURL, "/") + path
}

// goHome opens the storefront home page and returns the header driver.
func goHome(t *testing.T, page playwright.Page) *pages.Header {
	t.Helper()
	header := pages.NewHeader(page)
	require.NoError(t, header.GoTo(cfg.BaseURL), "failed to open home page")
	return header
}

// openProductFromStore navigates Store tab → product card → detail page.
func openProductFromStore(t *testing.T, page playwright.Page, term string) *pages.Product {
	t.Helper()
	header := goHome(t, page)
	require.NoError(t, header.OpenTab(pages.TabStore), "failed to open store tab")

	category := pages.NewCategory(page)
	require.NoError(t, category.OpenProduct(term), "failed to open product %q", term)
	return pages.NewProduct(page)
}

// addToCartViaPDP adds qty of a product through its detail page and follows
// the notice into the cart.
func addToCartViaPDP(t *testing.T, page playwright.Page, term string, qty int) *pages.Cart {
	t.Helper()
	product := openProductFromStore(t, page, term)
	if qty > 1 {
		require.NoError(t, product.SetQuantity(qty), "failed to set quantity")
	}
	require.NoError(t, product.AddToCart(), "failed to add %q to cart", term)
	require.NoError(t, product.ViewCart(), "failed to open cart")
	return pages.NewCart(page)
}

// addProductsToCart adds each product once via the PDP, then opens the cart.
func addProductsToCart(t *testing.T, page playwright.Page, terms ...string) *pages.Cart {
	t.Helper()
	for _, term := range terms {
		product := openProductFromStore(t, page, term)
		require.NoError(t, product.AddToCart(), "failed to add %q to cart", term)
	}
	header := pages.NewHeader(page)
	require.NoError(t, header.GoTo(storeURL(testdata.CartPath)), "failed to open cart page")
	return pages.NewCart(page)
}
