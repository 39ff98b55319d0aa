package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Fixture owns the Playwright runtime and a single browser instance, shared
// across tests in a run. Pages are cheap; browsers are not.
type Fixture struct {
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// NewFixture starts Playwright and launches Chromium. Browsers must already
// be installed via:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
func NewFixture(headless bool) (*Fixture, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Fixture{PW: pw, Browser: b}, nil
}

// NewPage opens a fresh page in a new browser context, so each test or
// audit run gets isolated cookies and storage (its own cart session).
func (f *Fixture) NewPage() (playwright.Page, error) {
	ctx, err := f.Browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// Close releases the browser and the Playwright runtime.
func (f *Fixture) Close() {
	if f.Browser != nil {
		f.Browser.Close()
	}
	if f.PW != nil {
		f.PW.Stop()
	}
}
