package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
)

// About drives the About static page.
type About struct {
	reader *browser.PageReader
}

func NewAbout(page playwright.Page) *About {
	return &About{reader: browser.NewPageReader(page)}
}

func (a *About) Title() (string, error) {
	text, err := a.reader.ReadText(".elementor-widget-container h1")
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// ContactUs drives the Contact Us static page and its form.
type ContactUs struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewContactUs(page playwright.Page) *ContactUs {
	return &ContactUs{page: page, reader: browser.NewPageReader(page)}
}

func (c *ContactUs) Title() (string, error) {
	text, err := c.reader.ReadText(".elementor-widget-container h1")
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// SendMessage fills and submits the contact form.
func (c *ContactUs) SendMessage(name, email, subject, message string) error {
	fields := []struct {
		selector string
		value    string
	}{
		{"#wpforms-15-field_0", name},
		{"#wpforms-15-field_4", email},
		{"#wpforms-15-field_5", subject},
		{"#wpforms-15-field_2", message},
	}
	for _, f := range fields {
		if err := c.page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill contact field %s: %w", f.selector, err)
		}
	}
	if err := c.page.Locator("#wpforms-submit-15").Click(); err != nil {
		return fmt.Errorf("failed to submit contact form: %w", err)
	}
	return nil
}

// Confirmation returns the post-submit confirmation text.
func (c *ContactUs) Confirmation() (string, error) {
	text, err := c.reader.ReadText("#wpforms-confirmation-15")
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// FieldErrors returns the number of validation errors shown on the form.
func (c *ContactUs) FieldErrors() (int, error) {
	return c.reader.Count(".wpforms-error")
}
