//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atid-store/storecheck/internal/pages"
	"github.com/atid-store/storecheck/internal/testdata"
)

func waitForPath(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	require.NoError(t, page.WaitForURL("**"+path+"**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}), "navigation did not reach %s", path)
}

func TestHeaderTabsRoute(t *testing.T) {
	cases := []struct {
		name string
		tab  string
		path string
	}{
		{"store", pages.TabStore, testdata.StorePath},
		{"about", pages.TabAbout, testdata.AboutPath},
		{"contact us", pages.TabContactUs, testdata.ContactPath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := newPage(t)
			header := goHome(t, page)

			require.NoError(t, header.OpenTab(tc.tab))
			waitForPath(t, page, tc.path)
		})
	}
}

func TestFooterLinksPresent(t *testing.T) {
	page := newPage(t)
	header := goHome(t, page)

	links, err := header.FooterLinks()
	require.NoError(t, err)
	assert.NotEmpty(t, links, "footer renders no links")
}

func TestAboutPageTitle(t *testing.T) {
	page := newPage(t)
	header := goHome(t, page)
	require.NoError(t, header.OpenTab(pages.TabAbout))
	waitForPath(t, page, testdata.AboutPath)

	title, err := pages.NewAbout(page).Title()
	require.NoError(t, err)
	assert.Equal(t, "About Us", title)
}

func TestContactFormRequiresFields(t *testing.T) {
	page := newPage(t)
	header := goHome(t, page)
	require.NoError(t, header.OpenTab(pages.TabContactUs))
	waitForPath(t, page, testdata.ContactPath)

	contact := pages.NewContactUs(page)

	title, err := contact.Title()
	require.NoError(t, err)
	assert.Equal(t, "Contact Us", title)

	// Submitting empty should leave validation errors on the required fields.
	require.NoError(t, contact.SendMessage("", "", "", ""))

	count, err := contact.FieldErrors()
	require.NoError(t, err)
	assert.Positive(t, count, "expected validation errors on an empty form")
}

func TestContactFormSubmits(t *testing.T) {
	page := newPage(t)
	header := goHome(t, page)
	require.NoError(t, header.OpenTab(pages.TabContactUs))
	waitForPath(t, page, testdata.ContactPath)

	contact := pages.NewContactUs(page)
	require.NoError(t, contact.SendMessage(
		"Haim Cohen",
		"haim.cohen@example.com",
		"Order inquiry",
		"Hi, I have a question about my recent order.",
	))

	msg, err := contact.Confirmation()
	require.NoError(t, err)
	assert.Contains(t, msg, "Thanks for contacting us", "confirmation notice missing")
}
