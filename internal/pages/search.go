package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/money"
)

const (
	selSearchTitle       = ".page-title.ast-archive-title"
	selSearchResult      = ".post-content.ast-col-md-12"
	selSearchResultTitle = ".post-content.ast-col-md-12 .entry-title"
	selSearchNoResults   = ".page-content p"
)

// SearchResults drives the search results archive.
type SearchResults struct {
	page   playwright.Page
	reader *browser.PageReader
}

func NewSearchResults(page playwright.Page) *SearchResults {
	return &SearchResults{page: page, reader: browser.NewPageReader(page)}
}

// Title returns the "Search Results for: ..." heading.
func (s *SearchResults) Title() (string, error) {
	text, err := s.reader.ReadText(selSearchTitle)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}

// ResultTitles returns the result entry titles in page order.
func (s *SearchResults) ResultTitles() ([]string, error) {
	results := s.page.Locator(selSearchResultTitle)
	count, err := results.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	titles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := results.Nth(i).InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read search result %d: %w", i, err)
		}
		titles = append(titles, money.Normalize(text))
	}
	return titles, nil
}

// ResultCount returns the number of result entries.
func (s *SearchResults) ResultCount() (int, error) {
	return s.reader.Count(selSearchResult)
}

// NoResultsMessage returns the empty-results notice text.
func (s *SearchResults) NoResultsMessage() (string, error) {
	text, err := s.reader.ReadText(selSearchNoResults)
	if err != nil {
		return "", err
	}
	return money.Normalize(text), nil
}
