// Package match resolves short search terms against full product names
// scraped from a page. Test data refers to products by fragments like
// "Yellow Shoes"; the storefront renders decorated names like "ATID Yellow
// Shoes", so resolution is case-insensitive substring containment.
package match

import (
	"fmt"
	"strings"
)

// NotFoundError reports that a search term matched none of the candidate
// names. It carries the full candidate list so a failure can be diagnosed
// without re-running the scrape.
type NotFoundError struct {
	Term       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no candidate name contains %q (candidates: %s)",
		e.Term, strings.Join(e.Candidates, ", "))
}

// Result is a resolved name match. Name is the first candidate, in input
// order, containing the term. AlsoMatched lists any later candidates that
// also contained it; callers that care about ambiguity can surface them.
type Result struct {
	Name        string
	AlsoMatched []string
}

// Ambiguous reports whether more than one candidate matched.
func (r Result) Ambiguous() bool {
	return len(r.AlsoMatched) > 0
}

// Match resolves term against candidates by case-insensitive substring
// containment. Matching is deterministic and order-preserving: the first
// matching candidate wins. When nothing matches, a *NotFoundError is
// returned.
func Match(term string, candidates []string) (Result, error) {
	needle := strings.ToLower(strings.TrimSpace(term))

	var res Result
	for _, c := range candidates {
		if !strings.Contains(strings.ToLower(c), needle) {
			continue
		}
		if res.Name == "" {
			res.Name = c
			continue
		}
		res.AlsoMatched = append(res.AlsoMatched, c)
	}

	if res.Name == "" {
		return Result{}, &NotFoundError{Term: term, Candidates: candidates}
	}
	return res, nil
}
