// Package cli wires the audit flow: browser session, page objects,
// reconciliation, and optional result recording.
package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atid-store/storecheck/internal/audit"
	"github.com/atid-store/storecheck/internal/browser"
	"github.com/atid-store/storecheck/internal/config"
	"github.com/atid-store/storecheck/internal/pages"
	"github.com/atid-store/storecheck/internal/reconcile"
	"github.com/atid-store/storecheck/internal/repository"
)

// AuditDependencies holds everything an audit run needs
type AuditDependencies struct {
	Store       config.StoreConfig
	ProductTerm string
	Repo        *repository.AuditRepository // nil disables recording
}

// RunAudit performs one live reconciliation audit: add a probe product to
// the cart, scrape the cart page, and verify line math and aggregate
// totals. The run outcome is logged, optionally persisted, and returned as
// an error when the storefront failed reconciliation.
func RunAudit(deps AuditDependencies) error {
	run, err := audit.NewRun(deps.Store.BaseURL)
	if err != nil {
		return err
	}

	log.Printf("Auditing %s (run %s)", run.StoreURL, run.ID)

	verr, lineCount, err := performAudit(deps)
	switch {
	case err != nil:
		run.Error(err.Error())
	case verr != nil:
		run.Fail(lineCount, verr.Error())
	default:
		run.Pass(lineCount)
	}

	log.Printf("Audit %s finished: %s (%d lines, %s)", run.ID, run.Status, run.LineCount, run.Duration())
	if run.Detail != "" {
		log.Printf("Detail:\n%s", run.Detail)
	}

	if deps.Repo != nil {
		if repoErr := deps.Repo.CreateRun(run); repoErr != nil {
			return fmt.Errorf("failed to record audit run: %w", repoErr)
		}
		log.Printf("Recorded audit run %s", run.ID)
	}

	if err != nil {
		return fmt.Errorf("audit did not complete: %w", err)
	}
	if verr != nil {
		return fmt.Errorf("store failed reconciliation: %w", verr)
	}
	return nil
}

// performAudit drives the browser. The first return value is the
// reconciliation verdict, the second the number of cart lines read, the
// third any error that prevented the audit from concluding at all.
func performAudit(deps AuditDependencies) (error, int, error) {
	fixture, err := browser.NewFixture(deps.Store.Headless)
	if err != nil {
		return nil, 0, err
	}
	defer fixture.Close()

	page, err := fixture.NewPage()
	if err != nil {
		return nil, 0, err
	}
	defer page.Close()

	header := pages.NewHeader(page)
	if err := header.GoTo(deps.Store.BaseURL); err != nil {
		return nil, 0, err
	}
	if err := header.OpenTab(pages.TabStore); err != nil {
		return nil, 0, err
	}

	category := pages.NewCategory(page)
	if err := category.AddToCart(deps.ProductTerm); err != nil {
		return nil, 0, err
	}
	if err := header.WaitForBadge("1", deps.Store.PollTimeout); err != nil {
		return nil, 0, err
	}

	if err := header.GoTo(strings.TrimRight(deps.Store.BaseURL, "/") + "/cart/"); err != nil {
		return nil, 0, err
	}

	cart := pages.NewCart(page)
	snapshot, err := cart.Snapshot()
	if err != nil {
		return nil, 0, err
	}

	verdict := errors.Join(
		snapshot.Lines.VerifyMath(),
		reconcile.VerifyAggregates(snapshot, reconcile.AggregateExpectation{}),
	)
	return verdict, snapshot.Lines.Len(), nil
}
