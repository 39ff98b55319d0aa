// Package audit models one live reconciliation audit of a storefront and
// its persisted result.
package audit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents valid audit run outcomes
type Status string

// Run statuses
const (
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored"
)

// Run records a single audit of a storefront: which store, what the
// reconciliation engine concluded, and when.
type Run struct {
	ID         string
	StoreURL   string
	Status     Status
	LineCount  int
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Domain errors
var (
	ErrEmptyStoreURL = errors.New("audit run requires a store URL")
	ErrRunNotFound   = errors.New("audit run not found")
)

// NewRun creates a run in the running state.
func NewRun(storeURL string) (*Run, error) {
	if storeURL == "" {
		return nil, ErrEmptyStoreURL
	}
	return &Run{
		ID:        uuid.New().String(),
		StoreURL:  storeURL,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Pass marks the run as passed.
func (r *Run) Pass(lineCount int) {
	r.Status = StatusPassed
	r.LineCount = lineCount
	r.FinishedAt = time.Now()
}

// Fail marks the run as failed with the reconciliation failure detail.
func (r *Run) Fail(lineCount int, detail string) {
	r.Status = StatusFailed
	r.LineCount = lineCount
	r.Detail = detail
	r.FinishedAt = time.Now()
}

// Error marks the run as errored before reconciliation could conclude
// (navigation failure, broken scrape, timeout).
func (r *Run) Error(detail string) {
	r.Status = StatusErrored
	r.Detail = detail
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
