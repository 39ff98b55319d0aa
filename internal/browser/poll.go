package browser

import (
	"fmt"
	"time"
)

// TimeoutError reports that a polled condition never held within its budget.
// A timeout is the only cancellation-like event in a verification run and
// must surface as a diagnostic failure, never as a stale pass.
type TimeoutError struct {
	What    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("condition %q did not hold within %s", e.What, e.Timeout)
}

// PollUntil evaluates cond every interval until it returns true, an error,
// or timeout elapses. It is the only sanctioned retry in the suite: AJAX
// updates (cart totals after a coupon, badge counts after add-to-cart) land
// asynchronously, so a single read after an action can be stale.
func PollUntil(what string, timeout, interval time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return &TimeoutError{What: what, Timeout: timeout}
		}
		time.Sleep(interval)
	}
}
