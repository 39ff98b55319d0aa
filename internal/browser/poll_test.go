package browser

import (
	"errors"
	"testing"
	"time"
)

func TestPollUntilSucceedsOnceConditionHolds(t *testing.T) {
	calls := 0
	err := PollUntil("counter reaches three", time.Second, time.Millisecond, func() (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil {
		t.Fatalf("PollUntil: %v", err)
	}
	if calls != 3 {
		t.Errorf("condition evaluated %d times, want 3", calls)
	}
}

func TestPollUntilTimesOut(t *testing.T) {
	err := PollUntil("never", 10*time.Millisecond, time.Millisecond, func() (bool, error) {
		return false, nil
	})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("PollUntil = %v, want *TimeoutError", err)
	}
	if te.What != "never" {
		t.Errorf("TimeoutError.What = %q", te.What)
	}
}

func TestPollUntilPropagatesConditionError(t *testing.T) {
	boom := errors.New("boom")
	err := PollUntil("errors out", time.Second, time.Millisecond, func() (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("PollUntil = %v, want condition error", err)
	}
}
