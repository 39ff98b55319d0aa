package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/match"
	"github.com/atid-store/storecheck/internal/money"
)

// Mismatch is one failed field comparison.
type Mismatch struct {
	Term     string // search term from the expectation, if any
	Name     string // resolved product name, or empty for aggregates
	Field    string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	subject := m.Name
	if subject == "" {
		subject = m.Term
	}
	if m.Term != "" && m.Name != "" && m.Term != m.Name {
		subject = fmt.Sprintf("%s (term %q)", m.Name, m.Term)
	}
	if subject == "" {
		return fmt.Sprintf("%s: expected %s, got %s", m.Field, m.Expected, m.Actual)
	}
	return fmt.Sprintf("%s: %s: expected %s, got %s", subject, m.Field, m.Expected, m.Actual)
}

// AssertionError reports every expectation that did not hold within one
// verification call. Failures are batched rather than raised one at a time,
// so a single run shows everything that is wrong with the page.
type AssertionError struct {
	Mismatches []Mismatch
}

func (e *AssertionError) Error() string {
	lines := make([]string, 0, len(e.Mismatches)+1)
	lines = append(lines, fmt.Sprintf("%d reconciliation failure(s):", len(e.Mismatches)))
	for _, m := range e.Mismatches {
		lines = append(lines, "  "+m.String())
	}
	return strings.Join(lines, "\n")
}

func (e AssertionError) orNil() error {
	if len(e.Mismatches) == 0 {
		return nil
	}
	return &e
}

// Expectation is what a test asserts about one cart line, located by Term.
// Nil fields are not checked.
type Expectation struct {
	Term      string
	UnitPrice *decimal.Decimal
	Quantity  *int
	Subtotal  *decimal.Decimal
}

// Amount wraps a float literal as an optional expected price.
func Amount(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// Qty wraps an int literal as an optional expected quantity.
func Qty(n int) *int {
	return &n
}

// VerifyLines resolves each expectation's term against the map and compares
// every present expected field against the resolved line. Prices and
// subtotals are compared with the cent tolerance, quantities exactly. All
// expectations are evaluated and all failures are reported together in one
// *AssertionError. A term that resolves to no line aborts immediately with a
// *match.NotFoundError: the page does not even hold the product, so field
// comparisons would only obscure that.
func VerifyLines(expected []Expectation, m *LineMap) error {
	if len(expected) > 0 && m.Len() == 0 {
		return fmt.Errorf("expected at least one cart line, found zero: %w",
			&match.NotFoundError{Term: expected[0].Term, Candidates: nil})
	}

	var ae AssertionError
	for _, exp := range expected {
		line, _, err := m.Resolve(exp.Term)
		if err != nil {
			return err
		}

		if exp.UnitPrice != nil {
			switch {
			case !line.HasUnitPrice:
				ae.Mismatches = append(ae.Mismatches, Mismatch{
					Term:     exp.Term,
					Name:     line.Name,
					Field:    "unit price",
					Expected: exp.UnitPrice.StringFixed(2),
					Actual:   "(not rendered)",
				})
			case !money.Close(line.UnitPrice, *exp.UnitPrice):
				ae.Mismatches = append(ae.Mismatches, Mismatch{
					Term:     exp.Term,
					Name:     line.Name,
					Field:    "unit price",
					Expected: exp.UnitPrice.StringFixed(2),
					Actual:   line.UnitPrice.StringFixed(2),
				})
			}
		}
		if exp.Quantity != nil && line.Quantity != *exp.Quantity {
			ae.Mismatches = append(ae.Mismatches, Mismatch{
				Term:     exp.Term,
				Name:     line.Name,
				Field:    "quantity",
				Expected: strconv.Itoa(*exp.Quantity),
				Actual:   strconv.Itoa(line.Quantity),
			})
		}
		if exp.Subtotal != nil && !money.Close(line.Subtotal, *exp.Subtotal) {
			ae.Mismatches = append(ae.Mismatches, Mismatch{
				Term:     exp.Term,
				Name:     line.Name,
				Field:    "line subtotal",
				Expected: exp.Subtotal.StringFixed(2),
				Actual:   line.Subtotal.StringFixed(2),
			})
		}
	}
	return ae.orNil()
}

// Snapshot is one read of a cart or checkout page: its parsed lines plus the
// page-level totals. Discount is the absolute coupon amount, zero when no
// coupon is applied.
type Snapshot struct {
	Lines    *LineMap
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// AggregateExpectation is what a test asserts about the page-level totals.
// Nil fields are not checked.
type AggregateExpectation struct {
	Subtotal *decimal.Decimal
	Shipping *decimal.Decimal
	Total    *decimal.Decimal
}

// VerifyAggregates compares the supplied expectations against the snapshot
// with the cent tolerance, and always also checks two derived invariants
// regardless of what was asked for: the order total must equal
// subtotal + shipping − discount, and when lines are present the subtotal
// must equal the sum of the line subtotals. A storefront that renders totals
// not backed by its own lines fails here even if every explicit expectation
// passes.
func VerifyAggregates(snap Snapshot, exp AggregateExpectation) error {
	var ae AssertionError

	if exp.Subtotal != nil && !money.Close(snap.Subtotal, *exp.Subtotal) {
		ae.Mismatches = append(ae.Mismatches, Mismatch{
			Field:    "cart subtotal",
			Expected: exp.Subtotal.StringFixed(2),
			Actual:   snap.Subtotal.StringFixed(2),
		})
	}
	if exp.Shipping != nil && !money.Close(snap.Shipping, *exp.Shipping) {
		ae.Mismatches = append(ae.Mismatches, Mismatch{
			Field:    "shipping cost",
			Expected: exp.Shipping.StringFixed(2),
			Actual:   snap.Shipping.StringFixed(2),
		})
	}
	if exp.Total != nil && !money.Close(snap.Total, *exp.Total) {
		ae.Mismatches = append(ae.Mismatches, Mismatch{
			Field:    "order total",
			Expected: exp.Total.StringFixed(2),
			Actual:   snap.Total.StringFixed(2),
		})
	}

	derived := snap.Subtotal.Add(snap.Shipping).Sub(snap.Discount)
	if !money.Close(snap.Total, derived) {
		ae.Mismatches = append(ae.Mismatches, Mismatch{
			Field:    "order total vs subtotal + shipping − discount",
			Expected: derived.StringFixed(2),
			Actual:   snap.Total.StringFixed(2),
		})
	}

	if snap.Lines != nil && snap.Lines.Len() > 0 {
		sum := snap.Lines.SubtotalSum()
		if !money.Close(snap.Subtotal, sum) {
			ae.Mismatches = append(ae.Mismatches, Mismatch{
				Field:    "cart subtotal vs sum of line subtotals",
				Expected: sum.StringFixed(2),
				Actual:   snap.Subtotal.StringFixed(2),
			})
		}
	}

	return ae.orNil()
}
