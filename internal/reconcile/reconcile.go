// Package reconcile cross-checks monetary and quantity data scraped from a
// storefront's cart and checkout views. Raw row text goes in, a keyed map of
// typed lines comes out, and expectation lists are verified against it with
// cent-tolerant comparisons. Every verification is a one-shot
// scrape-and-compare: no state survives between calls.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atid-store/storecheck/internal/match"
	"github.com/atid-store/storecheck/internal/money"
)

// RawRow is one product row as read off the page: visible name text, unit
// price text, the qty input's value, and the line subtotal text. Fields may
// carry currency glyphs, NBSPs and bidi marks; nothing is assumed clean.
// Price may be empty when the view does not render unit prices at all (the
// checkout order review shows only line totals); any non-empty field must
// parse or the whole build fails.
type RawRow struct {
	Name     string
	Price    string
	Quantity string
	Subtotal string
}

// Line is a fully parsed product row. HasUnitPrice is false for views that
// do not render a unit price; asserting a unit price against such a line is
// a reported mismatch, not a zero comparison.
type Line struct {
	Name         string
	UnitPrice    decimal.Decimal
	HasUnitPrice bool
	Quantity     int
	Subtotal     decimal.Decimal
}

// LineMap holds parsed lines keyed by normalized full product name,
// preserving page (DOM) insertion order for ordered iteration.
type LineMap struct {
	names []string
	lines map[string]Line
}

// BuildLineMap normalizes and parses every field of every row. A row whose
// price, quantity or subtotal contains no extractable number fails the whole
// build with a *money.ParseError wrapped in row context; a broken page is
// never reported as an empty or partial map.
func BuildLineMap(rows []RawRow) (*LineMap, error) {
	m := &LineMap{lines: make(map[string]Line, len(rows))}

	for i, row := range rows {
		name := money.Normalize(row.Name)
		if name == "" {
			return nil, fmt.Errorf("row %d has an empty product name", i)
		}

		var price decimal.Decimal
		hasPrice := row.Price != ""
		if hasPrice {
			var err error
			price, err = money.ParsePrice(row.Price)
			if err != nil {
				return nil, fmt.Errorf("row %d (%s) unit price: %w", i, name, err)
			}
		}
		qty, err := money.ParseQuantity(row.Quantity)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s) quantity: %w", i, name, err)
		}
		subtotal, err := money.ParsePrice(row.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s) subtotal: %w", i, name, err)
		}

		if _, dup := m.lines[name]; !dup {
			m.names = append(m.names, name)
		}
		m.lines[name] = Line{Name: name, UnitPrice: price, HasUnitPrice: hasPrice, Quantity: qty, Subtotal: subtotal}
	}

	return m, nil
}

// Names returns the product names in page order.
func (m *LineMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Get looks up a line by its normalized full name.
func (m *LineMap) Get(name string) (Line, bool) {
	l, ok := m.lines[name]
	return l, ok
}

// Len returns the number of lines.
func (m *LineMap) Len() int {
	return len(m.names)
}

// TotalQuantity sums the quantities of all lines.
func (m *LineMap) TotalQuantity() int {
	total := 0
	for _, name := range m.names {
		total += m.lines[name].Quantity
	}
	return total
}

// SubtotalSum sums the line subtotals of all lines.
func (m *LineMap) SubtotalSum() decimal.Decimal {
	sum := decimal.Zero
	for _, name := range m.names {
		sum = sum.Add(m.lines[name].Subtotal)
	}
	return sum
}

// Resolve finds the line whose name contains term, case-insensitively, in
// page order.
func (m *LineMap) Resolve(term string) (Line, match.Result, error) {
	res, err := match.Match(term, m.names)
	if err != nil {
		return Line{}, match.Result{}, err
	}
	return m.lines[res.Name], res, nil
}

// VerifyMath checks the internal consistency of every line that renders a
// unit price: subtotal ≈ unit price × quantity within the cent tolerance.
func (m *LineMap) VerifyMath() error {
	var ae AssertionError
	for _, name := range m.names {
		l := m.lines[name]
		if !l.HasUnitPrice {
			continue
		}
		want := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		if !money.Close(l.Subtotal, want) {
			ae.Mismatches = append(ae.Mismatches, Mismatch{
				Name:     name,
				Field:    "line subtotal vs unit price × qty",
				Expected: want.StringFixed(2),
				Actual:   l.Subtotal.StringFixed(2),
			})
		}
	}
	return ae.orNil()
}
