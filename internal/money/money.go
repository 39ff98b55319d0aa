// Package money normalizes and parses price text scraped from rendered
// storefront pages. WooCommerce renders amounts with currency glyphs,
// non-breaking spaces and (on RTL locales) bidirectional marks, so raw
// locator text is never fed to a numeric conversion directly.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for price comparisons. Storefront rounding and
// float arithmetic can disagree at the third decimal, so equality checks
// allow an absolute difference of up to one cent.
var Epsilon = decimal.New(1, -2)

var (
	bidiMarks  = strings.NewReplacer("‎", "", "‏", "")
	whitespace = regexp.MustCompile(`\s+`)
	firstNum   = regexp.MustCompile(`-?\d+([.,]\d+)?`)
)

// ParseError reports that a scraped string contained no extractable number.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no numeric value found in %q", e.Raw)
}

// Normalize canonicalizes raw scraped price text: non-breaking spaces become
// regular spaces, LTR/RTL marks are stripped, whitespace runs collapse to a
// single space, and the result is trimmed. It is total over all strings and
// idempotent.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, " ", " ")
	s = bidiMarks.Replace(s)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParsePrice extracts the first decimal number from s and returns it as a
// decimal value. Currency glyphs and surrounding text are ignored, not
// required: "₪120.00", "120.00 ₪" and "120,00 ₪" all parse to 120.00, and a
// negative amount such as a discount line parses with its sign. When no
// numeric substring is present a *ParseError is returned, never a silent
// zero.
func ParsePrice(s string) (decimal.Decimal, error) {
	m := firstNum.FindString(Normalize(s))
	if m == "" {
		return decimal.Zero, &ParseError{Raw: s}
	}
	m = strings.ReplaceAll(m, ",", ".")

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, &ParseError{Raw: s}
	}
	return d, nil
}

// ParseQuantity extracts an integer quantity from s, typically the value of
// a cart qty input. Fractional quantities are rejected.
func ParseQuantity(s string) (int, error) {
	d, err := ParsePrice(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, &ParseError{Raw: s}
	}
	return int(d.IntPart()), nil
}

// Close reports whether a and b differ by at most Epsilon.
func Close(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().Cmp(Epsilon) <= 0
}
