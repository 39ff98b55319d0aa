package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "non-breaking space becomes regular space",
			in:   "120.00 ₪",
			want: "120.00 ₪",
		},
		{
			name: "bidi marks stripped",
			in:   "‏120.00 ₪‎",
			want: "120.00 ₪",
		},
		{
			name: "whitespace runs collapse",
			in:   "  120.00 \t ₪ \n",
			want: "120.00 ₪",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "already clean",
			in:   "120.00 ₪",
			want: "120.00 ₪",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Normalizing a normalized string must be a no-op
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "glyph prefix", in: "₪120.00", want: "120.00"},
		{name: "glyph suffix", in: "120.00 ₪", want: "120.00"},
		{name: "decimal comma", in: "120,00 ₪", want: "120.00"},
		{name: "nbsp between amount and glyph", in: "120.00 ₪", want: "120.00"},
		{name: "surrounding text", in: "₪120.00 per item", want: "120.00"},
		{name: "negative discount", in: "-15.00 ₪", want: "-15.00"},
		{name: "integer amount", in: "110 ₪", want: "110"},
		{name: "no number", in: "N/A", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "glyphs only", in: "₪ —", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePrice(%q) = %v, want error", tt.in, got)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParsePrice(%q) error = %T, want *ParseError", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) unexpected error: %v", tt.in, err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParsePrice(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestParsePriceRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "0.99", "110.00", "120.50", "1234.56"} {
		want, _ := decimal.NewFromString(s)
		got, err := ParsePrice(Normalize(s + " ₪"))
		if err != nil {
			t.Fatalf("round trip %q: %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip %q = %s, want %s", s, got, want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "3", want: 3},
		{in: "0", want: 0},
		{in: "-1", want: -1},
		{in: "2.5", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseQuantity(%q) = %d, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseQuantity(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClose(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "110.00", b: "110.00", want: true},
		{a: "110.00", b: "110.004", want: true},
		{a: "110.00", b: "110.01", want: true},
		{a: "110.00", b: "110.02", want: false},
		{a: "110.00", b: "109.99", want: true},
		{a: "0.00", b: "2.50", want: false},
	}

	for _, tt := range tests {
		a, _ := decimal.NewFromString(tt.a)
		b, _ := decimal.NewFromString(tt.b)
		if got := Close(a, b); got != tt.want {
			t.Errorf("Close(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
