package limb

import (
	"strings"
	"testing"
)

func TestTrim(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Nat
		want Nat
	}{
		{"already canonical", Nat{1, 2, 3}, Nat{1, 2, 3}},
		{"one high zero", Nat{1, 2, 0}, Nat{1, 2}},
		{"many high zeros", Nat{5, 0, 0, 0}, Nat{5}},
		{"all zeros", Nat{0, 0, 0}, Nat{0}},
		{"empty", Nat{}, Nat{0}},
		{"single zero", Nat{0}, Nat{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.in.Trim()
			if got.Cmp(tt.want) != 0 || len(got) != len(tt.want) {
				t.Errorf("Trim(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y Nat
		want int
	}{
		{Nat{0}, Nat{0}, 0},
		{Nat{1}, Nat{2}, -1},
		{Nat{2}, Nat{1}, 1},
		{Nat{9999}, Nat{0, 1}, -1},       // 9999 < 10000
		{Nat{0, 1}, Nat{9999}, 1},        // 10000 > 9999
		{Nat{5, 3}, Nat{9, 3}, -1},       // 30005 < 30009
		{Nat{1, 2, 3}, Nat{1, 2, 3}, 0},
	}
	for _, tt := range tests {
		if got := tt.x.Cmp(tt.y); got != tt.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y string
		sum  string
	}{
		{"0", "0", "0"},
		{"1", "9999", "10000"},
		{"9999", "9999", "19998"},
		{"12345678", "87654322", "100000000"},
		{"99999999999999999999", "1", "100000000000000000000"},
	}
	for _, tt := range tests {
		x, y := FromDecimal(tt.x), FromDecimal(tt.y)
		sum := x.Add(y)
		if got := sum.String(); got != tt.sum {
			t.Errorf("%s + %s = %s, want %s", tt.x, tt.y, got, tt.sum)
		}
		// The inverse must round-trip as long as sum >= y.
		back := sum.Sub(y)
		if back.Cmp(x) != 0 {
			t.Errorf("(%s + %s) - %s = %s, want %s", tt.x, tt.y, tt.y, back.String(), tt.x)
		}
	}
}

func TestSubBorrowChain(t *testing.T) {
	t.Parallel()
	x := FromDecimal("10000000000000000")
	y := FromDecimal("1")
	if got := x.Sub(y).String(); got != "9999999999999999" {
		t.Errorf("borrow chain: got %s", got)
	}
}

func TestDiv10(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"9", "0"},
		{"10", "1"},
		{"12345", "1234"},
		{"10000", "1000"},
		{"100000000000000000001", "10000000000000000000"},
	}
	for _, tt := range tests {
		got := FromDecimal(tt.in).Div10().String()
		if got != tt.want {
			t.Errorf("Div10(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []string{
		"0", "7", "42", "9999", "10000", "10001",
		"123456789", "1000000000000", "999900009999",
		strings.Repeat("9", 57),
		"1" + strings.Repeat("0", 80),
	}
	for _, s := range cases {
		if got := FromDecimal(s).String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestFromDecimalLeadingZeros(t *testing.T) {
	t.Parallel()
	if got := FromDecimal("000123").String(); got != "123" {
		t.Errorf("leading zeros: got %q, want %q", got, "123")
	}
	if got := FromDecimal("0000").String(); got != "0" {
		t.Errorf("all zeros: got %q, want %q", got, "0")
	}
}

func TestFromUint64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{9999, "9999"},
		{10000, "10000"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, tt := range tests {
		if got := FromUint64(tt.in).String(); got != tt.want {
			t.Errorf("FromUint64(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDecimalLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"9", 1},
		{"10", 2},
		{"9999", 4},
		{"10000", 5},
		{"123456789", 9},
	}
	for _, tt := range tests {
		if got := FromDecimal(tt.in).DecimalLen(); got != tt.want {
			t.Errorf("DecimalLen(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
