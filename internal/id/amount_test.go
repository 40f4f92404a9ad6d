package id

import (
	"testing"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
)

func TestNormalizeAmountBaseUnits(t *testing.T) {
	base, decimal, err := NormalizeAmount("2500000", "", 6)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	if base != "2500000" || decimal != "2.5" {
		t.Fatalf("unexpected result: %s %s", base, decimal)
	}
}

func TestNormalizeAmountDecimal(t *testing.T) {
	base, decimal, err := NormalizeAmount("", "2.5", 6)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	if base != "2500000" || decimal != "2.5" {
		t.Fatalf("unexpected result: %s %s", base, decimal)
	}
}

func TestNormalizeAmountZeroDecimal(t *testing.T) {
	base, decimal, err := NormalizeAmount("", "0", 18)
	if err != nil {
		t.Fatalf("NormalizeAmount failed: %v", err)
	}
	if base != "0" || decimal != "0" {
		t.Fatalf("unexpected result: %s %s", base, decimal)
	}
}

func TestNormalizeAmountRejections(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		decimal  string
		decimals int
	}{
		{"both set", "1", "1.0", 6},
		{"neither set", "", "", 6},
		{"negative decimals", "1", "", -1},
		{"non-integer base", "1.5", "", 6},
		{"negative base", "-1", "", 6},
		{"malformed decimal", "", "1.2.3", 6},
		{"excess precision", "", "1.0000001", 6},
	}
	for _, tc := range cases {
		_, _, err := NormalizeAmount(tc.base, tc.decimal, tc.decimals)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		typed, ok := clierr.As(err)
		if !ok || typed.Code != clierr.CodeUsage {
			t.Fatalf("%s: expected usage error, got %v", tc.name, err)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		base     string
		decimals int
		want     string
	}{
		{"2500000", 6, "2.5"},
		{"1000000", 6, "1"},
		{"1", 6, "0.000001"},
		{"0", 18, "0"},
		{"123", 0, "123"},
		{"1000000000000000000", 18, "1"},
	}
	for _, tc := range cases {
		if got := FormatDecimal(tc.base, tc.decimals); got != tc.want {
			t.Fatalf("FormatDecimal(%s, %d) = %s, want %s", tc.base, tc.decimals, got, tc.want)
		}
	}
}
