package money

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountDecimalParsesNumbersAndZeroesGarbage(t *testing.T) {
	cases := []struct {
		in   Amount
		want string
	}{
		{"100", "100"},
		{"49.90", "49.9"},
		{" 12.5 ", "12.5"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tc := range cases {
		if got := tc.in.Decimal(); !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("amount %q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestAmountUnmarshalAcceptsNumbersStringsAndNull(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 10.5, "b": "abc", "c": null}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.A != "10.5" {
		t.Fatalf("expected numeric text preserved, got %q", payload.A)
	}
	if payload.B != "abc" {
		t.Fatalf("expected string preserved, got %q", payload.B)
	}
	if payload.C != "" {
		t.Fatalf("expected null to decode empty, got %q", payload.C)
	}
}

func TestAmountMarshal(t *testing.T) {
	out, err := json.Marshal([]Amount{"10.50", "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `[10.5,"abc"]` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestAmountLabel(t *testing.T) {
	if got := Amount("100").Label(); got != "R$ 100.00" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := Amount("n/a").Label(); got != "R$ n/a" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := FromFloat(2.5).Label(); got != "R$ 2.50" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestAmountRejectsHugeExponents(t *testing.T) {
	for _, in := range []Amount{"1e100000000", "1e-100000000", "1e31", Amount("1" + strings.Repeat("0", 80))} {
		if in.IsNumeric() {
			t.Fatalf("amount %.20q: expected non-numeric", in)
		}
		if !in.Decimal().IsZero() {
			t.Fatalf("amount %.20q: expected zero, got %s", in, in.Decimal())
		}
		out, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("amount %.20q: unexpected error: %v", in, err)
		}
		if len(out) > 100 {
			t.Fatalf("amount %.20q: marshalled to %d bytes", in, len(out))
		}
	}
	if got := Amount("1.5e3").Label(); got != "R$ 1500.00" {
		t.Fatalf("expected modest exponent accepted, got %q", got)
	}
}
