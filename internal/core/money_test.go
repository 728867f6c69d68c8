package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{".50", 50, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyDecimal(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100000, "1000.00"},
		{-30000, "-300.00"},
		{-7, "-0.07"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Decimal(); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	// Wire form is lira, minimal decimals: the shape snapshots carry.
	marshals := []struct {
		cents int64
		want  string
	}{
		{100000, "1000"},
		{-30000, "-300"},
		{-30050, "-300.5"},
		{123, "1.23"},
		{-7, "-0.07"},
		{0, "0"},
	}
	for _, tc := range marshals {
		out, err := json.Marshal(Money{Cents: tc.cents})
		if err != nil || string(out) != tc.want {
			t.Fatalf("%d: expected %s, got %s (err=%v)", tc.cents, tc.want, out, err)
		}
	}

	unmarshals := []struct {
		in   string
		want int64
	}{
		{"1000", 100000},
		{"-300.5", -30050},
		{"-300", -30000},
		{"0.07", 7},
		{"1000.25", 100025},
	}
	for _, tc := range unmarshals {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil || m.Cents != tc.want {
			t.Fatalf("%s: expected %d, got %d (err=%v)", tc.in, tc.want, m.Cents, err)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"on lira"`), &m); err == nil {
		t.Fatal("expected error for non-numeric money")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := (Money{Cents: -300}).Abs().Cents; got != 300 {
		t.Fatalf("abs: expected 300, got %d", got)
	}
	if got := (Money{Cents: 100}).Add(Money{Cents: -30}).Cents; got != 70 {
		t.Fatalf("add: expected 70, got %d", got)
	}
}
