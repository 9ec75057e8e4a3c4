package core

import "testing"

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
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"43500", 4350000, true},
		{"-1", 0, false},
		{"0", 0, false},
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
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 0,01"},
		{100, "R$ 1,00"},
		{123456, "R$ 1.234,56"},
		{4350000, "R$ 43.500,00"},
		{123456789, "R$ 1.234.567,89"},
		{-250, "-R$ 2,50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).FormatBRL(); got != tc.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyExtenso(t *testing.T) {
	got := Money{Cents: 123456}.Extenso()
	want := "Mil duzentos e trinta e quatro reais e cinquenta e seis centavos"
	if got != want {
		t.Fatalf("Money.Extenso() = %q, want %q", got, want)
	}
}
