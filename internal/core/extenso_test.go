package core

import (
	"math"
	"strings"
	"testing"
	"unicode"
)

func TestExtenso(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Zero reais"},
		{1, "Um real"},
		{2, "Dois reais"},
		{10, "Dez reais"},
		{15, "Quinze reais"},
		{21, "Vinte e um reais"},
		{100, "Cem reais"},
		{101, "Cento e um reais"},
		{199, "Cento e noventa e nove reais"},
		{200, "Duzentos reais"},
		{555, "Quinhentos e cinquenta e cinco reais"},
		{1000, "Mil reais"},
		{1001, "Mil e um reais"},
		{1020, "Mil e vinte reais"},
		{1100, "Mil e cem reais"},
		{1200, "Mil e duzentos reais"},
		{1234.56, "Mil duzentos e trinta e quatro reais e cinquenta e seis centavos"},
		{2000, "Dois mil reais"},
		{43500, "Quarenta e três mil e quinhentos reais"},
		{43570, "Quarenta e três mil quinhentos e setenta reais"},
		{1000000, "Um milhão de reais"},
		{2000000, "Dois milhões de reais"},
		{1000034, "Um milhão e trinta e quatro reais"},
		{2350000, "Dois milhões trezentos e cinquenta mil reais"},
		{0.01, "Um centavo"},
		{0.50, "Cinquenta centavos"},
		{0.75, "Setenta e cinco centavos"},
		{1.01, "Um real e um centavo"},
		{2.50, "Dois reais e cinquenta centavos"},
	}
	for _, tc := range cases {
		if got := Extenso(tc.in); got != tc.want {
			t.Errorf("Extenso(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtensoRoundingCarry(t *testing.T) {
	// 0.999 rounds to 100 centavos; the carry must reach the integer part
	// instead of producing an invalid cents clause.
	got := Extenso(0.999)
	if got != "Um real" {
		t.Fatalf("Extenso(0.999) = %q, want %q", got, "Um real")
	}
	if strings.Contains(got, "centavos") {
		t.Fatalf("Extenso(0.999) must not mention centavos, got %q", got)
	}

	if got := Extenso(1.999); got != "Dois reais" {
		t.Fatalf("Extenso(1.999) = %q, want %q", got, "Dois reais")
	}
}

func TestExtensoDegradesGracefully(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Extenso(v); got != "Zero reais" {
			t.Errorf("Extenso(%v) = %q, want %q", v, got, "Zero reais")
		}
	}
	// Sign is dropped, not rendered.
	if got := Extenso(-12.5); got != "Doze reais e cinquenta centavos" {
		t.Errorf("Extenso(-12.5) = %q", got)
	}
	// Past the largest representable cents the transcriber degrades instead
	// of overflowing the int64 conversion.
	if got := Extenso(1e18); got != "Zero reais" {
		t.Errorf("Extenso(1e18) = %q, want %q", got, "Zero reais")
	}
}

func TestExtensoBilhoes(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1000000000, "Um bilhão de reais"},
		{2000000000, "Dois bilhões de reais"},
		{1000000001, "Um bilhão e um reais"},
		{1234567890, "Um bilhão duzentos e trinta e quatro milhões " +
			"quinhentos e sessenta e sete mil oitocentos e noventa reais"},
		{1e12, "Um trilhão de reais"},
	}
	for _, tc := range cases {
		if got := Extenso(tc.in); got != tc.want {
			t.Errorf("Extenso(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtensoAlwaysWellFormed(t *testing.T) {
	values := []float64{0, 0.004, 0.01, 0.99, 1, 1.5, 7, 19, 20, 99, 100,
		101, 110, 999, 1000, 1001, 9999, 10000, 100100, 999999, 1000000,
		1000001, 999999999.99, 1000000000, 1234567890.12, 1e12, 9.9e15}
	for _, v := range values {
		got := Extenso(v)
		if got == "" {
			t.Fatalf("Extenso(%v) returned empty string", v)
		}
		first := []rune(got)[0]
		if !unicode.IsUpper(first) {
			t.Errorf("Extenso(%v) = %q: first rune not uppercase", v, got)
		}
		for _, bad := range []string{"undefined", "NaN", "  ", " e  e "} {
			if strings.Contains(got, bad) {
				t.Errorf("Extenso(%v) = %q: contains %q", v, got, bad)
			}
		}
	}
}

func TestExtensoNeverUmMil(t *testing.T) {
	for _, v := range []float64{1000, 1001, 1999.99} {
		got := Extenso(v)
		if strings.HasPrefix(got, "Um mil") {
			t.Errorf("Extenso(%v) = %q: must render thousands group as bare \"mil\"", v, got)
		}
	}
}
