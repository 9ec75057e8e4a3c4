package core

import (
	"math/rand"
	"strconv"
	"testing"
)

func TestValidaCPF(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11144477735", true},
		{"111.444.777-35", true},
		{" 111.444.777-35 ", true},
		{"52998224725", true},
		{"11144477734", false}, // wrong second check digit
		{"21144477735", false}, // mutated first digit
		{"11111111111", false}, // repeated-digit placeholder
		{"00000000000", false},
		{"99999999999", false},
		{"123", false},
		{"", false},
		{"abc.def.ghi-jk", false},
		{"111444777350", false}, // 12 digits
	}
	for _, tc := range cases {
		if got := ValidaCPF(tc.in); got != tc.want {
			t.Errorf("ValidaCPF(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLimpaCPF(t *testing.T) {
	if got := LimpaCPF("111.444.777-35"); got != "11144477735" {
		t.Fatalf("LimpaCPF = %q", got)
	}
	if got := LimpaCPF("no digits"); got != "" {
		t.Fatalf("LimpaCPF = %q, want empty", got)
	}
}

// checkDigits computes both CPF check digits for a 9-digit prefix.
func checkDigits(prefix [9]int) (int, int) {
	sum := 0
	for i, d := range prefix {
		sum += d * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 > 9 {
		d1 = 0
	}
	sum = 0
	for i, d := range prefix {
		sum += d * (11 - i)
	}
	sum += d1 * 2
	d2 := 11 - sum%11
	if d2 > 9 {
		d2 = 0
	}
	return d1, d2
}

func TestValidaCPFGenerated(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	collisions := 0
	for n := 0; n < 500; n++ {
		var prefix [9]int
		same := true
		for i := range prefix {
			prefix[i] = rng.Intn(10)
			if prefix[i] != prefix[0] {
				same = false
			}
		}
		d1, d2 := checkDigits(prefix)

		cpf := ""
		for _, d := range prefix {
			cpf += strconv.Itoa(d)
		}
		cpf += strconv.Itoa(d1) + strconv.Itoa(d2)

		if same {
			// all-repeated prefixes are rejected regardless of checksum
			if d1 == prefix[0] && d2 == prefix[0] && ValidaCPF(cpf) {
				t.Errorf("ValidaCPF(%q) = true for repeated-digit CPF", cpf)
			}
			continue
		}
		if !ValidaCPF(cpf) {
			t.Fatalf("ValidaCPF(%q) = false for correctly generated CPF", cpf)
		}

		// Mutate a single digit. The mod-11 fold (residues 0 and 1 both map
		// to check digit 0) permits rare collisions, so the checksum is only
		// required to catch mutations with high probability.
		pos := rng.Intn(11)
		delta := 1 + rng.Intn(9)
		mutated := []byte(cpf)
		mutated[pos] = byte('0' + (int(mutated[pos]-'0')+delta)%10)
		if ValidaCPF(string(mutated)) {
			collisions++
		}
	}
	if collisions > 10 {
		t.Errorf("single-digit mutations accepted %d/500 times", collisions)
	}
}
