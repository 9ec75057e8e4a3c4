package core

import "strings"

// LimpaCPF strips formatting characters from a CPF, keeping digits only.
func LimpaCPF(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormataCPF renders an 11-digit CPF with the standard mask
// ("11144477735" -> "111.444.777-35"). Inputs that do not clean up to
// 11 digits are returned unchanged.
func FormataCPF(cpf string) string {
	d := LimpaCPF(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// ValidaCPF reports whether the given string is a valid CPF. Formatting
// characters ("111.444.777-35") are stripped first. Inputs with the wrong
// length, or the known-invalid all-repeated-digit placeholders, yield false;
// the function never panics on malformed input.
func ValidaCPF(cpf string) bool {
	digits := LimpaCPF(cpf)
	if len(digits) != 11 {
		return false
	}

	repeated := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	// First check digit: weights 10 down to 2 over the first 9 digits.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 > 9 {
		d1 = 0
	}
	if d1 != int(digits[9]-'0') {
		return false
	}

	// Second check digit: weights 11 down to 2 over the first 10 digits.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	d2 := 11 - sum%11
	if d2 > 9 {
		d2 = 0
	}
	return d2 == int(digits[10]-'0')
}
