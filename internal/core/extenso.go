// This file contains the currency-to-words transcriber used to produce the
// legally required written amount ("valor por extenso") on receipts and
// contracts.
package core

import (
	"math"
	"strings"
	"unicode"
)

var (
	extUnidades = [...]string{"", "um", "dois", "três", "quatro", "cinco",
		"seis", "sete", "oito", "nove"}
	extDezADezenove = [...]string{"dez", "onze", "doze", "treze", "quatorze",
		"quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	extDezenas = [...]string{"", "", "vinte", "trinta", "quarenta",
		"cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	extCentenas = [...]string{"", "cento", "duzentos", "trezentos",
		"quatrocentos", "quinhentos", "seiscentos", "setecentos",
		"oitocentos", "novecentos"}

	// Scale words above the thousands, ascending. Quatrilhões cover every
	// amount whose cents fit in an int64.
	extEscalas = [...][2]string{
		{"milhão", "milhões"},
		{"bilhão", "bilhões"},
		{"trilhão", "trilhões"},
		{"quatrilhão", "quatrilhões"},
	}
)

// maxExtenso is the largest absolute amount the transcriber accepts:
// anything at or above it would overflow int64 cents.
const maxExtenso = 9.2e16

// Extenso converts a monetary amount into its full Brazilian-Portuguese
// textual representation:
//
//	Extenso(1234.56) -> "Mil duzentos e trinta e quatro reais e cinquenta e seis centavos"
//
// It is a total function: non-finite input degrades to "Zero reais", and the
// sign is dropped (amounts on dealership documents are always non-negative;
// validation upstream rejects negative values before they reach a document).
// The amount is rounded to whole centavos before splitting, so values such
// as 0.999 carry into the integer part instead of producing "100 centavos".
func Extenso(valor float64) string {
	if math.IsNaN(valor) || math.IsInf(valor, 0) {
		return "Zero reais"
	}
	abs := math.Abs(valor)
	if abs >= maxExtenso {
		// Beyond representable cents; degrade like non-finite input.
		return "Zero reais"
	}
	total := int64(math.Round(abs * 100))
	inteiro := total / 100
	centavos := total % 100

	if inteiro == 0 && centavos == 0 {
		return "Zero reais"
	}

	texto := ""
	if inteiro > 0 {
		texto = extensoInteiro(inteiro)
		switch {
		case inteiro == 1:
			texto += " real"
		case inteiro%1_000_000 == 0:
			// Amounts ending on a scale word take "de": "um milhão de
			// reais", never "um milhão reais".
			texto += " de reais"
		default:
			texto += " reais"
		}
	}

	if centavos > 0 {
		clause := grupoExtenso(centavos)
		if centavos == 1 {
			clause += " centavo"
		} else {
			clause += " centavos"
		}
		if texto == "" {
			texto = clause
		} else {
			texto += " e " + clause
		}
	}

	return capitaliza(texto)
}

// extensoInteiro spells a positive integer amount by base-1000 groups:
// scale words from the highest down, then milhares, then the 0-999 remainder.
func extensoInteiro(n int64) string {
	var grupos []int64
	for n > 0 {
		grupos = append(grupos, n%1000)
		n /= 1000
	}

	var segs []string
	for i := len(grupos) - 1; i >= 2; i-- {
		g := grupos[i]
		if g == 0 {
			continue
		}
		escala := extEscalas[i-2]
		if g == 1 {
			segs = append(segs, "um "+escala[0])
		} else {
			segs = append(segs, grupoExtenso(g)+" "+escala[1])
		}
	}
	if len(grupos) > 1 && grupos[1] > 0 {
		if grupos[1] == 1 {
			// "mil", never "um mil"
			segs = append(segs, "mil")
		} else {
			segs = append(segs, grupoExtenso(grupos[1])+" mil")
		}
	}

	out := strings.Join(segs, " ")
	resto := grupos[0]
	if resto > 0 {
		if out == "" {
			return grupoExtenso(resto)
		}
		// Connective before the final group follows written usage:
		// "mil e vinte", "dois mil e duzentos", but "mil duzentos e
		// trinta e quatro".
		if resto < 100 || resto%100 == 0 {
			out += " e "
		} else {
			out += " "
		}
		out += grupoExtenso(resto)
	}
	return out
}

// grupoExtenso spells a number in the 1-999 range.
func grupoExtenso(n int64) string {
	if n == 100 {
		return "cem"
	}
	centena := n / 100
	resto := n % 100

	var parts []string
	if centena > 0 {
		parts = append(parts, extCentenas[centena])
	}
	if resto > 0 {
		var dz string
		switch {
		case resto < 10:
			dz = extUnidades[resto]
		case resto < 20:
			dz = extDezADezenove[resto-10]
		default:
			dz = extDezenas[resto/10]
			if u := resto % 10; u > 0 {
				dz += " e " + extUnidades[u]
			}
		}
		parts = append(parts, dz)
	}
	return strings.Join(parts, " e ")
}

func capitaliza(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
