package core

import "fmt"

var mesesPTBR = [...]string{"janeiro", "fevereiro", "março", "abril", "maio",
	"junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// ExtensoData returns the long-form pt-BR date used on legal documents,
// e.g. "28 de agosto de 2026". Zero dates render as an empty string.
func (d Date) ExtensoData() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", d.Day(), mesesPTBR[d.Month()-1], d.Year())
}

// FormatBR returns the numeric pt-BR date, e.g. "28/08/2026".
func (d Date) FormatBR() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}
