// Package documents renders the dealership's legal documents (recibo,
// contrato, garantia, autorização de transferência, declaração de
// desistência, reserva) into finished pt-BR text.
//
// Each rendered body carries the written amount produced by core.Extenso and
// the long-form date; the client CPF is re-validated before rendering so an
// invalid document can never be emitted.
package documents

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"revenda/internal/core"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Tipo string

const (
	TipoRecibo        Tipo = "recibo"
	TipoContrato      Tipo = "contrato"
	TipoGarantia      Tipo = "garantia"
	TipoTransferencia Tipo = "transferencia"
	TipoDesistencia   Tipo = "desistencia"
	TipoReserva       Tipo = "reserva"
)

// Tipos lists every document type the renderer knows, in emission order.
var Tipos = []Tipo{TipoRecibo, TipoContrato, TipoGarantia,
	TipoTransferencia, TipoDesistencia, TipoReserva}

// ParseTipo maps a URL/storage string onto a document type.
func ParseTipo(s string) (Tipo, error) {
	for _, t := range Tipos {
		if string(t) == strings.ToLower(strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

// Revenda is the dealership letterhead printed on every document.
type Revenda struct {
	Nome     string
	CNPJ     string
	Endereco string
	Cidade   string
	UF       string
	Telefone string
}

// Renderer renders documents from embedded boilerplate templates.
type Renderer struct {
	tmpl    *template.Template
	revenda Revenda
}

func NewRenderer(revenda Revenda) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse document templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, revenda: revenda}, nil
}

// dados is the merged view handed to every template. Fields that a given
// template does not use stay zero.
type dados struct {
	Revenda Revenda
	Cliente core.Cliente
	Veiculo core.Veiculo
	Banco   core.Banco

	CPF            string // masked
	Valor          string // numeric BRL
	ValorExtenso   string
	Entrada        string
	EntradaExtenso string
	Parcelas       int
	ValorParcela   string
	ParcelaExtenso string
	Forma          string
	Data           string // long-form date
	PrazoGarantia  string
}

var formaDescricao = map[core.FormaPagamento]string{
	core.PagamentoAVista:     "à vista",
	core.PagamentoFinanciado: "financiamento bancário",
	core.PagamentoConsorcio:  "consórcio",
	core.PagamentoTroca:      "troca com veículo usado",
}

func (r *Renderer) base(c core.Cliente, v core.Veiculo) (dados, error) {
	if !core.ValidaCPF(c.CPF) {
		return dados{}, fmt.Errorf("cliente %q: %w", c.Nome, core.ErrInvalidCPF)
	}
	return dados{
		Revenda: r.revenda,
		Cliente: c,
		Veiculo: v,
		CPF:     core.FormataCPF(c.CPF),
	}, nil
}

func (r *Renderer) render(tipo Tipo, d dados) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, string(tipo)+".tmpl", d); err != nil {
		return "", fmt.Errorf("render %s: %w", tipo, err)
	}
	return b.String(), nil
}

// Recibo renders the sale receipt for an issued Recibo.
func (r *Renderer) Recibo(c core.Cliente, v core.Veiculo, rec core.Recibo) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	d.Valor = rec.Valor.FormatBRL()
	d.ValorExtenso = rec.Valor.Extenso()
	d.Forma = formaDescricao[rec.Forma]
	d.Data = rec.Data.ExtensoData()
	return r.render(TipoRecibo, d)
}

// Contrato renders the purchase-and-sale contract backing a receipt.
func (r *Renderer) Contrato(c core.Cliente, v core.Veiculo, rec core.Recibo) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	d.Valor = rec.Valor.FormatBRL()
	d.ValorExtenso = rec.Valor.Extenso()
	d.Forma = formaDescricao[rec.Forma]
	d.Data = rec.Data.ExtensoData()
	return r.render(TipoContrato, d)
}

// Garantia renders the 90-day engine-and-gearbox warranty term.
func (r *Renderer) Garantia(c core.Cliente, v core.Veiculo, rec core.Recibo) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	d.Data = rec.Data.ExtensoData()
	d.PrazoGarantia = "90 (noventa) dias"
	return r.render(TipoGarantia, d)
}

// Transferencia renders the transfer authorization for the sold vehicle.
func (r *Renderer) Transferencia(c core.Cliente, v core.Veiculo, rec core.Recibo) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	d.Data = rec.Data.ExtensoData()
	return r.render(TipoTransferencia, d)
}

// Desistencia renders the withdrawal declaration for a cancelled proposal.
// The refund sentence only appears when a deposit was actually taken.
func (r *Renderer) Desistencia(c core.Cliente, v core.Veiculo, p core.Proposta) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	if p.Entrada.Cents > 0 {
		d.Entrada = p.Entrada.FormatBRL()
		d.EntradaExtenso = p.Entrada.Extenso()
	}
	d.Data = p.Data.ExtensoData()
	return r.render(TipoDesistencia, d)
}

// Reserva renders the vehicle reservation slip for an open proposal.
func (r *Renderer) Reserva(c core.Cliente, v core.Veiculo, p core.Proposta, b core.Banco) (string, error) {
	d, err := r.base(c, v)
	if err != nil {
		return "", err
	}
	d.Banco = b
	d.Entrada = p.Entrada.FormatBRL()
	d.EntradaExtenso = p.Entrada.Extenso()
	d.Parcelas = p.Parcelas
	d.ValorParcela = p.ValorParcela.FormatBRL()
	d.ParcelaExtenso = p.ValorParcela.Extenso()
	d.Data = p.Data.ExtensoData()
	return r.render(TipoReserva, d)
}
