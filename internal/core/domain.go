package core

import (
	"errors"
	"strings"
	"time"
)

const (
	PropostaAberta    PropostaStatus = "aberta"
	PropostaAprovada  PropostaStatus = "aprovada"
	PropostaRecusada  PropostaStatus = "recusada"
	PropostaCancelada PropostaStatus = "cancelada"
)

const (
	PagamentoAVista     FormaPagamento = "a_vista"
	PagamentoFinanciado FormaPagamento = "financiado"
	PagamentoConsorcio  FormaPagamento = "consorcio"
	PagamentoTroca      FormaPagamento = "troca"
)

type (
	PropostaStatus string

	FormaPagamento string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Veiculo struct {
		ID      int64  `json:"id"`
		Marca   string `json:"marca"`
		Modelo  string `json:"modelo"`
		Ano     int    `json:"ano"`
		Placa   string `json:"placa"`
		Renavam string `json:"renavam"`
		Cor     string `json:"cor"`
		Km      int64  `json:"km"`
		Preco   Money  `json:"preco"`
		Vendido bool   `json:"vendido"`
	}

	Cliente struct {
		ID       int64  `json:"id"`
		Nome     string `json:"nome"`
		CPF      string `json:"cpf"`
		Endereco string `json:"endereco"`
		Cidade   string `json:"cidade"`
		UF       string `json:"uf"`
		Telefone string `json:"telefone"`
	}

	Banco struct {
		ID          int64   `json:"id"`
		Nome        string  `json:"nome"`
		TaxaJurosAM float64 `json:"taxa_juros_am"` // monthly rate, percent
		PrazoMaximo int     `json:"prazo_maximo"`  // max number of installments
	}

	Proposta struct {
		ID           int64          `json:"id"`
		ClienteID    int64          `json:"cliente_id"`
		VeiculoID    int64          `json:"veiculo_id"`
		BancoID      int64          `json:"banco_id"`
		Entrada      Money          `json:"entrada"`
		Parcelas     int            `json:"parcelas"`
		ValorParcela Money          `json:"valor_parcela"`
		Status       PropostaStatus `json:"status"`
		Data         Date           `json:"data"`
	}

	Recibo struct {
		ID        int64          `json:"id"`
		ClienteID int64          `json:"cliente_id"`
		VeiculoID int64          `json:"veiculo_id"`
		Valor     Money          `json:"valor"`
		Forma     FormaPagamento `json:"forma_pagamento"`
		Data      Date           `json:"data"`
		Arquivado bool           `json:"arquivado"`
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidCPF     = errors.New("invalid cpf")
	ErrInvalidPlaca   = errors.New("invalid license plate")
	ErrInvalidAno     = errors.New("invalid model year")
	ErrEmptyNome      = errors.New("empty name")
	ErrEmptyMarca     = errors.New("empty make")
	ErrEmptyModelo    = errors.New("empty model")
	ErrInvalidStatus  = errors.New("invalid proposal status")
	ErrInvalidForma   = errors.New("invalid payment form")
	ErrInvalidParcela = errors.New("invalid installment count")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date truncated to midnight UTC.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (v Veiculo) Validate() error {
	if strings.TrimSpace(v.Marca) == "" {
		return ErrEmptyMarca
	}
	if strings.TrimSpace(v.Modelo) == "" {
		return ErrEmptyModelo
	}
	if v.Ano < 1950 || v.Ano > time.Now().Year()+1 {
		return ErrInvalidAno
	}
	// Plates are 7 characters in both the old ABC-1234 and the
	// Mercosul ABC1D23 formats.
	if len(strings.ReplaceAll(strings.TrimSpace(v.Placa), "-", "")) != 7 {
		return ErrInvalidPlaca
	}
	if v.Km < 0 {
		return errors.New("negative odometer reading")
	}
	return v.Preco.Validate()
}

func (c Cliente) Validate() error {
	if len(strings.TrimSpace(c.Nome)) == 0 {
		return ErrEmptyNome
	}
	if len(c.Nome) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if !ValidaCPF(c.CPF) {
		return ErrInvalidCPF
	}
	return nil
}

func (b Banco) Validate() error {
	if strings.TrimSpace(b.Nome) == "" {
		return ErrEmptyNome
	}
	if b.TaxaJurosAM < 0 {
		return errors.New("negative interest rate")
	}
	if b.PrazoMaximo < 1 {
		return ErrInvalidParcela
	}
	return nil
}

func (p Proposta) Validate() error {
	if p.ClienteID <= 0 || p.VeiculoID <= 0 || p.BancoID <= 0 {
		return errors.New("proposal must reference cliente, veiculo and banco")
	}
	if p.Parcelas < 1 {
		return ErrInvalidParcela
	}
	if err := p.ValorParcela.Validate(); err != nil {
		return err
	}
	if p.Entrada.Cents < 0 {
		return ErrInvalidAmount
	}
	switch p.Status {
	case PropostaAberta, PropostaAprovada, PropostaRecusada, PropostaCancelada:
	default:
		return ErrInvalidStatus
	}
	return p.Data.Validate()
}

func (r Recibo) Validate() error {
	if r.ClienteID <= 0 || r.VeiculoID <= 0 {
		return errors.New("receipt must reference cliente and veiculo")
	}
	if err := r.Valor.Validate(); err != nil {
		return err
	}
	switch r.Forma {
	case PagamentoAVista, PagamentoFinanciado, PagamentoConsorcio, PagamentoTroca:
	default:
		return ErrInvalidForma
	}
	return r.Data.Validate()
}
