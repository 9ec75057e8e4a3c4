package core

import (
	"errors"
	"testing"
)

func validVeiculo() Veiculo {
	return Veiculo{
		Marca:   "Volkswagen",
		Modelo:  "Gol 1.0",
		Ano:     2019,
		Placa:   "ABC-1234",
		Renavam: "00123456789",
		Cor:     "Prata",
		Km:      45200,
		Preco:   Money{Cents: 4350000},
	}
}

func TestVeiculoValidate(t *testing.T) {
	if err := validVeiculo().Validate(); err != nil {
		t.Fatalf("valid vehicle rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Veiculo)
		want   error
	}{
		{"empty marca", func(v *Veiculo) { v.Marca = " " }, ErrEmptyMarca},
		{"empty modelo", func(v *Veiculo) { v.Modelo = "" }, ErrEmptyModelo},
		{"ancient year", func(v *Veiculo) { v.Ano = 1900 }, ErrInvalidAno},
		{"future year", func(v *Veiculo) { v.Ano = 2999 }, ErrInvalidAno},
		{"short plate", func(v *Veiculo) { v.Placa = "AB-12" }, ErrInvalidPlaca},
		{"free price", func(v *Veiculo) { v.Preco = Money{} }, ErrInvalidAmount},
	}
	for _, tc := range cases {
		v := validVeiculo()
		tc.mutate(&v)
		if err := v.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Mercosul plates carry no dash
	v := validVeiculo()
	v.Placa = "ABC1D23"
	if err := v.Validate(); err != nil {
		t.Errorf("mercosul plate rejected: %v", err)
	}
}

func TestClienteValidate(t *testing.T) {
	c := Cliente{Nome: "José da Silva", CPF: "111.444.777-35", Cidade: "Curitiba", UF: "PR"}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}

	c.CPF = "111.444.777-36"
	if err := c.Validate(); !errors.Is(err, ErrInvalidCPF) {
		t.Errorf("bad CPF: got %v", err)
	}

	c = Cliente{Nome: "", CPF: "111.444.777-35"}
	if err := c.Validate(); !errors.Is(err, ErrEmptyNome) {
		t.Errorf("empty name: got %v", err)
	}
}

func TestPropostaValidate(t *testing.T) {
	p := Proposta{
		ClienteID:    1,
		VeiculoID:    2,
		BancoID:      3,
		Entrada:      Money{Cents: 1000000},
		Parcelas:     36,
		ValorParcela: Money{Cents: 98000},
		Status:       PropostaAberta,
		Data:         NewDate(2026, 8, 28),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid proposal rejected: %v", err)
	}

	p.Status = "pendente"
	if err := p.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bad status: got %v", err)
	}
	p.Status = PropostaAberta

	p.Parcelas = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParcela) {
		t.Errorf("zero installments: got %v", err)
	}
}

func TestReciboValidate(t *testing.T) {
	r := Recibo{
		ClienteID: 1,
		VeiculoID: 2,
		Valor:     Money{Cents: 4350000},
		Forma:     PagamentoAVista,
		Data:      NewDate(2026, 8, 28),
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid receipt rejected: %v", err)
	}

	r.Forma = "cheque"
	if err := r.Validate(); !errors.Is(err, ErrInvalidForma) {
		t.Errorf("bad payment form: got %v", err)
	}
}

func TestDateExtenso(t *testing.T) {
	d := NewDate(2026, 8, 28)
	if got := d.ExtensoData(); got != "28 de agosto de 2026" {
		t.Errorf("ExtensoData = %q", got)
	}
	if got := d.FormatBR(); got != "28/08/2026" {
		t.Errorf("FormatBR = %q", got)
	}
	if got := (Date{}).ExtensoData(); got != "" {
		t.Errorf("zero date ExtensoData = %q", got)
	}
}
