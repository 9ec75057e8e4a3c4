package documents

import (
	"errors"
	"strings"
	"testing"

	"revenda/internal/core"
)

func testRevenda() Revenda {
	return Revenda{
		Nome:     "Auto Center Planalto Ltda",
		CNPJ:     "12.345.678/0001-90",
		Endereco: "Av. das Torres, 1500",
		Cidade:   "Curitiba",
		UF:       "PR",
		Telefone: "(41) 3333-4444",
	}
}

func testCliente() core.Cliente {
	return core.Cliente{
		ID:       1,
		Nome:     "José da Silva",
		CPF:      "11144477735",
		Endereco: "Rua das Acácias, 42",
		Cidade:   "Curitiba",
		UF:       "PR",
	}
}

func testVeiculo() core.Veiculo {
	return core.Veiculo{
		ID:      2,
		Marca:   "Volkswagen",
		Modelo:  "Gol 1.0",
		Ano:     2019,
		Placa:   "ABC-1234",
		Renavam: "00123456789",
		Cor:     "Prata",
		Km:      45200,
		Preco:   core.Money{Cents: 4350000},
	}
}

func testRecibo() core.Recibo {
	return core.Recibo{
		ID:        3,
		ClienteID: 1,
		VeiculoID: 2,
		Valor:     core.Money{Cents: 4350000},
		Forma:     core.PagamentoAVista,
		Data:      core.NewDate(2026, 8, 28),
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(testRevenda())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestReciboRender(t *testing.T) {
	r := newTestRenderer(t)
	body, err := r.Recibo(testCliente(), testVeiculo(), testRecibo())
	if err != nil {
		t.Fatalf("Recibo: %v", err)
	}

	for _, want := range []string{
		"RECIBO DE VENDA DE VEÍCULO",
		"José da Silva",
		"111.444.777-35",
		"R$ 43.500,00",
		"Quarenta e três mil e quinhentos reais",
		"Gol 1.0",
		"ABC-1234",
		"à vista",
		"28 de agosto de 2026",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("recibo body missing %q\n%s", want, body)
		}
	}
}

func TestContratoRender(t *testing.T) {
	r := newTestRenderer(t)
	rec := testRecibo()
	rec.Forma = core.PagamentoFinanciado
	body, err := r.Contrato(testCliente(), testVeiculo(), rec)
	if err != nil {
		t.Fatalf("Contrato: %v", err)
	}
	for _, want := range []string{
		"CONTRATO DE COMPRA E VENDA",
		"CLÁUSULA 2ª",
		"Quarenta e três mil e quinhentos reais",
		"financiamento bancário",
		"45200 km",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("contrato body missing %q", want)
		}
	}
}

func TestGarantiaRender(t *testing.T) {
	r := newTestRenderer(t)
	body, err := r.Garantia(testCliente(), testVeiculo(), testRecibo())
	if err != nil {
		t.Fatalf("Garantia: %v", err)
	}
	if !strings.Contains(body, "90 (noventa) dias") {
		t.Errorf("garantia body missing warranty period:\n%s", body)
	}
	if !strings.Contains(body, "motor e câmbio") {
		t.Errorf("garantia body missing coverage clause")
	}
}

func TestDesistenciaRender(t *testing.T) {
	r := newTestRenderer(t)
	p := core.Proposta{
		ClienteID: 1, VeiculoID: 2, BancoID: 1,
		Entrada:      core.Money{Cents: 500000},
		Parcelas:     36,
		ValorParcela: core.Money{Cents: 120000},
		Status:       core.PropostaCancelada,
		Data:         core.NewDate(2026, 8, 28),
	}
	body, err := r.Desistencia(testCliente(), testVeiculo(), p)
	if err != nil {
		t.Fatalf("Desistencia: %v", err)
	}
	if !strings.Contains(body, "Cinco mil reais") {
		t.Errorf("desistencia body missing refunded deposit in words:\n%s", body)
	}

	// No deposit: the refund sentence must be replaced, not left dangling.
	p.Entrada = core.Money{}
	body, err = r.Desistencia(testCliente(), testVeiculo(), p)
	if err != nil {
		t.Fatalf("Desistencia without deposit: %v", err)
	}
	if strings.Contains(body, "sinal de") {
		t.Errorf("desistencia without deposit still mentions sinal:\n%s", body)
	}
}

func TestReservaRender(t *testing.T) {
	r := newTestRenderer(t)
	p := core.Proposta{
		ClienteID: 1, VeiculoID: 2, BancoID: 1,
		Entrada:      core.Money{Cents: 1000000},
		Parcelas:     48,
		ValorParcela: core.Money{Cents: 98750},
		Status:       core.PropostaAberta,
		Data:         core.NewDate(2026, 8, 28),
	}
	b := core.Banco{ID: 1, Nome: "Banco Azul S.A.", TaxaJurosAM: 1.49, PrazoMaximo: 60}
	body, err := r.Reserva(testCliente(), testVeiculo(), p, b)
	if err != nil {
		t.Fatalf("Reserva: %v", err)
	}
	for _, want := range []string{
		"Banco Azul S.A.",
		"48 parcelas",
		"Novecentos e oitenta e sete reais e cinquenta centavos",
		"Dez mil reais",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("reserva body missing %q", want)
		}
	}
}

func TestRenderRejectsInvalidCPF(t *testing.T) {
	r := newTestRenderer(t)
	c := testCliente()
	c.CPF = "111.444.777-36"
	_, err := r.Recibo(c, testVeiculo(), testRecibo())
	if !errors.Is(err, core.ErrInvalidCPF) {
		t.Fatalf("expected ErrInvalidCPF, got %v", err)
	}
}

func TestParseTipo(t *testing.T) {
	for _, tipo := range Tipos {
		got, err := ParseTipo(string(tipo))
		if err != nil || got != tipo {
			t.Errorf("ParseTipo(%q) = %v, %v", tipo, got, err)
		}
	}
	if _, err := ParseTipo("procuracao"); err == nil {
		t.Errorf("ParseTipo accepted unknown type")
	}
}
