package worker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"revenda/internal/amqp"
	"revenda/internal/core"
	"revenda/internal/documents"
	"revenda/internal/ledger"
	"revenda/internal/storage"
)

type fakeLedger struct {
	entries []ledger.Entry
}

func (f *fakeLedger) Append(_ context.Context, e ledger.Entry) (string, error) {
	f.entries = append(f.entries, e)
	return "Vendas!A2:G2", nil
}

func setupWorker(t *testing.T, lw ledger.Writer) (*ArchiveWorker, *storage.SQLiteRepository) {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "revenda.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	renderer, err := documents.NewRenderer(documents.Revenda{
		Nome:   "Auto Center Veículos Ltda",
		CNPJ:   "12.345.678/0001-90",
		Cidade: "Curitiba",
		UF:     "PR",
	})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	return NewArchiveWorker(repo, renderer, lw, 10), repo
}

func seedRecibo(t *testing.T, repo *storage.SQLiteRepository) (core.Recibo, int64) {
	t.Helper()
	ctx := context.Background()

	cliente, err := repo.CreateCliente(ctx, core.Cliente{
		Nome: "João da Silva",
		CPF:  "11144477735",
	})
	if err != nil {
		t.Fatalf("seed cliente: %v", err)
	}
	veiculo, err := repo.CreateVeiculo(ctx, core.Veiculo{
		Marca:  "Volkswagen",
		Modelo: "Gol 1.0",
		Ano:    2019,
		Placa:  "ABC-1234",
		Preco:  core.Money{Cents: 4350000},
	})
	if err != nil {
		t.Fatalf("seed veiculo: %v", err)
	}

	rec, versao, err := repo.CreateRecibo(ctx, core.Recibo{
		ClienteID: cliente.ID,
		VeiculoID: veiculo.ID,
		Valor:     core.Money{Cents: 4350000},
		Forma:     core.PagamentoAVista,
		Data:      core.NewDate(2026, 8, 28),
	})
	if err != nil {
		t.Fatalf("seed recibo: %v", err)
	}
	return rec, versao
}

func TestHandleDocumentoEmitido(t *testing.T) {
	lw := &fakeLedger{}
	w, repo := setupWorker(t, lw)
	ctx := context.Background()

	rec, versao := seedRecibo(t, repo)

	msg := amqp.NewDocumentoEmitidoMessage(rec.ID, versao)
	if err := w.HandleDocumentoEmitido(ctx, msg); err != nil {
		t.Fatalf("HandleDocumentoEmitido: %v", err)
	}

	// All four sale documents must be archived.
	for _, tipo := range []documents.Tipo{
		documents.TipoRecibo,
		documents.TipoContrato,
		documents.TipoGarantia,
		documents.TipoTransferencia,
	} {
		corpo, _, err := repo.GetDocumento(ctx, rec.ID, string(tipo))
		if err != nil {
			t.Fatalf("GetDocumento(%s): %v", tipo, err)
		}
		if corpo == "" {
			t.Errorf("archived %s is empty", tipo)
		}
	}

	corpo, _, _ := repo.GetDocumento(ctx, rec.ID, string(documents.TipoRecibo))
	if !strings.Contains(corpo, "Quarenta e três mil e quinhentos reais") {
		t.Errorf("archived receipt missing written amount:\n%s", corpo)
	}

	got, _ := repo.GetRecibo(ctx, rec.ID)
	if !got.Arquivado {
		t.Error("recibo should be marked arquivado")
	}

	if len(lw.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(lw.entries))
	}
	if lw.entries[0].Extenso != "Quarenta e três mil e quinhentos reais" {
		t.Errorf("ledger extenso = %q", lw.entries[0].Extenso)
	}

	// Reprocessing the same message is a no-op.
	if err := w.HandleDocumentoEmitido(ctx, msg); err != nil {
		t.Fatalf("reprocess: %v", err)
	}
	if len(lw.entries) != 1 {
		t.Errorf("ledger entries after reprocess = %d, want 1", len(lw.entries))
	}
}

func TestProcessPendingRecibos(t *testing.T) {
	w, repo := setupWorker(t, nil)
	ctx := context.Background()

	rec, _ := seedRecibo(t, repo)

	if err := w.ProcessPendingRecibos(ctx); err != nil {
		t.Fatalf("ProcessPendingRecibos: %v", err)
	}

	got, _ := repo.GetRecibo(ctx, rec.ID)
	if !got.Arquivado {
		t.Error("pending recibo should be archived by the periodic scan")
	}

	// With nothing pending, the scan is a no-op.
	if err := w.ProcessPendingRecibos(ctx); err != nil {
		t.Fatalf("second ProcessPendingRecibos: %v", err)
	}
}
