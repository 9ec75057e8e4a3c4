// Package worker archives emitted documents: it consumes the AMQP jobs the
// server publishes when a receipt is issued, renders the final document
// text, stores it in the archive table and appends the sale to the ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"revenda/internal/amqp"
	"revenda/internal/documents"
	"revenda/internal/ledger"
	"revenda/internal/storage"
)

// ArchiveWorker turns issued receipts into archived legal documents.
type ArchiveWorker struct {
	storage   *storage.SQLiteRepository
	renderer  *documents.Renderer
	ledger    ledger.Writer // nil when the ledger is disabled
	batchSize int
}

func NewArchiveWorker(storage *storage.SQLiteRepository, renderer *documents.Renderer, lw ledger.Writer, batchSize int) *ArchiveWorker {
	return &ArchiveWorker{
		storage:   storage,
		renderer:  renderer,
		ledger:    lw,
		batchSize: batchSize,
	}
}

// HandleDocumentoEmitido processes one archival job from AMQP.
func (w *ArchiveWorker) HandleDocumentoEmitido(ctx context.Context, msg *amqp.DocumentoEmitidoMessage) error {
	slog.InfoContext(ctx, "Processing archive job",
		"recibo_id", msg.ReciboID,
		"versao", msg.Versao)

	return w.archiveRecibo(ctx, msg.ReciboID)
}

func (w *ArchiveWorker) archiveRecibo(ctx context.Context, reciboID int64) error {
	rec, err := w.storage.GetRecibo(ctx, reciboID)
	if err != nil {
		return fmt.Errorf("load recibo: %w", err)
	}
	if rec.Arquivado {
		slog.InfoContext(ctx, "Recibo already archived, skipping", "recibo_id", reciboID)
		return nil
	}

	cliente, err := w.storage.GetCliente(ctx, rec.ClienteID)
	if err != nil {
		return fmt.Errorf("load cliente: %w", err)
	}
	veiculo, err := w.storage.GetVeiculo(ctx, rec.VeiculoID)
	if err != nil {
		return fmt.Errorf("load veiculo: %w", err)
	}

	// The archive holds the full document set for the sale, rendered once
	// and kept immutable.
	renders := []struct {
		tipo   documents.Tipo
		render func() (string, error)
	}{
		{documents.TipoRecibo, func() (string, error) { return w.renderer.Recibo(cliente, veiculo, rec) }},
		{documents.TipoContrato, func() (string, error) { return w.renderer.Contrato(cliente, veiculo, rec) }},
		{documents.TipoGarantia, func() (string, error) { return w.renderer.Garantia(cliente, veiculo, rec) }},
		{documents.TipoTransferencia, func() (string, error) { return w.renderer.Transferencia(cliente, veiculo, rec) }},
	}
	for _, r := range renders {
		corpo, err := r.render()
		if err != nil {
			return fmt.Errorf("render %s: %w", r.tipo, err)
		}
		if err := w.storage.SaveDocumento(ctx, rec.ID, string(r.tipo), corpo); err != nil {
			return fmt.Errorf("archive %s: %w", r.tipo, err)
		}
	}

	if w.ledger != nil {
		ref, err := w.ledger.Append(ctx, ledger.Entry{
			Data:    rec.Data,
			Cliente: cliente,
			Veiculo: veiculo,
			Valor:   rec.Valor,
			Extenso: rec.Valor.Extenso(),
		})
		if err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}
		slog.InfoContext(ctx, "Sale appended to ledger", "recibo_id", rec.ID, "ref", ref)
	}

	if err := w.storage.MarkReciboArquivado(ctx, rec.ID); err != nil {
		return fmt.Errorf("mark recibo arquivado: %w", err)
	}

	slog.InfoContext(ctx, "Recibo archived",
		"recibo_id", rec.ID,
		"cliente", cliente.Nome,
		"placa", veiculo.Placa)

	return nil
}

// ProcessPendingRecibos archives receipts whose AMQP job was lost. Called
// periodically and once on startup.
func (w *ArchiveWorker) ProcessPendingRecibos(ctx context.Context) error {
	pending, err := w.storage.GetPendingArchiveRecibos(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending recibos: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Archiving pending recibos", "count", len(pending))

	var firstErr error
	for _, p := range pending {
		if err := w.archiveRecibo(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to archive pending recibo",
				"recibo_id", p.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
