// Package ledger defines the outbound port for the sales ledger the worker
// appends issued receipts to.
package ledger

import (
	"context"

	"revenda/internal/core"
)

// Entry is one sales-ledger line. Extenso carries the written amount so the
// spreadsheet matches the wording on the archived receipt.
type Entry struct {
	Data    core.Date
	Cliente core.Cliente
	Veiculo core.Veiculo
	Valor   core.Money
	Extenso string
}

// Writer appends entries to the ledger.
type Writer interface {
	Append(ctx context.Context, e Entry) (rowRef string, err error)
}
