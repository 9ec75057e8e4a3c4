package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"revenda/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func parseDate(s string) core.Date {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}
	}
	return core.Date{Time: t}
}

func toVeiculo(v VeiculoRow) core.Veiculo {
	return core.Veiculo{
		ID:      v.ID,
		Marca:   v.Marca,
		Modelo:  v.Modelo,
		Ano:     int(v.Ano),
		Placa:   v.Placa,
		Renavam: v.Renavam,
		Cor:     v.Cor,
		Km:      v.Km,
		Preco:   core.Money{Cents: v.PrecoCents},
		Vendido: v.Vendido,
	}
}

func toCliente(c ClienteRow) core.Cliente {
	return core.Cliente{
		ID:       c.ID,
		Nome:     c.Nome,
		CPF:      c.CPF,
		Endereco: c.Endereco,
		Cidade:   c.Cidade,
		UF:       c.UF,
		Telefone: c.Telefone,
	}
}

func toBanco(b BancoRow) core.Banco {
	return core.Banco{
		ID:          b.ID,
		Nome:        b.Nome,
		TaxaJurosAM: b.TaxaJurosAM,
		PrazoMaximo: int(b.PrazoMaximo),
	}
}

func toProposta(p PropostaRow) core.Proposta {
	return core.Proposta{
		ID:           p.ID,
		ClienteID:    p.ClienteID,
		VeiculoID:    p.VeiculoID,
		BancoID:      p.BancoID,
		Entrada:      core.Money{Cents: p.EntradaCents},
		Parcelas:     int(p.Parcelas),
		ValorParcela: core.Money{Cents: p.ValorParcelaCents},
		Status:       core.PropostaStatus(p.Status),
		Data:         parseDate(p.Data),
	}
}

func toRecibo(r ReciboRow) core.Recibo {
	return core.Recibo{
		ID:        r.ID,
		ClienteID: r.ClienteID,
		VeiculoID: r.VeiculoID,
		Valor:     core.Money{Cents: r.ValorCents},
		Forma:     core.FormaPagamento(r.FormaPagamento),
		Data:      parseDate(r.Data),
		Arquivado: r.Arquivado,
	}
}

func (r *SQLiteRepository) CreateVeiculo(ctx context.Context, v core.Veiculo) (core.Veiculo, error) {
	row, err := r.queries.CreateVeiculo(ctx, CreateVeiculoParams{
		Marca:      v.Marca,
		Modelo:     v.Modelo,
		Ano:        int64(v.Ano),
		Placa:      strings.ToUpper(strings.TrimSpace(v.Placa)),
		Renavam:    v.Renavam,
		Cor:        v.Cor,
		Km:         v.Km,
		PrecoCents: v.Preco.Cents,
	})
	if err != nil {
		return core.Veiculo{}, fmt.Errorf("create veiculo: %w", err)
	}

	slog.InfoContext(ctx, "Veiculo saved",
		"id", row.ID,
		"placa", row.Placa,
		"modelo", row.Marca+" "+row.Modelo,
		"preco_cents", row.PrecoCents)

	return toVeiculo(row), nil
}

func (r *SQLiteRepository) GetVeiculo(ctx context.Context, id int64) (core.Veiculo, error) {
	row, err := r.queries.GetVeiculo(ctx, id)
	if err != nil {
		return core.Veiculo{}, fmt.Errorf("get veiculo %d: %w", id, notFound(err))
	}
	return toVeiculo(row), nil
}

func (r *SQLiteRepository) ListVeiculos(ctx context.Context, somenteDisponiveis bool) ([]core.Veiculo, error) {
	rows, err := r.queries.ListVeiculos(ctx, somenteDisponiveis)
	if err != nil {
		return nil, fmt.Errorf("list veiculos: %w", err)
	}
	out := make([]core.Veiculo, len(rows))
	for i, row := range rows {
		out[i] = toVeiculo(row)
	}
	return out, nil
}

func (r *SQLiteRepository) MarkVeiculoVendido(ctx context.Context, id int64) error {
	if err := r.queries.MarkVeiculoVendido(ctx, id); err != nil {
		return fmt.Errorf("mark veiculo vendido: %w", err)
	}
	slog.InfoContext(ctx, "Veiculo marked sold", "id", id)
	return nil
}

func (r *SQLiteRepository) DeleteVeiculo(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteVeiculo(ctx, id)
	if err != nil {
		return fmt.Errorf("delete veiculo %d: %w", id, err)
	}
	if n == 0 {
		// Sold vehicles cannot be removed; their receipts reference them.
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Veiculo deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateCliente(ctx context.Context, c core.Cliente) (core.Cliente, error) {
	row, err := r.queries.CreateCliente(ctx, CreateClienteParams{
		Nome:     c.Nome,
		CPF:      core.LimpaCPF(c.CPF),
		Endereco: c.Endereco,
		Cidade:   c.Cidade,
		UF:       strings.ToUpper(c.UF),
		Telefone: c.Telefone,
	})
	if err != nil {
		return core.Cliente{}, fmt.Errorf("create cliente: %w", err)
	}

	slog.InfoContext(ctx, "Cliente saved", "id", row.ID, "nome", row.Nome)
	return toCliente(row), nil
}

func (r *SQLiteRepository) GetCliente(ctx context.Context, id int64) (core.Cliente, error) {
	row, err := r.queries.GetCliente(ctx, id)
	if err != nil {
		return core.Cliente{}, fmt.Errorf("get cliente %d: %w", id, notFound(err))
	}
	return toCliente(row), nil
}

func (r *SQLiteRepository) GetClienteByCPF(ctx context.Context, cpf string) (core.Cliente, error) {
	row, err := r.queries.GetClienteByCPF(ctx, core.LimpaCPF(cpf))
	if err != nil {
		return core.Cliente{}, fmt.Errorf("get cliente by cpf: %w", notFound(err))
	}
	return toCliente(row), nil
}

func (r *SQLiteRepository) ListClientes(ctx context.Context) ([]core.Cliente, error) {
	rows, err := r.queries.ListClientes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	out := make([]core.Cliente, len(rows))
	for i, row := range rows {
		out[i] = toCliente(row)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateBanco(ctx context.Context, b core.Banco) (core.Banco, error) {
	row, err := r.queries.CreateBanco(ctx, CreateBancoParams{
		Nome:        b.Nome,
		TaxaJurosAM: b.TaxaJurosAM,
		PrazoMaximo: int64(b.PrazoMaximo),
	})
	if err != nil {
		return core.Banco{}, fmt.Errorf("create banco: %w", err)
	}
	slog.InfoContext(ctx, "Banco saved", "id", row.ID, "nome", row.Nome)
	return toBanco(row), nil
}

func (r *SQLiteRepository) GetBanco(ctx context.Context, id int64) (core.Banco, error) {
	row, err := r.queries.GetBanco(ctx, id)
	if err != nil {
		return core.Banco{}, fmt.Errorf("get banco %d: %w", id, notFound(err))
	}
	return toBanco(row), nil
}

func (r *SQLiteRepository) ListBancos(ctx context.Context) ([]core.Banco, error) {
	rows, err := r.queries.ListBancos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bancos: %w", err)
	}
	out := make([]core.Banco, len(rows))
	for i, row := range rows {
		out[i] = toBanco(row)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateProposta(ctx context.Context, p core.Proposta) (core.Proposta, error) {
	row, err := r.queries.CreateProposta(ctx, CreatePropostaParams{
		ClienteID:         p.ClienteID,
		VeiculoID:         p.VeiculoID,
		BancoID:           p.BancoID,
		EntradaCents:      p.Entrada.Cents,
		Parcelas:          int64(p.Parcelas),
		ValorParcelaCents: p.ValorParcela.Cents,
		Status:            string(p.Status),
		Data:              p.Data.Format(dateLayout),
	})
	if err != nil {
		return core.Proposta{}, fmt.Errorf("create proposta: %w", err)
	}

	slog.InfoContext(ctx, "Proposta saved",
		"id", row.ID,
		"cliente_id", row.ClienteID,
		"veiculo_id", row.VeiculoID,
		"parcelas", row.Parcelas)

	return toProposta(row), nil
}

func (r *SQLiteRepository) GetProposta(ctx context.Context, id int64) (core.Proposta, error) {
	row, err := r.queries.GetProposta(ctx, id)
	if err != nil {
		return core.Proposta{}, fmt.Errorf("get proposta %d: %w", id, notFound(err))
	}
	return toProposta(row), nil
}

func (r *SQLiteRepository) ListPropostas(ctx context.Context, status core.PropostaStatus) ([]core.Proposta, error) {
	rows, err := r.queries.ListPropostas(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("list propostas: %w", err)
	}
	out := make([]core.Proposta, len(rows))
	for i, row := range rows {
		out[i] = toProposta(row)
	}
	return out, nil
}

func (r *SQLiteRepository) UpdatePropostaStatus(ctx context.Context, id int64, status core.PropostaStatus) error {
	n, err := r.queries.UpdatePropostaStatus(ctx, id, string(status))
	if err != nil {
		return fmt.Errorf("update proposta status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Proposta status updated", "id", id, "status", status)
	return nil
}

func (r *SQLiteRepository) CreateRecibo(ctx context.Context, rec core.Recibo) (core.Recibo, int64, error) {
	row, err := r.queries.CreateRecibo(ctx, CreateReciboParams{
		ClienteID:      rec.ClienteID,
		VeiculoID:      rec.VeiculoID,
		ValorCents:     rec.Valor.Cents,
		FormaPagamento: string(rec.Forma),
		Data:           rec.Data.Format(dateLayout),
	})
	if err != nil {
		return core.Recibo{}, 0, fmt.Errorf("create recibo: %w", err)
	}

	slog.InfoContext(ctx, "Recibo saved",
		"id", row.ID,
		"cliente_id", row.ClienteID,
		"veiculo_id", row.VeiculoID,
		"valor_cents", row.ValorCents)

	return toRecibo(row), row.Versao, nil
}

func (r *SQLiteRepository) GetRecibo(ctx context.Context, id int64) (core.Recibo, error) {
	row, err := r.queries.GetRecibo(ctx, id)
	if err != nil {
		return core.Recibo{}, fmt.Errorf("get recibo %d: %w", id, notFound(err))
	}
	return toRecibo(row), nil
}

func (r *SQLiteRepository) ListRecibos(ctx context.Context) ([]core.Recibo, error) {
	rows, err := r.queries.ListRecibos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recibos: %w", err)
	}
	out := make([]core.Recibo, len(rows))
	for i, row := range rows {
		out[i] = toRecibo(row)
	}
	return out, nil
}

func (r *SQLiteRepository) MarkReciboArquivado(ctx context.Context, id int64) error {
	if err := r.queries.MarkReciboArquivado(ctx, id); err != nil {
		return fmt.Errorf("mark recibo arquivado: %w", err)
	}
	slog.InfoContext(ctx, "Recibo marked archived", "id", id)
	return nil
}

// PendingArchiveRecibo carries the minimum needed to re-enqueue an archive job.
type PendingArchiveRecibo struct {
	ID        int64
	Versao    int64
	CreatedAt time.Time
}

func (r *SQLiteRepository) GetPendingArchiveRecibos(ctx context.Context, limit int) ([]PendingArchiveRecibo, error) {
	rows, err := r.queries.GetPendingArchiveRecibos(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending archive recibos: %w", err)
	}
	out := make([]PendingArchiveRecibo, len(rows))
	for i, row := range rows {
		out[i] = PendingArchiveRecibo{ID: row.ID, Versao: row.Versao, CreatedAt: row.CreatedAt}
	}
	return out, nil
}

func (r *SQLiteRepository) SaveDocumento(ctx context.Context, reciboID int64, tipo string, corpo string) error {
	_, err := r.queries.InsertDocumento(ctx, InsertDocumentoParams{
		ReciboID: reciboID,
		Tipo:     tipo,
		Corpo:    corpo,
	})
	if err != nil {
		return fmt.Errorf("save documento: %w", err)
	}
	slog.InfoContext(ctx, "Documento archived", "recibo_id", reciboID, "tipo", tipo)
	return nil
}

func (r *SQLiteRepository) GetDocumento(ctx context.Context, reciboID int64, tipo string) (string, time.Time, error) {
	row, err := r.queries.GetDocumento(ctx, reciboID, tipo)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get documento: %w", notFound(err))
	}
	return row.Corpo, row.CreatedAt, nil
}

// Overview returns the stock and current-month sales summary used by the
// dashboard endpoint.
func (r *SQLiteRepository) Overview(ctx context.Context) (core.Overview, error) {
	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	row, err := r.queries.GetOverview(ctx, inicioMes)
	if err != nil {
		return core.Overview{}, fmt.Errorf("get overview: %w", err)
	}
	return core.Overview{
		VeiculosDisponiveis: int(row.VeiculosDisponiveis),
		ValorEstoque:        core.Money{Cents: row.ValorEstoqueCents},
		VendasMes:           core.Money{Cents: row.VendasMesCents},
		RecibosMes:          int(row.RecibosMes),
	}, nil
}
