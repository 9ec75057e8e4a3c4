package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries bundles the raw SQL for every table. Row structs mirror the
// column layout; conversion to domain types happens in the repository.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const dateLayout = "2006-01-02"

type (
	VeiculoRow struct {
		ID         int64
		Marca      string
		Modelo     string
		Ano        int64
		Placa      string
		Renavam    string
		Cor        string
		Km         int64
		PrecoCents int64
		Vendido    bool
	}

	ClienteRow struct {
		ID       int64
		Nome     string
		CPF      string
		Endereco string
		Cidade   string
		UF       string
		Telefone string
	}

	BancoRow struct {
		ID          int64
		Nome        string
		TaxaJurosAM float64
		PrazoMaximo int64
	}

	PropostaRow struct {
		ID                int64
		ClienteID         int64
		VeiculoID         int64
		BancoID           int64
		EntradaCents      int64
		Parcelas          int64
		ValorParcelaCents int64
		Status            string
		Data              string
	}

	ReciboRow struct {
		ID             int64
		ClienteID      int64
		VeiculoID      int64
		ValorCents     int64
		FormaPagamento string
		Data           string
		Arquivado      bool
		Versao         int64
		CreatedAt      time.Time
	}

	DocumentoRow struct {
		ID        int64
		ReciboID  int64
		Tipo      string
		Corpo     string
		CreatedAt time.Time
	}
)

type CreateVeiculoParams struct {
	Marca      string
	Modelo     string
	Ano        int64
	Placa      string
	Renavam    string
	Cor        string
	Km         int64
	PrecoCents int64
}

func (q *Queries) CreateVeiculo(ctx context.Context, p CreateVeiculoParams) (VeiculoRow, error) {
	const query = `INSERT INTO veiculos (marca, modelo, ano, placa, renavam, cor, km, preco_cents)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, marca, modelo, ano, placa, renavam, cor, km, preco_cents, vendido`
	row := q.db.QueryRowContext(ctx, query,
		p.Marca, p.Modelo, p.Ano, p.Placa, p.Renavam, p.Cor, p.Km, p.PrecoCents)
	var v VeiculoRow
	err := row.Scan(&v.ID, &v.Marca, &v.Modelo, &v.Ano, &v.Placa, &v.Renavam,
		&v.Cor, &v.Km, &v.PrecoCents, &v.Vendido)
	return v, err
}

func (q *Queries) GetVeiculo(ctx context.Context, id int64) (VeiculoRow, error) {
	const query = `SELECT id, marca, modelo, ano, placa, renavam, cor, km, preco_cents, vendido
FROM veiculos WHERE id = ?`
	var v VeiculoRow
	err := q.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Marca, &v.Modelo,
		&v.Ano, &v.Placa, &v.Renavam, &v.Cor, &v.Km, &v.PrecoCents, &v.Vendido)
	return v, err
}

func (q *Queries) ListVeiculos(ctx context.Context, somenteDisponiveis bool) ([]VeiculoRow, error) {
	query := `SELECT id, marca, modelo, ano, placa, renavam, cor, km, preco_cents, vendido
FROM veiculos`
	if somenteDisponiveis {
		query += ` WHERE vendido = 0`
	}
	query += ` ORDER BY marca, modelo, ano`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VeiculoRow
	for rows.Next() {
		var v VeiculoRow
		if err := rows.Scan(&v.ID, &v.Marca, &v.Modelo, &v.Ano, &v.Placa,
			&v.Renavam, &v.Cor, &v.Km, &v.PrecoCents, &v.Vendido); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (q *Queries) MarkVeiculoVendido(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE veiculos SET vendido = 1 WHERE id = ?`, id)
	return err
}

func (q *Queries) DeleteVeiculo(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM veiculos WHERE id = ? AND vendido = 0`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type CreateClienteParams struct {
	Nome     string
	CPF      string
	Endereco string
	Cidade   string
	UF       string
	Telefone string
}

func (q *Queries) CreateCliente(ctx context.Context, p CreateClienteParams) (ClienteRow, error) {
	const query = `INSERT INTO clientes (nome, cpf, endereco, cidade, uf, telefone)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, nome, cpf, endereco, cidade, uf, telefone`
	row := q.db.QueryRowContext(ctx, query,
		p.Nome, p.CPF, p.Endereco, p.Cidade, p.UF, p.Telefone)
	var c ClienteRow
	err := row.Scan(&c.ID, &c.Nome, &c.CPF, &c.Endereco, &c.Cidade, &c.UF, &c.Telefone)
	return c, err
}

func (q *Queries) GetCliente(ctx context.Context, id int64) (ClienteRow, error) {
	const query = `SELECT id, nome, cpf, endereco, cidade, uf, telefone
FROM clientes WHERE id = ?`
	var c ClienteRow
	err := q.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Nome, &c.CPF,
		&c.Endereco, &c.Cidade, &c.UF, &c.Telefone)
	return c, err
}

func (q *Queries) GetClienteByCPF(ctx context.Context, cpf string) (ClienteRow, error) {
	const query = `SELECT id, nome, cpf, endereco, cidade, uf, telefone
FROM clientes WHERE cpf = ?`
	var c ClienteRow
	err := q.db.QueryRowContext(ctx, query, cpf).Scan(&c.ID, &c.Nome, &c.CPF,
		&c.Endereco, &c.Cidade, &c.UF, &c.Telefone)
	return c, err
}

func (q *Queries) ListClientes(ctx context.Context) ([]ClienteRow, error) {
	const query = `SELECT id, nome, cpf, endereco, cidade, uf, telefone
FROM clientes ORDER BY nome`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClienteRow
	for rows.Next() {
		var c ClienteRow
		if err := rows.Scan(&c.ID, &c.Nome, &c.CPF, &c.Endereco, &c.Cidade,
			&c.UF, &c.Telefone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type CreateBancoParams struct {
	Nome        string
	TaxaJurosAM float64
	PrazoMaximo int64
}

func (q *Queries) CreateBanco(ctx context.Context, p CreateBancoParams) (BancoRow, error) {
	const query = `INSERT INTO bancos (nome, taxa_juros_am, prazo_maximo)
VALUES (?, ?, ?)
RETURNING id, nome, taxa_juros_am, prazo_maximo`
	var b BancoRow
	err := q.db.QueryRowContext(ctx, query, p.Nome, p.TaxaJurosAM, p.PrazoMaximo).
		Scan(&b.ID, &b.Nome, &b.TaxaJurosAM, &b.PrazoMaximo)
	return b, err
}

func (q *Queries) GetBanco(ctx context.Context, id int64) (BancoRow, error) {
	const query = `SELECT id, nome, taxa_juros_am, prazo_maximo FROM bancos WHERE id = ?`
	var b BancoRow
	err := q.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Nome, &b.TaxaJurosAM, &b.PrazoMaximo)
	return b, err
}

func (q *Queries) ListBancos(ctx context.Context) ([]BancoRow, error) {
	const query = `SELECT id, nome, taxa_juros_am, prazo_maximo FROM bancos ORDER BY nome`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BancoRow
	for rows.Next() {
		var b BancoRow
		if err := rows.Scan(&b.ID, &b.Nome, &b.TaxaJurosAM, &b.PrazoMaximo); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type CreatePropostaParams struct {
	ClienteID         int64
	VeiculoID         int64
	BancoID           int64
	EntradaCents      int64
	Parcelas          int64
	ValorParcelaCents int64
	Status            string
	Data              string
}

func (q *Queries) CreateProposta(ctx context.Context, p CreatePropostaParams) (PropostaRow, error) {
	const query = `INSERT INTO propostas
(cliente_id, veiculo_id, banco_id, entrada_cents, parcelas, valor_parcela_cents, status, data)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, cliente_id, veiculo_id, banco_id, entrada_cents, parcelas, valor_parcela_cents, status, data`
	row := q.db.QueryRowContext(ctx, query, p.ClienteID, p.VeiculoID, p.BancoID,
		p.EntradaCents, p.Parcelas, p.ValorParcelaCents, p.Status, p.Data)
	var pr PropostaRow
	err := row.Scan(&pr.ID, &pr.ClienteID, &pr.VeiculoID, &pr.BancoID,
		&pr.EntradaCents, &pr.Parcelas, &pr.ValorParcelaCents, &pr.Status, &pr.Data)
	return pr, err
}

func (q *Queries) GetProposta(ctx context.Context, id int64) (PropostaRow, error) {
	const query = `SELECT id, cliente_id, veiculo_id, banco_id, entrada_cents, parcelas, valor_parcela_cents, status, data
FROM propostas WHERE id = ?`
	var pr PropostaRow
	err := q.db.QueryRowContext(ctx, query, id).Scan(&pr.ID, &pr.ClienteID,
		&pr.VeiculoID, &pr.BancoID, &pr.EntradaCents, &pr.Parcelas,
		&pr.ValorParcelaCents, &pr.Status, &pr.Data)
	return pr, err
}

func (q *Queries) ListPropostas(ctx context.Context, status string) ([]PropostaRow, error) {
	query := `SELECT id, cliente_id, veiculo_id, banco_id, entrada_cents, parcelas, valor_parcela_cents, status, data
FROM propostas`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PropostaRow
	for rows.Next() {
		var pr PropostaRow
		if err := rows.Scan(&pr.ID, &pr.ClienteID, &pr.VeiculoID, &pr.BancoID,
			&pr.EntradaCents, &pr.Parcelas, &pr.ValorParcelaCents, &pr.Status,
			&pr.Data); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (q *Queries) UpdatePropostaStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE propostas SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type CreateReciboParams struct {
	ClienteID      int64
	VeiculoID      int64
	ValorCents     int64
	FormaPagamento string
	Data           string
}

func (q *Queries) CreateRecibo(ctx context.Context, p CreateReciboParams) (ReciboRow, error) {
	const query = `INSERT INTO recibos (cliente_id, veiculo_id, valor_cents, forma_pagamento, data)
VALUES (?, ?, ?, ?, ?)
RETURNING id, cliente_id, veiculo_id, valor_cents, forma_pagamento, data, arquivado, versao, created_at`
	row := q.db.QueryRowContext(ctx, query, p.ClienteID, p.VeiculoID,
		p.ValorCents, p.FormaPagamento, p.Data)
	var r ReciboRow
	err := row.Scan(&r.ID, &r.ClienteID, &r.VeiculoID, &r.ValorCents,
		&r.FormaPagamento, &r.Data, &r.Arquivado, &r.Versao, &r.CreatedAt)
	return r, err
}

func (q *Queries) GetRecibo(ctx context.Context, id int64) (ReciboRow, error) {
	const query = `SELECT id, cliente_id, veiculo_id, valor_cents, forma_pagamento, data, arquivado, versao, created_at
FROM recibos WHERE id = ?`
	var r ReciboRow
	err := q.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.ClienteID,
		&r.VeiculoID, &r.ValorCents, &r.FormaPagamento, &r.Data, &r.Arquivado,
		&r.Versao, &r.CreatedAt)
	return r, err
}

func (q *Queries) ListRecibos(ctx context.Context) ([]ReciboRow, error) {
	const query = `SELECT id, cliente_id, veiculo_id, valor_cents, forma_pagamento, data, arquivado, versao, created_at
FROM recibos ORDER BY id DESC`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReciboRow
	for rows.Next() {
		var r ReciboRow
		if err := rows.Scan(&r.ID, &r.ClienteID, &r.VeiculoID, &r.ValorCents,
			&r.FormaPagamento, &r.Data, &r.Arquivado, &r.Versao, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) MarkReciboArquivado(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE recibos SET arquivado = 1, versao = versao + 1 WHERE id = ?`, id)
	return err
}

func (q *Queries) GetPendingArchiveRecibos(ctx context.Context, limit int64) ([]ReciboRow, error) {
	const query = `SELECT id, cliente_id, veiculo_id, valor_cents, forma_pagamento, data, arquivado, versao, created_at
FROM recibos WHERE arquivado = 0 ORDER BY id LIMIT ?`
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReciboRow
	for rows.Next() {
		var r ReciboRow
		if err := rows.Scan(&r.ID, &r.ClienteID, &r.VeiculoID, &r.ValorCents,
			&r.FormaPagamento, &r.Data, &r.Arquivado, &r.Versao, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type InsertDocumentoParams struct {
	ReciboID int64
	Tipo     string
	Corpo    string
}

func (q *Queries) InsertDocumento(ctx context.Context, p InsertDocumentoParams) (DocumentoRow, error) {
	const query = `INSERT INTO documentos_arquivados (recibo_id, tipo, corpo)
VALUES (?, ?, ?)
ON CONFLICT (recibo_id, tipo) DO UPDATE SET corpo = excluded.corpo
RETURNING id, recibo_id, tipo, corpo, created_at`
	var d DocumentoRow
	err := q.db.QueryRowContext(ctx, query, p.ReciboID, p.Tipo, p.Corpo).
		Scan(&d.ID, &d.ReciboID, &d.Tipo, &d.Corpo, &d.CreatedAt)
	return d, err
}

func (q *Queries) GetDocumento(ctx context.Context, reciboID int64, tipo string) (DocumentoRow, error) {
	const query = `SELECT id, recibo_id, tipo, corpo, created_at
FROM documentos_arquivados WHERE recibo_id = ? AND tipo = ?`
	var d DocumentoRow
	err := q.db.QueryRowContext(ctx, query, reciboID, tipo).
		Scan(&d.ID, &d.ReciboID, &d.Tipo, &d.Corpo, &d.CreatedAt)
	return d, err
}

type OverviewRow struct {
	VeiculosDisponiveis int64
	ValorEstoqueCents   int64
	VendasMesCents      int64
	RecibosMes          int64
}

// GetOverview aggregates stock and current-month sales in one round trip.
func (q *Queries) GetOverview(ctx context.Context, inicioMes string) (OverviewRow, error) {
	const query = `SELECT
  (SELECT COUNT(*) FROM veiculos WHERE vendido = 0),
  (SELECT COALESCE(SUM(preco_cents), 0) FROM veiculos WHERE vendido = 0),
  (SELECT COALESCE(SUM(valor_cents), 0) FROM recibos WHERE data >= ?),
  (SELECT COUNT(*) FROM recibos WHERE data >= ?)`
	var o OverviewRow
	err := q.db.QueryRowContext(ctx, query, inicioMes, inicioMes).
		Scan(&o.VeiculosDisponiveis, &o.ValorEstoqueCents, &o.VendasMesCents, &o.RecibosMes)
	return o, err
}
