package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"revenda/internal/core"
	"revenda/internal/documents"
	"revenda/internal/log"
	"revenda/internal/storage"
)

type veiculoRequest struct {
	Marca   string `json:"marca"`
	Modelo  string `json:"modelo"`
	Ano     int    `json:"ano"`
	Placa   string `json:"placa"`
	Renavam string `json:"renavam"`
	Cor     string `json:"cor"`
	Km      int64  `json:"km"`
	Preco   string `json:"preco"` // decimal string, "43500.00" or "43500,00"
}

func (s *Server) handleCreateVeiculo(w http.ResponseWriter, r *http.Request) {
	var req veiculoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cents, err := core.ParseDecimalToCents(req.Preco)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "preço inválido")
		return
	}

	v := core.Veiculo{
		Marca:   strings.TrimSpace(req.Marca),
		Modelo:  strings.TrimSpace(req.Modelo),
		Ano:     req.Ano,
		Placa:   strings.TrimSpace(req.Placa),
		Renavam: strings.TrimSpace(req.Renavam),
		Cor:     strings.TrimSpace(req.Cor),
		Km:      req.Km,
		Preco:   core.Money{Cents: cents},
	}
	if err := v.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateVeiculo(r.Context(), v)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save veiculo",
			log.FieldError, err,
			log.FieldPlaca, v.Placa,
			log.FieldComponent, "veiculo_handler",
			log.FieldOperation, "create")
		writeDomainError(w, err)
		return
	}

	s.overviewCache.Delete(overviewCacheKey)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListVeiculos(w http.ResponseWriter, r *http.Request) {
	somenteDisponiveis := r.URL.Query().Get("disponiveis") == "true"
	veiculos, err := s.store.ListVeiculos(r.Context(), somenteDisponiveis)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list veiculos", log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, veiculos)
}

func (s *Server) handleGetVeiculo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	v, err := s.store.GetVeiculo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVeiculo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := s.store.DeleteVeiculo(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.overviewCache.Delete(overviewCacheKey)
	w.WriteHeader(http.StatusNoContent)
}

type clienteRequest struct {
	Nome     string `json:"nome"`
	CPF      string `json:"cpf"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	UF       string `json:"uf"`
	Telefone string `json:"telefone"`
}

func (s *Server) handleCreateCliente(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c := core.Cliente{
		Nome:     strings.TrimSpace(req.Nome),
		CPF:      req.CPF,
		Endereco: strings.TrimSpace(req.Endereco),
		Cidade:   strings.TrimSpace(req.Cidade),
		UF:       strings.TrimSpace(req.UF),
		Telefone: strings.TrimSpace(req.Telefone),
	}
	if err := c.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	saved, err := s.store.CreateCliente(r.Context(), c)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save cliente",
			log.FieldError, err,
			"nome", c.Nome,
			log.FieldComponent, "cliente_handler",
			log.FieldOperation, "create")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListClientes(w http.ResponseWriter, r *http.Request) {
	if cpf := r.URL.Query().Get("cpf"); cpf != "" {
		c, err := s.store.GetClienteByCPF(r.Context(), cpf)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []core.Cliente{c})
		return
	}
	clientes, err := s.store.ListClientes(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientes)
}

func (s *Server) handleGetCliente(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := s.store.GetCliente(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type bancoRequest struct {
	Nome        string  `json:"nome"`
	TaxaJurosAM float64 `json:"taxa_juros_am"`
	PrazoMaximo int     `json:"prazo_maximo"`
}

func (s *Server) handleCreateBanco(w http.ResponseWriter, r *http.Request) {
	var req bancoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b := core.Banco{
		Nome:        strings.TrimSpace(req.Nome),
		TaxaJurosAM: req.TaxaJurosAM,
		PrazoMaximo: req.PrazoMaximo,
	}
	if err := b.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	saved, err := s.store.CreateBanco(r.Context(), b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListBancos(w http.ResponseWriter, r *http.Request) {
	bancos, err := s.store.ListBancos(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bancos)
}

type propostaRequest struct {
	ClienteID    int64  `json:"cliente_id"`
	VeiculoID    int64  `json:"veiculo_id"`
	BancoID      int64  `json:"banco_id"`
	Entrada      string `json:"entrada"`
	Parcelas     int    `json:"parcelas"`
	ValorParcela string `json:"valor_parcela"`
}

func (s *Server) handleCreateProposta(w http.ResponseWriter, r *http.Request) {
	var req propostaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entradaCents := int64(0)
	if strings.TrimSpace(req.Entrada) != "" {
		cents, err := core.ParseDecimalToCents(req.Entrada)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "entrada inválida")
			return
		}
		entradaCents = cents
	}
	parcelaCents, err := core.ParseDecimalToCents(req.ValorParcela)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor de parcela inválido")
		return
	}

	p := core.Proposta{
		ClienteID:    req.ClienteID,
		VeiculoID:    req.VeiculoID,
		BancoID:      req.BancoID,
		Entrada:      core.Money{Cents: entradaCents},
		Parcelas:     req.Parcelas,
		ValorParcela: core.Money{Cents: parcelaCents},
		Status:       core.PropostaAberta,
		Data:         core.Today(),
	}
	if err := p.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	// Referenced rows must exist; the bank's installment ceiling applies.
	banco, err := s.store.GetBanco(r.Context(), p.BancoID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if p.Parcelas > banco.PrazoMaximo {
		writeError(w, http.StatusUnprocessableEntity, "parcelas acima do prazo máximo do banco")
		return
	}
	if _, err := s.store.GetCliente(r.Context(), p.ClienteID); err != nil {
		writeDomainError(w, err)
		return
	}
	veiculo, err := s.store.GetVeiculo(r.Context(), p.VeiculoID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if veiculo.Vendido {
		writeError(w, http.StatusUnprocessableEntity, "veículo já vendido")
		return
	}

	saved, err := s.store.CreateProposta(r.Context(), p)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save proposta",
			log.FieldError, err,
			log.FieldClienteID, p.ClienteID,
			log.FieldVeiculoID, p.VeiculoID,
			log.FieldComponent, "proposta_handler",
			log.FieldOperation, "create")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListPropostas(w http.ResponseWriter, r *http.Request) {
	status := core.PropostaStatus(r.URL.Query().Get("status"))
	propostas, err := s.store.ListPropostas(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, propostas)
}

func (s *Server) handleGetProposta(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	p, err := s.store.GetProposta(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdatePropostaStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := core.PropostaStatus(req.Status)
	switch status {
	case core.PropostaAberta, core.PropostaAprovada, core.PropostaRecusada, core.PropostaCancelada:
	default:
		writeDomainError(w, core.ErrInvalidStatus)
		return
	}

	if err := s.store.UpdatePropostaStatus(r.Context(), id, status); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

type reciboRequest struct {
	ClienteID int64  `json:"cliente_id"`
	VeiculoID int64  `json:"veiculo_id"`
	Valor     string `json:"valor"`
	Forma     string `json:"forma_pagamento"`
}

func (s *Server) handleCreateRecibo(w http.ResponseWriter, r *http.Request) {
	var req reciboRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cents, err := core.ParseDecimalToCents(req.Valor)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}

	rec := core.Recibo{
		ClienteID: req.ClienteID,
		VeiculoID: req.VeiculoID,
		Valor:     core.Money{Cents: cents},
		Forma:     core.FormaPagamento(req.Forma),
		Data:      core.Today(),
	}
	if err := rec.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if _, err := s.store.GetCliente(r.Context(), rec.ClienteID); err != nil {
		writeDomainError(w, err)
		return
	}
	veiculo, err := s.store.GetVeiculo(r.Context(), rec.VeiculoID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if veiculo.Vendido {
		writeError(w, http.StatusUnprocessableEntity, "veículo já vendido")
		return
	}

	saved, versao, err := s.store.CreateRecibo(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save recibo",
			log.FieldError, err,
			log.FieldClienteID, rec.ClienteID,
			log.FieldVeiculoID, rec.VeiculoID,
			log.FieldValorCents, rec.Valor.Cents,
			log.FieldComponent, "recibo_handler",
			log.FieldOperation, "create")
		writeDomainError(w, err)
		return
	}

	if err := s.store.MarkVeiculoVendido(r.Context(), rec.VeiculoID); err != nil {
		slog.ErrorContext(r.Context(), "Failed to mark veiculo sold",
			log.FieldError, err, log.FieldVeiculoID, rec.VeiculoID)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDocumentoEmitido(r.Context(), saved.ID, versao); err != nil {
			// The worker's periodic scan picks unarchived receipts up later.
			slog.ErrorContext(r.Context(), "Failed to publish archive job",
				log.FieldError, err, log.FieldReciboID, saved.ID)
		}
	}

	s.overviewCache.Delete(overviewCacheKey)

	slog.InfoContext(r.Context(), "Recibo created",
		log.FieldReciboID, saved.ID,
		log.FieldValorCents, saved.Valor.Cents,
		"valor_extenso", saved.Valor.Extenso(),
		log.FieldComponent, "recibo_handler",
		log.FieldOperation, "create")

	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListRecibos(w http.ResponseWriter, r *http.Request) {
	recibos, err := s.store.ListRecibos(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recibos)
}

func (s *Server) handleGetRecibo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	rec, err := s.store.GetRecibo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDocumentoRecibo serves a receipt-backed document. Archived copies
// win; otherwise the document is rendered live from current entities.
func (s *Server) handleDocumentoRecibo(w http.ResponseWriter, r *http.Request) {
	tipo, err := documents.ParseTipo(r.PathValue("tipo"))
	if err != nil {
		writeError(w, http.StatusNotFound, "tipo de documento desconhecido")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if corpo, _, err := s.store.GetDocumento(r.Context(), id, string(tipo)); err == nil {
		writeText(w, corpo)
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		writeDomainError(w, err)
		return
	}

	rec, err := s.store.GetRecibo(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cliente, err := s.store.GetCliente(r.Context(), rec.ClienteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	veiculo, err := s.store.GetVeiculo(r.Context(), rec.VeiculoID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var corpo string
	switch tipo {
	case documents.TipoRecibo:
		corpo, err = s.renderer.Recibo(cliente, veiculo, rec)
	case documents.TipoContrato:
		corpo, err = s.renderer.Contrato(cliente, veiculo, rec)
	case documents.TipoGarantia:
		corpo, err = s.renderer.Garantia(cliente, veiculo, rec)
	case documents.TipoTransferencia:
		corpo, err = s.renderer.Transferencia(cliente, veiculo, rec)
	default:
		writeError(w, http.StatusUnprocessableEntity, "documento não se aplica a recibo")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeText(w, corpo)
}

// handleDocumentoProposta serves proposal-backed documents (desistência,
// reserva), always rendered live.
func (s *Server) handleDocumentoProposta(w http.ResponseWriter, r *http.Request) {
	tipo, err := documents.ParseTipo(r.PathValue("tipo"))
	if err != nil {
		writeError(w, http.StatusNotFound, "tipo de documento desconhecido")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	p, err := s.store.GetProposta(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cliente, err := s.store.GetCliente(r.Context(), p.ClienteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	veiculo, err := s.store.GetVeiculo(r.Context(), p.VeiculoID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var corpo string
	switch tipo {
	case documents.TipoDesistencia:
		corpo, err = s.renderer.Desistencia(cliente, veiculo, p)
	case documents.TipoReserva:
		banco, berr := s.store.GetBanco(r.Context(), p.BancoID)
		if berr != nil {
			writeDomainError(w, berr)
			return
		}
		corpo, err = s.renderer.Reserva(cliente, veiculo, p, banco)
	default:
		writeError(w, http.StatusUnprocessableEntity, "documento não se aplica a proposta")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeText(w, corpo)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.overviewCache.Get(overviewCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	overview, err := s.store.Overview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load overview", log.FieldError, err)
		writeDomainError(w, err)
		return
	}

	s.overviewCache.Set(overviewCacheKey, overview)
	writeJSON(w, http.StatusOK, overview)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
