package core

// Overview summarizes available stock and current-month sales for the
// dashboard endpoint.
type Overview struct {
	VeiculosDisponiveis int   `json:"veiculos_disponiveis"`
	ValorEstoque        Money `json:"valor_estoque"`
	VendasMes           Money `json:"vendas_mes"`
	RecibosMes          int   `json:"recibos_mes"`
}
