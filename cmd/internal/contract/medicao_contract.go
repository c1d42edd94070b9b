package contract

type FiltrosRelatorio struct {
	DataInicio string   `json:"data_inicio" validate:"omitempty,datadate"`
	DataFim    string   `json:"data_fim" validate:"omitempty,datadate"`
	TipoData   string   `json:"tipo_data" validate:"omitempty,oneof=data_contrato data_execucao"`
	Equipes    []string `json:"equipes" validate:"omitempty,nodupes"`
	Cliente    string   `json:"cliente" validate:"omitempty,max=160"`
}

type ResumoRelatorio struct {
	TotalLancamentos int    `json:"total_lancamentos"`
	TotalClientes    int    `json:"total_clientes"`
	TotalValor       string `json:"total_valor"`
}

type RelatorioResponse struct {
	Lancamentos []*LancamentoResponse `json:"lancamentos"`
	Resumo      ResumoRelatorio       `json:"resumo"`
}

type SalvarMedicaoRequest struct {
	Nome    string           `json:"nome" validate:"required,min=2,max=255"`
	Filtros FiltrosRelatorio `json:"filtros"`
}

type MedicaoResponse struct {
	ID               string           `json:"id"`
	Nome             string           `json:"nome"`
	DataInicio       string           `json:"data_inicio,omitempty"`
	DataFim          string           `json:"data_fim,omitempty"`
	TotalLancamentos int              `json:"total_lancamentos"`
	TotalClientes    int              `json:"total_clientes"`
	TotalValor       string           `json:"total_valor"`
	FiltrosAplicados FiltrosRelatorio `json:"filtros_aplicados"`
	CreatedAt        string           `json:"created_at"`
}
