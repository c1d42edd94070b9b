package contract

type LancamentoResponse struct {
	ID            string `json:"id"`
	EquipeID      string `json:"equipe_id"`
	EquipeNome    string `json:"equipe_nome,omitempty"`
	EmpresaNome   string `json:"empresa_nome,omitempty"`
	ClienteID     string `json:"cliente_id,omitempty"`
	NomeCliente   string `json:"nome_cliente"`
	DataContrato  string `json:"data_contrato,omitempty"`
	DataExecucao  string `json:"data_execucao"`
	TipoServico   string `json:"tipo_servico"`
	TipoServicoID string `json:"tipo_servico_id,omitempty"`

	NumeroPaineis  *int `json:"numero_paineis,omitempty"`
	PotenciaPainel *int `json:"potencia_painel,omitempty"`

	ValorServico  string `json:"valor_servico"`
	ValorUnitario string `json:"valor_unitario,omitempty"`
	FontePreco    string `json:"fonte_preco,omitempty"`

	TipoAditivo       string `json:"tipo_aditivo,omitempty"`
	MotivoDesconto    string `json:"motivo_desconto,omitempty"`
	TipoPadrao        string `json:"tipo_padrao,omitempty"`
	MotivoVisita      string `json:"motivo_visita,omitempty"`
	DescricaoMaterial string `json:"descricao_material,omitempty"`
	MotivoObra        string `json:"motivo_obra,omitempty"`
	Descricao         string `json:"descricao,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// LancamentoRequest carries every field of the entry form. Which ones
// are required depends on TipoServico; the service validates the
// type-specific set and answers per-field errors.
type LancamentoRequest struct {
	EquipeID     string `json:"equipe_id" validate:"required"`
	ClienteID    string `json:"cliente_id" validate:"required"`
	DataExecucao string `json:"data_execucao" validate:"required,datadate"`
	TipoServico  string `json:"tipo_servico" validate:"required,oneof=instalacao aditivo desconto padrao_entrada visita_tecnica obra_civil"`

	// Instalação
	NumeroPaineis  *int     `json:"numero_paineis" validate:"omitempty,gt=0"`
	PotenciaPainel *int     `json:"potencia_painel" validate:"omitempty,gt=0"`
	ValorUnitario  *float64 `json:"valor_unitario"` // manual price override
	TipoServicoID  string   `json:"tipo_servico_id"`

	// Aditivo
	ValorAditivo *float64 `json:"valor_aditivo" validate:"omitempty,gt=0"`
	TipoAditivo  string   `json:"tipo_aditivo"`

	// Desconto
	ValorDesconto  *float64 `json:"valor_desconto"`
	MotivoDesconto string   `json:"motivo_desconto"`

	// Padrão de entrada
	ValorPadrao *float64 `json:"valor_padrao" validate:"omitempty,gt=0"`
	TipoPadrao  string   `json:"tipo_padrao"`

	// Visita técnica
	ValorVisita  *float64 `json:"valor_visita" validate:"omitempty,gt=0"`
	MotivoVisita string   `json:"motivo_visita"`

	// Obra civil
	ValorObra         *float64 `json:"valor_obra" validate:"omitempty,gt=0"`
	DescricaoMaterial string   `json:"descricao_material"`
	MotivoObra        string   `json:"motivo_obra"`
}

// CalculoInstalacaoRequest previews the installation value without
// persisting anything (the form's "calcular" button).
type CalculoInstalacaoRequest struct {
	EquipeID       string   `json:"equipe_id" validate:"required"`
	TipoServicoID  string   `json:"tipo_servico_id"`
	NumeroPaineis  int      `json:"numero_paineis" validate:"required,gt=0"`
	PotenciaPainel *int     `json:"potencia_painel" validate:"omitempty,gt=0"`
	ValorUnitario  *float64 `json:"valor_unitario"`
}

type CalculoInstalacaoResponse struct {
	ValorServico  string `json:"valor_servico"`
	ValorUnitario string `json:"valor_unitario"`
	FontePreco    string `json:"fonte_preco"`
	PotenciaKwp   string `json:"potencia_kwp,omitempty"`
}
