package contract

type EmpresaResponse struct {
	ID              string            `json:"id"`
	Nome            string            `json:"nome"`
	CNPJ            string            `json:"cnpj,omitempty"`
	Contato         string            `json:"contato,omitempty"`
	Telefone        string            `json:"telefone,omitempty"`
	Email           string            `json:"email,omitempty"`
	TipoRemuneracao string            `json:"tipo_remuneracao"`
	ValorPainel     *string           `json:"valor_painel,omitempty"`
	ValorKwp        *string           `json:"valor_kwp,omitempty"`
	Equipes         []*EquipeResponse `json:"equipes,omitempty"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type EmpresaRequest struct {
	Nome            string   `json:"nome" validate:"required,min=2,max=120"`
	CNPJ            string   `json:"cnpj" validate:"omitempty,max=18"`
	Contato         string   `json:"contato" validate:"omitempty,max=120"`
	Telefone        string   `json:"telefone" validate:"omitempty,max=20"`
	Email           string   `json:"email" validate:"omitempty,email"`
	TipoRemuneracao string   `json:"tipo_remuneracao" validate:"required,oneof=painel por_painel kwp por_kwp"`
	ValorPainel     *float64 `json:"valor_painel" validate:"omitempty,gt=0"`
	ValorKwp        *float64 `json:"valor_kwp" validate:"omitempty,gt=0"`
}

type PrecoEmpresaRequest struct {
	TipoServicoID string  `json:"tipo_servico_id" validate:"required"`
	ValorUnitario float64 `json:"valor_unitario" validate:"required"`
}

type PrecoEmpresaResponse struct {
	ID            string  `json:"id"`
	EmpresaID     string  `json:"empresa_id"`
	TipoServicoID string  `json:"tipo_servico_id"`
	ValorUnitario string  `json:"valor_unitario"`
	VigenteDesde  string  `json:"vigente_desde"`
	VigenteAte    *string `json:"vigente_ate,omitempty"`
}
