package contract

type TipoServicoResponse struct {
	ID             string `json:"id"`
	Codigo         string `json:"codigo"`
	Nome           string `json:"nome"`
	Descricao      string `json:"descricao,omitempty"`
	ModeloCobranca string `json:"modelo_cobranca"`
	ValorUnitario  string `json:"valor_unitario,omitempty"`
	Ativo          bool   `json:"ativo"`
}

type UpdateTipoServicoRequest struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=2,max=120"`
	Descricao     *string  `json:"descricao" validate:"omitempty,max=500"`
	ValorUnitario *float64 `json:"valor_unitario" validate:"omitempty,gt=0"`
	Ativo         *bool    `json:"ativo"`
}
