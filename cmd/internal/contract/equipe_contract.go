package contract

type EquipeResponse struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	EmpresaID   string `json:"empresa_id"`
	EmpresaNome string `json:"empresa_nome,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type EquipeRequest struct {
	Nome      string `json:"nome" validate:"required,min=2,max=120"`
	EmpresaID string `json:"empresa_id" validate:"required"`
}
