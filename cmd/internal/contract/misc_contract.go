package contract

type RolePermissionsResponse struct {
	Role       string   `json:"role"`
	Permissoes []string `json:"permissoes"`
	Padrao     bool     `json:"padrao"` // true when no override row exists
}

type UpdateRolePermissionsRequest struct {
	Permissoes []string `json:"permissoes" validate:"required,nodupes,dive,required,min=2,max=60"`
}

type HistoricoResponse struct {
	ID         string `json:"id"`
	Entidade   string `json:"entidade"`
	EntidadeID string `json:"entidade_id"`
	Acao       string `json:"acao"`
	Detalhe    string `json:"detalhe,omitempty"`
	AutorID    string `json:"autor_id,omitempty"`
	AutorNome  string `json:"autor_nome,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// EstruturaResponse reports which expected tables exist, backing the
// structure-check diagnostic endpoint.
type EstruturaResponse struct {
	Tabelas map[string]bool `json:"tabelas"`
	Integra bool            `json:"integra"`
}
