package contract

type UsuarioResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Ativo     bool   `json:"ativo"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UsuarioRequest struct {
	Nome  string `json:"nome" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=8,max=72"`
	Role  string `json:"role" validate:"required,oneof=administrador fiscal operador usuario"`
}

type UpdateUsuarioRequest struct {
	Nome  *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Role  *string `json:"role" validate:"omitempty,oneof=administrador fiscal operador usuario"`
	Ativo *bool   `json:"ativo"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	Token   string           `json:"token"`
	Usuario *UsuarioResponse `json:"usuario"`
}
