package contract

type ClienteResponse struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Endereco     string `json:"endereco,omitempty"`
	DataContrato string `json:"data_contrato,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type ClienteRequest struct {
	Nome         string `json:"nome" validate:"required,min=2,max=160"`
	Endereco     string `json:"endereco" validate:"omitempty,max=240"`
	DataContrato string `json:"data_contrato" validate:"omitempty,datadate"`
}

// VerificarClienteRequest backs the search-or-create flow of the entry
// form: matching is by exact name, creation fills the rest.
type VerificarClienteRequest struct {
	Nome         string `json:"nome" validate:"required,min=2,max=160"`
	Endereco     string `json:"endereco" validate:"omitempty,max=240"`
	DataContrato string `json:"data_contrato" validate:"omitempty,datadate"`
}

type VerificarClienteResponse struct {
	Cliente *ClienteResponse `json:"cliente"`
	Criado  bool             `json:"criado"`
}
