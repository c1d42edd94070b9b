package contract

// ConfiguracaoPrecoRequest sets a global default unit price, keyed by
// one of the well-known configuration keys.
type ConfiguracaoPrecoRequest struct {
	Chave string  `json:"chave" validate:"required,oneof=valor_painel_default valor_kwp_default"`
	Valor float64 `json:"valor" validate:"gte=0"`
}

type ConfiguracaoPrecoResponse struct {
	Chave        string `json:"chave"`
	Valor        string `json:"valor"`
	VigenteDesde string `json:"vigente_desde,omitempty"`

	// Padrao marks a built-in value: no configuration row exists yet.
	Padrao bool `json:"padrao"`
}
