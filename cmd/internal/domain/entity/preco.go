package entity

import "github.com/shopspring/decimal"

// ResolucaoPreco is the outcome of the pricing cascade: the unit price
// to apply and which step produced it. It is never persisted on its
// own; Lancamento copies the fields it needs.
type ResolucaoPreco struct {
	ValorUnitario decimal.Decimal
	Fonte         FontePreco
}

// PrecoTipoEmpresa is a price agreed between a company and a service
// type, with a validity window. An open row (VigenteAte nil) is the
// currently effective price; setting a new price closes the previous
// open row instead of mutating it, so the table doubles as history.
type PrecoTipoEmpresa struct {
	ID            string          `gorm:"primaryKey"`
	EmpresaID     string          `gorm:"not null;index:idx_preco_empresa_tipo"`
	TipoServicoID string          `gorm:"not null;index:idx_preco_empresa_tipo"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VigenteDesde  int64           `gorm:"not null"`
	VigenteAte    *int64
	CreatedAt     int64 `gorm:"not null"`
}

// Well-known keys of the global pricing configuration table.
const (
	ChaveValorPainelDefault = "valor_painel_default"
	ChaveValorKwpDefault    = "valor_kwp_default"
)

// ConfiguracaoPreco holds a globally scoped default value, versioned by
// VigenteDesde; the newest row per key wins.
type ConfiguracaoPreco struct {
	ID           string          `gorm:"primaryKey"`
	Chave        string          `gorm:"not null;index"`
	ValorDecimal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VigenteDesde int64           `gorm:"not null"`
	CreatedAt    int64           `gorm:"not null"`
}
