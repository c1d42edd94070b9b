package entity

import "github.com/shopspring/decimal"

// TipoRemuneracao defines how an installer company charges for
// installations. Legacy rows use the "por_" prefixed spellings, newer
// rows the short ones; both must keep working.
type TipoRemuneracao string

const (
	RemuneracaoPainel    TipoRemuneracao = "painel"
	RemuneracaoPorPainel TipoRemuneracao = "por_painel"
	RemuneracaoKwp       TipoRemuneracao = "kwp"
	RemuneracaoPorKwp    TipoRemuneracao = "por_kwp"
)

// PorPainel reports whether the company charges per installed panel,
// accepting both spellings.
func (t TipoRemuneracao) PorPainel() bool {
	return t == RemuneracaoPainel || t == RemuneracaoPorPainel
}

// PorKwp reports whether the company charges per kWp of installed power.
func (t TipoRemuneracao) PorKwp() bool {
	return t == RemuneracaoKwp || t == RemuneracaoPorKwp
}

type Empresa struct {
	ID              string          `gorm:"primaryKey"`
	Nome            string          `gorm:"not null"`
	CNPJ            string          `gorm:"column:cnpj"`
	Contato         string
	Telefone        string
	Email           string
	TipoRemuneracao TipoRemuneracao `gorm:"not null;default:por_painel"`

	// ValorPainel is the company blanket per-panel rate. ValorKwp is
	// the per-kWp rate, required in practice when TipoRemuneracao is a
	// kWp variant. Both are optional; the pricing cascade falls through
	// when they are absent.
	ValorPainel *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ValorKwp    *decimal.Decimal `gorm:"type:decimal(10,2)"`

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Equipes []*Equipe `gorm:"foreignKey:EmpresaID;references:ID;constraint:OnDelete:CASCADE"`
}
