package entity

import "github.com/shopspring/decimal"

// FontePreco records which cascade step produced the unit price of an
// installation entry. Kept for auditing only; it never feeds back into
// pricing decisions.
type FontePreco string

const (
	FonteManual  FontePreco = "manual"
	FonteEquipe  FontePreco = "equipe"
	FonteServico FontePreco = "servico"
	FonteGlobal  FontePreco = "global"
)

type Lancamento struct {
	ID        string `gorm:"primaryKey"`
	EquipeID  string `gorm:"not null;index"` // References: equipes(id)
	ClienteID string `gorm:"index"`

	// NomeCliente is denormalized from the cliente row at creation time
	// so reports survive later client renames or deletions.
	NomeCliente  string `gorm:"not null;index"`
	DataContrato string `gorm:"type:date"`          // YYYY-MM-DD, may be empty
	DataExecucao string `gorm:"type:date;not null"` // YYYY-MM-DD

	TipoServico   string `gorm:"not null;index"`
	TipoServicoID string `gorm:"index"` // catalog row, when one applies

	// Installation-specific inputs.
	NumeroPaineis  *int
	PotenciaPainel *int // watts per panel, kWp model only

	// ValorServico is signed: descontos are stored negative so report
	// sums subtract them without special-casing.
	ValorServico  decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	ValorUnitario *decimal.Decimal `gorm:"type:decimal(10,2)"` // manual override, when given
	FontePreco    FontePreco

	// Auxiliary-service detail fields; which one is set depends on
	// TipoServico.
	TipoAditivo       string
	MotivoDesconto    string
	TipoPadrao        string
	MotivoVisita      string
	DescricaoMaterial string
	MotivoObra        string
	Descricao         string

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Equipe *Equipe `gorm:"foreignKey:EquipeID;references:ID"`
}

// Subitem returns whichever type-specific detail field is set, used as
// the "Subitem do Serviço" column of exports.
func (l *Lancamento) Subitem() string {
	for _, s := range []string{l.TipoAditivo, l.MotivoDesconto, l.TipoPadrao, l.MotivoVisita, l.MotivoObra} {
		if s != "" {
			return s
		}
	}
	return ""
}

// DescricaoExport mirrors the description column of the legacy CSV
// layout: discount/visit/civil-work reasons only.
func (l *Lancamento) DescricaoExport() string {
	for _, s := range []string{l.MotivoDesconto, l.MotivoVisita, l.MotivoObra} {
		if s != "" {
			return s
		}
	}
	return ""
}
