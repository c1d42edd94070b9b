package entity

import "github.com/shopspring/decimal"

// FiltrosMedicao are the report filter parameters, stored verbatim on a
// saved measurement so later exports re-run the exact same query.
type FiltrosMedicao struct {
	Equipes []string `json:"equipes"`
	Cliente string   `json:"cliente"`

	// TipoData selects which date column the range applies to:
	// data_contrato (default) or data_execucao.
	TipoData string `json:"tipo_data,omitempty"`
}

// MedicaoSalva is a named measurement snapshot. Totals are cached from
// save time; exports re-query live lançamentos with FiltrosAplicados,
// so they can drift from the cached totals if entries changed since.
// That is intended behavior, not a bug.
type MedicaoSalva struct {
	ID               string          `gorm:"primaryKey"`
	Nome             string          `gorm:"not null"`
	DataInicio       string          `gorm:"type:date"`
	DataFim          string          `gorm:"type:date"`
	TotalLancamentos int             `gorm:"not null;default:0"`
	TotalClientes    int             `gorm:"not null;default:0"`
	TotalValor       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	FiltrosAplicados FiltrosMedicao  `gorm:"serializer:json"`
	CreatedAt        int64           `gorm:"not null"`
}

// ResumoMedicao are the three aggregate figures shown on the report
// page and cached on a saved measurement.
type ResumoMedicao struct {
	TotalLancamentos int
	TotalClientes    int
	TotalValor       decimal.Decimal
}
