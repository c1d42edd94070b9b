package entity

// Audit actions recorded on mutating operations.
const (
	AcaoCriar   = "criar"
	AcaoEditar  = "editar"
	AcaoExcluir = "excluir"
)

// Historico is an append-only audit row. Old rows are pruned by the
// retention cleaner job, never edited.
type Historico struct {
	ID         string `gorm:"primaryKey"`
	Entidade   string `gorm:"not null;index"`
	EntidadeID string `gorm:"not null;index"`
	Acao       string `gorm:"not null"`
	Detalhe    string
	AutorID    string
	AutorNome  string
	CreatedAt  int64 `gorm:"not null;index"`
}
