package entity

type Equipe struct {
	ID        string `gorm:"primaryKey"`
	Nome      string `gorm:"not null"`
	EmpresaID string `gorm:"not null;index"` // References: empresas(id)
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Empresa *Empresa `gorm:"foreignKey:EmpresaID;references:ID"`
}
