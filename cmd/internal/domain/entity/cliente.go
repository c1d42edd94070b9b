package entity

type Cliente struct {
	ID           string `gorm:"primaryKey"`
	Nome         string `gorm:"not null;index"`
	Endereco     string
	DataContrato string `gorm:"type:date"` // YYYY-MM-DD, may be empty
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}
