package entity

// Usuario is the general basic structure of all users across the platform
type Usuario struct {
	ID        string `gorm:"primaryKey"`
	Nome      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	SenhaHash string `gorm:"not null"`
	Role      string `gorm:"not null;default:usuario"`
	Ativo     bool   `gorm:"not null;default:true"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
