package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultRoleConfigRepository struct {
	db *gorm.DB
}

func NewRoleConfigRepository(db *gorm.DB) *DefaultRoleConfigRepository {
	return &DefaultRoleConfigRepository{db: db}
}

func (d *DefaultRoleConfigRepository) FindByRole(role string) (*entity.RoleConfig, error) {
	var config entity.RoleConfig
	err := d.db.First(&config, "role = ?", role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (d *DefaultRoleConfigRepository) Save(config *entity.RoleConfig) error {
	return d.db.Save(config).Error
}
