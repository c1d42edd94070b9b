package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultEmpresaRepository struct {
	db *gorm.DB
}

func NewEmpresaRepository(db *gorm.DB) *DefaultEmpresaRepository {
	return &DefaultEmpresaRepository{db: db}
}

func (d *DefaultEmpresaRepository) FindAll() ([]*entity.Empresa, error) {
	var empresas []*entity.Empresa
	err := d.db.Order("nome").Find(&empresas).Error
	if err != nil {
		return nil, err
	}
	return empresas, nil
}

func (d *DefaultEmpresaRepository) FindByID(id string) (*entity.Empresa, error) {
	var empresa entity.Empresa
	err := d.db.First(&empresa, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &empresa, nil
}

func (d *DefaultEmpresaRepository) Save(empresa *entity.Empresa) error {
	return d.db.Save(empresa).Error
}

func (d *DefaultEmpresaRepository) Delete(empresa *entity.Empresa) error {
	return d.db.Delete(empresa).Error
}
