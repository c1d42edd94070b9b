package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultTipoServicoRepository struct {
	db *gorm.DB
}

func NewTipoServicoRepository(db *gorm.DB) *DefaultTipoServicoRepository {
	return &DefaultTipoServicoRepository{db: db}
}

func (d *DefaultTipoServicoRepository) FindAll() ([]*entity.TipoServico, error) {
	var tipos []*entity.TipoServico
	err := d.db.Order("nome").Find(&tipos).Error
	if err != nil {
		return nil, err
	}
	return tipos, nil
}

func (d *DefaultTipoServicoRepository) FindByID(id string) (*entity.TipoServico, error) {
	var tipo entity.TipoServico
	err := d.db.First(&tipo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tipo, nil
}

func (d *DefaultTipoServicoRepository) Save(tipo *entity.TipoServico) error {
	return d.db.Save(tipo).Error
}
