package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultEquipeRepository struct {
	db *gorm.DB
}

func NewEquipeRepository(db *gorm.DB) *DefaultEquipeRepository {
	return &DefaultEquipeRepository{db: db}
}

func (d *DefaultEquipeRepository) FindAll() ([]*entity.Equipe, error) {
	var equipes []*entity.Equipe
	err := d.db.Order("nome").Find(&equipes).Error
	if err != nil {
		return nil, err
	}
	return equipes, nil
}

func (d *DefaultEquipeRepository) FindByID(id string) (*entity.Equipe, error) {
	var equipe entity.Equipe
	err := d.db.First(&equipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &equipe, nil
}

func (d *DefaultEquipeRepository) FindByEmpresa(empresaID string) ([]*entity.Equipe, error) {
	var equipes []*entity.Equipe
	err := d.db.Where("empresa_id = ?", empresaID).Order("nome").Find(&equipes).Error
	if err != nil {
		return nil, err
	}
	return equipes, nil
}

func (d *DefaultEquipeRepository) Save(equipe *entity.Equipe) error {
	return d.db.Save(equipe).Error
}

func (d *DefaultEquipeRepository) Delete(equipe *entity.Equipe) error {
	return d.db.Delete(equipe).Error
}
