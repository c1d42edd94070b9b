package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultClienteRepository struct {
	db *gorm.DB
}

func NewClienteRepository(db *gorm.DB) *DefaultClienteRepository {
	return &DefaultClienteRepository{db: db}
}

func (d *DefaultClienteRepository) FindAll() ([]*entity.Cliente, error) {
	var clientes []*entity.Cliente
	err := d.db.Order("nome").Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

func (d *DefaultClienteRepository) FindByID(id string) (*entity.Cliente, error) {
	var cliente entity.Cliente
	err := d.db.First(&cliente, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &cliente, nil
}

// SearchByNome is the type-ahead lookup: case-insensitive substring
// match, capped at limit rows.
func (d *DefaultClienteRepository) SearchByNome(q string, limit int) ([]*entity.Cliente, error) {
	var clientes []*entity.Cliente
	err := d.db.
		Where("nome LIKE ? COLLATE NOCASE", "%"+q+"%").
		Order("nome").
		Limit(limit).
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

// FindByNomeExato matches ignoring case and surrounding whitespace,
// used by the verify-or-create flow.
func (d *DefaultClienteRepository) FindByNomeExato(nome string) (*entity.Cliente, error) {
	var cliente entity.Cliente
	err := d.db.
		Where("nome = ? COLLATE NOCASE", strings.TrimSpace(nome)).
		First(&cliente).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (d *DefaultClienteRepository) Save(cliente *entity.Cliente) error {
	return d.db.Save(cliente).Error
}

func (d *DefaultClienteRepository) Delete(cliente *entity.Cliente) error {
	return d.db.Delete(cliente).Error
}
