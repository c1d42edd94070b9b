package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultUsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *DefaultUsuarioRepository {
	return &DefaultUsuarioRepository{db: db}
}

func (d *DefaultUsuarioRepository) FindAll() ([]*entity.Usuario, error) {
	var usuarios []*entity.Usuario
	err := d.db.Order("nome").Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (d *DefaultUsuarioRepository) FindByID(id string) (*entity.Usuario, error) {
	var usuario entity.Usuario
	err := d.db.First(&usuario, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (d *DefaultUsuarioRepository) FindActiveByID(id string) (*entity.Usuario, error) {
	var usuario entity.Usuario
	err := d.db.First(&usuario, "id = ? AND ativo = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (d *DefaultUsuarioRepository) FindByEmail(email string) (*entity.Usuario, error) {
	var usuario entity.Usuario
	err := d.db.First(&usuario, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (d *DefaultUsuarioRepository) Count() (int64, error) {
	var count int64
	err := d.db.Model(&entity.Usuario{}).Count(&count).Error
	return count, err
}

func (d *DefaultUsuarioRepository) Save(usuario *entity.Usuario) error {
	return d.db.Save(usuario).Error
}

func (d *DefaultUsuarioRepository) Delete(usuario *entity.Usuario) error {
	return d.db.Delete(usuario).Error
}
