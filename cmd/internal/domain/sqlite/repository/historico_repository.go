package repository

import (
	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultHistoricoRepository struct {
	db *gorm.DB
}

func NewHistoricoRepository(db *gorm.DB) *DefaultHistoricoRepository {
	return &DefaultHistoricoRepository{db: db}
}

func (d *DefaultHistoricoRepository) FindRecent(entidade string, limit int) ([]*entity.Historico, error) {
	query := d.db.Order("created_at DESC").Limit(limit)
	if entidade != "" {
		query = query.Where("entidade = ?", entidade)
	}

	var registros []*entity.Historico
	if err := query.Find(&registros).Error; err != nil {
		return nil, err
	}
	return registros, nil
}

func (d *DefaultHistoricoRepository) Save(registro *entity.Historico) error {
	return d.db.Save(registro).Error
}

// DeleteOlderThan prunes audit rows created before the cutoff and
// returns how many were removed.
func (d *DefaultHistoricoRepository) DeleteOlderThan(cutoff int64) (int64, error) {
	result := d.db.Where("created_at < ?", cutoff).Delete(&entity.Historico{})
	return result.RowsAffected, result.Error
}
