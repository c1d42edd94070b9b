package repository

import (
	"errors"
	"strings"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultMedicaoRepository struct {
	db *gorm.DB
}

func NewMedicaoRepository(db *gorm.DB) *DefaultMedicaoRepository {
	return &DefaultMedicaoRepository{db: db}
}

func (d *DefaultMedicaoRepository) FindAll() ([]*entity.MedicaoSalva, error) {
	var medicoes []*entity.MedicaoSalva
	err := d.db.Order("created_at DESC").Find(&medicoes).Error
	if err != nil {
		return nil, err
	}
	return medicoes, nil
}

func (d *DefaultMedicaoRepository) FindByID(id string) (*entity.MedicaoSalva, error) {
	var medicao entity.MedicaoSalva
	err := d.db.First(&medicao, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &medicao, nil
}

// Save persists the snapshot. The medicoes_salvas table historically
// lags behind the rest of the schema on fresh deployments, so a
// missing-table failure provisions it and retries exactly once. Any
// other failure (constraint violation included) surfaces immediately.
func (d *DefaultMedicaoRepository) Save(medicao *entity.MedicaoSalva) error {
	err := d.db.Save(medicao).Error
	if err == nil || !isMissingTable(err) {
		return err
	}

	log.Warnf("medicoes_salvas table missing, provisioning and retrying: %v", err)
	if migerr := d.db.AutoMigrate(&entity.MedicaoSalva{}); migerr != nil {
		return migerr
	}
	return d.db.Save(medicao).Error
}

func (d *DefaultMedicaoRepository) Delete(medicao *entity.MedicaoSalva) error {
	return d.db.Delete(medicao).Error
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
