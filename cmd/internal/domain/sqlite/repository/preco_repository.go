package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

type DefaultPrecoRepository struct {
	db *gorm.DB
}

func NewPrecoRepository(db *gorm.DB) *DefaultPrecoRepository {
	return &DefaultPrecoRepository{db: db}
}

// FindVigente returns the currently effective (empresa, tipo) price:
// the newest vigente_desde among open rows (vigente_ate IS NULL).
func (d *DefaultPrecoRepository) FindVigente(empresaID, tipoServicoID string) (*entity.PrecoTipoEmpresa, error) {
	var preco entity.PrecoTipoEmpresa
	err := d.db.
		Where("empresa_id = ? AND tipo_servico_id = ? AND vigente_ate IS NULL", empresaID, tipoServicoID).
		Order("vigente_desde DESC").
		First(&preco).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &preco, nil
}

// FindHistorico lists every price row for the pair, newest first,
// including closed ones.
func (d *DefaultPrecoRepository) FindHistorico(empresaID, tipoServicoID string) ([]*entity.PrecoTipoEmpresa, error) {
	var precos []*entity.PrecoTipoEmpresa
	err := d.db.
		Where("empresa_id = ? AND tipo_servico_id = ?", empresaID, tipoServicoID).
		Order("vigente_desde DESC").
		Find(&precos).Error
	if err != nil {
		return nil, err
	}
	return precos, nil
}

// FecharVigentes closes every open row of the pair at the given
// instant, so the next insert becomes the single effective price.
func (d *DefaultPrecoRepository) FecharVigentes(empresaID, tipoServicoID string, quando int64) error {
	return d.db.Model(&entity.PrecoTipoEmpresa{}).
		Where("empresa_id = ? AND tipo_servico_id = ? AND vigente_ate IS NULL", empresaID, tipoServicoID).
		Update("vigente_ate", quando).Error
}

func (d *DefaultPrecoRepository) Save(preco *entity.PrecoTipoEmpresa) error {
	return d.db.Save(preco).Error
}

// FindConfiguracao returns the newest global configuration row for the
// key, nil when the key was never configured.
func (d *DefaultPrecoRepository) FindConfiguracao(chave string) (*entity.ConfiguracaoPreco, error) {
	var config entity.ConfiguracaoPreco
	err := d.db.
		Where("chave = ?", chave).
		Order("vigente_desde DESC").
		First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (d *DefaultPrecoRepository) SaveConfiguracao(config *entity.ConfiguracaoPreco) error {
	return d.db.Save(config).Error
}
