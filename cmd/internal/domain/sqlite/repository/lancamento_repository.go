package repository

import (
	"errors"

	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
)

// FiltroLancamentos narrows the report query. Zero values mean "no
// filter". TipoData selects which date column the range applies to and
// defaults to data_contrato.
type FiltroLancamentos struct {
	DataInicio string
	DataFim    string
	TipoData   string
	EquipeIDs  []string
	Cliente    string
}

type DefaultLancamentoRepository struct {
	db *gorm.DB
}

func NewLancamentoRepository(db *gorm.DB) *DefaultLancamentoRepository {
	return &DefaultLancamentoRepository{db: db}
}

func (d *DefaultLancamentoRepository) FindByID(id string) (*entity.Lancamento, error) {
	var lancamento entity.Lancamento
	err := d.db.Preload("Equipe.Empresa").First(&lancamento, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &lancamento, nil
}

func (d *DefaultLancamentoRepository) FindFiltered(f FiltroLancamentos) ([]*entity.Lancamento, error) {
	tipoData := f.TipoData
	if tipoData != "data_execucao" {
		tipoData = "data_contrato"
	}

	query := d.db.Preload("Equipe.Empresa").Order("created_at DESC")
	if f.DataInicio != "" {
		query = query.Where(tipoData+" >= ?", f.DataInicio)
	}
	if f.DataFim != "" {
		query = query.Where(tipoData+" <= ?", f.DataFim)
	}
	if len(f.EquipeIDs) > 0 {
		query = query.Where("equipe_id IN ?", f.EquipeIDs)
	}
	if f.Cliente != "" {
		query = query.Where("nome_cliente LIKE ? COLLATE NOCASE", "%"+f.Cliente+"%")
	}

	var lancamentos []*entity.Lancamento
	if err := query.Find(&lancamentos).Error; err != nil {
		return nil, err
	}
	return lancamentos, nil
}

// UltimaDataContrato returns the most recent contract date among a
// client's entries, empty when the client has none.
func (d *DefaultLancamentoRepository) UltimaDataContrato(clienteID string) (string, error) {
	var lancamento entity.Lancamento
	err := d.db.
		Where("cliente_id = ? AND data_contrato <> ''", clienteID).
		Order("data_contrato DESC").
		First(&lancamento).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return lancamento.DataContrato, nil
}

func (d *DefaultLancamentoRepository) Save(lancamento *entity.Lancamento) error {
	return d.db.Save(lancamento).Error
}

func (d *DefaultLancamentoRepository) Delete(lancamento *entity.Lancamento) error {
	return d.db.Delete(lancamento).Error
}

func (d *DefaultLancamentoRepository) DeleteByEquipe(equipeID string) error {
	return d.db.Where("equipe_id = ?", equipeID).Delete(&entity.Lancamento{}).Error
}
