package service

import (
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type HistoricoRepository interface {
	FindRecent(entidade string, limit int) ([]*entity.Historico, error)
	Save(registro *entity.Historico) error
	DeleteOlderThan(cutoff int64) (int64, error)
}

type HistoricoService struct {
	Repo HistoricoRepository
}

func NewHistoricoService(repo HistoricoRepository) *HistoricoService {
	return &HistoricoService{Repo: repo}
}

// Registrar appends an audit row. Audit is best effort: a failure here
// is logged and swallowed so it never blocks the operation it records.
func (s *HistoricoService) Registrar(actor *entity.Usuario, entidade, entidadeID, acao, detalhe string) {
	registro := &entity.Historico{
		ID:         uuid.NewString(),
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Acao:       acao,
		Detalhe:    detalhe,
		CreatedAt:  utils.NowUTC(),
	}
	if actor != nil {
		registro.AutorID = actor.ID
		registro.AutorNome = actor.Nome
	}

	if err := s.Repo.Save(registro); err != nil {
		log.Errorf("failed to record audit row for %s/%s: %v", entidade, entidadeID, err)
	}
}

func (s *HistoricoService) GetRecentes(entidade string, limit int) ([]*contract.HistoricoResponse, apierror.ErrorResponse) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	registros, err := s.Repo.FindRecent(entidade, limit)
	if err != nil {
		log.Errorf("failed to fetch audit rows: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.HistoricoResponse, len(registros))
	for i, r := range registros {
		resp[i] = &contract.HistoricoResponse{
			ID:         r.ID,
			Entidade:   r.Entidade,
			EntidadeID: r.EntidadeID,
			Acao:       r.Acao,
			Detalhe:    r.Detalhe,
			AutorID:    r.AutorID,
			AutorNome:  r.AutorNome,
			CreatedAt:  utils.FormatEpoch(r.CreatedAt),
		}
	}
	return resp, nil
}
