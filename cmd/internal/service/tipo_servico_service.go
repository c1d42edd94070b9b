package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type TipoServicoRepository interface {
	FindAll() ([]*entity.TipoServico, error)
	FindByID(id string) (*entity.TipoServico, error)
	Save(tipo *entity.TipoServico) error
}

type DefaultTipoServicoService struct {
	Repo      TipoServicoRepository
	Historico *HistoricoService
	Validate  *validator.Validate
}

func NewTipoServicoService(repo TipoServicoRepository, historico *HistoricoService, validate *validator.Validate) *DefaultTipoServicoService {
	return &DefaultTipoServicoService{
		Repo:      repo,
		Historico: historico,
		Validate:  validate,
	}
}

func (s *DefaultTipoServicoService) GetTiposServico(somenteAtivos bool) ([]*contract.TipoServicoResponse, apierror.ErrorResponse) {
	tipos, err := s.Repo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch tipos de serviço: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TipoServicoResponse, 0, len(tipos))
	for _, t := range tipos {
		if somenteAtivos && !t.Ativo {
			continue
		}
		resp = append(resp, toTipoServicoResponse(t))
	}
	return resp, nil
}

// UpdateTipoServico edits the mutable catalog fields. The code and the
// billing model are fixed at seed time; the cascade depends on them.
func (s *DefaultTipoServicoService) UpdateTipoServico(actor *entity.Usuario, id string, req *contract.UpdateTipoServicoRequest) (*contract.TipoServicoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	tipo, err := s.Repo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch tipo de serviço: %v", err)
		return nil, apierror.InternalServerError
	}
	if tipo == nil {
		return nil, apierror.NotFoundError
	}

	if req.Nome != nil {
		tipo.Nome = *req.Nome
	}
	if req.Descricao != nil {
		tipo.Descricao = *req.Descricao
	}
	if req.ValorUnitario != nil {
		d := decimal.NewFromFloat(*req.ValorUnitario)
		tipo.ValorUnitario = &d
	}
	if req.Ativo != nil {
		tipo.Ativo = *req.Ativo
	}
	tipo.UpdatedAt = utils.NowUTC()

	if err := s.Repo.Save(tipo); err != nil {
		log.Errorf("failed to update tipo de serviço: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "tipo_servico", tipo.ID, entity.AcaoEditar, tipo.Nome)
	return toTipoServicoResponse(tipo), nil
}

func toTipoServicoResponse(t *entity.TipoServico) *contract.TipoServicoResponse {
	resp := &contract.TipoServicoResponse{
		ID:             t.ID,
		Codigo:         t.Codigo,
		Nome:           t.Nome,
		Descricao:      t.Descricao,
		ModeloCobranca: string(t.ModeloCobranca),
		Ativo:          t.Ativo,
	}
	if t.ValorUnitario != nil {
		resp.ValorUnitario = t.ValorUnitario.StringFixed(2)
	}
	return resp
}
