package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type EquipeRepository interface {
	FindAll() ([]*entity.Equipe, error)
	FindByID(id string) (*entity.Equipe, error)
	FindByEmpresa(empresaID string) ([]*entity.Equipe, error)
	Save(equipe *entity.Equipe) error
	Delete(equipe *entity.Equipe) error
}

type EquipeLancamentoRepository interface {
	DeleteByEquipe(equipeID string) error
}

type DefaultEquipeService struct {
	EquipeRepo     EquipeRepository
	EmpresaRepo    PrecoEmpresaRepository
	LancamentoRepo EquipeLancamentoRepository
	Historico      *HistoricoService
	Validate       *validator.Validate
}

func NewEquipeService(
	equipeRepo EquipeRepository,
	empresaRepo PrecoEmpresaRepository,
	lancamentoRepo EquipeLancamentoRepository,
	historico *HistoricoService,
	validate *validator.Validate,
) *DefaultEquipeService {
	return &DefaultEquipeService{
		EquipeRepo:     equipeRepo,
		EmpresaRepo:    empresaRepo,
		LancamentoRepo: lancamentoRepo,
		Historico:      historico,
		Validate:       validate,
	}
}

func (s *DefaultEquipeService) GetEquipes(empresaID string) ([]*contract.EquipeResponse, apierror.ErrorResponse) {
	var (
		equipes []*entity.Equipe
		err     error
	)
	if empresaID != "" {
		equipes, err = s.EquipeRepo.FindByEmpresa(empresaID)
	} else {
		equipes, err = s.EquipeRepo.FindAll()
	}
	if err != nil {
		log.Errorf("failed to fetch equipes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.EquipeResponse, len(equipes))
	for i, e := range equipes {
		resp[i] = toEquipeResponse(e, "")
	}
	return resp, nil
}

func (s *DefaultEquipeService) CreateEquipe(actor *entity.Usuario, req *contract.EquipeRequest) (*contract.EquipeResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	empresa, err := s.EmpresaRepo.FindByID(req.EmpresaID)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		verr := apierror.NewStructured(400)
		verr.Add("empresa_id", "Empresa não encontrada")
		return nil, verr
	}

	now := utils.NowUTC()
	equipe := &entity.Equipe{
		ID:        uuid.NewString(),
		Nome:      req.Nome,
		EmpresaID: empresa.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.EquipeRepo.Save(equipe); err != nil {
		log.Errorf("failed to save equipe: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "equipe", equipe.ID, entity.AcaoCriar, equipe.Nome)
	return toEquipeResponse(equipe, empresa.Nome), nil
}

func (s *DefaultEquipeService) UpdateEquipe(actor *entity.Usuario, id string, req *contract.EquipeRequest) (*contract.EquipeResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	equipe, err := s.EquipeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch equipe: %v", err)
		return nil, apierror.InternalServerError
	}
	if equipe == nil {
		return nil, apierror.NotFoundError
	}

	empresa, err := s.EmpresaRepo.FindByID(req.EmpresaID)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		verr := apierror.NewStructured(400)
		verr.Add("empresa_id", "Empresa não encontrada")
		return nil, verr
	}

	equipe.Nome = req.Nome
	equipe.EmpresaID = empresa.ID
	equipe.UpdatedAt = utils.NowUTC()

	if err := s.EquipeRepo.Save(equipe); err != nil {
		log.Errorf("failed to update equipe: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "equipe", equipe.ID, entity.AcaoEditar, equipe.Nome)
	return toEquipeResponse(equipe, empresa.Nome), nil
}

// DeleteEquipe removes a crew. The first attempt relies on the plain
// delete; when the foreign key from lançamentos rejects it, the crew's
// lançamentos are removed first and the delete retried. The fallback
// keeps working even if the FK constraint is missing on old database
// files.
func (s *DefaultEquipeService) DeleteEquipe(actor *entity.Usuario, id string) apierror.ErrorResponse {
	equipe, err := s.EquipeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch equipe: %v", err)
		return apierror.InternalServerError
	}
	if equipe == nil {
		return apierror.NotFoundError
	}

	if err := s.EquipeRepo.Delete(equipe); err != nil {
		log.Warnf("equipe delete blocked, removing lançamentos first: %v", err)
		if err := s.LancamentoRepo.DeleteByEquipe(equipe.ID); err != nil {
			log.Errorf("failed to delete lançamentos da equipe: %v", err)
			return apierror.InternalServerError
		}
		if err := s.EquipeRepo.Delete(equipe); err != nil {
			log.Errorf("failed to delete equipe: %v", err)
			return apierror.InternalServerError
		}
	}

	s.Historico.Registrar(actor, "equipe", equipe.ID, entity.AcaoExcluir, equipe.Nome)
	return nil
}

func toEquipeResponse(e *entity.Equipe, empresaNome string) *contract.EquipeResponse {
	if empresaNome == "" && e.Empresa != nil {
		empresaNome = e.Empresa.Nome
	}
	return &contract.EquipeResponse{
		ID:          e.ID,
		Nome:        e.Nome,
		EmpresaID:   e.EmpresaID,
		EmpresaNome: empresaNome,
		CreatedAt:   utils.FormatEpoch(e.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(e.UpdatedAt),
	}
}
