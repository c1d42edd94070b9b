package service

import (
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/policy"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type RoleConfigRepository interface {
	FindByRole(role string) (*entity.RoleConfig, error)
	Save(config *entity.RoleConfig) error
}

// DefaultRoleService manages per-role permission overrides. Reads go
// through the evaluator so they see the same cache the middleware uses;
// writes persist the override and drop the cached set.
type DefaultRoleService struct {
	Repo      RoleConfigRepository
	Evaluator *policy.Evaluator
	Historico *HistoricoService
	Validate  *validator.Validate
}

func NewRoleService(repo RoleConfigRepository, evaluator *policy.Evaluator, historico *HistoricoService, validate *validator.Validate) *DefaultRoleService {
	return &DefaultRoleService{
		Repo:      repo,
		Evaluator: evaluator,
		Historico: historico,
		Validate:  validate,
	}
}

var rolesConhecidos = []string{
	entity.RoleAdministrador,
	entity.RoleFiscal,
	entity.RoleOperador,
	entity.RoleUsuario,
}

func roleConhecido(role string) bool {
	return slices.Contains(rolesConhecidos, role)
}

func (s *DefaultRoleService) GetRolePermissions(role string) (*contract.RolePermissionsResponse, apierror.ErrorResponse) {
	if !roleConhecido(role) {
		return nil, apierror.NotFoundError
	}

	config, err := s.Repo.FindByRole(role)
	if err != nil {
		log.Errorf("failed to fetch role config: %v", err)
		return nil, apierror.InternalServerError
	}

	perms, err := s.Evaluator.PermissionsFor(role)
	if err != nil {
		log.Errorf("failed to resolve role permissions: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.RolePermissionsResponse{
		Role:       role,
		Permissoes: perms,
		Padrao:     config == nil,
	}, nil
}

func (s *DefaultRoleService) GetAllRolePermissions() ([]*contract.RolePermissionsResponse, apierror.ErrorResponse) {
	resp := make([]*contract.RolePermissionsResponse, 0, len(rolesConhecidos))
	for _, role := range rolesConhecidos {
		r, apierr := s.GetRolePermissions(role)
		if apierr != nil {
			return nil, apierr
		}
		resp = append(resp, r)
	}
	return resp, nil
}

// UpdateRolePermissions replaces the role's permission set. The new set
// is authoritative, not merged with the defaults; an empty update would
// lock the role out entirely, so the contract requires at least the
// shape of a permission id per entry.
func (s *DefaultRoleService) UpdateRolePermissions(actor *entity.Usuario, role string, req *contract.UpdateRolePermissionsRequest) (*contract.RolePermissionsResponse, apierror.ErrorResponse) {
	if !roleConhecido(role) {
		return nil, apierror.NotFoundError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	// Admins keep permissoes_manage no matter what was submitted, so a
	// bad update can always be undone.
	perms := req.Permissoes
	if role == entity.RoleAdministrador && !slices.Contains(perms, "permissoes_manage") {
		perms = append(perms, "permissoes_manage")
	}

	config := &entity.RoleConfig{
		Role:       role,
		Permissoes: perms,
		UpdatedAt:  utils.NowUTC(),
	}
	if err := s.Repo.Save(config); err != nil {
		log.Errorf("failed to save role config: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Evaluator.Invalidate(role)
	s.Historico.Registrar(actor, "role_config", role, entity.AcaoEditar, role)

	return &contract.RolePermissionsResponse{
		Role:       role,
		Permissoes: perms,
		Padrao:     false,
	}, nil
}
