package service

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type UsuarioRepository interface {
	FindAll() ([]*entity.Usuario, error)
	FindByID(id string) (*entity.Usuario, error)
	FindActiveByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	Count() (int64, error)
	Save(usuario *entity.Usuario) error
	Delete(usuario *entity.Usuario) error
}

type DefaultUsuarioService struct {
	Repo      UsuarioRepository
	Historico *HistoricoService
	Validate  *validator.Validate
	JWTSecret []byte
}

func NewUsuarioService(repo UsuarioRepository, historico *HistoricoService, validate *validator.Validate, jwtSecret []byte) *DefaultUsuarioService {
	return &DefaultUsuarioService{
		Repo:      repo,
		Historico: historico,
		Validate:  validate,
		JWTSecret: jwtSecret,
	}
}

// Login checks the credentials and issues a session token. Inactive
// accounts fail the same way as bad passwords so probing cannot tell
// them apart.
func (s *DefaultUsuarioService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	usuario, err := s.Repo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch usuário by email: %v", err)
		return nil, apierror.InternalServerError
	}
	if usuario == nil || !usuario.Ativo {
		return nil, apierror.CredentialsMismatchError
	}

	if bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)) != nil {
		return nil, apierror.CredentialsMismatchError
	}

	token, err := utils.GenerateSessionToken(s.JWTSecret, usuario.ID, usuario.Role)
	if err != nil {
		log.Errorf("failed to sign session token: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.LoginResponse{Token: token, Usuario: toUsuarioResponse(usuario)}, nil
}

// BootstrapAdmin seeds the first administrator account when the user
// table is empty, using ADMIN_EMAIL and ADMIN_PASSWORD. Called once on
// startup; a populated table makes it a no-op.
func (s *DefaultUsuarioService) BootstrapAdmin() error {
	count, err := s.Repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	senha := os.Getenv("ADMIN_PASSWORD")
	if email == "" || senha == "" {
		log.Warn("no users and no ADMIN_EMAIL/ADMIN_PASSWORD set, skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := utils.NowUTC()
	admin := &entity.Usuario{
		ID:        uuid.NewString(),
		Nome:      "Administrador",
		Email:     email,
		SenhaHash: string(hash),
		Role:      entity.RoleAdministrador,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Save(admin); err != nil {
		return err
	}
	log.Infof("bootstrap administrator created: %s", email)
	return nil
}

func (s *DefaultUsuarioService) GetUsuarios() ([]*contract.UsuarioResponse, apierror.ErrorResponse) {
	usuarios, err := s.Repo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch usuários: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UsuarioResponse, len(usuarios))
	for i, u := range usuarios {
		resp[i] = toUsuarioResponse(u)
	}
	return resp, nil
}

func (s *DefaultUsuarioService) CreateUsuario(actor *entity.Usuario, req *contract.UsuarioRequest) (*contract.UsuarioResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	existente, err := s.Repo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch usuário by email: %v", err)
		return nil, apierror.InternalServerError
	}
	if existente != nil {
		return nil, apierror.ExistingEmailError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	usuario := &entity.Usuario{
		ID:        uuid.NewString(),
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Role:      req.Role,
		Ativo:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Save(usuario); err != nil {
		log.Errorf("failed to save usuário: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "usuario", usuario.ID, entity.AcaoCriar, usuario.Email)
	return toUsuarioResponse(usuario), nil
}

func (s *DefaultUsuarioService) UpdateUsuario(actor *entity.Usuario, id string, req *contract.UpdateUsuarioRequest) (*contract.UsuarioResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	usuario, err := s.Repo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch usuário: %v", err)
		return nil, apierror.InternalServerError
	}
	if usuario == nil {
		return nil, apierror.NotFoundError
	}

	// The last administrator can neither be demoted nor deactivated.
	rebaixa := req.Role != nil && *req.Role != entity.RoleAdministrador
	desativa := req.Ativo != nil && !*req.Ativo
	if usuario.Role == entity.RoleAdministrador && (rebaixa || desativa) {
		ultimo, apierr := s.ultimoAdmin(usuario.ID)
		if apierr != nil {
			return nil, apierr
		}
		if ultimo {
			verr := apierror.NewStructured(409)
			verr.Add("role", "Não é possível remover o último administrador ativo")
			return nil, verr
		}
	}

	if req.Nome != nil {
		usuario.Nome = *req.Nome
	}
	if req.Role != nil {
		usuario.Role = *req.Role
	}
	if req.Ativo != nil {
		usuario.Ativo = *req.Ativo
	}
	usuario.UpdatedAt = utils.NowUTC()

	if err := s.Repo.Save(usuario); err != nil {
		log.Errorf("failed to update usuário: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "usuario", usuario.ID, entity.AcaoEditar, usuario.Email)
	return toUsuarioResponse(usuario), nil
}

func (s *DefaultUsuarioService) ultimoAdmin(excetoID string) (bool, apierror.ErrorResponse) {
	usuarios, err := s.Repo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch usuários: %v", err)
		return false, apierror.InternalServerError
	}

	for _, u := range usuarios {
		if u.ID != excetoID && u.Role == entity.RoleAdministrador && u.Ativo {
			return false, nil
		}
	}
	return true, nil
}

func toUsuarioResponse(u *entity.Usuario) *contract.UsuarioResponse {
	return &contract.UsuarioResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Role:      u.Role,
		Ativo:     u.Ativo,
		CreatedAt: utils.FormatEpoch(u.CreatedAt),
		UpdatedAt: utils.FormatEpoch(u.UpdatedAt),
	}
}
