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

// SearchLimit caps the type-ahead result size.
const SearchLimit = 20

type ClienteRepository interface {
	FindAll() ([]*entity.Cliente, error)
	FindByID(id string) (*entity.Cliente, error)
	SearchByNome(q string, limit int) ([]*entity.Cliente, error)
	FindByNomeExato(nome string) (*entity.Cliente, error)
	Save(cliente *entity.Cliente) error
	Delete(cliente *entity.Cliente) error
}

type ClienteLancamentoRepository interface {
	UltimaDataContrato(clienteID string) (string, error)
}

type DefaultClienteService struct {
	ClienteRepo    ClienteRepository
	LancamentoRepo ClienteLancamentoRepository
	Historico      *HistoricoService
	Validate       *validator.Validate
}

func NewClienteService(clienteRepo ClienteRepository, lancamentoRepo ClienteLancamentoRepository, historico *HistoricoService, validate *validator.Validate) *DefaultClienteService {
	return &DefaultClienteService{
		ClienteRepo:    clienteRepo,
		LancamentoRepo: lancamentoRepo,
		Historico:      historico,
		Validate:       validate,
	}
}

func (s *DefaultClienteService) GetClientes(busca string) ([]*contract.ClienteResponse, apierror.ErrorResponse) {
	var (
		clientes []*entity.Cliente
		err      error
	)
	if busca != "" {
		clientes, err = s.ClienteRepo.SearchByNome(busca, SearchLimit)
	} else {
		clientes, err = s.ClienteRepo.FindAll()
	}
	if err != nil {
		log.Errorf("failed to fetch clientes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ClienteResponse, len(clientes))
	for i, c := range clientes {
		resp[i] = toClienteResponse(c)
	}
	return resp, nil
}

func (s *DefaultClienteService) GetCliente(id string) (*contract.ClienteResponse, apierror.ErrorResponse) {
	cliente, err := s.ClienteRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch cliente: %v", err)
		return nil, apierror.InternalServerError
	}
	if cliente == nil {
		return nil, apierror.NotFoundError
	}
	return toClienteResponse(cliente), nil
}

func (s *DefaultClienteService) CreateCliente(actor *entity.Usuario, req *contract.ClienteRequest) (*contract.ClienteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	cliente := &entity.Cliente{
		ID:           uuid.NewString(),
		Nome:         req.Nome,
		Endereco:     req.Endereco,
		DataContrato: req.DataContrato,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.ClienteRepo.Save(cliente); err != nil {
		log.Errorf("failed to save cliente: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "cliente", cliente.ID, entity.AcaoCriar, cliente.Nome)
	return toClienteResponse(cliente), nil
}

func (s *DefaultClienteService) UpdateCliente(actor *entity.Usuario, id string, req *contract.ClienteRequest) (*contract.ClienteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	cliente, err := s.ClienteRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch cliente: %v", err)
		return nil, apierror.InternalServerError
	}
	if cliente == nil {
		return nil, apierror.NotFoundError
	}

	cliente.Nome = req.Nome
	cliente.Endereco = req.Endereco
	cliente.DataContrato = req.DataContrato
	cliente.UpdatedAt = utils.NowUTC()

	if err := s.ClienteRepo.Save(cliente); err != nil {
		log.Errorf("failed to update cliente: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "cliente", cliente.ID, entity.AcaoEditar, cliente.Nome)
	return toClienteResponse(cliente), nil
}

func (s *DefaultClienteService) DeleteCliente(actor *entity.Usuario, id string) apierror.ErrorResponse {
	cliente, err := s.ClienteRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch cliente: %v", err)
		return apierror.InternalServerError
	}
	if cliente == nil {
		return apierror.NotFoundError
	}

	// Lançamentos keep the denormalized client name, so deleting the
	// client never corrupts past reports.
	if err := s.ClienteRepo.Delete(cliente); err != nil {
		log.Errorf("failed to delete cliente: %v", err)
		return apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "cliente", cliente.ID, entity.AcaoExcluir, cliente.Nome)
	return nil
}

// VerificarOuCriar backs the entry form: match by exact name ignoring
// case, create when absent. An existing match is returned untouched;
// the request's address and contract date only apply to a new row.
func (s *DefaultClienteService) VerificarOuCriar(actor *entity.Usuario, req *contract.VerificarClienteRequest) (*contract.VerificarClienteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	existente, err := s.ClienteRepo.FindByNomeExato(req.Nome)
	if err != nil {
		log.Errorf("failed to search cliente by name: %v", err)
		return nil, apierror.InternalServerError
	}
	if existente != nil {
		return &contract.VerificarClienteResponse{Cliente: toClienteResponse(existente), Criado: false}, nil
	}

	now := utils.NowUTC()
	cliente := &entity.Cliente{
		ID:           uuid.NewString(),
		Nome:         req.Nome,
		Endereco:     req.Endereco,
		DataContrato: req.DataContrato,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.ClienteRepo.Save(cliente); err != nil {
		log.Errorf("failed to save cliente: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "cliente", cliente.ID, entity.AcaoCriar, cliente.Nome)
	return &contract.VerificarClienteResponse{Cliente: toClienteResponse(cliente), Criado: true}, nil
}

// UltimaDataContrato returns the newest contract date among the
// client's lançamentos, empty when the client has none. Pre-fills the
// date field on the entry form.
func (s *DefaultClienteService) UltimaDataContrato(clienteID string) (string, apierror.ErrorResponse) {
	data, err := s.LancamentoRepo.UltimaDataContrato(clienteID)
	if err != nil {
		log.Errorf("failed to fetch última data de contrato: %v", err)
		return "", apierror.InternalServerError
	}
	return data, nil
}

func toClienteResponse(c *entity.Cliente) *contract.ClienteResponse {
	return &contract.ClienteResponse{
		ID:           c.ID,
		Nome:         c.Nome,
		Endereco:     c.Endereco,
		DataContrato: c.DataContrato,
		CreatedAt:    utils.FormatEpoch(c.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(c.UpdatedAt),
	}
}
