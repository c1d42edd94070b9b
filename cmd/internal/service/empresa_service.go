package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type EmpresaRepository interface {
	FindAll() ([]*entity.Empresa, error)
	FindByID(id string) (*entity.Empresa, error)
	Save(empresa *entity.Empresa) error
	Delete(empresa *entity.Empresa) error
}

type EmpresaEquipeRepository interface {
	FindByEmpresa(empresaID string) ([]*entity.Equipe, error)
}

type DefaultEmpresaService struct {
	EmpresaRepo EmpresaRepository
	EquipeRepo  EmpresaEquipeRepository
	Precos      *PrecoService
	Historico   *HistoricoService
	Validate    *validator.Validate
}

func NewEmpresaService(
	empresaRepo EmpresaRepository,
	equipeRepo EmpresaEquipeRepository,
	precos *PrecoService,
	historico *HistoricoService,
	validate *validator.Validate,
) *DefaultEmpresaService {
	return &DefaultEmpresaService{
		EmpresaRepo: empresaRepo,
		EquipeRepo:  equipeRepo,
		Precos:      precos,
		Historico:   historico,
		Validate:    validate,
	}
}

func (s *DefaultEmpresaService) GetEmpresas() ([]*contract.EmpresaResponse, apierror.ErrorResponse) {
	empresas, err := s.EmpresaRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch empresas: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.EmpresaResponse, len(empresas))
	for i, e := range empresas {
		resp[i] = toEmpresaResponse(e)
	}
	return resp, nil
}

func (s *DefaultEmpresaService) GetEmpresa(id string) (*contract.EmpresaResponse, apierror.ErrorResponse) {
	empresa, err := s.EmpresaRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		return nil, apierror.NotFoundError
	}

	resp := toEmpresaResponse(empresa)
	equipes, err := s.EquipeRepo.FindByEmpresa(empresa.ID)
	if err != nil {
		log.Errorf("failed to fetch equipes da empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	for _, eq := range equipes {
		resp.Equipes = append(resp.Equipes, toEquipeResponse(eq, empresa.Nome))
	}
	return resp, nil
}

func (s *DefaultEmpresaService) CreateEmpresa(actor *entity.Usuario, req *contract.EmpresaRequest) (*contract.EmpresaResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := validarRemuneracao(req); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	empresa := &entity.Empresa{
		ID:              uuid.NewString(),
		Nome:            req.Nome,
		CNPJ:            req.CNPJ,
		Contato:         req.Contato,
		Telefone:        req.Telefone,
		Email:           req.Email,
		TipoRemuneracao: entity.TipoRemuneracao(req.TipoRemuneracao),
		ValorPainel:     toDecimalPtr(req.ValorPainel),
		ValorKwp:        toDecimalPtr(req.ValorKwp),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.EmpresaRepo.Save(empresa); err != nil {
		log.Errorf("failed to save empresa: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "empresa", empresa.ID, entity.AcaoCriar, empresa.Nome)
	return toEmpresaResponse(empresa), nil
}

func (s *DefaultEmpresaService) UpdateEmpresa(actor *entity.Usuario, id string, req *contract.EmpresaRequest) (*contract.EmpresaResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := validarRemuneracao(req); apierr != nil {
		return nil, apierr
	}

	empresa, err := s.EmpresaRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		return nil, apierror.NotFoundError
	}

	empresa.Nome = req.Nome
	empresa.CNPJ = req.CNPJ
	empresa.Contato = req.Contato
	empresa.Telefone = req.Telefone
	empresa.Email = req.Email
	empresa.TipoRemuneracao = entity.TipoRemuneracao(req.TipoRemuneracao)
	empresa.ValorPainel = toDecimalPtr(req.ValorPainel)
	empresa.ValorKwp = toDecimalPtr(req.ValorKwp)
	empresa.UpdatedAt = utils.NowUTC()

	if err := s.EmpresaRepo.Save(empresa); err != nil {
		log.Errorf("failed to update empresa: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "empresa", empresa.ID, entity.AcaoEditar, empresa.Nome)
	return toEmpresaResponse(empresa), nil
}

func (s *DefaultEmpresaService) DeleteEmpresa(actor *entity.Usuario, id string) apierror.ErrorResponse {
	empresa, err := s.EmpresaRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return apierror.InternalServerError
	}
	if empresa == nil {
		return apierror.NotFoundError
	}

	equipes, err := s.EquipeRepo.FindByEmpresa(id)
	if err != nil {
		log.Errorf("failed to fetch equipes da empresa: %v", err)
		return apierror.InternalServerError
	}
	if len(equipes) > 0 {
		verr := apierror.NewStructured(409)
		verr.Add("equipes", "A empresa ainda possui equipes vinculadas")
		return verr
	}

	if err := s.EmpresaRepo.Delete(empresa); err != nil {
		log.Errorf("failed to delete empresa: %v", err)
		return apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "empresa", empresa.ID, entity.AcaoExcluir, empresa.Nome)
	return nil
}

// DefinirPreco sets the effective (empresa, tipo) price, closing the
// previous open row.
func (s *DefaultEmpresaService) DefinirPreco(actor *entity.Usuario, empresaID string, req *contract.PrecoEmpresaRequest) (*contract.PrecoEmpresaResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	empresa, err := s.EmpresaRepo.FindByID(empresaID)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		return nil, apierror.NotFoundError
	}

	preco, err := s.Precos.DefinirPrecoEmpresa(empresaID, req.TipoServicoID, decimal.NewFromFloat(req.ValorUnitario))
	if err != nil {
		log.Errorf("failed to set empresa price: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "preco_empresa", preco.ID, entity.AcaoCriar,
		empresa.Nome+" / "+req.TipoServicoID+" = "+preco.ValorUnitario.StringFixed(2))
	return toPrecoEmpresaResponse(preco), nil
}

func (s *DefaultEmpresaService) GetHistoricoPrecos(empresaID, tipoServicoID string) ([]*contract.PrecoEmpresaResponse, apierror.ErrorResponse) {
	precos, err := s.Precos.HistoricoPrecos(empresaID, tipoServicoID)
	if err != nil {
		log.Errorf("failed to fetch price history: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.PrecoEmpresaResponse, len(precos))
	for i, p := range precos {
		resp[i] = toPrecoEmpresaResponse(p)
	}
	return resp, nil
}

// validarRemuneracao requires the rate matching the billing model: a
// kWp company without valor_kwp cannot price installations.
func validarRemuneracao(req *contract.EmpresaRequest) apierror.ErrorResponse {
	tipo := entity.TipoRemuneracao(req.TipoRemuneracao)
	if tipo.PorKwp() && req.ValorKwp == nil {
		verr := apierror.NewStructured(400)
		verr.Add("valor_kwp", "Informe o valor por kWp para empresas remuneradas por kWp")
		return verr
	}
	return nil
}

func toDecimalPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

func toEmpresaResponse(e *entity.Empresa) *contract.EmpresaResponse {
	resp := &contract.EmpresaResponse{
		ID:              e.ID,
		Nome:            e.Nome,
		CNPJ:            e.CNPJ,
		Contato:         e.Contato,
		Telefone:        e.Telefone,
		Email:           e.Email,
		TipoRemuneracao: string(e.TipoRemuneracao),
		CreatedAt:       utils.FormatEpoch(e.CreatedAt),
		UpdatedAt:       utils.FormatEpoch(e.UpdatedAt),
	}

	if e.ValorPainel != nil {
		v := e.ValorPainel.StringFixed(2)
		resp.ValorPainel = &v
	}
	if e.ValorKwp != nil {
		v := e.ValorKwp.StringFixed(2)
		resp.ValorKwp = &v
	}
	return resp
}

func toPrecoEmpresaResponse(p *entity.PrecoTipoEmpresa) *contract.PrecoEmpresaResponse {
	resp := &contract.PrecoEmpresaResponse{
		ID:            p.ID,
		EmpresaID:     p.EmpresaID,
		TipoServicoID: p.TipoServicoID,
		ValorUnitario: p.ValorUnitario.StringFixed(2),
		VigenteDesde:  utils.FormatEpoch(p.VigenteDesde),
	}
	if p.VigenteAte != nil {
		v := utils.FormatEpoch(*p.VigenteAte)
		resp.VigenteAte = &v
	}
	return resp
}
