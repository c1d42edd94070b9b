package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite/repository"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type LancamentoRepository interface {
	FindByID(id string) (*entity.Lancamento, error)
	FindFiltered(f repository.FiltroLancamentos) ([]*entity.Lancamento, error)
	UltimaDataContrato(clienteID string) (string, error)
	Save(lancamento *entity.Lancamento) error
	Delete(lancamento *entity.Lancamento) error
}

type LancamentoClienteRepository interface {
	FindByID(id string) (*entity.Cliente, error)
}

type DefaultLancamentoService struct {
	LancamentoRepo  LancamentoRepository
	EquipeRepo      PrecoEquipeRepository
	EmpresaRepo     PrecoEmpresaRepository
	ClienteRepo     LancamentoClienteRepository
	TipoServicoRepo PrecoTipoServicoRepository
	Precos          *PrecoService
	Historico       *HistoricoService
	Validate        *validator.Validate
}

func NewLancamentoService(
	lancamentoRepo LancamentoRepository,
	equipeRepo PrecoEquipeRepository,
	empresaRepo PrecoEmpresaRepository,
	clienteRepo LancamentoClienteRepository,
	tipoServicoRepo PrecoTipoServicoRepository,
	precos *PrecoService,
	historico *HistoricoService,
	validate *validator.Validate,
) *DefaultLancamentoService {
	return &DefaultLancamentoService{
		LancamentoRepo:  lancamentoRepo,
		EquipeRepo:      equipeRepo,
		EmpresaRepo:     empresaRepo,
		ClienteRepo:     clienteRepo,
		TipoServicoRepo: tipoServicoRepo,
		Precos:          precos,
		Historico:       historico,
		Validate:        validate,
	}
}

func (s *DefaultLancamentoService) GetLancamentos(f repository.FiltroLancamentos) ([]*contract.LancamentoResponse, apierror.ErrorResponse) {
	lancamentos, err := s.LancamentoRepo.FindFiltered(f)
	if err != nil {
		log.Errorf("failed to fetch lançamentos: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.LancamentoResponse, len(lancamentos))
	for i, l := range lancamentos {
		resp[i] = toLancamentoResponse(l)
	}
	return resp, nil
}

func (s *DefaultLancamentoService) CreateLancamento(actor *entity.Usuario, req *contract.LancamentoRequest) (*contract.LancamentoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := validarCamposPorTipo(req); apierr != nil {
		return nil, apierr
	}

	cliente, err := s.ClienteRepo.FindByID(req.ClienteID)
	if err != nil {
		log.Errorf("failed to fetch cliente: %v", err)
		return nil, apierror.InternalServerError
	}
	if cliente == nil {
		return nil, apierror.NotFoundError
	}

	equipe, err := s.EquipeRepo.FindByID(req.EquipeID)
	if err != nil {
		log.Errorf("failed to fetch equipe: %v", err)
		return nil, apierror.InternalServerError
	}
	if equipe == nil {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	lancamento := &entity.Lancamento{
		ID:           uuid.NewString(),
		EquipeID:     equipe.ID,
		ClienteID:    cliente.ID,
		NomeCliente:  cliente.Nome,
		DataContrato: cliente.DataContrato,
		DataExecucao: req.DataExecucao,
		TipoServico:  req.TipoServico,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if apierr := s.preencherValor(lancamento, equipe, req); apierr != nil {
		return nil, apierr
	}

	if err := s.LancamentoRepo.Save(lancamento); err != nil {
		log.Errorf("failed to save lançamento: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "lancamento", lancamento.ID, entity.AcaoCriar,
		fmt.Sprintf("%s para %s, valor %s", lancamento.TipoServico, lancamento.NomeCliente, lancamento.ValorServico.StringFixed(2)))
	return toLancamentoResponse(lancamento), nil
}

func (s *DefaultLancamentoService) UpdateLancamento(actor *entity.Usuario, id string, req *contract.LancamentoRequest) (*contract.LancamentoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := validarCamposPorTipo(req); apierr != nil {
		return nil, apierr
	}

	lancamento, err := s.LancamentoRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch lançamento: %v", err)
		return nil, apierror.InternalServerError
	}
	if lancamento == nil {
		return nil, apierror.NotFoundError
	}

	cliente, err := s.ClienteRepo.FindByID(req.ClienteID)
	if err != nil {
		log.Errorf("failed to fetch cliente: %v", err)
		return nil, apierror.InternalServerError
	}
	if cliente == nil {
		return nil, apierror.NotFoundError
	}

	equipe, err := s.EquipeRepo.FindByID(req.EquipeID)
	if err != nil {
		log.Errorf("failed to fetch equipe: %v", err)
		return nil, apierror.InternalServerError
	}
	if equipe == nil {
		return nil, apierror.NotFoundError
	}

	lancamento.EquipeID = equipe.ID
	lancamento.Equipe = nil
	lancamento.ClienteID = cliente.ID
	lancamento.NomeCliente = cliente.Nome
	lancamento.DataContrato = cliente.DataContrato
	lancamento.DataExecucao = req.DataExecucao
	lancamento.TipoServico = req.TipoServico
	limparCamposEspecificos(lancamento)

	// Value is recomputed from the submitted fields, so editing a
	// desconto never double-negates.
	if apierr := s.preencherValor(lancamento, equipe, req); apierr != nil {
		return nil, apierr
	}

	lancamento.UpdatedAt = utils.NowUTC()
	if err := s.LancamentoRepo.Save(lancamento); err != nil {
		log.Errorf("failed to update lançamento: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "lancamento", lancamento.ID, entity.AcaoEditar,
		fmt.Sprintf("%s, novo valor %s", lancamento.TipoServico, lancamento.ValorServico.StringFixed(2)))
	return toLancamentoResponse(lancamento), nil
}

func (s *DefaultLancamentoService) DeleteLancamento(actor *entity.Usuario, id string) apierror.ErrorResponse {
	lancamento, err := s.LancamentoRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch lançamento: %v", err)
		return apierror.InternalServerError
	}
	if lancamento == nil {
		return apierror.NotFoundError
	}

	if err := s.LancamentoRepo.Delete(lancamento); err != nil {
		log.Errorf("failed to delete lançamento: %v", err)
		return apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "lancamento", lancamento.ID, entity.AcaoExcluir, lancamento.NomeCliente)
	return nil
}

// CalcularInstalacao previews an installation value without persisting.
func (s *DefaultLancamentoService) CalcularInstalacao(req *contract.CalculoInstalacaoRequest) (*contract.CalculoInstalacaoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	equipe, err := s.EquipeRepo.FindByID(req.EquipeID)
	if err != nil {
		log.Errorf("failed to fetch equipe: %v", err)
		return nil, apierror.InternalServerError
	}
	if equipe == nil {
		return nil, apierror.NotFoundError
	}

	calc, apierr := s.calcularValorInstalacao(equipe, req.TipoServicoID, req.NumeroPaineis, req.PotenciaPainel, req.ValorUnitario)
	if apierr != nil {
		return nil, apierr
	}

	resp := &contract.CalculoInstalacaoResponse{
		ValorServico:  calc.valor.StringFixed(2),
		ValorUnitario: calc.resolucao.ValorUnitario.StringFixed(2),
		FontePreco:    string(calc.resolucao.Fonte),
	}
	if calc.potenciaKwp != nil {
		resp.PotenciaKwp = calc.potenciaKwp.StringFixed(2)
	}
	return resp, nil
}

type calculoInstalacao struct {
	valor       decimal.Decimal
	resolucao   *entity.ResolucaoPreco
	potenciaKwp *decimal.Decimal
}

// calcularValorInstalacao resolves the unit price through the cascade
// and derives the installation value. Per-panel: paineis × price.
// Per-kWp: paineis × potência / 1000 × price, carried at full decimal
// precision; only display rounds to two places.
func (s *DefaultLancamentoService) calcularValorInstalacao(
	equipe *entity.Equipe,
	tipoServicoID string,
	numeroPaineis int,
	potenciaPainel *int,
	override *float64,
) (*calculoInstalacao, apierror.ErrorResponse) {
	empresa, err := s.EmpresaRepo.FindByID(equipe.EmpresaID)
	if err != nil {
		log.Errorf("failed to fetch empresa: %v", err)
		return nil, apierror.InternalServerError
	}
	if empresa == nil {
		verr := apierror.NewStructured(400)
		verr.Add("equipe_id", "A equipe não está vinculada a uma empresa válida")
		return nil, verr
	}

	modelo := entity.CobrancaPainel
	if tipoServicoID != "" {
		tipo, err := s.TipoServicoRepo.FindByID(tipoServicoID)
		if err != nil {
			log.Errorf("failed to fetch tipo de serviço: %v", err)
			return nil, apierror.InternalServerError
		}
		if tipo != nil {
			modelo = tipo.ModeloCobranca
		}
	} else if empresa.TipoRemuneracao.PorKwp() {
		modelo = entity.CobrancaKwp
	}

	if modelo == entity.CobrancaKwp && potenciaPainel == nil {
		verr := apierror.NewStructured(400)
		verr.Add("potencia_painel", "Para cobrança por kWp, informe a potência do painel")
		return nil, verr
	}

	ctx := ResolucaoContexto{
		EquipeID:      equipe.ID,
		EmpresaID:     empresa.ID,
		TipoServicoID: tipoServicoID,
	}
	if override != nil {
		d := decimal.NewFromFloat(*override)
		ctx.OverrideManual = &d
	}

	resolucao, err := s.Precos.Resolver(ctx, modelo)
	if err != nil {
		if errors.Is(err, ErrPrecoIndisponivel) {
			log.Errorf("pricing lookup failed: %v", err)
			return nil, apierror.PricingUnavailableError
		}
		log.Errorf("failed to resolve price: %v", err)
		return nil, apierror.InternalServerError
	}

	calc := &calculoInstalacao{resolucao: resolucao}
	paineis := decimal.NewFromInt(int64(numeroPaineis))
	if modelo == entity.CobrancaKwp {
		potencia := decimal.NewFromInt(int64(*potenciaPainel))
		kwp := paineis.Mul(potencia).Div(decimal.NewFromInt(1000))
		calc.potenciaKwp = &kwp
		calc.valor = kwp.Mul(resolucao.ValorUnitario)
	} else {
		calc.valor = paineis.Mul(resolucao.ValorUnitario)
	}
	return calc, nil
}

// preencherValor fills the type-specific fields and the signed value.
// Assumes validarCamposPorTipo already passed.
func (s *DefaultLancamentoService) preencherValor(lancamento *entity.Lancamento, equipe *entity.Equipe, req *contract.LancamentoRequest) apierror.ErrorResponse {
	switch req.TipoServico {
	case entity.ServicoInstalacao:
		calc, apierr := s.calcularValorInstalacao(equipe, req.TipoServicoID, *req.NumeroPaineis, req.PotenciaPainel, req.ValorUnitario)
		if apierr != nil {
			return apierr
		}

		lancamento.TipoServicoID = req.TipoServicoID
		lancamento.NumeroPaineis = req.NumeroPaineis
		if calc.potenciaKwp != nil {
			lancamento.PotenciaPainel = req.PotenciaPainel
		}
		lancamento.ValorServico = calc.valor
		lancamento.FontePreco = calc.resolucao.Fonte
		if req.ValorUnitario != nil {
			d := decimal.NewFromFloat(*req.ValorUnitario)
			lancamento.ValorUnitario = &d
		}

	case entity.ServicoAditivo:
		lancamento.ValorServico = decimal.NewFromFloat(*req.ValorAditivo)
		lancamento.TipoAditivo = req.TipoAditivo

	case entity.ServicoDesconto:
		// Stored negative no matter how the caller signed it.
		lancamento.ValorServico = decimal.NewFromFloat(*req.ValorDesconto).Abs().Neg()
		lancamento.MotivoDesconto = req.MotivoDesconto
		lancamento.Descricao = req.MotivoDesconto

	case entity.ServicoPadraoEntrada:
		lancamento.ValorServico = decimal.NewFromFloat(*req.ValorPadrao)
		lancamento.TipoPadrao = req.TipoPadrao

	case entity.ServicoVisitaTecnica:
		lancamento.ValorServico = decimal.NewFromFloat(*req.ValorVisita)
		lancamento.MotivoVisita = req.MotivoVisita
		lancamento.Descricao = req.MotivoVisita

	case entity.ServicoObraCivil:
		lancamento.ValorServico = decimal.NewFromFloat(*req.ValorObra)
		lancamento.DescricaoMaterial = req.DescricaoMaterial
		lancamento.MotivoObra = req.MotivoObra
		lancamento.Descricao = req.DescricaoMaterial + " - " + req.MotivoObra
	}
	return nil
}

// validarCamposPorTipo enforces the per-service-type required fields,
// answering one problem per missing field so the form can attribute
// each error.
func validarCamposPorTipo(req *contract.LancamentoRequest) apierror.ErrorResponse {
	verr := apierror.NewStructured(400)

	switch req.TipoServico {
	case entity.ServicoInstalacao:
		if req.NumeroPaineis == nil {
			verr.Add("numero_paineis", "Informe o número de painéis")
		}
	case entity.ServicoAditivo:
		if req.ValorAditivo == nil {
			verr.Add("valor_aditivo", "Informe o valor do aditivo")
		}
		if req.TipoAditivo == "" {
			verr.Add("tipo_aditivo", "Informe o tipo do aditivo")
		}
	case entity.ServicoDesconto:
		if req.ValorDesconto == nil {
			verr.Add("valor_desconto", "Informe o valor do desconto")
		}
		if req.MotivoDesconto == "" {
			verr.Add("motivo_desconto", "Informe o motivo do desconto")
		}
	case entity.ServicoPadraoEntrada:
		if req.ValorPadrao == nil {
			verr.Add("valor_padrao", "Informe o valor do padrão de entrada")
		}
		if req.TipoPadrao == "" {
			verr.Add("tipo_padrao", "Informe o tipo do padrão de entrada")
		}
	case entity.ServicoVisitaTecnica:
		if req.ValorVisita == nil {
			verr.Add("valor_visita", "Informe o valor da visita técnica")
		}
		if req.MotivoVisita == "" {
			verr.Add("motivo_visita", "Informe o motivo da visita técnica")
		}
	case entity.ServicoObraCivil:
		if req.ValorObra == nil {
			verr.Add("valor_obra", "Informe o valor da obra")
		}
		if req.DescricaoMaterial == "" {
			verr.Add("descricao_material", "Informe a descrição do material")
		}
		if req.MotivoObra == "" {
			verr.Add("motivo_obra", "Informe o motivo da obra")
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func limparCamposEspecificos(l *entity.Lancamento) {
	l.TipoServicoID = ""
	l.NumeroPaineis = nil
	l.PotenciaPainel = nil
	l.ValorUnitario = nil
	l.FontePreco = ""
	l.TipoAditivo = ""
	l.MotivoDesconto = ""
	l.TipoPadrao = ""
	l.MotivoVisita = ""
	l.DescricaoMaterial = ""
	l.MotivoObra = ""
	l.Descricao = ""
}

func toLancamentoResponse(l *entity.Lancamento) *contract.LancamentoResponse {
	resp := &contract.LancamentoResponse{
		ID:                l.ID,
		EquipeID:          l.EquipeID,
		ClienteID:         l.ClienteID,
		NomeCliente:       l.NomeCliente,
		DataContrato:      l.DataContrato,
		DataExecucao:      l.DataExecucao,
		TipoServico:       l.TipoServico,
		TipoServicoID:     l.TipoServicoID,
		NumeroPaineis:     l.NumeroPaineis,
		PotenciaPainel:    l.PotenciaPainel,
		ValorServico:      l.ValorServico.StringFixed(2),
		FontePreco:        string(l.FontePreco),
		TipoAditivo:       l.TipoAditivo,
		MotivoDesconto:    l.MotivoDesconto,
		TipoPadrao:        l.TipoPadrao,
		MotivoVisita:      l.MotivoVisita,
		DescricaoMaterial: l.DescricaoMaterial,
		MotivoObra:        l.MotivoObra,
		Descricao:         l.Descricao,
		CreatedAt:         utils.FormatEpoch(l.CreatedAt),
		UpdatedAt:         utils.FormatEpoch(l.UpdatedAt),
	}

	if l.ValorUnitario != nil {
		resp.ValorUnitario = l.ValorUnitario.StringFixed(2)
	}
	if l.Equipe != nil {
		resp.EquipeNome = l.Equipe.Nome
		if l.Equipe.Empresa != nil {
			resp.EmpresaNome = l.Equipe.Empresa.Nome
		}
	}
	return resp
}
