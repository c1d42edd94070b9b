package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"

	"github.com/google/uuid"
)

// ErrPrecoIndisponivel marks a pricing lookup that failed at the
// infrastructure level. It is not "no price found": the cascade never
// fails for lack of data, it bottoms out at the global default, so
// any error carrying this sentinel means the configuration could not
// even be read and must surface to the caller.
var ErrPrecoIndisponivel = errors.New("pricing configuration unavailable")

// Default unit prices applied when nothing else is configured. These
// used to live inline in the cascade; keep them named.
var (
	ValorPainelPadrao = decimal.NewFromInt(90)
	ValorKwpPadrao    = decimal.Zero

	// ValorLegadoInstalacaoKwp covers rows still referencing the
	// pre-migration instalacao_kwp catalog id with no configured price.
	// TODO: remove once the price rows from the legacy spreadsheet are
	// imported into precos_tipos_empresa.
	ValorLegadoInstalacaoKwp = decimal.NewFromInt(320)
)

// ResolucaoContexto is everything the cascade may consult. All fields
// are optional; missing context simply falls through to later steps.
type ResolucaoContexto struct {
	OverrideManual *decimal.Decimal
	EquipeID       string
	EmpresaID      string
	TipoServicoID  string
}

type PrecoEmpresaRepository interface {
	FindByID(id string) (*entity.Empresa, error)
}

type PrecoEquipeRepository interface {
	FindByID(id string) (*entity.Equipe, error)
}

type PrecoTipoServicoRepository interface {
	FindByID(id string) (*entity.TipoServico, error)
}

type PrecoRepository interface {
	FindVigente(empresaID, tipoServicoID string) (*entity.PrecoTipoEmpresa, error)
	FindHistorico(empresaID, tipoServicoID string) ([]*entity.PrecoTipoEmpresa, error)
	FecharVigentes(empresaID, tipoServicoID string, quando int64) error
	Save(preco *entity.PrecoTipoEmpresa) error
	FindConfiguracao(chave string) (*entity.ConfiguracaoPreco, error)
}

type PrecoService struct {
	EmpresaRepo     PrecoEmpresaRepository
	EquipeRepo      PrecoEquipeRepository
	TipoServicoRepo PrecoTipoServicoRepository
	PrecoRepo       PrecoRepository
}

func NewPrecoService(
	empresaRepo PrecoEmpresaRepository,
	equipeRepo PrecoEquipeRepository,
	tipoServicoRepo PrecoTipoServicoRepository,
	precoRepo PrecoRepository,
) *PrecoService {
	return &PrecoService{
		EmpresaRepo:     empresaRepo,
		EquipeRepo:      equipeRepo,
		TipoServicoRepo: tipoServicoRepo,
		PrecoRepo:       precoRepo,
	}
}

// Resolver walks the fallback chain for the given billing model and
// returns the first usable price together with its provenance. Zero
// and negative prices are usable; only absence falls through. The
// per-panel and per-kWp chains are the same cascade; only the company
// field, the catalog billing model and the final defaults differ.
//
// Order: manual override, crew price (removed from the business rule,
// kept as a documented no-op), company+type effective price, company
// blanket rate, catalog fixed price, then the global default. The
// first hit wins; later steps are never consulted.
func (s *PrecoService) Resolver(ctx ResolucaoContexto, modelo entity.ModeloCobranca) (*entity.ResolucaoPreco, error) {
	// 1) Manual override
	if ctx.OverrideManual != nil {
		return &entity.ResolucaoPreco{ValorUnitario: *ctx.OverrideManual, Fonte: entity.FonteManual}, nil
	}

	// 2) Crew price: removed from the business rule.

	// 3) Company+type effective price. The explicit (empresa, tipo)
	// agreement always beats the company blanket rate.
	if ctx.TipoServicoID != "" {
		empresaID, err := s.resolverEmpresaID(ctx)
		if err != nil {
			return nil, err
		}
		if empresaID != "" {
			preco, err := s.PrecoRepo.FindVigente(empresaID, ctx.TipoServicoID)
			if err != nil {
				return nil, fmt.Errorf("%w: reading empresa+tipo price: %v", ErrPrecoIndisponivel, err)
			}
			if preco != nil {
				return &entity.ResolucaoPreco{ValorUnitario: preco.ValorUnitario, Fonte: entity.FonteServico}, nil
			}
		}
	}

	// 4) Company blanket rate
	if ctx.EmpresaID != "" {
		empresa, err := s.EmpresaRepo.FindByID(ctx.EmpresaID)
		if err != nil {
			return nil, fmt.Errorf("%w: reading empresa: %v", ErrPrecoIndisponivel, err)
		}
		if empresa != nil {
			if valor := valorEmpresa(empresa, modelo); valor != nil {
				return &entity.ResolucaoPreco{ValorUnitario: *valor, Fonte: entity.FonteServico}, nil
			}
		}
	}

	// 5) Catalog fixed price, when the entry is active and bills on the
	// same model.
	if ctx.TipoServicoID != "" {
		tipo, err := s.TipoServicoRepo.FindByID(ctx.TipoServicoID)
		if err != nil {
			return nil, fmt.Errorf("%w: reading tipo de serviço: %v", ErrPrecoIndisponivel, err)
		}
		if tipo != nil && tipo.Ativo && tipo.ModeloCobranca == modelo && tipo.ValorUnitario != nil {
			return &entity.ResolucaoPreco{ValorUnitario: *tipo.ValorUnitario, Fonte: entity.FonteServico}, nil
		}

		if modelo == entity.CobrancaKwp && ctx.TipoServicoID == entity.ServicoInstalacaoKwp {
			return &entity.ResolucaoPreco{ValorUnitario: ValorLegadoInstalacaoKwp, Fonte: entity.FonteServico}, nil
		}
	}

	// 6) Global default
	chave, padrao := entity.ChaveValorPainelDefault, ValorPainelPadrao
	if modelo == entity.CobrancaKwp {
		chave, padrao = entity.ChaveValorKwpDefault, ValorKwpPadrao
	}

	config, err := s.PrecoRepo.FindConfiguracao(chave)
	if err != nil {
		return nil, fmt.Errorf("%w: reading global default: %v", ErrPrecoIndisponivel, err)
	}
	if config != nil {
		return &entity.ResolucaoPreco{ValorUnitario: config.ValorDecimal, Fonte: entity.FonteGlobal}, nil
	}
	return &entity.ResolucaoPreco{ValorUnitario: padrao, Fonte: entity.FonteGlobal}, nil
}

// resolverEmpresaID finds the company owning the request context:
// directly when given, otherwise through the crew. Returning "" is not
// an error, the cascade just skips the company steps.
func (s *PrecoService) resolverEmpresaID(ctx ResolucaoContexto) (string, error) {
	if ctx.EmpresaID != "" {
		return ctx.EmpresaID, nil
	}
	if ctx.EquipeID == "" {
		return "", nil
	}

	equipe, err := s.EquipeRepo.FindByID(ctx.EquipeID)
	if err != nil {
		return "", fmt.Errorf("%w: resolving equipe's empresa: %v", ErrPrecoIndisponivel, err)
	}
	if equipe == nil {
		return "", nil
	}
	return equipe.EmpresaID, nil
}

func valorEmpresa(empresa *entity.Empresa, modelo entity.ModeloCobranca) *decimal.Decimal {
	switch modelo {
	case entity.CobrancaKwp:
		return empresa.ValorKwp
	default:
		// The blanket panel rate only applies to companies that charge
		// per panel; kWp companies fall through.
		if empresa.TipoRemuneracao.PorPainel() {
			return empresa.ValorPainel
		}
		return nil
	}
}

// DefinirPrecoEmpresa records a new (empresa, tipo) price: closes any
// open row and inserts the replacement, keeping the full history.
func (s *PrecoService) DefinirPrecoEmpresa(empresaID, tipoServicoID string, valor decimal.Decimal) (*entity.PrecoTipoEmpresa, error) {
	now := utils.NowUTC()
	if err := s.PrecoRepo.FecharVigentes(empresaID, tipoServicoID, now); err != nil {
		return nil, err
	}

	preco := &entity.PrecoTipoEmpresa{
		ID:            uuid.NewString(),
		EmpresaID:     empresaID,
		TipoServicoID: tipoServicoID,
		ValorUnitario: valor,
		VigenteDesde:  now,
		CreatedAt:     now,
	}
	if err := s.PrecoRepo.Save(preco); err != nil {
		return nil, err
	}
	return preco, nil
}

// HistoricoPrecos lists the price history of the pair, newest first.
func (s *PrecoService) HistoricoPrecos(empresaID, tipoServicoID string) ([]*entity.PrecoTipoEmpresa, error) {
	return s.PrecoRepo.FindHistorico(empresaID, tipoServicoID)
}
