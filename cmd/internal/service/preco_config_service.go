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

type PrecoConfigRepository interface {
	FindConfiguracao(chave string) (*entity.ConfiguracaoPreco, error)
	SaveConfiguracao(config *entity.ConfiguracaoPreco) error
}

// DefaultPrecoConfigService manages the global default unit prices,
// the last step of the pricing cascade before the built-in constants.
type DefaultPrecoConfigService struct {
	Repo      PrecoConfigRepository
	Historico *HistoricoService
	Validate  *validator.Validate
}

func NewPrecoConfigService(repo PrecoConfigRepository, historico *HistoricoService, validate *validator.Validate) *DefaultPrecoConfigService {
	return &DefaultPrecoConfigService{
		Repo:      repo,
		Historico: historico,
		Validate:  validate,
	}
}

func (s *DefaultPrecoConfigService) GetConfiguracoes() ([]*contract.ConfiguracaoPrecoResponse, apierror.ErrorResponse) {
	padroes := []struct {
		chave string
		valor decimal.Decimal
	}{
		{entity.ChaveValorPainelDefault, ValorPainelPadrao},
		{entity.ChaveValorKwpDefault, ValorKwpPadrao},
	}

	resp := make([]*contract.ConfiguracaoPrecoResponse, 0, len(padroes))
	for _, p := range padroes {
		config, err := s.Repo.FindConfiguracao(p.chave)
		if err != nil {
			log.Errorf("failed to fetch pricing configuration: %v", err)
			return nil, apierror.InternalServerError
		}

		if config == nil {
			resp = append(resp, &contract.ConfiguracaoPrecoResponse{
				Chave:  p.chave,
				Valor:  p.valor.StringFixed(2),
				Padrao: true,
			})
			continue
		}
		resp = append(resp, &contract.ConfiguracaoPrecoResponse{
			Chave:        config.Chave,
			Valor:        config.ValorDecimal.StringFixed(2),
			VigenteDesde: utils.FormatEpoch(config.VigenteDesde),
			Padrao:       false,
		})
	}
	return resp, nil
}

// DefinirConfiguracao inserts a new configuration row. Rows are
// versioned by vigente_desde and never mutated; the newest wins.
func (s *DefaultPrecoConfigService) DefinirConfiguracao(actor *entity.Usuario, req *contract.ConfiguracaoPrecoRequest) (*contract.ConfiguracaoPrecoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	config := &entity.ConfiguracaoPreco{
		ID:           uuid.NewString(),
		Chave:        req.Chave,
		ValorDecimal: decimal.NewFromFloat(req.Valor),
		VigenteDesde: now,
		CreatedAt:    now,
	}

	if err := s.Repo.SaveConfiguracao(config); err != nil {
		log.Errorf("failed to save pricing configuration: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "configuracao_preco", config.ID, entity.AcaoCriar,
		config.Chave+" = "+config.ValorDecimal.StringFixed(2))

	return &contract.ConfiguracaoPrecoResponse{
		Chave:        config.Chave,
		Valor:        config.ValorDecimal.StringFixed(2),
		VigenteDesde: utils.FormatEpoch(config.VigenteDesde),
		Padrao:       false,
	}, nil
}
