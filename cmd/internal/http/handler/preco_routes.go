package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type PrecoConfigService interface {
	GetConfiguracoes() ([]*contract.ConfiguracaoPrecoResponse, apierror.ErrorResponse)
	DefinirConfiguracao(actor *entity.Usuario, req *contract.ConfiguracaoPrecoRequest) (*contract.ConfiguracaoPrecoResponse, apierror.ErrorResponse)
}

type DefaultPrecoRoute struct {
	PrecoConfigService PrecoConfigService
}

func NewPrecoRoute(precoConfigService PrecoConfigService) *DefaultPrecoRoute {
	return &DefaultPrecoRoute{PrecoConfigService: precoConfigService}
}

func (p *DefaultPrecoRoute) GetConfiguracoes(c echo.Context) error {
	configs, apierr := p.PrecoConfigService.GetConfiguracoes()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"configuracoes": configs}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPrecoRoute) DefinirConfiguracao(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ConfiguracaoPrecoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	config, apierr := p.PrecoConfigService.DefinirConfiguracao(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, config)
}
