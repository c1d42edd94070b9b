package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type TipoServicoService interface {
	GetTiposServico(somenteAtivos bool) ([]*contract.TipoServicoResponse, apierror.ErrorResponse)
	UpdateTipoServico(actor *entity.Usuario, id string, req *contract.UpdateTipoServicoRequest) (*contract.TipoServicoResponse, apierror.ErrorResponse)
}

type DefaultTipoServicoRoute struct {
	TipoServicoService TipoServicoService
}

func NewTipoServicoRoute(tipoServicoService TipoServicoService) *DefaultTipoServicoRoute {
	return &DefaultTipoServicoRoute{TipoServicoService: tipoServicoService}
}

func (t *DefaultTipoServicoRoute) GetTiposServico(c echo.Context) error {
	somenteAtivos := c.QueryParam("ativos") == "true"

	tipos, apierr := t.TipoServicoService.GetTiposServico(somenteAtivos)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tipos_servico": tipos}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTipoServicoRoute) UpdateTipoServico(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateTipoServicoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	tipo, apierr := t.TipoServicoService.UpdateTipoServico(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, tipo)
}
