package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type EmpresaService interface {
	GetEmpresas() ([]*contract.EmpresaResponse, apierror.ErrorResponse)
	GetEmpresa(id string) (*contract.EmpresaResponse, apierror.ErrorResponse)
	CreateEmpresa(actor *entity.Usuario, req *contract.EmpresaRequest) (*contract.EmpresaResponse, apierror.ErrorResponse)
	UpdateEmpresa(actor *entity.Usuario, id string, req *contract.EmpresaRequest) (*contract.EmpresaResponse, apierror.ErrorResponse)
	DeleteEmpresa(actor *entity.Usuario, id string) apierror.ErrorResponse
	DefinirPreco(actor *entity.Usuario, empresaID string, req *contract.PrecoEmpresaRequest) (*contract.PrecoEmpresaResponse, apierror.ErrorResponse)
	GetHistoricoPrecos(empresaID, tipoServicoID string) ([]*contract.PrecoEmpresaResponse, apierror.ErrorResponse)
}

type DefaultEmpresaRoute struct {
	EmpresaService EmpresaService
}

func NewEmpresaRoute(empresaService EmpresaService) *DefaultEmpresaRoute {
	return &DefaultEmpresaRoute{EmpresaService: empresaService}
}

func (e *DefaultEmpresaRoute) GetEmpresas(c echo.Context) error {
	empresas, apierr := e.EmpresaService.GetEmpresas()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"empresas": empresas}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEmpresaRoute) GetEmpresa(c echo.Context) error {
	empresa, apierr := e.EmpresaService.GetEmpresa(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, empresa)
}

func (e *DefaultEmpresaRoute) CreateEmpresa(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.EmpresaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	empresa, apierr := e.EmpresaService.CreateEmpresa(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, empresa)
}

func (e *DefaultEmpresaRoute) UpdateEmpresa(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.EmpresaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	empresa, apierr := e.EmpresaService.UpdateEmpresa(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, empresa)
}

func (e *DefaultEmpresaRoute) DeleteEmpresa(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := e.EmpresaService.DeleteEmpresa(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (e *DefaultEmpresaRoute) DefinirPreco(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.PrecoEmpresaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	preco, apierr := e.EmpresaService.DefinirPreco(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, preco)
}

func (e *DefaultEmpresaRoute) GetHistoricoPrecos(c echo.Context) error {
	precos, apierr := e.EmpresaService.GetHistoricoPrecos(c.Param("id"), c.QueryParam("tipo_servico_id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"precos": precos}
	return c.JSON(http.StatusOK, &resp)
}
