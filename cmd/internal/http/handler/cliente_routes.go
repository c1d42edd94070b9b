package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type ClienteService interface {
	GetClientes(busca string) ([]*contract.ClienteResponse, apierror.ErrorResponse)
	GetCliente(id string) (*contract.ClienteResponse, apierror.ErrorResponse)
	CreateCliente(actor *entity.Usuario, req *contract.ClienteRequest) (*contract.ClienteResponse, apierror.ErrorResponse)
	UpdateCliente(actor *entity.Usuario, id string, req *contract.ClienteRequest) (*contract.ClienteResponse, apierror.ErrorResponse)
	DeleteCliente(actor *entity.Usuario, id string) apierror.ErrorResponse
	VerificarOuCriar(actor *entity.Usuario, req *contract.VerificarClienteRequest) (*contract.VerificarClienteResponse, apierror.ErrorResponse)
	UltimaDataContrato(clienteID string) (string, apierror.ErrorResponse)
}

type DefaultClienteRoute struct {
	ClienteService ClienteService
}

func NewClienteRoute(clienteService ClienteService) *DefaultClienteRoute {
	return &DefaultClienteRoute{ClienteService: clienteService}
}

func (r *DefaultClienteRoute) GetClientes(c echo.Context) error {
	clientes, apierr := r.ClienteService.GetClientes(c.QueryParam("busca"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"clientes": clientes}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultClienteRoute) GetCliente(c echo.Context) error {
	cliente, apierr := r.ClienteService.GetCliente(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, cliente)
}

func (r *DefaultClienteRoute) CreateCliente(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ClienteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	cliente, apierr := r.ClienteService.CreateCliente(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, cliente)
}

func (r *DefaultClienteRoute) UpdateCliente(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ClienteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	cliente, apierr := r.ClienteService.UpdateCliente(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, cliente)
}

func (r *DefaultClienteRoute) DeleteCliente(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := r.ClienteService.DeleteCliente(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultClienteRoute) GetUltimaDataContrato(c echo.Context) error {
	data, apierr := r.ClienteService.UltimaDataContrato(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"ultima_data_contrato": nil}
	if data != "" {
		resp["ultima_data_contrato"] = data
	}
	return c.JSON(http.StatusOK, &resp)
}

// VerificarCliente backs the entry form: exact-name lookup, creating
// the client when absent.
func (r *DefaultClienteRoute) VerificarCliente(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.VerificarClienteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := r.ClienteService.VerificarOuCriar(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	status := http.StatusOK
	if resp.Criado {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}
