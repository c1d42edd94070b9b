package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type UsuarioService interface {
	GetUsuarios() ([]*contract.UsuarioResponse, apierror.ErrorResponse)
	CreateUsuario(actor *entity.Usuario, req *contract.UsuarioRequest) (*contract.UsuarioResponse, apierror.ErrorResponse)
	UpdateUsuario(actor *entity.Usuario, id string, req *contract.UpdateUsuarioRequest) (*contract.UsuarioResponse, apierror.ErrorResponse)
}

type DefaultUsuarioRoute struct {
	UsuarioService UsuarioService
}

func NewUsuarioRoute(usuarioService UsuarioService) *DefaultUsuarioRoute {
	return &DefaultUsuarioRoute{UsuarioService: usuarioService}
}

func (u *DefaultUsuarioRoute) GetUsuarios(c echo.Context) error {
	usuarios, apierr := u.UsuarioService.GetUsuarios()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"usuarios": usuarios}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUsuarioRoute) CreateUsuario(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UsuarioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	usuario, apierr := u.UsuarioService.CreateUsuario(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, usuario)
}

func (u *DefaultUsuarioRoute) UpdateUsuario(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateUsuarioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	usuario, apierr := u.UsuarioService.UpdateUsuario(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, usuario)
}
