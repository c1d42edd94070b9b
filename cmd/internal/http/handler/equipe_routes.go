package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type EquipeService interface {
	GetEquipes(empresaID string) ([]*contract.EquipeResponse, apierror.ErrorResponse)
	CreateEquipe(actor *entity.Usuario, req *contract.EquipeRequest) (*contract.EquipeResponse, apierror.ErrorResponse)
	UpdateEquipe(actor *entity.Usuario, id string, req *contract.EquipeRequest) (*contract.EquipeResponse, apierror.ErrorResponse)
	DeleteEquipe(actor *entity.Usuario, id string) apierror.ErrorResponse
}

type DefaultEquipeRoute struct {
	EquipeService EquipeService
}

func NewEquipeRoute(equipeService EquipeService) *DefaultEquipeRoute {
	return &DefaultEquipeRoute{EquipeService: equipeService}
}

func (e *DefaultEquipeRoute) GetEquipes(c echo.Context) error {
	equipes, apierr := e.EquipeService.GetEquipes(c.QueryParam("empresa_id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"equipes": equipes}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEquipeRoute) CreateEquipe(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.EquipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	equipe, apierr := e.EquipeService.CreateEquipe(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, equipe)
}

func (e *DefaultEquipeRoute) UpdateEquipe(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.EquipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	equipe, apierr := e.EquipeService.UpdateEquipe(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, equipe)
}

func (e *DefaultEquipeRoute) DeleteEquipe(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := e.EquipeService.DeleteEquipe(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
