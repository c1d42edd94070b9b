package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type RoleService interface {
	GetRolePermissions(role string) (*contract.RolePermissionsResponse, apierror.ErrorResponse)
	GetAllRolePermissions() ([]*contract.RolePermissionsResponse, apierror.ErrorResponse)
	UpdateRolePermissions(actor *entity.Usuario, role string, req *contract.UpdateRolePermissionsRequest) (*contract.RolePermissionsResponse, apierror.ErrorResponse)
}

type HistoricoService interface {
	GetRecentes(entidade string, limit int) ([]*contract.HistoricoResponse, apierror.ErrorResponse)
}

// DefaultAdminRoute groups the administrative surface: permission
// overrides, the audit log and the schema diagnostic.
type DefaultAdminRoute struct {
	RoleService      RoleService
	HistoricoService HistoricoService
	DB               *gorm.DB
}

func NewAdminRoute(roleService RoleService, historicoService HistoricoService, db *gorm.DB) *DefaultAdminRoute {
	return &DefaultAdminRoute{
		RoleService:      roleService,
		HistoricoService: historicoService,
		DB:               db,
	}
}

func (a *DefaultAdminRoute) GetRolePermissions(c echo.Context) error {
	perms, apierr := a.RoleService.GetRolePermissions(c.Param("role"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, perms)
}

func (a *DefaultAdminRoute) GetAllRolePermissions(c echo.Context) error {
	perms, apierr := a.RoleService.GetAllRolePermissions()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"roles": perms}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAdminRoute) UpdateRolePermissions(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateRolePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	perms, apierr := a.RoleService.UpdateRolePermissions(user, c.Param("role"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, perms)
}

func (a *DefaultAdminRoute) GetHistorico(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("limit", "int"))
		}
		limit = parsed
	}

	registros, apierr := a.HistoricoService.GetRecentes(c.QueryParam("entidade"), limit)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"historico": registros}
	return c.JSON(http.StatusOK, &resp)
}

// VerificarEstrutura reports which expected tables exist, for the
// settings page's diagnostics panel.
func (a *DefaultAdminRoute) VerificarEstrutura(c echo.Context) error {
	tabelas, integra := sqlite.VerificarEstrutura(a.DB)
	return c.JSON(http.StatusOK, &contract.EstruturaResponse{
		Tabelas: tabelas,
		Integra: integra,
	})
}
