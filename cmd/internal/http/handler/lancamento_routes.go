package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite/repository"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type LancamentoService interface {
	GetLancamentos(f repository.FiltroLancamentos) ([]*contract.LancamentoResponse, apierror.ErrorResponse)
	CreateLancamento(actor *entity.Usuario, req *contract.LancamentoRequest) (*contract.LancamentoResponse, apierror.ErrorResponse)
	UpdateLancamento(actor *entity.Usuario, id string, req *contract.LancamentoRequest) (*contract.LancamentoResponse, apierror.ErrorResponse)
	DeleteLancamento(actor *entity.Usuario, id string) apierror.ErrorResponse
	CalcularInstalacao(req *contract.CalculoInstalacaoRequest) (*contract.CalculoInstalacaoResponse, apierror.ErrorResponse)
}

type DefaultLancamentoRoute struct {
	LancamentoService LancamentoService
}

func NewLancamentoRoute(lancamentoService LancamentoService) *DefaultLancamentoRoute {
	return &DefaultLancamentoRoute{LancamentoService: lancamentoService}
}

func (l *DefaultLancamentoRoute) GetLancamentos(c echo.Context) error {
	lancamentos, apierr := l.LancamentoService.GetLancamentos(filtroFromQuery(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"lancamentos": lancamentos}
	return c.JSON(http.StatusOK, &resp)
}

func (l *DefaultLancamentoRoute) CreateLancamento(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.LancamentoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	lancamento, apierr := l.LancamentoService.CreateLancamento(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, lancamento)
}

func (l *DefaultLancamentoRoute) UpdateLancamento(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.LancamentoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	lancamento, apierr := l.LancamentoService.UpdateLancamento(user, c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, lancamento)
}

func (l *DefaultLancamentoRoute) DeleteLancamento(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := l.LancamentoService.DeleteLancamento(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

// CalcularInstalacao previews an installation value without saving.
func (l *DefaultLancamentoRoute) CalcularInstalacao(c echo.Context) error {
	if _, cerr := utils.GetUserFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CalculoInstalacaoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	calc, apierr := l.LancamentoService.CalcularInstalacao(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, calc)
}

func filtroFromQuery(c echo.Context) repository.FiltroLancamentos {
	f := repository.FiltroLancamentos{
		DataInicio: c.QueryParam("data_inicio"),
		DataFim:    c.QueryParam("data_fim"),
		TipoData:   c.QueryParam("tipo_data"),
		Cliente:    c.QueryParam("cliente"),
	}
	if equipes := c.QueryParam("equipes"); equipes != "" {
		f.EquipeIDs = strings.Split(equipes, ",")
	}
	return f
}
