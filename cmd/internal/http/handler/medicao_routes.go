package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type MedicaoService interface {
	GerarRelatorio(filtros *contract.FiltrosRelatorio) (*contract.RelatorioResponse, apierror.ErrorResponse)
	SalvarMedicao(actor *entity.Usuario, req *contract.SalvarMedicaoRequest) (*contract.MedicaoResponse, apierror.ErrorResponse)
	GetMedicoes() ([]*contract.MedicaoResponse, apierror.ErrorResponse)
	DeleteMedicao(actor *entity.Usuario, id string) apierror.ErrorResponse
	Exportar(filtros *contract.FiltrosRelatorio, nome, formato string) ([]byte, string, apierror.ErrorResponse)
	ExportarMedicao(id, formato string) ([]byte, string, apierror.ErrorResponse)
}

type DefaultMedicaoRoute struct {
	MedicaoService MedicaoService
}

func NewMedicaoRoute(medicaoService MedicaoService) *DefaultMedicaoRoute {
	return &DefaultMedicaoRoute{MedicaoService: medicaoService}
}

// GerarRelatorio is a POST because the filter set (crew list included)
// does not fit comfortably in a query string.
func (m *DefaultMedicaoRoute) GerarRelatorio(c echo.Context) error {
	var filtros contract.FiltrosRelatorio
	if err := c.Bind(&filtros); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	relatorio, apierr := m.MedicaoService.GerarRelatorio(&filtros)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, relatorio)
}

func (m *DefaultMedicaoRoute) SalvarMedicao(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.SalvarMedicaoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	medicao, apierr := m.MedicaoService.SalvarMedicao(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, medicao)
}

func (m *DefaultMedicaoRoute) GetMedicoes(c echo.Context) error {
	medicoes, apierr := m.MedicaoService.GetMedicoes()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"medicoes": medicoes}
	return c.JSON(http.StatusOK, &resp)
}

func (m *DefaultMedicaoRoute) DeleteMedicao(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := m.MedicaoService.DeleteMedicao(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

// Exportar renders the posted filters straight to a file download.
func (m *DefaultMedicaoRoute) Exportar(c echo.Context) error {
	var req struct {
		Nome    string                    `json:"nome"`
		Filtros contract.FiltrosRelatorio `json:"filtros"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	payload, filename, apierr := m.MedicaoService.Exportar(&req.Filtros, req.Nome, c.Param("formato"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return download(c, payload, filename)
}

// ExportarMedicao re-exports a saved measurement against live data.
func (m *DefaultMedicaoRoute) ExportarMedicao(c echo.Context) error {
	payload, filename, apierr := m.MedicaoService.ExportarMedicao(c.Param("id"), c.Param("formato"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return download(c, payload, filename)
}

func download(c echo.Context, payload []byte, filename string) error {
	contentType := "text/csv; charset=utf-8"
	if len(payload) > 4 && string(payload[:4]) == "%PDF" {
		contentType = "application/pdf"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, payload)
}
