package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite/repository"
	"solartrack/cmd/internal/service/export"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type MedicaoRepository interface {
	FindAll() ([]*entity.MedicaoSalva, error)
	FindByID(id string) (*entity.MedicaoSalva, error)
	Save(medicao *entity.MedicaoSalva) error
	Delete(medicao *entity.MedicaoSalva) error
}

type DefaultMedicaoService struct {
	MedicaoRepo    MedicaoRepository
	LancamentoRepo LancamentoRepository
	Historico      *HistoricoService
	Validate       *validator.Validate
}

func NewMedicaoService(
	medicaoRepo MedicaoRepository,
	lancamentoRepo LancamentoRepository,
	historico *HistoricoService,
	validate *validator.Validate,
) *DefaultMedicaoService {
	return &DefaultMedicaoService{
		MedicaoRepo:    medicaoRepo,
		LancamentoRepo: lancamentoRepo,
		Historico:      historico,
		Validate:       validate,
	}
}

// GerarRelatorio runs the filtered report query and returns the rows
// together with the three aggregate figures.
func (s *DefaultMedicaoService) GerarRelatorio(filtros *contract.FiltrosRelatorio) (*contract.RelatorioResponse, apierror.ErrorResponse) {
	utils.Sanitize(filtros)
	if valerr := s.Validate.Struct(filtros); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	lancamentos, resumo, apierr := s.consultar(filtros)
	if apierr != nil {
		return nil, apierr
	}

	resp := &contract.RelatorioResponse{
		Lancamentos: make([]*contract.LancamentoResponse, len(lancamentos)),
		Resumo: contract.ResumoRelatorio{
			TotalLancamentos: resumo.TotalLancamentos,
			TotalClientes:    resumo.TotalClientes,
			TotalValor:       resumo.TotalValor.StringFixed(2),
		},
	}
	for i, l := range lancamentos {
		resp.Lancamentos[i] = toLancamentoResponse(l)
	}
	return resp, nil
}

// SalvarMedicao names the current report and caches its totals. The
// filters are stored verbatim so later exports re-run the same query
// against live data.
func (s *DefaultMedicaoService) SalvarMedicao(actor *entity.Usuario, req *contract.SalvarMedicaoRequest) (*contract.MedicaoResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	utils.Sanitize(&req.Filtros)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	_, resumo, apierr := s.consultar(&req.Filtros)
	if apierr != nil {
		return nil, apierr
	}

	medicao := &entity.MedicaoSalva{
		ID:               uuid.NewString(),
		Nome:             req.Nome,
		DataInicio:       req.Filtros.DataInicio,
		DataFim:          req.Filtros.DataFim,
		TotalLancamentos: resumo.TotalLancamentos,
		TotalClientes:    resumo.TotalClientes,
		TotalValor:       resumo.TotalValor,
		FiltrosAplicados: entity.FiltrosMedicao{
			Equipes:  req.Filtros.Equipes,
			Cliente:  req.Filtros.Cliente,
			TipoData: req.Filtros.TipoData,
		},
		CreatedAt: utils.NowUTC(),
	}

	if err := s.MedicaoRepo.Save(medicao); err != nil {
		log.Errorf("failed to save medição: %v", err)
		return nil, apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "medicao", medicao.ID, entity.AcaoCriar, medicao.Nome)
	return toMedicaoResponse(medicao), nil
}

func (s *DefaultMedicaoService) GetMedicoes() ([]*contract.MedicaoResponse, apierror.ErrorResponse) {
	medicoes, err := s.MedicaoRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch medições: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.MedicaoResponse, len(medicoes))
	for i, m := range medicoes {
		resp[i] = toMedicaoResponse(m)
	}
	return resp, nil
}

func (s *DefaultMedicaoService) DeleteMedicao(actor *entity.Usuario, id string) apierror.ErrorResponse {
	medicao, err := s.MedicaoRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch medição: %v", err)
		return apierror.InternalServerError
	}
	if medicao == nil {
		return apierror.NotFoundError
	}

	if err := s.MedicaoRepo.Delete(medicao); err != nil {
		log.Errorf("failed to delete medição: %v", err)
		return apierror.InternalServerError
	}

	s.Historico.Registrar(actor, "medicao", medicao.ID, entity.AcaoExcluir, medicao.Nome)
	return nil
}

// Exportar renders the current report as CSV or PDF and returns the
// bytes plus the suggested file name.
func (s *DefaultMedicaoService) Exportar(filtros *contract.FiltrosRelatorio, nome, formato string) ([]byte, string, apierror.ErrorResponse) {
	utils.Sanitize(filtros)
	if valerr := s.Validate.Struct(filtros); valerr != nil {
		return nil, "", apierror.FromValidationError(valerr)
	}
	return s.exportar(filtros, nome, formato)
}

// ExportarMedicao re-exports a saved measurement. The stored filters
// are re-run against live lançamentos, so the output reflects edits
// made after the snapshot; the cached totals are only a bookmark.
func (s *DefaultMedicaoService) ExportarMedicao(id, formato string) ([]byte, string, apierror.ErrorResponse) {
	medicao, err := s.MedicaoRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch medição: %v", err)
		return nil, "", apierror.InternalServerError
	}
	if medicao == nil {
		return nil, "", apierror.NotFoundError
	}

	filtros := &contract.FiltrosRelatorio{
		DataInicio: medicao.DataInicio,
		DataFim:    medicao.DataFim,
		TipoData:   medicao.FiltrosAplicados.TipoData,
		Equipes:    medicao.FiltrosAplicados.Equipes,
		Cliente:    medicao.FiltrosAplicados.Cliente,
	}
	return s.exportar(filtros, medicao.Nome, formato)
}

func (s *DefaultMedicaoService) exportar(filtros *contract.FiltrosRelatorio, nome, formato string) ([]byte, string, apierror.ErrorResponse) {
	lancamentos, resumo, apierr := s.consultar(filtros)
	if apierr != nil {
		return nil, "", apierr
	}

	agora := time.Now().UTC()
	relatorio := &export.Relatorio{
		Nome:          nome,
		DataInicio:    filtros.DataInicio,
		DataFim:       filtros.DataFim,
		GeradoEm:      agora,
		Lancamentos:   lancamentos,
		TotalClientes: resumo.TotalClientes,
		TotalValor:    resumo.TotalValor,
	}

	var (
		payload []byte
		err     error
	)
	switch formato {
	case "pdf":
		payload, err = export.WritePDF(relatorio)
	case "csv":
		payload, err = export.WriteCSV(relatorio)
	default:
		verr := apierror.NewStructured(400)
		verr.Add("formato", "Formato de exportação inválido, use csv ou pdf")
		return nil, "", verr
	}
	if err != nil {
		log.Errorf("failed to render %s export: %v", formato, err)
		return nil, "", apierror.InternalServerError
	}
	return payload, export.Filename(nome, formato, agora), nil
}

func (s *DefaultMedicaoService) consultar(filtros *contract.FiltrosRelatorio) ([]*entity.Lancamento, *entity.ResumoMedicao, apierror.ErrorResponse) {
	lancamentos, err := s.LancamentoRepo.FindFiltered(repository.FiltroLancamentos{
		DataInicio: filtros.DataInicio,
		DataFim:    filtros.DataFim,
		TipoData:   filtros.TipoData,
		EquipeIDs:  filtros.Equipes,
		Cliente:    filtros.Cliente,
	})
	if err != nil {
		log.Errorf("failed to run report query: %v", err)
		return nil, nil, apierror.InternalServerError
	}
	return lancamentos, resumir(lancamentos), nil
}

// resumir computes the three report aggregates. Distinct clients are
// counted by id when one exists, otherwise by the denormalized name, so
// entries predating client linking still count once per person.
func resumir(lancamentos []*entity.Lancamento) *entity.ResumoMedicao {
	clientes := map[string]struct{}{}
	total := decimal.Zero
	for _, l := range lancamentos {
		chave := l.ClienteID
		if chave == "" {
			chave = l.NomeCliente
		}
		clientes[chave] = struct{}{}
		total = total.Add(l.ValorServico)
	}

	return &entity.ResumoMedicao{
		TotalLancamentos: len(lancamentos),
		TotalClientes:    len(clientes),
		TotalValor:       total,
	}
}

func toMedicaoResponse(m *entity.MedicaoSalva) *contract.MedicaoResponse {
	return &contract.MedicaoResponse{
		ID:               m.ID,
		Nome:             m.Nome,
		DataInicio:       m.DataInicio,
		DataFim:          m.DataFim,
		TotalLancamentos: m.TotalLancamentos,
		TotalClientes:    m.TotalClientes,
		TotalValor:       m.TotalValor.StringFixed(2),
		FiltrosAplicados: contract.FiltrosRelatorio{
			DataInicio: m.DataInicio,
			DataFim:    m.DataFim,
			TipoData:   m.FiltrosAplicados.TipoData,
			Equipes:    m.FiltrosAplicados.Equipes,
			Cliente:    m.FiltrosAplicados.Cliente,
		},
		CreatedAt: utils.FormatEpoch(m.CreatedAt),
	}
}
