package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite/repository"
)

type fakeMedicaoRepo struct {
	porID map[string]*entity.MedicaoSalva
}

func (f *fakeMedicaoRepo) FindAll() ([]*entity.MedicaoSalva, error) {
	all := make([]*entity.MedicaoSalva, 0, len(f.porID))
	for _, m := range f.porID {
		all = append(all, m)
	}
	return all, nil
}

func (f *fakeMedicaoRepo) FindByID(id string) (*entity.MedicaoSalva, error) {
	return f.porID[id], nil
}

func (f *fakeMedicaoRepo) Save(m *entity.MedicaoSalva) error {
	f.porID[m.ID] = m
	return nil
}

func (f *fakeMedicaoRepo) Delete(m *entity.MedicaoSalva) error {
	delete(f.porID, m.ID)
	return nil
}

type fakeRelatorioLancamentoRepo struct {
	fakeLancamentoRepo
	filtered []*entity.Lancamento
	lastF    repository.FiltroLancamentos
}

func (f *fakeRelatorioLancamentoRepo) FindFiltered(filtro repository.FiltroLancamentos) ([]*entity.Lancamento, error) {
	f.lastF = filtro
	return f.filtered, nil
}

func relatorioEntries() []*entity.Lancamento {
	equipe := &entity.Equipe{
		ID:      "eq-1",
		Nome:    "Alfa",
		Empresa: &entity.Empresa{ID: "emp-1", Nome: "Sol Forte"},
	}
	return []*entity.Lancamento{
		{
			ID: "l1", Equipe: equipe, ClienteID: "cli-1", NomeCliente: "Maria Souza",
			DataContrato: "2025-03-10", TipoServico: entity.ServicoInstalacao,
			ValorServico: dec("100"),
		},
		{
			ID: "l2", Equipe: equipe, ClienteID: "cli-1", NomeCliente: "Maria Souza",
			DataContrato: "2025-03-10", TipoServico: entity.ServicoAditivo,
			TipoAditivo: "Instalação", ValorServico: dec("70"),
		},
		{
			ID: "l3", Equipe: equipe, ClienteID: "cli-2", NomeCliente: "João Lima",
			DataContrato: "2025-03-12", TipoServico: entity.ServicoDesconto,
			MotivoDesconto: "Fidelização", ValorServico: dec("-50"),
		},
	}
}

func newMedicaoFixture(t *testing.T) (*DefaultMedicaoService, *fakeMedicaoRepo, *fakeRelatorioLancamentoRepo) {
	t.Helper()
	medicoes := &fakeMedicaoRepo{porID: map[string]*entity.MedicaoSalva{}}
	lancamentos := &fakeRelatorioLancamentoRepo{filtered: relatorioEntries()}
	svc := NewMedicaoService(medicoes, lancamentos, NewHistoricoService(&fakeHistoricoRepo{}), newTestValidator(t))
	return svc, medicoes, lancamentos
}

func TestGerarRelatorioAggregates(t *testing.T) {
	svc, _, _ := newMedicaoFixture(t)

	resp, apierr := svc.GerarRelatorio(&contract.FiltrosRelatorio{})
	require.Nil(t, apierr)

	// Three entries, two distinct clients, 100 + 70 - 50 = 120.
	assert.Equal(t, 3, resp.Resumo.TotalLancamentos)
	assert.Equal(t, 2, resp.Resumo.TotalClientes)
	assert.Equal(t, "120.00", resp.Resumo.TotalValor)
	assert.Len(t, resp.Lancamentos, 3)
}

func TestGerarRelatorioPassesFilters(t *testing.T) {
	svc, _, lancamentos := newMedicaoFixture(t)

	_, apierr := svc.GerarRelatorio(&contract.FiltrosRelatorio{
		DataInicio: "2025-03-01",
		DataFim:    "2025-03-31",
		TipoData:   "data_execucao",
		Equipes:    []string{"eq-1"},
		Cliente:    "Maria",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "2025-03-01", lancamentos.lastF.DataInicio)
	assert.Equal(t, "data_execucao", lancamentos.lastF.TipoData)
	assert.Equal(t, []string{"eq-1"}, lancamentos.lastF.EquipeIDs)
	assert.Equal(t, "Maria", lancamentos.lastF.Cliente)
}

func TestSalvarMedicaoCachesTotals(t *testing.T) {
	svc, medicoes, _ := newMedicaoFixture(t)

	resp, apierr := svc.SalvarMedicao(nil, &contract.SalvarMedicaoRequest{
		Nome:    "Medição Março",
		Filtros: contract.FiltrosRelatorio{DataInicio: "2025-03-01", DataFim: "2025-03-31"},
	})
	require.Nil(t, apierr)

	assert.Equal(t, 3, resp.TotalLancamentos)
	assert.Equal(t, "120.00", resp.TotalValor)

	saved := medicoes.porID[resp.ID]
	require.NotNil(t, saved)
	assert.Equal(t, "2025-03-01", saved.DataInicio)
	assert.Equal(t, "120.00", saved.TotalValor.StringFixed(2))
}

func TestExportarMedicaoReflectsLiveData(t *testing.T) {
	svc, _, lancamentos := newMedicaoFixture(t)

	saved, apierr := svc.SalvarMedicao(nil, &contract.SalvarMedicaoRequest{
		Nome:    "Medição Março",
		Filtros: contract.FiltrosRelatorio{DataInicio: "2025-03-01"},
	})
	require.Nil(t, apierr)

	// An entry is edited after the snapshot; the re-export must carry
	// the live value, not the cached one.
	lancamentos.filtered[0].ValorServico = dec("999")

	payload, filename, apierr := svc.ExportarMedicao(saved.ID, "csv")
	require.Nil(t, apierr)

	csv := string(payload)
	assert.Contains(t, csv, "999.00")
	assert.NotContains(t, csv, "100.00")
	assert.True(t, strings.HasPrefix(filename, "medicao-medi-o-mar-o-"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))
}

func TestExportarRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := newMedicaoFixture(t)

	_, _, apierr := svc.Exportar(&contract.FiltrosRelatorio{}, "x", "xlsx")
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestExportarPDFProducesDocument(t *testing.T) {
	svc, _, _ := newMedicaoFixture(t)

	payload, filename, apierr := svc.Exportar(&contract.FiltrosRelatorio{}, "Relatório", "pdf")
	require.Nil(t, apierr)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
}

func TestDeleteMedicao(t *testing.T) {
	svc, medicoes, _ := newMedicaoFixture(t)

	saved, apierr := svc.SalvarMedicao(nil, &contract.SalvarMedicaoRequest{Nome: "Temporária"})
	require.Nil(t, apierr)

	require.Nil(t, svc.DeleteMedicao(nil, saved.ID))
	assert.Empty(t, medicoes.porID)

	apierr = svc.DeleteMedicao(nil, saved.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}
