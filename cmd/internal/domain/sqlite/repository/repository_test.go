package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite"
	"solartrack/cmd/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.InitMemory()
	require.NoError(t, err)
	return db
}

// seedEquipe creates the empresa and equipe rows that lançamentos
// reference; the schema enforces the foreign key.
func seedEquipe(t *testing.T, db *gorm.DB, equipeID string) {
	t.Helper()
	now := utils.NowUTC()
	empresaID := "emp-" + equipeID
	require.NoError(t, NewEmpresaRepository(db).Save(&entity.Empresa{
		ID: empresaID, Nome: "Empresa " + equipeID,
		TipoRemuneracao: entity.RemuneracaoPorPainel,
		CreatedAt:       now, UpdatedAt: now,
	}))
	require.NoError(t, NewEquipeRepository(db).Save(&entity.Equipe{
		ID: equipeID, Nome: "Equipe " + equipeID, EmpresaID: empresaID,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func TestSeedCatalogOnInit(t *testing.T) {
	db := newTestDB(t)
	repo := NewTipoServicoRepository(db)

	tipos, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, tipos, 7)

	kwp, err := repo.FindByID(entity.ServicoInstalacaoKwp)
	require.NoError(t, err)
	require.NotNil(t, kwp)
	assert.Equal(t, entity.CobrancaKwp, kwp.ModeloCobranca)
	assert.True(t, kwp.Ativo)
	assert.Nil(t, kwp.ValorUnitario, "installation variants carry no fixed catalog price")
}

func TestPrecoCloseAndInsertKeepsSingleOpenRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPrecoRepository(db)

	now := utils.NowUTC()
	require.NoError(t, repo.Save(&entity.PrecoTipoEmpresa{
		ID: "p1", EmpresaID: "emp-1", TipoServicoID: "instalacao_painel",
		ValorUnitario: decimal.NewFromInt(80), VigenteDesde: now - 1000, CreatedAt: now - 1000,
	}))

	require.NoError(t, repo.FecharVigentes("emp-1", "instalacao_painel", now))
	require.NoError(t, repo.Save(&entity.PrecoTipoEmpresa{
		ID: "p2", EmpresaID: "emp-1", TipoServicoID: "instalacao_painel",
		ValorUnitario: decimal.NewFromInt(92), VigenteDesde: now, CreatedAt: now,
	}))

	vigente, err := repo.FindVigente("emp-1", "instalacao_painel")
	require.NoError(t, err)
	require.NotNil(t, vigente)
	assert.Equal(t, "p2", vigente.ID)
	assert.Equal(t, "92.00", vigente.ValorUnitario.StringFixed(2))

	historico, err := repo.FindHistorico("emp-1", "instalacao_painel")
	require.NoError(t, err)
	require.Len(t, historico, 2)

	abertos := 0
	for _, p := range historico {
		if p.VigenteAte == nil {
			abertos++
		}
	}
	assert.Equal(t, 1, abertos, "closing before inserting must leave one open row")
}

func TestPrecoFindVigenteMissingPair(t *testing.T) {
	db := newTestDB(t)
	repo := NewPrecoRepository(db)

	vigente, err := repo.FindVigente("emp-x", "instalacao_painel")
	require.NoError(t, err)
	assert.Nil(t, vigente)
}

func TestMedicaoSaveRepairsMissingTable(t *testing.T) {
	db := newTestDB(t)
	repo := NewMedicaoRepository(db)

	require.NoError(t, db.Migrator().DropTable(&entity.MedicaoSalva{}))

	medicao := &entity.MedicaoSalva{
		ID:   "m1",
		Nome: "Março",
		FiltrosAplicados: entity.FiltrosMedicao{
			Equipes: []string{"eq-1"},
			Cliente: "Maria",
		},
		TotalValor: decimal.NewFromInt(120),
		CreatedAt:  utils.NowUTC(),
	}
	require.NoError(t, repo.Save(medicao), "missing table must be provisioned and the save retried")

	loaded, err := repo.FindByID("m1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"eq-1"}, loaded.FiltrosAplicados.Equipes)
	assert.Equal(t, "120.00", loaded.TotalValor.StringFixed(2))
}

func TestClienteSearchIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	repo := NewClienteRepository(db)

	now := utils.NowUTC()
	require.NoError(t, repo.Save(&entity.Cliente{ID: "c1", Nome: "Maria Souza", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Save(&entity.Cliente{ID: "c2", Nome: "Mario Prado", CreatedAt: now, UpdatedAt: now}))

	found, err := repo.SearchByNome("mari", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	exato, err := repo.FindByNomeExato("  maria souza ")
	require.NoError(t, err)
	require.NotNil(t, exato)
	assert.Equal(t, "c1", exato.ID)

	nenhum, err := repo.FindByNomeExato("Marina")
	require.NoError(t, err)
	assert.Nil(t, nenhum)
}

func TestLancamentoFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewLancamentoRepository(db)
	seedEquipe(t, db, "eq-1")
	seedEquipe(t, db, "eq-2")

	now := utils.NowUTC()
	seed := []*entity.Lancamento{
		{
			ID: "l1", EquipeID: "eq-1", NomeCliente: "Maria Souza",
			DataContrato: "2025-03-10", DataExecucao: "2025-03-20",
			TipoServico: entity.ServicoInstalacao, ValorServico: decimal.NewFromInt(100),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "l2", EquipeID: "eq-2", NomeCliente: "João Lima",
			DataContrato: "2025-04-02", DataExecucao: "2025-04-05",
			TipoServico: entity.ServicoAditivo, ValorServico: decimal.NewFromInt(70),
			CreatedAt: now + 1, UpdatedAt: now + 1,
		},
	}
	for _, l := range seed {
		require.NoError(t, repo.Save(l))
	}

	marco, err := repo.FindFiltered(FiltroLancamentos{DataInicio: "2025-03-01", DataFim: "2025-03-31"})
	require.NoError(t, err)
	require.Len(t, marco, 1)
	assert.Equal(t, "l1", marco[0].ID)

	porExecucao, err := repo.FindFiltered(FiltroLancamentos{
		DataInicio: "2025-04-01", TipoData: "data_execucao",
	})
	require.NoError(t, err)
	require.Len(t, porExecucao, 1)
	assert.Equal(t, "l2", porExecucao[0].ID)

	porEquipe, err := repo.FindFiltered(FiltroLancamentos{EquipeIDs: []string{"eq-2"}})
	require.NoError(t, err)
	require.Len(t, porEquipe, 1)

	porCliente, err := repo.FindFiltered(FiltroLancamentos{Cliente: "maria"})
	require.NoError(t, err)
	require.Len(t, porCliente, 1)
	assert.Equal(t, "l1", porCliente[0].ID)
}

func TestUltimaDataContrato(t *testing.T) {
	db := newTestDB(t)
	repo := NewLancamentoRepository(db)
	seedEquipe(t, db, "eq-1")

	now := utils.NowUTC()
	require.NoError(t, repo.Save(&entity.Lancamento{
		ID: "l1", EquipeID: "eq-1", ClienteID: "cli-1", NomeCliente: "Maria",
		DataContrato: "2025-02-01", DataExecucao: "2025-02-10",
		TipoServico: entity.ServicoInstalacao, ValorServico: decimal.NewFromInt(1),
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.Save(&entity.Lancamento{
		ID: "l2", EquipeID: "eq-1", ClienteID: "cli-1", NomeCliente: "Maria",
		DataContrato: "2025-03-01", DataExecucao: "2025-03-10",
		TipoServico: entity.ServicoInstalacao, ValorServico: decimal.NewFromInt(1),
		CreatedAt: now, UpdatedAt: now,
	}))

	data, err := repo.UltimaDataContrato("cli-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", data)

	vazio, err := repo.UltimaDataContrato("cli-x")
	require.NoError(t, err)
	assert.Empty(t, vazio)
}
