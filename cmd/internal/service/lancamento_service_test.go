package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/sqlite/repository"
	"solartrack/cmd/internal/utils/apierror"
	"solartrack/cmd/internal/utils/validators"
)

type fakeLancamentoRepo struct {
	porID map[string]*entity.Lancamento
	saved []*entity.Lancamento
}

func (f *fakeLancamentoRepo) FindByID(id string) (*entity.Lancamento, error) {
	return f.porID[id], nil
}

func (f *fakeLancamentoRepo) FindFiltered(repository.FiltroLancamentos) ([]*entity.Lancamento, error) {
	return f.saved, nil
}

func (f *fakeLancamentoRepo) UltimaDataContrato(string) (string, error) { return "", nil }

func (f *fakeLancamentoRepo) Save(l *entity.Lancamento) error {
	f.saved = append(f.saved, l)
	return nil
}

func (f *fakeLancamentoRepo) Delete(*entity.Lancamento) error { return nil }

type fakeClienteByIDRepo struct {
	clientes map[string]*entity.Cliente
}

func (f *fakeClienteByIDRepo) FindByID(id string) (*entity.Cliente, error) {
	return f.clientes[id], nil
}

type fakeHistoricoRepo struct {
	registros []*entity.Historico
}

func (f *fakeHistoricoRepo) FindRecent(string, int) ([]*entity.Historico, error) {
	return f.registros, nil
}

func (f *fakeHistoricoRepo) Save(r *entity.Historico) error {
	f.registros = append(f.registros, r)
	return nil
}

func (f *fakeHistoricoRepo) DeleteOlderThan(int64) (int64, error) { return 0, nil }

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("datadate", validators.DataDate))
	require.NoError(t, v.RegisterValidation("nodupes", validators.NoDupes))
	return v
}

func newLancamentoFixture(t *testing.T) (*DefaultLancamentoService, *fakeLancamentoRepo) {
	t.Helper()
	precos, _ := newPrecoFixture()
	lancamentos := &fakeLancamentoRepo{porID: map[string]*entity.Lancamento{}}
	clientes := &fakeClienteByIDRepo{clientes: map[string]*entity.Cliente{
		"cli-1": {ID: "cli-1", Nome: "Maria Souza", DataContrato: "2025-03-10"},
		"cli-2": {ID: "cli-2", Nome: "João Lima", DataContrato: "2025-04-02"},
	}}

	svc := NewLancamentoService(
		lancamentos,
		precos.EquipeRepo,
		precos.EmpresaRepo,
		clientes,
		precos.TipoServicoRepo,
		precos,
		NewHistoricoService(&fakeHistoricoRepo{}),
		newTestValidator(t),
	)
	return svc, lancamentos
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCreateInstalacaoPorPainel(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	resp, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:      "eq-1", // belongs to emp-painel, blanket rate 85
		ClienteID:     "cli-1",
		DataExecucao:  "2025-04-01",
		TipoServico:   entity.ServicoInstalacao,
		TipoServicoID: entity.ServicoInstalacaoPainel,
		NumeroPaineis: intPtr(10),
	})
	require.Nil(t, apierr)

	assert.Equal(t, "850.00", resp.ValorServico)
	assert.Equal(t, string(entity.FonteServico), resp.FontePreco)
	assert.Equal(t, "Maria Souza", resp.NomeCliente)
	assert.Equal(t, "2025-03-10", resp.DataContrato)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "850.00", repo.saved[0].ValorServico.StringFixed(2))
}

func TestCreateInstalacaoPorKwp(t *testing.T) {
	svc, _ := newLancamentoFixture(t)
	precoSvc := svc.Precos
	precoSvc.EquipeRepo.(*fakeEquipeRepo).equipes["eq-kwp"] = &entity.Equipe{
		ID: "eq-kwp", Nome: "Beta", EmpresaID: "emp-kwp",
	}

	// 10 panels of 550 W = 5.50 kWp, at 1.20 per kWp = 6.60.
	resp, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:       "eq-kwp",
		ClienteID:      "cli-1",
		DataExecucao:   "2025-04-01",
		TipoServico:    entity.ServicoInstalacao,
		TipoServicoID:  entity.ServicoInstalacaoKwp,
		NumeroPaineis:  intPtr(10),
		PotenciaPainel: intPtr(550),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "6.60", resp.ValorServico)
}

func TestCreateInstalacaoKwpRequiresPotencia(t *testing.T) {
	svc, _ := newLancamentoFixture(t)
	svc.Precos.EquipeRepo.(*fakeEquipeRepo).equipes["eq-kwp"] = &entity.Equipe{
		ID: "eq-kwp", Nome: "Beta", EmpresaID: "emp-kwp",
	}

	_, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:      "eq-kwp",
		ClienteID:     "cli-1",
		DataExecucao:  "2025-04-01",
		TipoServico:   entity.ServicoInstalacao,
		TipoServicoID: entity.ServicoInstalacaoKwp,
		NumeroPaineis: intPtr(10),
	})
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, structured.Errors, "potencia_painel")
}

func TestCreateDescontoStoredNegative(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	resp, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:       "eq-1",
		ClienteID:      "cli-1",
		DataExecucao:   "2025-04-01",
		TipoServico:    entity.ServicoDesconto,
		ValorDesconto:  floatPtr(50),
		MotivoDesconto: "Fidelização",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "-50.00", resp.ValorServico)
	assert.Equal(t, "Fidelização", resp.Descricao)
	require.Len(t, repo.saved, 1)
}

func TestUpdateDescontoDoesNotDoubleNegate(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	created, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:       "eq-1",
		ClienteID:      "cli-1",
		DataExecucao:   "2025-04-01",
		TipoServico:    entity.ServicoDesconto,
		ValorDesconto:  floatPtr(50),
		MotivoDesconto: "Fidelização",
	})
	require.Nil(t, apierr)
	repo.porID[created.ID] = repo.saved[0]

	// Callers may resubmit the negative stored value; Abs keeps the
	// result at -30, never -(-30) or -(-(-50)).
	updated, apierr := svc.UpdateLancamento(nil, created.ID, &contract.LancamentoRequest{
		EquipeID:       "eq-1",
		ClienteID:      "cli-1",
		DataExecucao:   "2025-04-01",
		TipoServico:    entity.ServicoDesconto,
		ValorDesconto:  floatPtr(-30),
		MotivoDesconto: "Fidelização",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "-30.00", updated.ValorServico)
}

func TestCreateAditivoMissingFieldsAnswersPerField(t *testing.T) {
	svc, _ := newLancamentoFixture(t)

	_, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-1",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoAditivo,
	})
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, structured.Errors, "valor_aditivo")
	assert.Contains(t, structured.Errors, "tipo_aditivo")
}

func TestCreateObraCivilJoinsDescricao(t *testing.T) {
	svc, _ := newLancamentoFixture(t)

	resp, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:          "eq-1",
		ClienteID:         "cli-1",
		DataExecucao:      "2025-04-01",
		TipoServico:       entity.ServicoObraCivil,
		ValorObra:         floatPtr(400),
		DescricaoMaterial: "cimento",
		MotivoObra:        "base do inversor",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "cimento - base do inversor", resp.Descricao)
	assert.Equal(t, "400.00", resp.ValorServico)
}

func TestUpdateChangesTypeAndClearsOldFields(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	created, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-1",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoVisitaTecnica,
		ValorVisita:  floatPtr(150),
		MotivoVisita: "Inspeção",
	})
	require.Nil(t, apierr)
	repo.porID[created.ID] = repo.saved[0]

	updated, apierr := svc.UpdateLancamento(nil, created.ID, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-1",
		DataExecucao: "2025-04-02",
		TipoServico:  entity.ServicoAditivo,
		ValorAditivo: floatPtr(200),
		TipoAditivo:  "Instalação",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "200.00", updated.ValorServico)
	assert.Equal(t, "Instalação", updated.TipoAditivo)
	assert.Empty(t, updated.MotivoVisita, "fields of the previous type must be cleared")
}

func TestUpdateSwitchesCliente(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	created, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-1",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoVisitaTecnica,
		ValorVisita:  floatPtr(150),
		MotivoVisita: "Inspeção",
	})
	require.Nil(t, apierr)
	repo.porID[created.ID] = repo.saved[0]

	updated, apierr := svc.UpdateLancamento(nil, created.ID, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-2",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoVisitaTecnica,
		ValorVisita:  floatPtr(150),
		MotivoVisita: "Inspeção",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "cli-2", updated.ClienteID)
	assert.Equal(t, "João Lima", updated.NomeCliente)
	assert.Equal(t, "2025-04-02", updated.DataContrato)
}

func TestUpdateRejectsUnknownCliente(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	created, apierr := svc.CreateLancamento(nil, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-1",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoVisitaTecnica,
		ValorVisita:  floatPtr(150),
		MotivoVisita: "Inspeção",
	})
	require.Nil(t, apierr)
	repo.porID[created.ID] = repo.saved[0]

	_, apierr = svc.UpdateLancamento(nil, created.ID, &contract.LancamentoRequest{
		EquipeID:     "eq-1",
		ClienteID:    "cli-x",
		DataExecucao: "2025-04-01",
		TipoServico:  entity.ServicoVisitaTecnica,
		ValorVisita:  floatPtr(150),
		MotivoVisita: "Inspeção",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestCalcularInstalacaoPreview(t *testing.T) {
	svc, repo := newLancamentoFixture(t)

	resp, apierr := svc.CalcularInstalacao(&contract.CalculoInstalacaoRequest{
		EquipeID:      "eq-1",
		TipoServicoID: entity.ServicoInstalacaoPainel,
		NumeroPaineis: 12,
	})
	require.Nil(t, apierr)
	assert.Equal(t, "1020.00", resp.ValorServico)
	assert.Equal(t, "85.00", resp.ValorUnitario)
	assert.Empty(t, repo.saved, "preview must not persist")
}
