package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/policy"
)

type fakeRoleConfigRepo struct {
	porRole map[string]*entity.RoleConfig
}

func (f *fakeRoleConfigRepo) FindByRole(role string) (*entity.RoleConfig, error) {
	return f.porRole[role], nil
}

func (f *fakeRoleConfigRepo) Save(config *entity.RoleConfig) error {
	f.porRole[config.Role] = config
	return nil
}

func newRoleFixture(t *testing.T) (*DefaultRoleService, *fakeRoleConfigRepo) {
	t.Helper()
	repo := &fakeRoleConfigRepo{porRole: map[string]*entity.RoleConfig{}}
	svc := NewRoleService(repo, policy.NewEvaluator(repo),
		NewHistoricoService(&fakeHistoricoRepo{}), newTestValidator(t))
	return svc, repo
}

func TestUpdateRolePermissionsAdminKeepsManage(t *testing.T) {
	svc, repo := newRoleFixture(t)

	resp, apierr := svc.UpdateRolePermissions(nil, entity.RoleAdministrador, &contract.UpdateRolePermissionsRequest{
		Permissoes: []string{"empresas_view", "lancamentos_view"},
	})
	require.Nil(t, apierr)

	assert.Contains(t, resp.Permissoes, "permissoes_manage")
	assert.Contains(t, repo.porRole[entity.RoleAdministrador].Permissoes, "permissoes_manage")
	assert.False(t, resp.Padrao)
}

func TestUpdateRolePermissionsInvalidatesEvaluator(t *testing.T) {
	svc, _ := newRoleFixture(t)

	antes, apierr := svc.GetRolePermissions(entity.RoleFiscal)
	require.Nil(t, apierr)
	assert.True(t, antes.Padrao)

	_, apierr = svc.UpdateRolePermissions(nil, entity.RoleFiscal, &contract.UpdateRolePermissionsRequest{
		Permissoes: []string{"relatorios_view"},
	})
	require.Nil(t, apierr)

	depois, apierr := svc.GetRolePermissions(entity.RoleFiscal)
	require.Nil(t, apierr)
	assert.False(t, depois.Padrao)
	assert.Equal(t, []string{"relatorios_view"}, depois.Permissoes)
}

func TestUpdateRolePermissionsUnknownRole(t *testing.T) {
	svc, _ := newRoleFixture(t)

	_, apierr := svc.UpdateRolePermissions(nil, "gerente", &contract.UpdateRolePermissionsRequest{
		Permissoes: []string{"empresas_view"},
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}
