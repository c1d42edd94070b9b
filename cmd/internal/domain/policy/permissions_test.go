package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solartrack/cmd/internal/domain/entity"
)

type fakeRoleConfigRepo struct {
	configs map[string]*entity.RoleConfig
	err     error
	calls   int
}

func (f *fakeRoleConfigRepo) FindByRole(role string) (*entity.RoleConfig, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.configs[role], nil
}

func TestPermissionsForFallsBackToDefaults(t *testing.T) {
	eval := NewEvaluator(&fakeRoleConfigRepo{})

	perms, err := eval.PermissionsFor(entity.RoleFiscal)
	require.NoError(t, err)
	assert.Contains(t, perms, "relatorios_export")
	assert.NotContains(t, perms, "lancamentos_create")
}

func TestPermissionsForPrefersOverride(t *testing.T) {
	repo := &fakeRoleConfigRepo{configs: map[string]*entity.RoleConfig{
		entity.RoleUsuario: {Role: entity.RoleUsuario, Permissoes: []string{"dashboard_view", "medicoes_export"}},
	}}
	eval := NewEvaluator(repo)

	ok, err := eval.HasPermission(entity.RoleUsuario, "medicoes_export")
	require.NoError(t, err)
	assert.True(t, ok)

	// The default set for usuario does not carry lancamentos_view, and
	// the override must fully replace the defaults, not merge.
	ok, err = eval.HasPermission(entity.RoleUsuario, "lancamentos_view")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionsForUnknownRoleIsEmpty(t *testing.T) {
	eval := NewEvaluator(&fakeRoleConfigRepo{})

	perms, err := eval.PermissionsFor("intruso")
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	eval := NewEvaluator(&fakeRoleConfigRepo{})

	any, err := eval.HasAnyPermission(entity.RoleOperador, []string{"permissoes_manage", "clientes_create"})
	require.NoError(t, err)
	assert.True(t, any)

	any, err = eval.HasAnyPermission(entity.RoleOperador, []string{"permissoes_manage", "usuarios_manage"})
	require.NoError(t, err)
	assert.False(t, any)

	all, err := eval.HasAllPermissions(entity.RoleOperador, []string{"lancamentos_view", "lancamentos_create"})
	require.NoError(t, err)
	assert.True(t, all)

	all, err = eval.HasAllPermissions(entity.RoleOperador, []string{"lancamentos_view", "lancamentos_delete"})
	require.NoError(t, err)
	assert.False(t, all)
}

func TestCacheAndInvalidate(t *testing.T) {
	repo := &fakeRoleConfigRepo{}
	eval := NewEvaluator(repo)

	_, err := eval.PermissionsFor(entity.RoleAdministrador)
	require.NoError(t, err)
	_, err = eval.PermissionsFor(entity.RoleAdministrador)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read should hit the cache")

	eval.Invalidate(entity.RoleAdministrador)
	_, err = eval.PermissionsFor(entity.RoleAdministrador)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestRepositoryErrorPropagates(t *testing.T) {
	eval := NewEvaluator(&fakeRoleConfigRepo{err: errors.New("db offline")})

	_, err := eval.PermissionsFor(entity.RoleFiscal)
	assert.Error(t, err)
}
