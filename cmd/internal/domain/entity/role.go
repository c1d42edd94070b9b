package entity

// Built-in role names. Custom permission sets may be configured per
// role, but the role list itself is fixed.
const (
	RoleAdministrador = "administrador"
	RoleFiscal        = "fiscal"
	RoleOperador      = "operador"
	RoleUsuario       = "usuario"
)

// RoleConfig is a per-role permission override persisted in the
// database. When no row exists for a role, the hard-coded defaults
// below apply. The database is the system of record; clients may cache
// but never author permission sets.
type RoleConfig struct {
	Role       string   `gorm:"primaryKey"`
	Permissoes []string `gorm:"serializer:json"`
	UpdatedAt  int64    `gorm:"not null;autoUpdateTime:false"`
}

// DefaultRolePermissions maps each built-in role to its default
// permission-id set.
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		RoleAdministrador: {
			"dashboard_view",
			"empresas_view", "empresas_create", "empresas_edit", "empresas_delete",
			"equipes_view", "equipes_manage",
			"lancamentos_view", "lancamentos_create", "lancamentos_edit", "lancamentos_delete",
			"relatorios_view", "relatorios_export", "relatorios_advanced",
			"medicoes_view", "medicoes_create", "medicoes_export",
			"clientes_view", "clientes_create", "clientes_edit", "clientes_delete",
			"historico_view", "historico_details",
			"usuarios_view", "usuarios_manage",
			"tipos_servico_view", "tipos_servico_manage",
			"permissoes_manage",
			"precos_view", "precos_manage",
		},
		RoleFiscal: {
			"dashboard_view",
			"empresas_view",
			"lancamentos_view",
			"relatorios_view", "relatorios_export", "relatorios_advanced",
			"medicoes_view", "medicoes_export",
			"clientes_view",
			"historico_view", "historico_details",
			"precos_view",
		},
		RoleOperador: {
			"dashboard_view",
			"empresas_view",
			"lancamentos_view", "lancamentos_create", "lancamentos_edit",
			"relatorios_view", "relatorios_export",
			"medicoes_view",
			"clientes_view", "clientes_create", "clientes_edit",
		},
		RoleUsuario: {
			"dashboard_view",
			"empresas_view",
			"lancamentos_view",
			"relatorios_view",
			"medicoes_view",
			"clientes_view",
		},
	}
}
