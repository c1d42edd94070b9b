package sqlite

import "gorm.io/gorm"

// TabelasEsperadas lists every table the application schema requires,
// by the names gorm derives from the entities.
var TabelasEsperadas = []string{
	"empresas",
	"equipes",
	"clientes",
	"tipo_servicos",
	"lancamentos",
	"medicao_salvas",
	"preco_tipo_empresas",
	"configuracao_precos",
	"usuarios",
	"role_configs",
	"historicos",
}

// VerificarEstrutura reports which expected tables exist. It backs the
// structure-check diagnostic endpoint and never mutates the schema;
// repairing is left to AutoMigrate on restart.
func VerificarEstrutura(db *gorm.DB) (map[string]bool, bool) {
	tabelas := make(map[string]bool, len(TabelasEsperadas))
	integra := true
	for _, nome := range TabelasEsperadas {
		ok := db.Migrator().HasTable(nome)
		tabelas[nome] = ok
		if !ok {
			integra = false
		}
	}
	return tabelas, integra
}
