package sqlite

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
)

func Init() (*gorm.DB, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(".", "database.db")
	}
	return open(dbPath)
}

// InitMemory opens a throwaway in-memory database, used by tests.
func InitMemory() (*gorm.DB, error) {
	return open(":memory:")
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// The equipe delete flow relies on the FK failure to trigger its
	// manual cascade fallback.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.Empresa{},
		&entity.Equipe{},
		&entity.Cliente{},
		&entity.TipoServico{},
		&entity.Lancamento{},
		&entity.MedicaoSalva{},
		&entity.PrecoTipoEmpresa{},
		&entity.ConfiguracaoPreco{},
		&entity.Usuario{},
		&entity.RoleConfig{},
		&entity.Historico{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedTiposServico(db); err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// seedTiposServico inserts missing catalog rows. Idempotent: existing
// rows are left untouched so local edits (deactivation, fixed prices)
// survive restarts.
func seedTiposServico(db *gorm.DB) error {
	for _, tipo := range entity.CatalogoTiposServico() {
		tipo.CreatedAt = utils.NowUTC()
		tipo.UpdatedAt = tipo.CreatedAt
		err := db.Where(entity.TipoServico{ID: tipo.ID}).
			FirstOrCreate(tipo).Error
		if err != nil {
			return err
		}
	}
	return nil
}
