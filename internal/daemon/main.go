// Package daemon bootstraps the database: it opens the configured gorm
// engine, migrates the schema and seeds the initial policy data.
package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/config"
	"github.com/go-permafrost/permafrost/internal/db/dsn"
	"github.com/go-permafrost/permafrost/internal/db/models"
)

// Open connects to the configured database engine and migrates the schema.
// TranslateError is enabled so unique constraint violations surface as
// gorm.ErrDuplicatedKey on every engine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case "mysql":
		dialector = gormmysql.Open(dsn.Create(cfg))
	case "postgres":
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case "sqlite":
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Errorf("unsupported gorm engine %q", cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Permission{},
		&models.GroupPermission{},
		&models.UserGroup{},
		&models.Role{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
