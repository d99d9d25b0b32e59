package daemon

import (
	"errors"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/config"
	"github.com/go-permafrost/permafrost/internal/db/controller/permission"
	"github.com/go-permafrost/permafrost/internal/db/controller/role"
	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

const defaultSiteID = 1

// Seed registers every permission the configured categories reference,
// creates one locked default role per category on the default site and, on a
// fresh database, an initial admin superuser with a random password.
func Seed(_ *config.Config, db *gorm.DB, reg *registry.Registry) error {
	for _, cat := range reg.All() {
		if err := permission.Ensure(db, cat.AllRefs()); err != nil {
			return err
		}

		r, err := role.Create(db, reg, cat.Label, cat.Key, defaultSiteID)
		if err != nil {
			if errors.Is(err, role.ErrDuplicateRole) {
				continue // already seeded
			}

			return err
		}

		if err = db.Model(&models.Role{}).Where("id = ?", r.ID).
			Update("locked", true).Error; err != nil {
			return err
		}

		log.Info().Str("role", r.Name).Str("category", cat.Key).Msg("seeded default role")
	}

	var count int64

	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		password := uniuri.NewLen(uniuri.UUIDLen)

		err := db.Create(
			&models.User{
				Username:  "admin",
				Password:  models.HashPassword(password),
				Active:    true,
				Superuser: true,
			},
		).Error
		if err != nil {
			return err
		}

		// Shown once; change it after the first login.
		log.Info().Str("username", "admin").Str("password", password).Msg("created initial admin user")
	}

	return nil
}
