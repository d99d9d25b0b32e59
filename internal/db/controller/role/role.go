// Package role owns the lifecycle of permafrost roles and the policy that
// keeps each role's group within its category: required permissions are
// always present, optional permissions may be toggled, everything else is
// refused. All multi-step operations run inside a single transaction so a
// role and its group can never drift apart halfway.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

const (
	nameSiteQueryPattern = "name = ? AND site_id = ?"
	slugSiteQueryPattern = "slug = ? AND site_id = ? AND deleted = ?"
	groupQueryPattern    = "group_id = ?"
)

// Create validates the category, enforces (name, site) uniqueness, derives
// the slug, creates or reuses the conventionally named group and initializes
// the group's permissions to the category's required set. Everything happens
// in one transaction; a concurrent duplicate create is resolved by the
// unique index and surfaced as ErrDuplicateRole.
func Create(db *gorm.DB, reg *registry.Registry, name, categoryKey string, siteID uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	cat, err := reg.Lookup(categoryKey)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:     name,
		Slug:     models.Slugify(name),
		Category: cat.Key,
		SiteID:   siteID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Role

		result := tx.Where(nameSiteQueryPattern, name, siteID).First(&existing)
		if result.Error == nil {
			return ErrDuplicateRole
		}

		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		// Reuse a correctly named group if one already exists, otherwise
		// create it. A dangling group from an interrupted earlier create is
		// adopted instead of leaking.
		group := models.Group{Name: role.GroupName()}
		if errGroup := tx.Where("name = ?", group.Name).FirstOrCreate(&group).Error; errGroup != nil {
			return errGroup
		}

		role.GroupID = group.ID
		role.Group = group

		if errCreate := tx.Create(role).Error; errCreate != nil {
			if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRole
			}

			return errCreate
		}

		return permissionsClearTx(tx, reg, role)
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// GetBySlug returns the non-deleted role for the given slug and site.
// A role that lost its group (interrupted create on another code path) gets
// one created and reset to the category's required permissions on load.
func GetBySlug(db *gorm.DB, reg *registry.Registry, slug string, siteID uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role

	result := db.Where(slugSiteQueryPattern, slug, siteID, false).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, result.Error
	}

	if role.GroupID == 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			group := models.Group{Name: role.GroupName()}
			if errGroup := tx.Where("name = ?", group.Name).FirstOrCreate(&group).Error; errGroup != nil {
				return errGroup
			}

			role.GroupID = group.ID
			if errSave := tx.Model(&models.Role{}).Where("id = ?", role.ID).
				Update("group_id", group.ID).Error; errSave != nil {
				return errSave
			}

			return permissionsClearTx(tx, reg, &role)
		})
		if err != nil {
			return nil, err
		}
	}

	return &role, nil
}

// List returns every non-deleted role of the site.
func List(db *gorm.DB, siteID uint) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role

	result := db.Where("site_id = ? AND deleted = ?", siteID, false).Order("name").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Rename updates the role's name and slug and renames the owned group in
// place. The group keeps its id, so memberships and permissions survive.
func Rename(db *gorm.DB, role *models.Role, newName string) error {
	if db == nil {
		return ErrDBNil
	}

	if newName == "" {
		return ErrRoleNameEmpty
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.Role

		result := tx.Where(nameSiteQueryPattern, newName, role.SiteID).First(&existing)
		if result.Error == nil && existing.ID != role.ID {
			return ErrDuplicateRole
		}

		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		role.Name = newName
		role.Slug = models.Slugify(newName)

		if err := tx.Model(&models.Role{}).Where("id = ?", role.ID).
			Updates(map[string]any{"name": role.Name, "slug": role.Slug}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRole
			}

			return err
		}

		// Keep the group name in sync with the convention. Rename, never
		// recreate: the group id must not change.
		if role.GroupID != 0 {
			if err := tx.Model(&models.Group{}).Where("id = ?", role.GroupID).
				Update("name", role.GroupName()).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// SoftDelete flags the role as deleted. The group and its memberships stay
// live; the role merely disappears from site listings.
func SoftDelete(db *gorm.DB, role *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	role.Deleted = true

	return db.Model(&models.Role{}).Where("id = ?", role.ID).Update("deleted", true).Error
}

// Delete removes the role and its owned group for good. The group delete is
// an explicit step of the same transaction, not a hook side effect; junction
// rows fall to the foreign key cascade.
func Delete(db *gorm.DB, role *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Role{}, role.ID)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrRoleNotFound
		}

		if role.GroupID == 0 {
			return nil
		}

		if err := tx.Where(groupQueryPattern, role.GroupID).Delete(&models.GroupPermission{}).Error; err != nil {
			return err
		}

		if err := tx.Where(groupQueryPattern, role.GroupID).Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Group{}, role.GroupID).Error
	})
}
