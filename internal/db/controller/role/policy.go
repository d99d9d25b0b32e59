package role

import (
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/controller/permission"
	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

// categoryPolicy resolves the role's category into concrete permission rows.
// Required references must all resolve (a dangling required permission makes
// the whole operation fail); optional references that don't resolve are
// logged and skipped.
func categoryPolicy(db *gorm.DB, reg *registry.Registry, role *models.Role) (required, optional []models.Permission, err error) {
	cat, err := reg.Lookup(role.Category)
	if err != nil {
		return nil, nil, err
	}

	if required, err = permission.ResolveAll(db, cat.Required); err != nil {
		return nil, nil, err
	}

	if optional, err = permission.ResolveKnown(db, cat.Optional); err != nil {
		return nil, nil, err
	}

	return required, optional, nil
}

// AllAllowedIDs returns the ids of every permission that may ever appear on
// the role: the union of the category's required and optional sets.
// Presentation layers use it to hide out-of-policy permissions that other
// code paths may have pushed into the group directly.
func AllAllowedIDs(db *gorm.DB, reg *registry.Registry, role *models.Role) (map[uint]struct{}, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	required, optional, err := categoryPolicy(db, reg, role)
	if err != nil {
		return nil, err
	}

	allowed := make(map[uint]struct{}, len(required)+len(optional))
	for _, perm := range required {
		allowed[perm.ID] = struct{}{}
	}

	for _, perm := range optional {
		allowed[perm.ID] = struct{}{}
	}

	return allowed, nil
}

// Permissions returns the permissions currently held by the role's group,
// unfiltered. Callers that present them to clients intersect with
// AllAllowedIDs first.
func Permissions(db *gorm.DB, role *models.Role) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if role.GroupID == 0 {
		return nil, ErrNoGroup
	}

	var perms []models.Permission

	err := db.Table("permissions").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Where("group_permissions.group_id = ?", role.GroupID).
		Order("permissions.name").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}

	return perms, nil
}

// PermissionsAdd adds each candidate to the role's group iff the category
// allows it; candidates outside the allowed universe are silently dropped so
// a client can never escalate past the category policy. Adding an already
// present permission is a no-op.
func PermissionsAdd(db *gorm.DB, reg *registry.Registry, role *models.Role, perms ...models.Permission) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	allowed, err := AllAllowedIDs(db, reg, role)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, perm := range perms {
			if _, ok := allowed[perm.ID]; !ok {
				continue
			}

			gp := models.GroupPermission{GroupID: role.GroupID, PermissionID: perm.ID}
			if errAdd := tx.Where(&gp).FirstOrCreate(&gp).Error; errAdd != nil {
				return errAdd
			}
		}

		return nil
	})
}

// PermissionsRemove removes each candidate from the role's group unless the
// category requires it; removing a required permission is silently ignored.
// Removing an absent permission is a no-op.
func PermissionsRemove(db *gorm.DB, reg *registry.Registry, role *models.Role, perms ...models.Permission) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	required, _, err := categoryPolicy(db, reg, role)
	if err != nil {
		return err
	}

	requiredIDs := make(map[uint]struct{}, len(required))
	for _, perm := range required {
		requiredIDs[perm.ID] = struct{}{}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, perm := range perms {
			if _, ok := requiredIDs[perm.ID]; ok {
				continue
			}

			if errDel := tx.Where("group_id = ? AND permission_id = ?", role.GroupID, perm.ID).
				Delete(&models.GroupPermission{}).Error; errDel != nil {
				return errDel
			}
		}

		return nil
	})
}

// PermissionsSet replaces the group's permissions with exactly
// (given ∩ optional) ∪ required, regardless of what the group held before.
// This is the declarative update behind form submissions: the given set
// describes the desired optional state, required is always re-asserted.
func PermissionsSet(db *gorm.DB, reg *registry.Registry, role *models.Role, perms []models.Permission) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return permissionsSetTx(tx, reg, role, perms)
	})
}

// PermissionsClear resets the group to exactly the category's required
// permissions. Equivalent to PermissionsSet with an empty set.
func PermissionsClear(db *gorm.DB, reg *registry.Registry, role *models.Role) error {
	return PermissionsSet(db, reg, role, nil)
}

// Conform re-applies the category policy to whatever the group currently
// holds: out-of-policy permissions are pruned, missing required ones
// restored. Used after unmediated group mutations.
func Conform(db *gorm.DB, reg *registry.Registry, role *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	current, err := Permissions(db, role)
	if err != nil {
		return err
	}

	return PermissionsSet(db, reg, role, current)
}

func permissionsSetTx(tx *gorm.DB, reg *registry.Registry, role *models.Role, perms []models.Permission) error {
	required, optional, err := categoryPolicy(tx, reg, role)
	if err != nil {
		return err
	}

	optionalIDs := make(map[uint]struct{}, len(optional))
	for _, perm := range optional {
		optionalIDs[perm.ID] = struct{}{}
	}

	final := make(map[uint]struct{}, len(required)+len(perms))
	for _, perm := range required {
		final[perm.ID] = struct{}{}
	}

	for _, perm := range perms {
		if _, ok := optionalIDs[perm.ID]; ok {
			final[perm.ID] = struct{}{}
		}
	}

	if err = tx.Where(groupQueryPattern, role.GroupID).Delete(&models.GroupPermission{}).Error; err != nil {
		return err
	}

	for id := range final {
		if err = tx.Create(&models.GroupPermission{GroupID: role.GroupID, PermissionID: id}).Error; err != nil {
			return err
		}
	}

	return nil
}

func permissionsClearTx(tx *gorm.DB, reg *registry.Registry, role *models.Role) error {
	return permissionsSetTx(tx, reg, role, nil)
}
