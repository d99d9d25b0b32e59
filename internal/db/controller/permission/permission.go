// Package permission resolves permission references against the store.
package permission

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

const (
	naturalKeyQueryPattern = "namespace = ? AND codename = ?"
)

var (
	// ErrPermissionNotFound is returned when a referenced permission does not
	// exist in the store. Fatal in role-save contexts, skippable in bulk
	// import contexts (see ResolveKnown).
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Resolve returns the canonical Permission for a single reference.
func Resolve(db *gorm.DB, ref registry.Ref) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var perm models.Permission

	result := db.Where(naturalKeyQueryPattern, ref.Namespace, ref.Codename).First(&perm)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionNotFound, ref)
		}

		return nil, result.Error
	}

	return &perm, nil
}

// ResolveAll resolves every reference or fails on the first unresolved one.
// Use for role-save paths where a dangling reference must abort the operation.
func ResolveAll(db *gorm.DB, refs []registry.Ref) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	perms := make([]models.Permission, 0, len(refs))

	for _, ref := range refs {
		perm, err := Resolve(db, ref)
		if err != nil {
			return nil, err
		}

		perms = append(perms, *perm)
	}

	return perms, nil
}

// ResolveKnown resolves the references that exist and logs and skips the rest.
// Use for bulk import and reporting paths where a dangling reference is a
// warning, not a failure.
func ResolveKnown(db *gorm.DB, refs []registry.Ref) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	perms := make([]models.Permission, 0, len(refs))

	for _, ref := range refs {
		perm, err := Resolve(db, ref)
		if err != nil {
			if errors.Is(err, ErrPermissionNotFound) {
				log.Warn().Str("permission", ref.String()).Msg("configured permission not found, skipping")
				continue
			}

			return nil, err
		}

		perms = append(perms, *perm)
	}

	return perms, nil
}

// Ensure creates a Permission row for every reference that does not exist
// yet. Used by the seed path so that configured category references always
// resolve afterwards.
func Ensure(db *gorm.DB, refs []registry.Ref) error {
	if db == nil {
		return ErrDBNil
	}

	for _, ref := range refs {
		perm := models.Permission{
			Name:      ref.String(),
			Namespace: ref.Namespace,
			Codename:  ref.Codename,
		}

		result := db.Where(naturalKeyQueryPattern, ref.Namespace, ref.Codename).
			FirstOrCreate(&perm)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// List returns every permission a client may be offered, skipping the given
// namespaces. Used by the permlist command.
func List(db *gorm.DB, ignoredNamespaces []string) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Order("namespace, codename")

	if len(ignoredNamespaces) > 0 {
		query = query.Where("namespace NOT IN ?", ignoredNamespaces)
	}

	var perms []models.Permission

	result := query.Find(&perms)
	if result.Error != nil {
		return nil, result.Error
	}

	return perms, nil
}
