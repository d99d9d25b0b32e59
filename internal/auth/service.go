package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/models"
)

// Service answers authorization queries for one database.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// caller loads the user behind a check. A zero id means unauthenticated and
// an unknown or inactive user simply holds nothing; neither is an error.
func (s *Service) caller(userID uint64) (*models.User, error) {
	if userID == 0 {
		return nil, nil
	}

	var user models.User

	err := s.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.Active {
		return nil, nil
	}

	return &user, nil
}

// HasPermission checks if the user holds the permission on the given site.
// The join restricts group permissions to groups owned by a role of that
// site, which is what keeps permissions from leaking across sites.
func (s *Service) HasPermission(userID uint64, siteID uint, permission string) (bool, error) {
	if s.db == nil {
		return false, ErrDBNil
	}

	user, err := s.caller(userID)
	if err != nil {
		return false, err
	}

	if user == nil {
		return false, nil
	}

	if user.Superuser {
		return true, nil
	}

	var count int64

	err = s.db.Table("permissions").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.group_id = group_permissions.group_id").
		Joins("JOIN user_groups ON user_groups.group_id = group_permissions.group_id").
		Where("user_groups.user_id = ? AND roles.site_id = ? AND permissions.name = ?",
			userID, siteID, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return count > 0, nil
}

// HasAllPermissions checks if the user holds every permission in the list on
// the given site. An empty list is trivially satisfied; the check stops at
// the first missing permission.
func (s *Service) HasAllPermissions(userID uint64, siteID uint, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return true, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, siteID, perm)
		if err != nil {
			return false, err
		}

		if !has {
			return false, nil
		}
	}

	return true, nil
}

// HasAnyPermission checks if the user holds at least one of the given
// permissions on the site.
func (s *Service) HasAnyPermission(userID uint64, siteID uint, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, siteID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// GetUserPermissions retrieves the names of every permission the user holds
// on the site through role-owned groups.
func (s *Service) GetUserPermissions(userID uint64, siteID uint) ([]string, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	user, err := s.caller(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, nil
	}

	var permissions []string

	err = s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.group_id = group_permissions.group_id").
		Joins("JOIN user_groups ON user_groups.group_id = group_permissions.group_id").
		Where("user_groups.user_id = ? AND roles.site_id = ?", userID, siteID).
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}
