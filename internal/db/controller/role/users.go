package role

import (
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/models"
)

// Users returns every user who is a member of the role's group.
func Users(db *gorm.DB, role *models.Role) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if role.GroupID == 0 {
		return nil, ErrNoGroup
	}

	var users []models.User

	err := db.Table("users").
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", role.GroupID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// UsersAdd adds the users to the role's group. Already present members are
// left alone, so the call is idempotent.
func UsersAdd(db *gorm.DB, role *models.Role, userIDs ...uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			ug := models.UserGroup{UserID: userID, GroupID: role.GroupID}
			if err := tx.Where(&ug).FirstOrCreate(&ug).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UsersRemove removes the users from the role's group.
func UsersRemove(db *gorm.DB, role *models.Role, userIDs ...uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	return db.Where("group_id = ? AND user_id IN ?", role.GroupID, userIDs).
		Delete(&models.UserGroup{}).Error
}

// UsersClear removes every member from the role's group.
func UsersClear(db *gorm.DB, role *models.Role) error {
	if db == nil {
		return ErrDBNil
	}

	if role.GroupID == 0 {
		return ErrNoGroup
	}

	return db.Where(groupQueryPattern, role.GroupID).Delete(&models.UserGroup{}).Error
}
