package models

import "time"

// Group is a named bag of permissions and members. Every role owns exactly
// one group; renaming a role renames the group in place so memberships and
// permissions survive. Groups are also mutable by code paths outside the
// role controller, which is why presentation layers filter them through the
// category policy instead of trusting their raw content.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name follows the "{site}_{category}_{slug}" convention of the owning role.
	Name string `gorm:"unique;size:150;not null"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
