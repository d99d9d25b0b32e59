package models

// GroupPermission represents the many-to-many relationship between groups and
// permissions. When a group is deleted, its permission assignments are
// automatically removed (CASCADE).
type GroupPermission struct {
	// GroupID is the ID of the group in this mapping.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// PermissionID is the ID of the permission in this mapping.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// Group is the associated group (loaded via foreign key).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the GroupPermission model.
func (GroupPermission) TableName() string {
	return "group_permissions"
}
