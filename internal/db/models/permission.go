package models

import "time"

// Permission is an atomic grant identified by a (namespace, codename) pair.
// The role controller only ever changes a permission's membership in a
// group, never the permission itself.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the canonical "namespace.codename" form, unique.
	Name string `gorm:"unique;size:150;not null"`
	// Namespace scopes the codename (e.g. "permafrost").
	Namespace string `gorm:"size:100;not null;uniqueIndex:idx_permissions_ns_code"`
	// Codename is the permission identifier within its namespace (e.g. "view_role").
	Codename string `gorm:"size:100;not null;uniqueIndex:idx_permissions_ns_code"`
	// Label provides a human-readable explanation of what this permission grants.
	Label string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
