package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a client-definable, tenant-scoped wrapper around a Group. The
// role's category decides which permissions the group must always carry
// (required) and which may be toggled (optional); the role controller is the
// only writer to the group once the role owns it.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the display name, unique per site.
	Name string `gorm:"size:50;not null;uniqueIndex:idx_roles_name_site"`
	// Slug is derived from Name on every save (lowercase, hyphenated).
	Slug string `gorm:"size:50;not null;index"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:200"`
	// Category is the key of the policy category this role belongs to.
	// Write-once after creation; enforced by the form layer, not here.
	Category string `gorm:"size:32;not null"`
	// SiteID is the owning tenant. Roles and their groups never leak
	// permissions across sites.
	SiteID uint `gorm:"column:site_id;not null;uniqueIndex:idx_roles_name_site"`
	// Locked marks system default roles that clients must not edit.
	Locked bool `gorm:"default:false"`
	// Deleted soft-deletes the role: excluded from site listings, group kept.
	Deleted bool `gorm:"default:false"`
	// GroupID references the owned group. Zero until first save.
	GroupID uint `gorm:"column:group_id"`
	// Group is the owned group (deleted together with the role).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// GroupName returns the conventional name for the role's group:
// "{site}_{category}_{slug}".
func (r *Role) GroupName() string {
	return fmt.Sprintf("%d_%s_%s", r.SiteID, r.Category, r.Slug)
}

// Slugify derives a role slug from its display name: lowercased, runs of
// anything but letters and digits collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder

	lastHyphen := true // swallow leading separators

	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)

			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')

			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
