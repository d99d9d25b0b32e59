package role

import (
	"sort"

	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/registry"
)

// InferredCategory is one reconstructed catalog entry, shaped for the toml
// encoder so the categories command can print a ready-to-paste config block.
type InferredCategory struct {
	Label    string   `toml:"label"`
	Level    int      `toml:"level"`
	Required []string `toml:"required"`
	Optional []string `toml:"optional"`
}

// InferCategories reconstructs a category catalog from the roles in the
// store: per category, a permission held by every role is required, a
// permission held by only some is optional. Labels and levels come from the
// configured registry when the category is known there.
func InferCategories(db *gorm.DB, reg *registry.Registry) (map[string]InferredCategory, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []struct {
		Category string
		GroupID  uint
	}

	err := db.Table("roles").
		Select("category, group_id").
		Where("deleted = ?", false).
		Order("id").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	// Per category: the permission sets of each role's group, plus id -> name.
	sets := make(map[string][]map[uint]struct{})
	names := make(map[uint]string)

	for _, r := range roles {
		var perms []struct {
			ID   uint
			Name string
		}

		err = db.Table("permissions").
			Select("permissions.id, permissions.name").
			Joins("JOIN group_permissions ON group_permissions.permission_id = permissions.id").
			Where("group_permissions.group_id = ?", r.GroupID).
			Find(&perms).Error
		if err != nil {
			return nil, err
		}

		set := make(map[uint]struct{}, len(perms))
		for _, perm := range perms {
			set[perm.ID] = struct{}{}
			names[perm.ID] = perm.Name
		}

		sets[r.Category] = append(sets[r.Category], set)
	}

	out := make(map[string]InferredCategory, len(sets))

	for key, categorySets := range sets {
		required, optional := splitRequiredOptional(categorySets)

		inferred := InferredCategory{
			Label:    key,
			Required: sortedNames(required, names),
			Optional: sortedNames(optional, names),
		}

		if cat, errLookup := reg.Lookup(key); errLookup == nil {
			inferred.Label = cat.Label
			inferred.Level = cat.Level
		}

		out[key] = inferred
	}

	return out, nil
}

// splitRequiredOptional partitions the permissions observed across the roles
// of one category: the intersection of all sets becomes required, everything
// seen in some but not all sets becomes optional. The incremental walk keeps
// the partition independent of role order: a required candidate missing from
// a later set moves to optional, a later permission not yet known joins
// optional.
func splitRequiredOptional(sets []map[uint]struct{}) (required, optional map[uint]struct{}) {
	required = make(map[uint]struct{})
	optional = make(map[uint]struct{})

	if len(sets) == 0 {
		return required, optional
	}

	for id := range sets[0] {
		required[id] = struct{}{}
	}

	for _, set := range sets[1:] {
		for id := range required {
			if _, ok := set[id]; !ok {
				delete(required, id)

				optional[id] = struct{}{}
			}
		}

		for id := range set {
			if _, ok := required[id]; !ok {
				optional[id] = struct{}{}
			}
		}
	}

	return required, optional
}

func sortedNames(ids map[uint]struct{}, names map[uint]string) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, names[id])
	}

	sort.Strings(out)

	return out
}
