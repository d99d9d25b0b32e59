package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/config"
	"github.com/go-permafrost/permafrost/internal/db/controller/permission"
	"github.com/go-permafrost/permafrost/internal/db/controller/role"
	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Permission{},
		&models.GroupPermission{},
		&models.UserGroup{},
		&models.Role{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// fixture is the membership layout every check in this file runs against:
// alice is staff on site 1, bob is staff on site 2, carol is an inactive
// member of site 1, root is a superuser with no memberships at all.
type fixture struct {
	db      *gorm.DB
	service *Service
	alice   *models.User
	bob     *models.User
	carol   *models.User
	root    *models.User
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)

	reg, err := registry.New(map[string]config.Category{
		"staff": {
			Label:    "Staff",
			Level:    30,
			Required: []string{PermViewRole},
			Optional: []string{PermAddRole, PermChangeRole},
		},
	})
	require.NoError(t, err)

	for _, cat := range reg.All() {
		require.NoError(t, permission.Ensure(db, cat.AllRefs()))
	}

	f := &fixture{
		db:      db,
		service: NewService(db),
		alice:   &models.User{Username: "alice", Active: true},
		bob:     &models.User{Username: "bob", Active: true},
		carol:   &models.User{Username: "carol", Active: false},
		root:    &models.User{Username: "root", Active: true, Superuser: true},
	}

	for _, user := range []*models.User{f.alice, f.bob, f.carol, f.root} {
		require.NoError(t, db.Create(user).Error)
	}

	site1, err := role.Create(db, reg, "Editors", "staff", 1)
	require.NoError(t, err)
	require.NoError(t, role.PermissionsSet(db, reg, site1,
		resolve(t, db, PermViewRole, PermAddRole)))
	require.NoError(t, role.UsersAdd(db, site1, f.alice.ID, f.carol.ID))

	site2, err := role.Create(db, reg, "Editors", "staff", 2)
	require.NoError(t, err)
	require.NoError(t, role.UsersAdd(db, site2, f.bob.ID))

	return f
}

func resolve(t *testing.T, db *gorm.DB, names ...string) []models.Permission {
	t.Helper()

	perms := make([]models.Permission, 0, len(names))

	for _, name := range names {
		ref, err := registry.ParseRef(name)
		require.NoError(t, err)

		perm, err := permission.Resolve(db, ref)
		require.NoError(t, err)

		perms = append(perms, *perm)
	}

	return perms
}

func TestHasPermission(t *testing.T) {
	f := setupFixture(t)

	testCases := []struct {
		name       string
		userID     uint64
		siteID     uint
		permission string
		expected   bool
	}{
		{
			name:       "member holds a granted permission",
			userID:     f.alice.ID,
			siteID:     1,
			permission: PermViewRole,
			expected:   true,
		},
		{
			name:       "member lacks an ungranted permission",
			userID:     f.alice.ID,
			siteID:     1,
			permission: PermChangeRole,
			expected:   false,
		},
		{
			name:       "grants do not cross sites",
			userID:     f.alice.ID,
			siteID:     2,
			permission: PermViewRole,
			expected:   false,
		},
		{
			name:       "other site's member on their own site",
			userID:     f.bob.ID,
			siteID:     2,
			permission: PermViewRole,
			expected:   true,
		},
		{
			name:       "inactive member holds nothing",
			userID:     f.carol.ID,
			siteID:     1,
			permission: PermViewRole,
			expected:   false,
		},
		{
			name:       "superuser bypasses the store",
			userID:     f.root.ID,
			siteID:     1,
			permission: PermDeleteRole,
			expected:   true,
		},
		{
			name:       "anonymous caller",
			userID:     0,
			siteID:     1,
			permission: PermViewRole,
			expected:   false,
		},
		{
			name:       "unknown user",
			userID:     99999,
			siteID:     1,
			permission: PermViewRole,
			expected:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			has, err := f.service.HasPermission(tc.userID, tc.siteID, tc.permission)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, has)
		})
	}
}

func TestHasAllPermissions(t *testing.T) {
	f := setupFixture(t)

	testCases := []struct {
		name        string
		userID      uint64
		permissions []string
		expected    bool
	}{
		{
			name:        "holds every listed permission",
			userID:      f.alice.ID,
			permissions: []string{PermViewRole, PermAddRole},
			expected:    true,
		},
		{
			name:        "one missing permission fails the set",
			userID:      f.alice.ID,
			permissions: []string{PermViewRole, PermChangeRole},
			expected:    false,
		},
		{
			name:        "empty list is trivially satisfied",
			userID:      f.alice.ID,
			permissions: nil,
			expected:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			has, err := f.service.HasAllPermissions(tc.userID, 1, tc.permissions)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, has)
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	f := setupFixture(t)

	testCases := []struct {
		name        string
		userID      uint64
		permissions []string
		expected    bool
	}{
		{
			name:        "one of many held",
			userID:      f.alice.ID,
			permissions: []string{PermChangeRole, PermViewRole},
			expected:    true,
		},
		{
			name:        "none held",
			userID:      f.alice.ID,
			permissions: []string{PermChangeRole, PermDeleteRole},
			expected:    false,
		},
		{
			name:        "empty list never matches",
			userID:      f.alice.ID,
			permissions: nil,
			expected:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			has, err := f.service.HasAnyPermission(tc.userID, 1, tc.permissions)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, has)
		})
	}
}

func TestGetUserPermissions(t *testing.T) {
	f := setupFixture(t)

	t.Run("site member", func(t *testing.T) {
		perms, err := f.service.GetUserPermissions(f.alice.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{PermAddRole, PermViewRole}, perms)
	})

	t.Run("same member on another site", func(t *testing.T) {
		perms, err := f.service.GetUserPermissions(f.alice.ID, 2)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		perms, err := f.service.GetUserPermissions(0, 1)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})
}
