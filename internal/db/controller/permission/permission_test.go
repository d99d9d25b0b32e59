package permission

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-permafrost/permafrost/internal/db/models"
	"github.com/go-permafrost/permafrost/internal/registry"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Permission{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedPermissions(t *testing.T, db *gorm.DB, refs ...string) {
	t.Helper()

	for _, raw := range refs {
		ref, err := registry.ParseRef(raw)
		require.NoError(t, err)

		err = db.Create(&models.Permission{
			Name:      ref.String(),
			Namespace: ref.Namespace,
			Codename:  ref.Codename,
		}).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func mustRef(t *testing.T, raw string) registry.Ref {
	t.Helper()

	ref, err := registry.ParseRef(raw)
	require.NoError(t, err)

	return ref
}

func TestResolve(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "permafrost.view_role", "permafrost.change_role")

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		ref           string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			ref:           "permafrost.view_role",
			expectedError: ErrDBNil,
		},
		{
			name:    "existing permission",
			dbParam: db,
			ref:     "permafrost.view_role",
		},
		{
			name:          "unknown permission",
			dbParam:       db,
			ref:           "permafrost.delete_role",
			expectedError: ErrPermissionNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			perm, err := Resolve(tc.dbParam, mustRef(t, tc.ref))

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, perm)
			} else {
				require.NoError(t, err)
				require.NotNil(t, perm)
				assert.Equal(t, tc.ref, perm.Name)
			}
		})
	}
}

func TestResolveAll(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "permafrost.view_role", "permafrost.change_role")

	refs := []registry.Ref{
		mustRef(t, "permafrost.view_role"),
		mustRef(t, "permafrost.change_role"),
	}

	perms, err := ResolveAll(db, refs)
	require.NoError(t, err)
	require.Len(t, perms, 2)

	// one dangling ref fails the whole batch
	refs = append(refs, mustRef(t, "permafrost.delete_role"))

	perms, err = ResolveAll(db, refs)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionNotFound)
	assert.Nil(t, perms)
}

func TestResolveKnown(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "permafrost.view_role")

	refs := []registry.Ref{
		mustRef(t, "permafrost.view_role"),
		mustRef(t, "permafrost.delete_role"), // unknown, skipped with a warning
	}

	perms, err := ResolveKnown(db, refs)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "permafrost.view_role", perms[0].Name)
}

func TestEnsure(t *testing.T) {
	db := setupTestDB(t)

	refs := []registry.Ref{
		mustRef(t, "permafrost.view_role"),
		mustRef(t, "permafrost.change_role"),
	}

	require.NoError(t, Ensure(db, refs))

	var count int64

	db.Model(&models.Permission{}).Count(&count)
	assert.EqualValues(t, 2, count)

	// second run is a no-op
	require.NoError(t, Ensure(db, refs))

	db.Model(&models.Permission{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db,
		"permafrost.view_role",
		"permafrost.change_role",
		"admin.add_logentry",
		"sessions.add_session",
	)

	testCases := []struct {
		name          string
		ignored       []string
		expectedCount int
	}{
		{
			name:          "no ignored namespaces",
			ignored:       nil,
			expectedCount: 4,
		},
		{
			name:          "framework namespaces hidden",
			ignored:       []string{"admin", "sessions"},
			expectedCount: 2,
		},
		{
			name:          "everything hidden",
			ignored:       []string{"admin", "sessions", "permafrost"},
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			perms, err := List(db, tc.ignored)
			require.NoError(t, err)
			assert.Len(t, perms, tc.expectedCount)
		})
	}
}
