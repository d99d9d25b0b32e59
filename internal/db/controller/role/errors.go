package role

import (
	"errors"
)

var (
	// ErrRoleNotFound is returned when a role lookup by slug and site fails.
	ErrRoleNotFound = errors.New("role not found")
	// ErrDuplicateRole is returned when a role with the same name already
	// exists on the site. Concurrent creates hit the unique index instead and
	// are mapped to this error as well.
	ErrDuplicateRole = errors.New("role with this name already exists on site")
	// ErrRoleNameEmpty is returned when attempting to create or rename a role
	// with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrNoGroup is returned when a permission or membership operation hits a
	// role that has not been given a group yet.
	ErrNoGroup = errors.New("role has no group")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
