package config

import (
	"errors"
)

var (
	// ErrNoCategories is returned when the toml config defines no [categories] table.
	// Without a category catalog there is no permission policy to enforce, so the
	// process must not serve requests.
	ErrNoCategories = errors.New("toml config categories can not be empty")

	// ErrNoDBEngine is returned when db.gormEngine is not set.
	ErrNoDBEngine = errors.New("toml config db.gormEngine can not be empty")
)
