package registry

import (
	"errors"
)

var (
	// ErrNoCategoriesConfigured is returned when the configuration defines no
	// categories at all. Fatal: without a catalog there is no policy.
	ErrNoCategoriesConfigured = errors.New("no permission categories configured")

	// ErrCategoryNotFound is returned by Lookup for an unknown category key.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrMalformedRef is returned for a permission reference that is not in
	// "namespace.codename" form.
	ErrMalformedRef = errors.New("malformed permission reference")

	// ErrOverlappingRefs is returned when a permission reference is listed as
	// both required and optional for the same category. The engine would treat
	// it as required anyway, so the configuration is rejected outright.
	ErrOverlappingRefs = errors.New("permission reference listed as required and optional")
)
