// Package auth answers permission checks against permafrost roles.
//
// The check is site-scoped: a user holds a permission only if one of their
// groups belongs to a role owned by the site in question. Permissions earned
// through a role on one site never grant anything on another, even when the
// same user sits in similarly named groups on both.
//
// The package is strictly read-side. It never mutates roles, groups or
// memberships; the role controller owns all writes.
//
// Superusers bypass every check, inactive or unknown users fail every check,
// and an empty check list is trivially satisfied.
package auth
