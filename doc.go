// Package main provides the entry point for the permafrost role management
// tool. Permafrost layers client-configurable, category-typed roles on top of
// a plain group/permission store: each category fixes a set of required
// permissions (always present on any role of that category) and a set of
// optional permissions (toggleable per role), and refuses everything else.
// The application uses gorm for data persistence and ships cobra commands for
// migrating the schema, listing assignable permissions and inferring category
// definitions from existing roles.
package main
