package config

import (
	"github.com/go-permafrost/permafrost/internal/logger"
)

// Category describes one entry of the policy catalog as it appears in the
// toml config. Required and Optional hold permission references in
// "namespace.codename" form; the registry package parses and validates them.
type Category struct {
	Label    string   `toml:"label"    validate:"required"`
	Level    int      `toml:"level"    validate:"gte=0"`
	Required []string `toml:"required"`
	Optional []string `toml:"optional"`
}

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Title   string

	// Categories is the policy catalog: category key to definition.
	// Mandatory; an empty catalog is a fatal misconfiguration.
	Categories map[string]Category `toml:"categories"`

	// IgnoredNamespaces lists permission namespaces hidden from the
	// permlist command output.
	IgnoredNamespaces []string
}
