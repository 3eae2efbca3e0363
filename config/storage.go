package config

import "fmt"

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Backend selects the store type: "memory", "sqlite" or "postgres".
	Backend string `json:"backend"`
	// Path is the database file location for the sqlite backend.
	Path string `json:"path"`
	// DSN is the connection string for the postgres backend.
	DSN string `json:"dsn"`
	// Fixture optionally seeds the memory backend from a YAML or JSON file.
	Fixture string `json:"fixture"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "wrangler.db"
	}
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "memory", "sqlite":
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("storage: dsn is required for postgres")
		}
	default:
		return fmt.Errorf("storage: unknown backend %s", c.Backend)
	}
	return nil
}
