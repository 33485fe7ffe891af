package database

import "gorm.io/gorm"

// Driver opens a GORM dialector and tunes the connection around migration.
type Driver interface {
	// Name returns the driver name, e.g. "sqlite".
	Name() string

	// Open returns the dialector for dsn.
	Open(dsn string) (gorm.Dialector, error)

	// PreMigrationConfig applies pool and journal settings before migration.
	PreMigrationConfig(db *gorm.DB) error

	// PostMigrationConfig applies settings that must wait for the schema.
	PostMigrationConfig(db *gorm.DB) error
}
