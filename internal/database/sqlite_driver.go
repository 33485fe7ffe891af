package database

import (
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// SQLiteDriver implements Driver on the pure-Go SQLite port.
type SQLiteDriver struct {
	// BusyTimeoutMillis is how long a writer waits on a locked database.
	BusyTimeoutMillis int
}

// Name returns the driver name
func (d *SQLiteDriver) Name() string {
	return "sqlite"
}

// Open opens a SQLite database file
func (d *SQLiteDriver) Open(dsn string) (gorm.Dialector, error) {
	return sqlite.Open(dsn), nil
}

// PreMigrationConfig pins the pool to a single connection and enables WAL.
func (d *SQLiteDriver) PreMigrationConfig(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		logger.Warn("Failed to enable WAL mode", zap.Error(err))
	}
	if err := db.Exec("PRAGMA synchronous = NORMAL").Error; err != nil {
		logger.Warn("Failed to set synchronous mode", zap.Error(err))
	}
	timeout := d.BusyTimeoutMillis
	if timeout <= 0 {
		timeout = 5000
	}
	if err := db.Exec("PRAGMA busy_timeout = ?", timeout).Error; err != nil {
		logger.Warn("Failed to set busy timeout", zap.Error(err))
	}

	logger.Debug("SQLite pre-migration config applied",
		zap.String("journal_mode", "WAL"),
		zap.String("synchronous", "NORMAL"),
		zap.Int("busy_timeout_ms", timeout),
	)
	return nil
}

// PostMigrationConfig enables foreign keys
func (d *SQLiteDriver) PostMigrationConfig(db *gorm.DB) error {
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		logger.Warn("Failed to enable foreign keys", zap.Error(err))
	}
	return nil
}
