// Package database owns the process-wide GORM connection holding users and
// their skill values.
package database

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// DefaultDBPath is used when the configuration leaves database.path empty.
const DefaultDBPath = "./data/skilltreedocs.db"

var (
	db   *gorm.DB
	once sync.Once
)

// Init opens the database at DefaultDBPath.
func Init() error {
	return InitWithPath(DefaultDBPath)
}

// InitWithPath opens the database at dbPath and migrates it. Only the first
// call has any effect.
func InitWithPath(dbPath string) error {
	var initErr error
	once.Do(func() {
		initErr = initDB(dbPath)
	})
	return initErr
}

func initDB(dbPath string) error {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	logger.Info("Initializing database", zap.String("path", dbPath))

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create database directory", zap.Error(err), zap.String("dir", dir))
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to create database directory", err)
	}

	driver := &SQLiteDriver{}

	dialector, err := driver.Open(dbPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to open database", err)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to connect to database", err)
	}

	if err := driver.PreMigrationConfig(conn); err != nil {
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to apply pre-migration config", err)
	}
	if err := migrate(conn); err != nil {
		return err
	}
	if err := driver.PostMigrationConfig(conn); err != nil {
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to apply post-migration config", err)
	}

	db = conn
	logger.Info("Database initialized", zap.String("driver", driver.Name()))
	return nil
}

func migrate(conn *gorm.DB) error {
	models := model.AllModels()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run database migrations", zap.Error(err))
		return errors.Wrap(errors.ErrCodeDBMigration, "failed to run database migrations", err)
	}
	logger.Debug("Database migrations completed", zap.Int("models", len(models)))
	return nil
}

// Get returns the database instance. Panics before Init.
func Get() *gorm.DB {
	if db == nil {
		panic("database not initialized, call Init first")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	logger.Info("Closing database connection")
	return sqlDB.Close()
}

// ResetForTesting closes the connection and allows Init to run again.
// Only for tests.
func ResetForTesting() {
	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
		db = nil
	}
	once = sync.Once{}
}

// Transaction runs fn in a transaction
func Transaction(fn func(tx *gorm.DB) error) error {
	return Get().Transaction(fn)
}

// HealthCheck pings the database
func HealthCheck() error {
	if db == nil {
		return errors.New(errors.ErrCodeDBConnection, "database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDBConnection, "failed to get database connection", err)
	}
	return sqlDB.Ping()
}
