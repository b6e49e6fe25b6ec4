package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wangyukai585/BioAlgoDB/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// ErrUnsupportedDSN is returned when DATABASE_URL names no known dialect
var ErrUnsupportedDSN = errors.New("unsupported database url")

// Connect opens the database described by dsn and registers the metrics plugin.
// Errors raised by the drivers are translated to gorm's dialect-neutral errors.
func Connect(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	dialector, dialect, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(log),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		// in-memory databases live as long as their only connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(MetricsPlugin{}); err != nil {
		return nil, fmt.Errorf("failed to register metrics plugin: %w", err)
	}

	log.WithField("dialect", dialect).Info("database connected")
	return db, nil
}

// Migrate creates or updates every catalog table
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Problem{},
		&models.Algorithm{},
		&models.Lab{},
		&models.Tool{},
		&models.Paper{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dialect returns the short dialect name of an open connection
func Dialect(db *gorm.DB) string {
	return db.Dialector.Name()
}

func dialectorFor(dsn string) (gorm.Dialector, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.HasPrefix(dsn, "host="):
		return postgres.Open(dsn), DialectPostgres, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(dsn, "sqlite://"))), DialectSQLite, nil
	case strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(sqliteDSN(dsn)), DialectSQLite, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off per connection
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func gormLogLevel(log *logrus.Logger) logger.LogLevel {
	switch {
	case log.IsLevelEnabled(logrus.TraceLevel):
		return logger.Info
	case log.IsLevelEnabled(logrus.WarnLevel):
		return logger.Warn
	case log.IsLevelEnabled(logrus.ErrorLevel):
		return logger.Error
	default:
		return logger.Silent
	}
}
