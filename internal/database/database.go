package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/items-api/internal/config"
	"github.com/yukikurage/items-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxLifetime = time.Hour
	connectTimeout  = 10 * time.Second
)

// Connect opens the connection pool for the configured driver. The caller owns the
// returned handle and must Close it on shutdown.
func Connect(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg, log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	log.Info("database connection established", "driver", cfg.DBDriver)
	return db, nil
}

func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(withParam(cfg.DatabaseURL, "connect_timeout", fmt.Sprint(int(connectTimeout.Seconds())))), nil
	case config.DriverMySQL:
		dsn := withParam(cfg.DatabaseURL, "parseTime", "true")
		dsn = withParam(dsn, "timeout", connectTimeout.String())
		// Report matched rather than changed rows so ownership-scoped updates
		// that leave every column as-is still count as a hit.
		dsn = withParam(dsn, "clientFoundRows", "true")
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "file:items.db?_foreign_keys=on"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// withParam appends key=value to a URL-style or key/value DSN unless the key is already present.
func withParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	if strings.Contains(dsn, "://") || strings.Contains(dsn, "@tcp(") || strings.Contains(dsn, "?") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + key + "=" + value
	}
	return strings.TrimSpace(dsn + " " + key + "=" + value)
}

func newGormLogger(cfg *config.Config, log *slog.Logger) logger.Interface {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}
	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate brings the schema up to date. Postgres uses the embedded goose migrations;
// the other drivers fall back to AutoMigrate.
func Migrate(ctx context.Context, db *gorm.DB, driver string, log *slog.Logger) error {
	log.Info("running database migrations", "driver", driver)

	if driver == config.DriverPostgres {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		if err := db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Item{}); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Info("database migrations completed")
	return nil
}

// Ping checks that a connection can be acquired and used within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
