package db

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gameclub/config"
	"gameclub/models"
	"gameclub/utils"
)

var DB *gorm.DB

const (
	defaultPostgresDSN = "host=localhost port=5432 user=postgres dbname=gameclub sslmode=disable"
	defaultMySQLDSN    = "root@tcp(localhost:3306)/gameclub?charset=utf8mb4&parseTime=True&loc=Local"
	defaultSQLiteDSN   = "file:gameclub.db?_foreign_keys=1"
)

// PoolOptions bounds the underlying sql.DB connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// InitDB connects using cfg, migrates and seeds when enabled, and stores the handle in DB.
func InitDB(cfg config.Config) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		utils.Log.Fatalf("invalid database configuration: %v", err)
	}

	conn, err := Open(dialector, PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		utils.Log.Fatalf("failed to connect to the database: %v", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(conn); err != nil {
			utils.Log.Fatalf("failed to migrate: %v", err)
		}
	}
	if cfg.SeedData {
		if err := Seed(conn); err != nil {
			utils.Log.Fatalf("failed to seed: %v", err)
		}
	}

	DB = conn
	utils.LogInfo("Database connected", map[string]interface{}{
		"driver":       cfg.DBDriver,
		"auto_migrate": cfg.AutoMigrate,
	})
}

// Dialector picks the gorm dialect for driver, falling back to a local default DSN.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		if dsn == "" {
			dsn = defaultPostgresDSN
		}
		return postgres.Open(dsn), nil
	case "mysql":
		if dsn == "" {
			dsn = defaultMySQLDSN
		}
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		return sqlite.Open(withForeignKeys(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// withForeignKeys makes every pooled sqlite connection enforce foreign keys,
// not only the one that ran the pragma.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

// Open connects through dialector and applies the pool limits.
func Open(dialector gorm.Dialector, pool PoolOptions) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(utils.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}

	if conn.Dialector.Name() == "sqlite" {
		// A single connection keeps in-memory databases alive and the pragma in effect.
		sqlDB.SetMaxOpenConns(1)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return conn, nil
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return conn, nil
}

// Migrate runs GORM auto-migrations for every model.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return err
	}
	utils.Log.Info("database migration complete")
	return nil
}

var memoryDBs atomic.Int64

// OpenInMemory returns a migrated, empty SQLite database private to the caller.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:gameclub_mem_%d?mode=memory&cache=shared&_foreign_keys=1", memoryDBs.Add(1))
	conn, err := Open(sqlite.Open(dsn), PoolOptions{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Ping checks that the database answers.
func Ping(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
