// File: /database/database.go
package database

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // pure-Go driver registered as "sqlite"

	"carservice-api/models"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Initialize opens the database for the given driver. MySQL is the production
// store; SQLite is used for local runs and tests.
func Initialize(driver, databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL, "":
		dialector = mysql.Open(databaseURL)
	case DriverSQLite:
		dialector = sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(databaseURL),
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		// SQLite has a single writer; one connection avoids SQLITE_BUSY on
		// concurrent transactions.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// sqliteDSN adds the pragmas the store relies on unless the caller set them.
func sqliteDSN(databaseURL string) string {
	dsn := databaseURL
	if !strings.Contains(dsn, "busy_timeout") {
		dsn = appendQuery(dsn, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn = appendQuery(dsn, "_pragma=foreign_keys(1)")
	}
	return dsn
}

func appendQuery(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.ServiceType{},
		&models.ServiceRecord{},
		&models.Reminder{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debug("Database schema is up to date")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
