package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mkoster/tally/internal/models"
)

// SQLiteStore flattens the document into users and habits tables. The
// contract stays whole-document: Load reads both tables in full, Save
// rewrites both inside one transaction.
type SQLiteStore struct {
	database *gorm.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&models.User{}, &models.Habit{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{database: database}, nil
}

func (store *SQLiteStore) Load() (models.Document, error) {
	document := models.EmptyDocument()
	if err := store.database.Order("created_at").Find(&document.Users).Error; err != nil {
		return models.EmptyDocument(), nil
	}
	if err := store.database.Order("created_at").Find(&document.Habits).Error; err != nil {
		return models.EmptyDocument(), nil
	}
	return document, nil
}

func (store *SQLiteStore) Save(document models.Document) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Habit{}).Error; err != nil {
			return fmt.Errorf("clear habits: %w", err)
		}
		if len(document.Users) > 0 {
			if err := tx.Create(document.Users).Error; err != nil {
				return fmt.Errorf("save users: %w", err)
			}
		}
		if len(document.Habits) > 0 {
			if err := tx.Create(document.Habits).Error; err != nil {
				return fmt.Errorf("save habits: %w", err)
			}
		}
		return nil
	})
}

// Close releases the underlying connection pool; used by tests.
func (store *SQLiteStore) Close() error {
	sqlDB, err := store.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
