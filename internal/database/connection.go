package database

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/actionsum/auraswitch/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultDBName = "auraswitch.db"
	defaultDBDir  = ".config/auraswitch"

	// the daemon writes while `auraswitch errors` reads
	dsnParams = "?_busy_timeout=5000&_journal_mode=WAL"
)

type DB struct {
	*gorm.DB
	path string
}

func GetDefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	return filepath.Join(homeDir, defaultDBDir, defaultDBName), nil
}

// Connect opens the error journal at dbPath, or at the default location when
// dbPath is empty, creating the parent directory as needed.
func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		var err error
		if dbPath, err = GetDefaultDBPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	gdb, err := gorm.Open(sqlite.Open(dbPath+dsnParams), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", dbPath)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return &DB{DB: gdb, path: dbPath}, nil
}

// Path returns the file backing the journal
func (db *DB) Path() string {
	return db.path
}

// Initialize creates or migrates the error_logs table
func (db *DB) Initialize() error {
	if err := db.AutoMigrate(&models.ErrorLog{}); err != nil {
		return errors.Wrap(err, "failed to initialize database schema")
	}
	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}
