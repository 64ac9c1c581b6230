// Package database owns the process wide gorm handle used by eventum.
package database

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/database/model"
	"github.com/eventum/eventum/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbName string
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Event{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens (creating if needed) the sqlite database at dbPath, migrates
// the models and makes it the active database. An already open database is
// closed first.
func InitDB(dbPath string) error {
	if db != nil {
		if err := CloseDB(); err != nil {
			logger.Warning("close previous database:", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), fs.ModePerm); err != nil {
		return err
	}

	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	dsn := dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	opened, err := gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}
	db = opened

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	dbName = strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	logger.Debugf("database %q ready at %s", dbName, dbPath)
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		logger.Warningf("error executing checkpoint: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	dbName = ""
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

// Name returns the name of the active database, empty when none is open.
func Name() string {
	return dbName
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint flushes the WAL into the main database file.
func Checkpoint() error {
	if db == nil {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
