package db

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Db is the global database connection object
	Db *gorm.DB
	// Path is the path to the SQLite database file
	Path = filepath.Join(os.Getenv("HOME"), ".prodcat", "catalog.db")
)

const dbFileName = "catalog.db"

// ConfigurePath sets Path from the environment.
// PRODCAT_HOME wins over XDG_DATA_HOME, and $HOME/.prodcat is the fallback.
func ConfigurePath() error {
	if home := os.Getenv("PRODCAT_HOME"); home != "" {
		Path = filepath.Join(home, dbFileName)
		return nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		Path = filepath.Join(xdg, "prodcat", dbFileName)
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	Path = filepath.Join(home, ".prodcat", dbFileName)
	return nil
}

// InitDB initializes the database by creating the necessary directory,
// opening the database connection, migrating tables, and configuring the logger.
func InitDB() error {
	if err := createDBDirectory(); err != nil {
		return err
	}

	if err := openDatabase(); err != nil {
		return err
	}

	if err := migrateTables(); err != nil {
		return err
	}

	configureLogger()

	log.Info().Str("path", Path).Msg("Database initialized successfully")
	return nil
}

func createDBDirectory() error {
	dir := filepath.Dir(Path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error().Err(err).Msg("Failed to create database directory")
			return err
		}
	}
	return nil
}

func openDatabase() error {
	var err error
	Db, err = gorm.Open(sqlite.Open(Path), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		return err
	}
	return nil
}

func migrateTables() error {
	if err := Db.AutoMigrate(&Product{}); err != nil {
		log.Error().Err(err).Msg("Failed to auto-migrate database")
		return err
	}
	return nil
}

// configureLogger silences GORM unless zerolog output is enabled.
func configureLogger() {
	if zerolog.GlobalLevel() == zerolog.Disabled {
		Db.Logger = Db.Logger.LogMode(logger.Silent)
	} else {
		Db.Logger = Db.Logger.LogMode(logger.Info)
	}
}

// GetDB returns the global connection.
func GetDB() *gorm.DB {
	return Db
}

// CloseDB closes the database connection. It is a no-op when the database was never opened.
func CloseDB() error {
	if Db == nil {
		return nil
	}
	sqlDB, err := Db.DB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get raw database connection")
		return err
	}
	return sqlDB.Close()
}

// Shutdown closes the database and only logs a failure; used by interrupt handlers.
func Shutdown() {
	if err := CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close database on shutdown")
	}
}
