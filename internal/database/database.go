package database

import (
	"fmt"
	"log"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkasyanov/shoebox/internal/entities"
)

type Database struct {
	DB *gorm.DB

	initMu sync.Mutex
}

// NewDatabase opens the SQLite store at dbPath and ensures the schema
// exists. WAL mode keeps readers from blocking the single writer; the
// busy timeout covers interleaved calls from a frequently-refocused
// client. TranslateError turns duplicate-key failures into
// gorm.ErrDuplicatedKey so the identifier retry loop can classify them.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.EnsureInitialized(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// EnsureInitialized creates the album, asset and settings tables if they
// are absent. It may be called repeatedly and concurrently by independent
// collaborators; calls are serialized and AutoMigrate is a no-op once the
// schema exists.
func (d *Database) EnsureInitialized() error {
	d.initMu.Lock()
	defer d.initMu.Unlock()

	return d.DB.AutoMigrate(
		&entities.Album{},
		&entities.Asset{},
		&entities.Settings{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
