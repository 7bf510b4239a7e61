package speed

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is a persisted speed Result.
type Record struct {
	gorm.Model

	Mode       string `gorm:"index"`
	Runs       int
	BufferSize int

	EncryptMin time.Duration
	EncryptMax time.Duration
	EncryptAvg time.Duration
	DecryptMin time.Duration
	DecryptMax time.Duration
	DecryptAvg time.Duration
}

// NewRecord flattens r for storage.
func NewRecord(r Result) *Record {
	return &Record{
		Mode:       r.Mode,
		Runs:       r.Runs,
		BufferSize: r.BufferSize,
		EncryptMin: r.Encrypt.Min,
		EncryptMax: r.Encrypt.Max,
		EncryptAvg: r.Encrypt.Avg,
		DecryptMin: r.Decrypt.Min,
		DecryptMax: r.Decrypt.Max,
		DecryptAvg: r.Decrypt.Avg,
	}
}

// Result converts the record back into a Result.
func (r *Record) Result() Result {
	return Result{
		Mode:       r.Mode,
		Runs:       r.Runs,
		BufferSize: r.BufferSize,
		Encrypt:    Timing{Min: r.EncryptMin, Max: r.EncryptMax, Avg: r.EncryptAvg},
		Decrypt:    Timing{Min: r.DecryptMin, Max: r.DecryptMax, Avg: r.DecryptAvg},
	}
}

// Store persists speed results.
type Store struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) a sqlite database at path.
func OpenSQLite(path string, debug bool) (*Store, error) {
	return open(sqlite.Open(path), debug)
}

// OpenPostgres connects to the Postgres instance described by dataSource.
func OpenPostgres(dataSource string, debug bool) (*Store, error) {
	return open(postgres.Open(dataSource), debug)
}

// NewStore wraps an already opened database and migrates the schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("error auto migrating db: %w", err)
	}
	return &Store{db: db}, nil
}

func open(dialector gorm.Dialector, debug bool) (*Store, error) {
	// By default only log errors but enable full SQL query prints-to-console with debug mode
	log := logger.Default.LogMode(logger.Error)
	if debug {
		log = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return NewStore(db)
}

// Save inserts a record for r.
func (s *Store) Save(r Result) (*Record, error) {
	record := NewRecord(r)
	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("error saving speed result: %w", err)
	}
	return record, nil
}

// List returns up to limit records, newest first, optionally filtered by mode.
func (s *Store) List(mode string, limit int) ([]Record, error) {
	var records []Record
	query := s.db.Order("id desc").Limit(limit)
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error listing speed results: %w", err)
	}
	return records, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	database, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error while getting current connection: %w", err)
	}
	if err := database.Close(); err != nil {
		return fmt.Errorf("error while closing database connection: %w", err)
	}
	return nil
}
