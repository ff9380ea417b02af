package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the relational database. It is constructed once in main and
// injected; there is no package-level instance.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path.
func Open(path string) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	return &Store{db: gdb}, nil
}

// OpenInMemory opens a throwaway database, used by tests. Each call gets
// its own uniquely named shared-cache instance so pooled connections see
// the same data without tests seeing each other's.
func OpenInMemory() (*Store, error) {
	return Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&domain.Author{},
		&domain.Entry{},
		&domain.Comment{},
		&domain.FollowRequest{},
		&domain.RemoteNode{},
	)
}
