package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Cache keeps the last successfully fetched feed document in a local
// SQLite file so the API can keep serving the catalog when the remote
// feed is unreachable.
type Cache struct {
	conn *gorm.DB
}

type feedSnapshot struct {
	ID        uint   `gorm:"primaryKey"`
	Payload   []byte `gorm:"not null"`
	FetchedAt time.Time
}

func (feedSnapshot) TableName() string { return "feed_snapshots" }

// NewCache opens (and migrates) the snapshot store at path.
func NewCache(path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog cache path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening catalog cache: %w", err)
	}

	if err := conn.AutoMigrate(&feedSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrating catalog cache: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Store replaces the cached snapshot with the given document.
func (c *Cache) Store(ctx context.Context, payload []byte, fetchedAt time.Time) error {
	snapshot := feedSnapshot{ID: 1, Payload: payload, FetchedAt: fetchedAt}
	if err := c.conn.WithContext(ctx).Save(&snapshot).Error; err != nil {
		return fmt.Errorf("storing catalog snapshot: %w", err)
	}
	return nil
}

// Load returns the cached document, or found=false when none exists.
func (c *Cache) Load(ctx context.Context) (payload []byte, fetchedAt time.Time, found bool, err error) {
	var snapshot feedSnapshot
	result := c.conn.WithContext(ctx).First(&snapshot, 1)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("loading catalog snapshot: %w", result.Error)
	}
	return snapshot.Payload, snapshot.FetchedAt, true, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
