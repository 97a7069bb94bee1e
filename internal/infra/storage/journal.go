package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FetchLog is one completed upstream request.
type FetchLog struct {
	ID         uint   `gorm:"primaryKey"`
	URL        string `gorm:"index"`
	Status     int
	DurationMS int64
	Error      string
	CreatedAt  time.Time
}

// QueryLog is one aggregate exchange query.
type QueryLog struct {
	ID         uint `gorm:"primaryKey"`
	Days       int
	DurationMS int64
	CreatedAt  time.Time
}

// Journal persists upstream fetch and query outcomes to SQLite. It is
// write-only observability: nothing on the serve path reads it, and a
// failed write never fails the request that produced it.
type Journal struct {
	db *gorm.DB
}

// NewJournal opens (and migrates) the journal database at path.
func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.AutoMigrate(&FetchLog{}, &QueryLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal database: %w", err)
	}

	return &Journal{db: db}, nil
}

// RecordFetch stores one upstream fetch outcome.
func (j *Journal) RecordFetch(url string, status int, dur time.Duration, fetchErr string) {
	rec := FetchLog{
		URL:        url,
		Status:     status,
		DurationMS: dur.Milliseconds(),
		Error:      fetchErr,
	}
	if err := j.db.Create(&rec).Error; err != nil {
		slog.Warn("Journal fetch write failed", slog.Any("error", err))
	}
}

// RecordQuery stores one aggregate query outcome.
func (j *Journal) RecordQuery(days int, dur time.Duration) {
	rec := QueryLog{
		Days:       days,
		DurationMS: dur.Milliseconds(),
	}
	if err := j.db.Create(&rec).Error; err != nil {
		slog.Warn("Journal query write failed", slog.Any("error", err))
	}
}

// RecentFetches returns up to limit fetch records, newest first.
func (j *Journal) RecentFetches(limit int) ([]FetchLog, error) {
	var logs []FetchLog
	err := j.db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// RecentQueries returns up to limit query records, newest first.
func (j *Journal) RecentQueries(limit int) ([]QueryLog, error) {
	var logs []QueryLog
	err := j.db.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
