// Package cache backs the DRY Cache (C5, §4.5): content-addressed
// persistence of per-file CodeBlocks, with mtime-keyed freshness and
// graceful degrade-to-in-memory on any I/O failure. Adapted from the
// teacher's internal/cache/gorm_db.go dual-pool GORM/SQLite wrapper: the
// read/write pool split and PRAGMA tuning are kept verbatim in shape; the
// AST-node schema is replaced with CacheRecordRow/CodeBlockRow (§3).
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	commonsLogger "github.com/flanksource/commons/logger"
	"github.com/thai-lint/thailint-go/models"
)

// CacheRecordRow is the GORM-mapped row for one file's DRY cache entry.
type CacheRecordRow struct {
	ID            uint   `gorm:"primaryKey"`
	FilePath      string `gorm:"column:file_path;uniqueIndex;not null"`
	ModTime       int64  `gorm:"column:mod_time;not null"`
	ContentLength int    `gorm:"column:content_length;not null"`
	ConfigHash    string `gorm:"column:config_hash;not null"`
	UpdatedAt     time.Time
}

func (CacheRecordRow) TableName() string { return "dry_cache_records" }

// CodeBlockRow is one hashed window belonging to a CacheRecordRow.
type CodeBlockRow struct {
	ID        uint   `gorm:"primaryKey"`
	FilePath  string `gorm:"column:file_path;index;not null"`
	StartLine int    `gorm:"column:start_line;not null"`
	EndLine   int    `gorm:"column:end_line;not null"`
	Snippet   string `gorm:"column:snippet"`
	HashValue uint64 `gorm:"column:hash_value;index;not null"`
}

func (CodeBlockRow) TableName() string { return "dry_code_blocks" }

// DB wraps a pair of SQLite connection pools (read-only, read-write), the
// shape the teacher uses to give SQLite's single-writer model room for
// concurrent readers without lock contention.
type DB struct {
	readDB  *gorm.DB
	writeDB *gorm.DB
	path    string
}

// Open creates (or attaches to) the SQLite file at dbPath, auto-migrating
// the DRY schema. Any failure here is the caller's signal to degrade to an
// in-memory cache (§4.5) — Open itself does not retry or swallow errors;
// that policy lives in dry/engine.go's cache-or-fallback decision.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	readConnStr := fmt.Sprintf("file:%s?mode=ro&_journal_mode=wal&_busy_timeout=5000&_foreign_keys=on&_synchronous=normal&_cache_size=10000&_temp_store=memory", dbPath)
	writeConnStr := fmt.Sprintf("file:%s?mode=rwc&_journal_mode=wal&_txlock=immediate&_busy_timeout=5000&_foreign_keys=on&_synchronous=normal&_cache_size=10000&_temp_store=memory", dbPath)

	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	writeDB, err := gorm.Open(sqlite.Open(writeConnStr), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open write database: %w", err)
	}
	writeSQLDB, err := writeDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying write sql.DB: %w", err)
	}
	writeSQLDB.SetMaxIdleConns(1)
	writeSQLDB.SetMaxOpenConns(1)

	if err := autoMigrate(writeDB); err != nil {
		return nil, fmt.Errorf("failed to migrate DRY cache schema: %w", err)
	}

	readDB, err := gorm.Open(sqlite.Open(readConnStr), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open read database: %w", err)
	}
	readSQLDB, err := readDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying read sql.DB: %w", err)
	}
	readSQLDB.SetMaxIdleConns(5)
	readSQLDB.SetMaxOpenConns(10)

	return &DB{readDB: readDB, writeDB: writeDB, path: dbPath}, nil
}

// Close releases both connection pools.
func (d *DB) Close() error {
	var firstErr error
	if sqlDB, err := d.writeDB.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil && firstErr == nil {
			firstErr = cerr
		}
	}
	if sqlDB, err := d.readDB.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil && firstErr == nil {
			firstErr = cerr
		}
	}
	return firstErr
}

func autoMigrate(db *gorm.DB) error {
	toMigrate := []any{&CacheRecordRow{}, &CodeBlockRow{}}
	for _, model := range toMigrate {
		if err := db.AutoMigrate(model); err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				commonsLogger.Warnf("dry cache migration hit a foreign-key error, truncating and retrying")
				db.Exec("PRAGMA foreign_keys = OFF")
				db.Unscoped().Where("1 = 1").Delete(&CodeBlockRow{})
				db.Unscoped().Where("1 = 1").Delete(&CacheRecordRow{})
				db.Exec("PRAGMA foreign_keys = ON")
				if retryErr := db.AutoMigrate(model); retryErr != nil {
					return fmt.Errorf("failed to migrate %T after truncation: %w", model, retryErr)
				}
				continue
			}
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// Lookup fetches a CacheRecord for filePath, returning (record, true) when
// present. Any error (including "no rows") is treated as a miss — per
// §4.5, cache errors degrade silently rather than propagating.
func (d *DB) Lookup(filePath string) (models.CacheRecord, bool) {
	var row CacheRecordRow
	if err := d.readDB.Where("file_path = ?", filePath).First(&row).Error; err != nil {
		return models.CacheRecord{}, false
	}
	var blockRows []CodeBlockRow
	if err := d.readDB.Where("file_path = ?", filePath).Find(&blockRows).Error; err != nil {
		return models.CacheRecord{}, false
	}
	blocks := make([]models.CodeBlock, 0, len(blockRows))
	for _, b := range blockRows {
		blocks = append(blocks, models.CodeBlock{
			FilePath:  b.FilePath,
			StartLine: b.StartLine,
			EndLine:   b.EndLine,
			Snippet:   b.Snippet,
			HashValue: b.HashValue,
		})
	}
	return models.CacheRecord{
		FilePath:      row.FilePath,
		ModTime:       row.ModTime,
		ContentLength: row.ContentLength,
		ConfigHash:    row.ConfigHash,
		Blocks:        blocks,
	}, true
}

// Store upserts a CacheRecord, replacing any previously stored blocks for
// that file. Errors are returned (not swallowed) so the caller can log and
// degrade per §4.5 — Store itself has no opinion on fallback policy.
func (d *DB) Store(record models.CacheRecord) error {
	return d.writeDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_path = ?", record.FilePath).Delete(&CacheRecordRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_path = ?", record.FilePath).Delete(&CodeBlockRow{}).Error; err != nil {
			return err
		}
		row := CacheRecordRow{
			FilePath:      record.FilePath,
			ModTime:       record.ModTime,
			ContentLength: record.ContentLength,
			ConfigHash:    record.ConfigHash,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, b := range record.Blocks {
			blockRow := CodeBlockRow{
				FilePath:  b.FilePath,
				StartLine: b.StartLine,
				EndLine:   b.EndLine,
				Snippet:   b.Snippet,
				HashValue: b.HashValue,
			}
			if err := tx.Create(&blockRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Evict purges records older than maxAge (§4.5 eviction). Failures are
// swallowed by the caller — Evict itself reports the error so the caller
// can log at debug level, per the "purging is best-effort" contract.
func (d *DB) Evict(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	var stale []CacheRecordRow
	if err := d.readDB.Where("updated_at < ?", cutoff).Find(&stale).Error; err != nil {
		return err
	}
	for _, row := range stale {
		d.writeDB.Where("file_path = ?", row.FilePath).Delete(&CodeBlockRow{})
		d.writeDB.Where("file_path = ?", row.FilePath).Delete(&CacheRecordRow{})
	}
	return nil
}

// FormatWriteAccessError mirrors the teacher's user-friendly diagnostics
// for common SQLite write failures (permissions, lock contention, disk
// space, read-only mounts).
func FormatWriteAccessError(err error) error {
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "access denied"):
		return fmt.Errorf("insufficient file permissions to write to the DRY cache: %w", err)
	case strings.Contains(errStr, "database is locked") || strings.Contains(errStr, "locked"):
		return fmt.Errorf("DRY cache is locked by another process: %w", err)
	case strings.Contains(errStr, "no space left") || strings.Contains(errStr, "disk full"):
		return fmt.Errorf("insufficient disk space to write the DRY cache: %w", err)
	case strings.Contains(errStr, "read-only") || strings.Contains(errStr, "readonly"):
		return fmt.Errorf("DRY cache path is mounted read-only: %w", err)
	default:
		return fmt.Errorf("DRY cache write failed: %w", err)
	}
}
