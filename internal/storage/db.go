// Package storage is the relational store behind the bot: the service
// directory, the antispam allowlist and spam log, the main-chat message log
// and the restriction ladder state, all in a single sqlite file under the
// data directory.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens (creating if needed) the sqlite database at path and ensures
// the baseline tables exist.
func NewDB(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.AutoMigrate(
		&Person{},
		&Category{},
		&AllowlistEntry{},
		&SpamReport{},
		&MainChatMessage{},
		&Restriction{},
		&Migration{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

// RunMigrations executes every .sql file under dir that is not yet recorded
// in the migrations table, in lexical order. Statements are split on
// semicolons; each file is recorded after all of its statements succeed.
func RunMigrations(db *gorm.DB, logsink *slog.Logger, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logsink.Debug("No migrations directory", "dir", dir)
			return nil
		}
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var count int64
		if err := db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		start := time.Now()
		err = db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range strings.Split(string(raw), ";") {
				stmt = strings.TrimSpace(stmt)
				if stmt == "" {
					continue
				}
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("statement failed: %w", err)
				}
			}
			return tx.Create(&Migration{Name: name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logsink.Info("Applied migration", "name", name, "elapsed_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// RawQuery is the administrator escape hatch: it runs a single parameterized
// query and returns the rows as maps.
func RawQuery(db *gorm.DB, logsink *slog.Logger, query string, args ...any) ([]map[string]any, error) {
	defer timed(logsink, "raw_query")()
	var rows []map[string]any
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("raw query failed: %w", err)
	}
	return rows, nil
}

// timed logs the elapsed milliseconds of a store call when the returned
// function runs.
func timed(logsink *slog.Logger, op string) func() {
	start := time.Now()
	return func() {
		logsink.Debug("Store call", "op", op, "elapsed_ms", time.Since(start).Milliseconds())
	}
}
