package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// AntispamRepository persists the first-message allowlist and the spam log.
type AntispamRepository interface {
	IsAllowlisted(userID int64) (bool, error)
	Allowlist(userID int64) error
	AddSpamReport(report *SpamReport) error
	CountSpamSince(since time.Time) (int64, error)
}

type sqliteAntispamRepository struct {
	db      *gorm.DB
	logsink *slog.Logger
}

func NewAntispamRepository(db *gorm.DB, logsink *slog.Logger) AntispamRepository {
	return &sqliteAntispamRepository{db: db, logsink: logsink}
}

func (r *sqliteAntispamRepository) IsAllowlisted(userID int64) (bool, error) {
	defer timed(r.logsink, "antispam.is_allowlisted")()
	var entry AllowlistEntry
	err := r.db.First(&entry, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check allowlist: %w", err)
	}
	return true, nil
}

func (r *sqliteAntispamRepository) Allowlist(userID int64) error {
	defer timed(r.logsink, "antispam.allowlist")()
	entry := AllowlistEntry{UserID: userID, CreatedAt: time.Now()}
	if err := r.db.Where(AllowlistEntry{UserID: userID}).FirstOrCreate(&entry).Error; err != nil {
		return fmt.Errorf("failed to allowlist user: %w", err)
	}
	return nil
}

func (r *sqliteAntispamRepository) AddSpamReport(report *SpamReport) error {
	defer timed(r.logsink, "antispam.add_spam_report")()
	report.CreatedAt = time.Now()
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to log spam report: %w", err)
	}
	return nil
}

func (r *sqliteAntispamRepository) CountSpamSince(since time.Time) (int64, error) {
	defer timed(r.logsink, "antispam.count_spam_since")()
	var count int64
	err := r.db.Model(&SpamReport{}).Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count spam reports: %w", err)
	}
	return count, nil
}
