package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// ModerationRepository persists the main-chat message log and the restriction
// ladder state.
type ModerationRepository interface {
	LogMainChatMessage(msg *MainChatMessage) error
	// FindBySender matches a forwarded original by timestamp, text and the
	// visible sender id.
	FindBySender(ts time.Time, text string, senderID int64) (*MainChatMessage, error)
	// FindBySenderName matches a forwarded original from a hidden-user origin
	// by timestamp, text and the sender's display name.
	FindBySenderName(ts time.Time, text string, senderName string) (*MainChatMessage, error)
	GetMainChatMessage(messageID int) (*MainChatMessage, error)
	PurgeMainChatLogBefore(cutoff time.Time) (int64, error)

	// GetOrCreateRestriction returns the user's restriction whose cooldown has
	// not expired, or a fresh level -1 row.
	GetOrCreateRestriction(userID int64) (*Restriction, error)
	SaveRestriction(restriction *Restriction) error
	CountActiveRestrictions() (int64, error)
}

type sqliteModerationRepository struct {
	db      *gorm.DB
	logsink *slog.Logger
}

func NewModerationRepository(db *gorm.DB, logsink *slog.Logger) ModerationRepository {
	return &sqliteModerationRepository{db: db, logsink: logsink}
}

func (r *sqliteModerationRepository) LogMainChatMessage(msg *MainChatMessage) error {
	defer timed(r.logsink, "moderation.log_message")()
	if err := r.db.Save(msg).Error; err != nil {
		return fmt.Errorf("failed to log main chat message: %w", err)
	}
	return nil
}

func (r *sqliteModerationRepository) FindBySender(ts time.Time, text string, senderID int64) (*MainChatMessage, error) {
	defer timed(r.logsink, "moderation.find_by_sender")()
	return r.findOne("timestamp = ? AND text = ? AND sender_id = ?", ts, text, senderID)
}

func (r *sqliteModerationRepository) FindBySenderName(ts time.Time, text string, senderName string) (*MainChatMessage, error) {
	defer timed(r.logsink, "moderation.find_by_sender_name")()
	return r.findOne("timestamp = ? AND text = ? AND sender_name = ?", ts, text, senderName)
}

func (r *sqliteModerationRepository) findOne(query string, args ...any) (*MainChatMessage, error) {
	var msg MainChatMessage
	err := r.db.Where(query, args...).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find main chat message: %w", err)
	}
	return &msg, nil
}

func (r *sqliteModerationRepository) GetMainChatMessage(messageID int) (*MainChatMessage, error) {
	defer timed(r.logsink, "moderation.get_message")()
	var msg MainChatMessage
	err := r.db.First(&msg, "message_id = ?", messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get main chat message: %w", err)
	}
	return &msg, nil
}

func (r *sqliteModerationRepository) PurgeMainChatLogBefore(cutoff time.Time) (int64, error) {
	defer timed(r.logsink, "moderation.purge_log")()
	res := r.db.Where("timestamp < ?", cutoff).Delete(&MainChatMessage{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge main chat log: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *sqliteModerationRepository) GetOrCreateRestriction(userID int64) (*Restriction, error) {
	defer timed(r.logsink, "moderation.get_or_create_restriction")()
	var restriction Restriction
	err := r.db.Where("user_id = ? AND cooldown_until > ?", userID, time.Now()).First(&restriction).Error
	if err == nil {
		return &restriction, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up restriction: %w", err)
	}
	restriction = Restriction{UserID: userID, Level: -1}
	if err := r.db.Create(&restriction).Error; err != nil {
		return nil, fmt.Errorf("failed to create restriction: %w", err)
	}
	return &restriction, nil
}

func (r *sqliteModerationRepository) SaveRestriction(restriction *Restriction) error {
	defer timed(r.logsink, "moderation.save_restriction")()
	if restriction.ActiveUntil.After(restriction.CooldownUntil) {
		return fmt.Errorf("restriction invariant violated: active until %v after cooldown until %v",
			restriction.ActiveUntil, restriction.CooldownUntil)
	}
	if err := r.db.Save(restriction).Error; err != nil {
		return fmt.Errorf("failed to save restriction: %w", err)
	}
	return nil
}

func (r *sqliteModerationRepository) CountActiveRestrictions() (int64, error) {
	defer timed(r.logsink, "moderation.count_active_restrictions")()
	var count int64
	err := r.db.Model(&Restriction{}).Where("active_until > ?", time.Now()).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count restrictions: %w", err)
	}
	return count, nil
}
