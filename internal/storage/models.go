package storage

import (
	"time"
)

// Person is one service-directory record, one row per (user, category).
type Person struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_people_user_category,priority:1"`
	UserHandle   string    `gorm:"size:255"`
	CategoryID   int64     `gorm:"not null;uniqueIndex:idx_people_user_category,priority:2"`
	Occupation   string    `gorm:"not null"`
	Description  string
	Location     string
	Suspended    bool      `gorm:"default:false"`
	LastModified time.Time `gorm:"not null"`
}

func (Person) TableName() string { return "people" }

// Category is an administrator-defined service category. ID 0 is the implicit
// "other" bucket and never has a row here.
type Category struct {
	ID    int64  `gorm:"primaryKey"`
	Title string `gorm:"not null"`
}

func (Category) TableName() string { return "people_category" }

// AllowlistEntry marks a user whose first main-chat message passed
// classification. Entries never expire.
type AllowlistEntry struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (AllowlistEntry) TableName() string { return "antispam_allowlist" }

// SpamReport is an append-only log row for a detected spam message.
type SpamReport struct {
	ID         int64  `gorm:"primaryKey"`
	UserID     int64  `gorm:"not null;index"`
	Text       string `gorm:"not null"`
	Trigger    string `gorm:"size:255"` // comma-joined names of the layers that fired
	Confidence float64
	CreatedAt  time.Time `gorm:"not null"`
}

func (SpamReport) TableName() string { return "spam" }

// MainChatMessage is a message observed in the main chat, kept so that
// forwarded complaints can be matched back to the original.
type MainChatMessage struct {
	MessageID    int       `gorm:"primaryKey;autoIncrement:false"`
	Timestamp    time.Time `gorm:"not null;index"`
	Text         string
	SenderID     int64  `gorm:"index"`
	SenderName   string `gorm:"size:255"`
	SenderHandle string `gorm:"size:255"`
}

func (MainChatMessage) TableName() string { return "moderation_main_chat_messages" }

// Restriction is a user's position on the restriction ladder. Level -1 is a
// fresh restriction that has not been elevated yet.
type Restriction struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"not null;index"`
	Level         int       `gorm:"not null"`
	ActiveUntil   time.Time `gorm:"not null"`
	CooldownUntil time.Time `gorm:"not null;index"`
}

func (Restriction) TableName() string { return "moderation_restrictions" }

// Migration records an applied migration file.
type Migration struct {
	Name      string `gorm:"primaryKey"`
	AppliedAt time.Time
}

func (Migration) TableName() string { return "migrations" }
