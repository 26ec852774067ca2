package storage_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"diaspora-bot/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&storage.Person{},
		&storage.Category{},
		&storage.AllowlistEntry{},
		&storage.SpamReport{},
		&storage.MainChatMessage{},
		&storage.Restriction{},
		&storage.Migration{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestDirectoryUpsertIsUniquePerUserAndCategory(t *testing.T) {
	repo := storage.NewDirectoryRepository(setupTestDB(t), testLogger())

	err := repo.Upsert(&storage.Person{UserID: 1, UserHandle: "alex", CategoryID: 0, Occupation: "Teach surfing"})
	assert.NoError(t, err)

	// Same (user, category) overwrites instead of duplicating.
	err = repo.Upsert(&storage.Person{UserID: 1, UserHandle: "alex_new", CategoryID: 0, Occupation: "Surf school"})
	assert.NoError(t, err)

	records, err := repo.ListByUser(1)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "alex_new", records[0].UserHandle)
	assert.Equal(t, "Surf school", records[0].Occupation)

	// A different category is a separate row.
	err = repo.Upsert(&storage.Person{UserID: 1, UserHandle: "alex_new", CategoryID: 2, Occupation: "Paddle"})
	assert.NoError(t, err)
	records, _ = repo.ListByUser(1)
	assert.Len(t, records, 2)
}

func TestDirectoryVisibilityFollowsSuspended(t *testing.T) {
	repo := storage.NewDirectoryRepository(setupTestDB(t), testLogger())

	_ = repo.Upsert(&storage.Person{UserID: 1, UserHandle: "a", CategoryID: 0, Occupation: "x"})
	_ = repo.Upsert(&storage.Person{UserID: 2, UserHandle: "b", CategoryID: 0, Occupation: "y", Suspended: true})

	visible, err := repo.ListVisible()
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].UserID)

	assert.NoError(t, repo.SetSuspended(2, 0, false))
	visible, _ = repo.ListVisible()
	assert.Len(t, visible, 2)
}

func TestAllowlistInsertIsIdempotent(t *testing.T) {
	repo := storage.NewAntispamRepository(setupTestDB(t), testLogger())

	ok, err := repo.IsAllowlisted(7)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Allowlist(7))
	assert.NoError(t, repo.Allowlist(7))

	ok, err = repo.IsAllowlisted(7)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestMainChatLogFindAndPurge(t *testing.T) {
	repo := storage.NewModerationRepository(setupTestDB(t), testLogger())

	ts := time.Now().UTC().Truncate(time.Second)
	old := ts.Add(-72 * time.Hour)
	assert.NoError(t, repo.LogMainChatMessage(&storage.MainChatMessage{
		MessageID: 10, Timestamp: ts, Text: "hello", SenderID: 5, SenderName: "Eve",
	}))
	assert.NoError(t, repo.LogMainChatMessage(&storage.MainChatMessage{
		MessageID: 11, Timestamp: old, Text: "stale", SenderID: 6, SenderName: "Bob",
	}))

	found, err := repo.FindBySender(ts, "hello", 5)
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.Equal(t, 10, found.MessageID)
	}

	found, err = repo.FindBySenderName(ts, "hello", "Eve")
	assert.NoError(t, err)
	assert.NotNil(t, found)

	missing, err := repo.FindBySender(ts, "hello", 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	purged, err := repo.PurgeMainChatLogBefore(ts.Add(-time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestRestrictionGetOrCreate(t *testing.T) {
	repo := storage.NewModerationRepository(setupTestDB(t), testLogger())

	fresh, err := repo.GetOrCreateRestriction(1)
	assert.NoError(t, err)
	assert.Equal(t, -1, fresh.Level)

	fresh.Level = 0
	fresh.ActiveUntil = time.Now()
	fresh.CooldownUntil = time.Now().Add(time.Hour)
	assert.NoError(t, repo.SaveRestriction(fresh))

	// While the cooldown is running the same row comes back.
	again, err := repo.GetOrCreateRestriction(1)
	assert.NoError(t, err)
	assert.Equal(t, fresh.ID, again.ID)
	assert.Equal(t, 0, again.Level)

	// After the cooldown a fresh row is created.
	again.CooldownUntil = time.Now().Add(-time.Minute)
	again.ActiveUntil = time.Now().Add(-time.Hour)
	assert.NoError(t, repo.SaveRestriction(again))
	expired, err := repo.GetOrCreateRestriction(1)
	assert.NoError(t, err)
	assert.NotEqual(t, again.ID, expired.ID)
	assert.Equal(t, -1, expired.Level)
}

func TestSaveRestrictionRejectsInvertedWindow(t *testing.T) {
	repo := storage.NewModerationRepository(setupTestDB(t), testLogger())

	err := repo.SaveRestriction(&storage.Restriction{
		UserID:        1,
		Level:         0,
		ActiveUntil:   time.Now().Add(2 * time.Hour),
		CooldownUntil: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestRunMigrations(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "0001_notes.sql"),
		[]byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);\nINSERT INTO notes (body) VALUES ('a');"), 0o644)
	assert.NoError(t, err)

	assert.NoError(t, storage.RunMigrations(db, testLogger(), dir))

	var count int64
	assert.NoError(t, db.Table("notes").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Applying again is a no-op.
	assert.NoError(t, storage.RunMigrations(db, testLogger(), dir))
	_ = db.Table("notes").Count(&count).Error
	assert.Equal(t, int64(1), count)
}
