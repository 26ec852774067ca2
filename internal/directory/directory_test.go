package directory_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"diaspora-bot/internal/directory"
	"diaspora-bot/internal/storage"
)

func setupService(t *testing.T) (*directory.Service, storage.DirectoryRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.Person{}, &storage.Category{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := storage.NewDirectoryRepository(db, logger)
	return directory.NewService(repo, "diasporabot", logger), repo
}

func TestBuildListingFlat(t *testing.T) {
	svc, repo := setupService(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 1, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas", Location: "North"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 2, UserHandle: "Al", CategoryID: 1, Occupation: "Arepas"}))

	listing, err := svc.BuildListing("Other", 4096, false)
	assert.NoError(t, err)
	assert.Empty(t, listing.Picker)
	// Single populated category: no block title, handles sorted
	// case-insensitively, every handle a deep link back into the bot.
	assert.Equal(t,
		"[@Al](https://t.me/diasporabot?start=1_Al): Arepas\n"+
			"[@zoe](https://t.me/diasporabot?start=1_zoe) (North): Empanadas",
		listing.Text)
}

func TestBuildListingBlocksAndOtherBucket(t *testing.T) {
	svc, repo := setupService(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 2, Title: "Lessons"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 1, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 2, UserHandle: "al", CategoryID: 9, Occupation: "Mystery"}))
	// Lessons stays empty and must be dropped; suspended records stay hidden.
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 3, UserHandle: "hidden", CategoryID: 1, Occupation: "Nothing", Suspended: true}))

	listing, err := svc.BuildListing("Other", 4096, false)
	assert.NoError(t, err)
	assert.Equal(t,
		"Food\n[@zoe](https://t.me/diasporabot?start=1_zoe): Empanadas\n\n"+
			"Other\n[@al](https://t.me/diasporabot?start=9_al): Mystery",
		listing.Text)
}

func TestBuildListingSwitchesToPicker(t *testing.T) {
	svc, repo := setupService(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 2, Title: "Lessons"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 1, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 2, UserHandle: "al", CategoryID: 2, Occupation: "Guitar"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 3, UserHandle: "bo", CategoryID: 2, Occupation: "Surf"}))

	t.Run("Overflow", func(t *testing.T) {
		listing, err := svc.BuildListing("Other", 10, false)
		assert.NoError(t, err)
		assert.Empty(t, listing.Text)
		if assert.Len(t, listing.Picker, 2) {
			assert.Equal(t, "Food: 1", listing.Picker[0].Caption)
			assert.Equal(t, "Lessons: 2", listing.Picker[1].Caption)
		}
	})

	t.Run("Exactly at the limit", func(t *testing.T) {
		full, err := svc.BuildListing("Other", 1<<20, false)
		assert.NoError(t, err)
		assert.NotEmpty(t, full.Text)
		length := utf8.RuneCountInString(full.Text)

		// A text of exactly the limit already goes through the picker.
		listing, err := svc.BuildListing("Other", length, false)
		assert.NoError(t, err)
		assert.Empty(t, listing.Text)
		assert.Len(t, listing.Picker, 2)

		// One more rune of headroom and it goes out flat again.
		listing, err = svc.BuildListing("Other", length+1, false)
		assert.NoError(t, err)
		assert.Equal(t, full.Text, listing.Text)
		assert.Empty(t, listing.Picker)
	})

	t.Run("Categories always", func(t *testing.T) {
		listing, err := svc.BuildListing("Other", 4096, true)
		assert.NoError(t, err)
		assert.Empty(t, listing.Text)
		assert.Len(t, listing.Picker, 2)
	})

	t.Run("Render picked category", func(t *testing.T) {
		text, err := svc.RenderCategory(2, "Other")
		assert.NoError(t, err)
		assert.Equal(t,
			"Lessons\n[@al](https://t.me/diasporabot?start=2_al): Guitar\n"+
				"[@bo](https://t.me/diasporabot?start=2_bo): Surf",
			text)
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, repo := setupService(t)
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 1, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas", Suspended: true}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 2, UserHandle: "al", CategoryID: 2, Occupation: "Guitar"}))

	data, err := svc.Export()
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"user_handle": "zoe"`))

	// Wipe and restore.
	assert.NoError(t, repo.ReplaceAll(nil))
	count, err := svc.Import(data)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	restored, err := repo.ListAll()
	assert.NoError(t, err)
	if assert.Len(t, restored, 2) {
		assert.True(t, restored[0].Suspended)
	}
}

func TestValidateImportRejectsGarbage(t *testing.T) {
	_, err := directory.ValidateImport([]byte("not json"))
	assert.Error(t, err)

	_, err = directory.ValidateImport([]byte(`[{"user_id": 0, "user_handle": ""}]`))
	assert.Error(t, err)
}
