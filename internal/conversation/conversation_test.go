package conversation_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"diaspora-bot/internal/conversation"
	"diaspora-bot/internal/directory"
	"diaspora-bot/internal/storage"
)

func setupManager(t *testing.T) (*conversation.Manager, storage.DirectoryRepository) {
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
	return conversation.NewManager(repo, logger), repo
}

func TestEnrollHappyPath(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))

	reply, err := m.Start(5, "zoe", conversation.ModeEnroll)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.pick_category", reply.Key)
	// Defined categories plus the implicit "other" bucket.
	assert.Equal(t, []conversation.Option{
		{ID: 1, Title: "Food"},
		{ID: directory.OtherCategoryID},
	}, reply.Options)
	assert.Equal(t, conversation.StageSelectingCategory, m.Stage(5))

	limits := conversation.Limits{}
	reply, err = m.PickCategory(5, 1, limits)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.ask_occupation", reply.Key)

	reply, _ = m.HandleText(5, "Empanadas", limits)
	assert.Equal(t, "conversation.ask_description", reply.Key)
	reply, _ = m.HandleText(5, "Best in town", limits)
	assert.Equal(t, "conversation.ask_location", reply.Key)
	reply, _ = m.HandleText(5, "North side", limits)
	assert.Equal(t, "conversation.confirm_legality", reply.Key)
	assert.True(t, reply.Confirm)

	reply, err = m.Confirm(5, true, false)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.saved", reply.Key)
	assert.True(t, reply.End)
	assert.Equal(t, conversation.StageIdle, m.Stage(5))

	record, err := repo.Get(5, 1)
	assert.NoError(t, err)
	if assert.NotNil(t, record) {
		assert.Equal(t, "Empanadas", record.Occupation)
		assert.Equal(t, "Best in town", record.Description)
		assert.Equal(t, "North side", record.Location)
		assert.False(t, record.Suspended)
	}
}

func TestEnrollIntoOtherBucketWithCategoriesDefined(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))

	reply, err := m.Start(5, "zoe", conversation.ModeEnroll)
	assert.NoError(t, err)
	assert.Contains(t, reply.Options, conversation.Option{ID: directory.OtherCategoryID})

	limits := conversation.Limits{}
	reply, err = m.PickCategory(5, directory.OtherCategoryID, limits)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.ask_occupation", reply.Key)

	_, _ = m.HandleText(5, "Odd jobs", limits)
	_, _ = m.HandleText(5, "Whatever needs doing", limits)
	_, _ = m.HandleText(5, "-", limits)
	_, err = m.Confirm(5, true, false)
	assert.NoError(t, err)

	record, err := repo.Get(5, directory.OtherCategoryID)
	assert.NoError(t, err)
	if assert.NotNil(t, record) {
		assert.Equal(t, "Odd jobs", record.Occupation)
	}
}

func TestEnrollRequiresHandle(t *testing.T) {
	m, _ := setupManager(t)
	reply, err := m.Start(5, "", conversation.ModeEnroll)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.handle_required", reply.Key)
	assert.True(t, reply.End)
	assert.Equal(t, conversation.StageIdle, m.Stage(5))
}

func TestEnrollWithoutCategoriesSkipsPicker(t *testing.T) {
	m, repo := setupManager(t)
	reply, err := m.Start(5, "zoe", conversation.ModeEnroll)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.ask_occupation", reply.Key)

	limits := conversation.Limits{}
	_, _ = m.HandleText(5, "Empanadas", limits)
	_, _ = m.HandleText(5, "d", limits)
	_, _ = m.HandleText(5, "l", limits)
	_, err = m.Confirm(5, true, false)
	assert.NoError(t, err)

	record, _ := repo.Get(5, 0)
	assert.NotNil(t, record)
}

func TestFieldLimitReasksSameStage(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	limits := conversation.Limits{Occupation: 5}
	_, _ = m.Start(5, "zoe", conversation.ModeEnroll)
	_, _ = m.PickCategory(5, 1, limits)

	reply, err := m.HandleText(5, "Too long occupation", limits)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.too_long", reply.Key)
	// Overflow preview: limit, allowed prefix, the rest.
	assert.Equal(t, []any{5, "Too l", "ong occupation"}, reply.Args)

	// Still at the same stage, a valid answer moves on.
	reply, _ = m.HandleText(5, "Food", limits)
	assert.Equal(t, "conversation.ask_description", reply.Key)
}

func TestUpdatePrefillsAndOverwrites(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 5, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas", Description: "Old", Location: "South"}))

	reply, err := m.Start(5, "zoe", conversation.ModeUpdate)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.pick_category", reply.Key)
	assert.Equal(t, []conversation.Option{{ID: 1, Title: "Food"}}, reply.Options)

	limits := conversation.Limits{Occupation: 80, Description: 400, Location: 60}
	reply, err = m.PickCategory(5, 1, limits)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.ask_occupation_update", reply.Key)
	// Prompt shows the current value together with the field limit.
	assert.Equal(t, []any{"Empanadas", 80}, reply.Args)

	// Re-submitting the same text keeps the field.
	reply, _ = m.HandleText(5, "Empanadas", limits)
	assert.Equal(t, "conversation.ask_description_update", reply.Key)
	assert.Equal(t, []any{"Old", 400}, reply.Args)
	reply, _ = m.HandleText(5, "New description", limits)
	assert.Equal(t, []any{"South", 60}, reply.Args)
	_, _ = m.HandleText(5, "South", limits)
	_, err = m.Confirm(5, true, false)
	assert.NoError(t, err)

	record, _ := repo.Get(5, 1)
	assert.Equal(t, "New description", record.Description)
}

func TestUpdateWithNoRecordsEnds(t *testing.T) {
	m, _ := setupManager(t)
	reply, err := m.Start(5, "zoe", conversation.ModeUpdate)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.nothing_enrolled", reply.Key)
	assert.True(t, reply.End)
}

func TestRetireDeletesOnConfirm(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	assert.NoError(t, repo.Upsert(&storage.Person{UserID: 5, UserHandle: "zoe", CategoryID: 1, Occupation: "Empanadas"}))

	_, _ = m.Start(5, "zoe", conversation.ModeRetire)
	reply, err := m.PickCategory(5, 1, conversation.Limits{})
	assert.NoError(t, err)
	assert.Equal(t, "conversation.confirm_retire", reply.Key)
	assert.True(t, reply.Confirm)

	reply, err = m.Confirm(5, true, false)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.retired", reply.Key)

	record, _ := repo.Get(5, 1)
	assert.Nil(t, record)
}

func TestDeclineLeavesStoreUntouched(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	limits := conversation.Limits{}
	_, _ = m.Start(5, "zoe", conversation.ModeEnroll)
	_, _ = m.PickCategory(5, 1, limits)
	_, _ = m.HandleText(5, "o", limits)
	_, _ = m.HandleText(5, "d", limits)
	_, _ = m.HandleText(5, "l", limits)

	reply, err := m.Confirm(5, false, false)
	assert.NoError(t, err)
	assert.Equal(t, "conversation.cancelled", reply.Key)

	record, _ := repo.Get(5, 1)
	assert.Nil(t, record)
}

func TestModerationWritesSuspended(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	limits := conversation.Limits{}
	_, _ = m.Start(5, "zoe", conversation.ModeEnroll)
	_, _ = m.PickCategory(5, 1, limits)
	_, _ = m.HandleText(5, "o", limits)
	_, _ = m.HandleText(5, "d", limits)
	_, _ = m.HandleText(5, "l", limits)

	reply, err := m.Confirm(5, true, true)
	assert.NoError(t, err)
	assert.True(t, reply.NeedsModeration)
	assert.Equal(t, int64(1), reply.CategoryID)

	record, _ := repo.Get(5, 1)
	if assert.NotNil(t, record) {
		assert.True(t, record.Suspended)
	}
}

func TestUnexpectedInputAborts(t *testing.T) {
	m, repo := setupManager(t)
	assert.NoError(t, repo.SaveCategory(&storage.Category{ID: 1, Title: "Food"}))
	_, _ = m.Start(5, "zoe", conversation.ModeEnroll)

	// Free text while a category pick is expected.
	reply, err := m.HandleText(5, "hello?", conversation.Limits{})
	assert.NoError(t, err)
	assert.Equal(t, "conversation.aborted", reply.Key)
	assert.Equal(t, conversation.StageIdle, m.Stage(5))
}
