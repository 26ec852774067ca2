package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryRepository persists service records and categories.
type DirectoryRepository interface {
	Upsert(record *Person) error
	Get(userID, categoryID int64) (*Person, error)
	ListByUser(userID int64) ([]Person, error)
	ListVisible() ([]Person, error)
	ListAll() ([]Person, error)
	Delete(userID, categoryID int64) error
	SetSuspended(userID, categoryID int64, suspended bool) error
	ReplaceAll(records []Person) error

	Categories() ([]Category, error)
	CategoryTitle(id int64) (string, error)
	SaveCategory(category *Category) error
	DeleteCategory(id int64) error
}

type sqliteDirectoryRepository struct {
	db      *gorm.DB
	logsink *slog.Logger
}

func NewDirectoryRepository(db *gorm.DB, logsink *slog.Logger) DirectoryRepository {
	return &sqliteDirectoryRepository{db: db, logsink: logsink}
}

// Upsert creates or overwrites the record for (UserID, CategoryID). The
// handle and LastModified are refreshed on every write.
func (r *sqliteDirectoryRepository) Upsert(record *Person) error {
	defer timed(r.logsink, "directory.upsert")()
	record.LastModified = time.Now()
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_handle", "occupation", "description", "location", "suspended", "last_modified",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

func (r *sqliteDirectoryRepository) Get(userID, categoryID int64) (*Person, error) {
	defer timed(r.logsink, "directory.get")()
	var record Person
	err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

func (r *sqliteDirectoryRepository) ListByUser(userID int64) ([]Person, error) {
	defer timed(r.logsink, "directory.list_by_user")()
	var records []Person
	if err := r.db.Where("user_id = ?", userID).Order("category_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list user records: %w", err)
	}
	return records, nil
}

func (r *sqliteDirectoryRepository) ListVisible() ([]Person, error) {
	defer timed(r.logsink, "directory.list_visible")()
	var records []Person
	if err := r.db.Where("suspended = ?", false).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list visible records: %w", err)
	}
	return records, nil
}

func (r *sqliteDirectoryRepository) ListAll() ([]Person, error) {
	defer timed(r.logsink, "directory.list_all")()
	var records []Person
	if err := r.db.Order("user_id, category_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (r *sqliteDirectoryRepository) Delete(userID, categoryID int64) error {
	defer timed(r.logsink, "directory.delete")()
	err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).Delete(&Person{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (r *sqliteDirectoryRepository) SetSuspended(userID, categoryID int64, suspended bool) error {
	defer timed(r.logsink, "directory.set_suspended")()
	err := r.db.Model(&Person{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Updates(map[string]any{"suspended": suspended, "last_modified": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("failed to set suspended: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole directory for the given set, used by the
// administrator JSON import.
func (r *sqliteDirectoryRepository) ReplaceAll(records []Person) error {
	defer timed(r.logsink, "directory.replace_all")()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Person{}).Error; err != nil {
			return fmt.Errorf("failed to clear directory: %w", err)
		}
		for i := range records {
			records[i].ID = 0
			records[i].LastModified = time.Now()
			if err := tx.Create(&records[i]).Error; err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
		return nil
	})
}

func (r *sqliteDirectoryRepository) Categories() ([]Category, error) {
	defer timed(r.logsink, "directory.categories")()
	var categories []Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *sqliteDirectoryRepository) CategoryTitle(id int64) (string, error) {
	defer timed(r.logsink, "directory.category_title")()
	var category Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get category: %w", err)
	}
	return category.Title, nil
}

func (r *sqliteDirectoryRepository) SaveCategory(category *Category) error {
	defer timed(r.logsink, "directory.save_category")()
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *sqliteDirectoryRepository) DeleteCategory(id int64) error {
	defer timed(r.logsink, "directory.delete_category")()
	if err := r.db.Delete(&Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
