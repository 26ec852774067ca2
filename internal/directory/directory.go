// Package directory renders the community service directory and moves it in
// and out of JSON for administrator backups.
package directory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"diaspora-bot/internal/storage"
)

// OtherCategoryID buckets records whose category no longer exists.
const OtherCategoryID int64 = 0

// CategoryOption is one button of the two-step category picker.
type CategoryOption struct {
	ID      int64
	Caption string
}

// Listing is the rendered directory: either a single text or a picker.
type Listing struct {
	Text   string
	Picker []CategoryOption
}

type bucket struct {
	id      int64
	title   string
	records []storage.Person
}

// Service owns directory rendering and the export/import round trip.
type Service struct {
	repo    storage.DirectoryRepository
	botName string
	logsink *slog.Logger
}

func NewService(repo storage.DirectoryRepository, botName string, logsink *slog.Logger) *Service {
	return &Service{repo: repo, botName: botName, logsink: logsink}
}

// entryLine renders one record as a Markdown deep link back into the bot,
// carrying the record's category and handle in the start payload.
func (s *Service) entryLine(p storage.Person) string {
	link := fmt.Sprintf("[@%s](https://t.me/%s?start=%d_%s)", p.UserHandle, s.botName, p.CategoryID, p.UserHandle)
	if p.Location != "" {
		return fmt.Sprintf("%s (%s): %s", link, p.Location, p.Occupation)
	}
	return fmt.Sprintf("%s: %s", link, p.Occupation)
}

func (s *Service) renderBucket(b bucket, withTitle bool) string {
	var sb strings.Builder
	if withTitle {
		sb.WriteString(b.title)
		sb.WriteString("\n")
	}
	for _, p := range b.records {
		sb.WriteString(s.entryLine(p))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func buildBuckets(records []storage.Person, categories []storage.Category, otherTitle string) []bucket {
	known := make(map[int64]int)
	buckets := make([]bucket, 0, len(categories)+1)
	for _, c := range categories {
		known[c.ID] = len(buckets)
		buckets = append(buckets, bucket{id: c.ID, title: c.Title})
	}
	other := bucket{id: OtherCategoryID, title: otherTitle}

	for _, p := range records {
		if idx, ok := known[p.CategoryID]; ok {
			buckets[idx].records = append(buckets[idx].records, p)
		} else {
			other.records = append(other.records, p)
		}
	}
	if len(other.records) > 0 {
		buckets = append(buckets, other)
	}

	kept := buckets[:0]
	for _, b := range buckets {
		if len(b.records) == 0 {
			continue
		}
		sort.Slice(b.records, func(i, j int) bool {
			return strings.ToLower(b.records[i].UserHandle) < strings.ToLower(b.records[j].UserHandle)
		})
		kept = append(kept, b)
	}
	return kept
}

// BuildListing renders every visible record. One populated category comes
// back flat; several come back as titled blocks. When the text would exceed
// maxLength, or showCategoriesAlways is set with more than one category, a
// picker is returned instead.
func (s *Service) BuildListing(otherTitle string, maxLength int, showCategoriesAlways bool) (Listing, error) {
	records, err := s.repo.ListVisible()
	if err != nil {
		return Listing{}, err
	}
	categories, err := s.repo.Categories()
	if err != nil {
		return Listing{}, err
	}

	buckets := buildBuckets(records, categories, otherTitle)
	if len(buckets) == 0 {
		return Listing{}, nil
	}
	if len(buckets) == 1 {
		return Listing{Text: s.renderBucket(buckets[0], false)}, nil
	}

	blocks := make([]string, 0, len(buckets))
	for _, b := range buckets {
		blocks = append(blocks, s.renderBucket(b, true))
	}
	text := strings.Join(blocks, "\n\n")

	// At the limit the listing already switches to the picker; only strictly
	// shorter texts go out as one message.
	if utf8.RuneCountInString(text) < maxLength && !showCategoriesAlways {
		return Listing{Text: text}, nil
	}

	picker := make([]CategoryOption, 0, len(buckets))
	for _, b := range buckets {
		picker = append(picker, CategoryOption{
			ID:      b.id,
			Caption: fmt.Sprintf("%s: %d", b.title, len(b.records)),
		})
	}
	return Listing{Picker: picker}, nil
}

// RenderCategory renders a single picked bucket for the two-step view.
func (s *Service) RenderCategory(categoryID int64, otherTitle string) (string, error) {
	records, err := s.repo.ListVisible()
	if err != nil {
		return "", err
	}
	categories, err := s.repo.Categories()
	if err != nil {
		return "", err
	}
	for _, b := range buildBuckets(records, categories, otherTitle) {
		if b.id == categoryID {
			return s.renderBucket(b, true), nil
		}
	}
	return "", nil
}

// exportRecord is the JSON shape of one directory row.
type exportRecord struct {
	UserID      int64  `json:"user_id"`
	UserHandle  string `json:"user_handle"`
	CategoryID  int64  `json:"category_id"`
	Occupation  string `json:"occupation"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Suspended   bool   `json:"suspended"`
}

// Export serializes every record, suspended ones included.
func (s *Service) Export() ([]byte, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]exportRecord, 0, len(records))
	for _, p := range records {
		out = append(out, exportRecord{
			UserID:      p.UserID,
			UserHandle:  p.UserHandle,
			CategoryID:  p.CategoryID,
			Occupation:  p.Occupation,
			Description: p.Description,
			Location:    p.Location,
			Suspended:   p.Suspended,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize directory: %w", err)
	}
	return data, nil
}

// ValidateImport parses an export payload without touching the store.
func ValidateImport(data []byte) ([]storage.Person, error) {
	var in []exportRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse directory import: %w", err)
	}
	people := make([]storage.Person, 0, len(in))
	for i, r := range in {
		if r.UserID == 0 || r.UserHandle == "" {
			return nil, fmt.Errorf("import record %d is missing user id or handle", i)
		}
		people = append(people, storage.Person{
			UserID:      r.UserID,
			UserHandle:  r.UserHandle,
			CategoryID:  r.CategoryID,
			Occupation:  r.Occupation,
			Description: r.Description,
			Location:    r.Location,
			Suspended:   r.Suspended,
		})
	}
	return people, nil
}

// Import replaces the whole directory with an export payload.
func (s *Service) Import(data []byte) (int, error) {
	people, err := ValidateImport(data)
	if err != nil {
		return 0, err
	}
	if err := s.repo.ReplaceAll(people); err != nil {
		return 0, err
	}
	s.logsink.Info("Directory imported", "records", len(people))
	return len(people), nil
}
