// Package conversation drives the private enroll/update/retire dialogs. Each
// user has at most one in-flight dialog, held in an in-memory scratch map;
// nothing touches the store until the final confirmation.
package conversation

import (
	"fmt"
	"log/slog"
	"sync"

	"diaspora-bot/internal/directory"
	"diaspora-bot/internal/storage"
)

// Stage is the dialog position of one user.
type Stage int

const (
	StageIdle Stage = iota
	StageSelectingCategory
	StageTypingOccupation
	StageTypingDescription
	StageTypingLocation
	StageConfirmingLegality
)

// Mode is what the dialog will do on confirmation.
type Mode string

const (
	ModeEnroll Mode = "enroll"
	ModeUpdate Mode = "update"
	ModeRetire Mode = "retire"
)

// Option is a category the user may pick.
type Option struct {
	ID    int64
	Title string
}

// Reply tells the handler what to show next. Key and Args address the
// translation catalog; Options or Confirm request a keyboard.
type Reply struct {
	Key     string
	Args    []any
	Options []Option
	Confirm bool
	// End marks the dialog as finished; the user is idle again.
	End bool
	// NeedsModeration is set when a record was written suspended and the
	// moderators must be asked to approve it. CategoryID identifies that
	// record.
	NeedsModeration bool
	CategoryID      int64
}

// Limits caps field lengths. Zero disables the check for that field.
type Limits struct {
	Occupation  int
	Description int
	Location    int
}

type scratch struct {
	stage         Stage
	mode          Mode
	userHandle    string
	categoryID    int64
	categoryTitle string
	occupation    string
	description   string
	location      string
}

// Manager owns every user's dialog state.
type Manager struct {
	repo    storage.DirectoryRepository
	logsink *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*scratch
}

func NewManager(repo storage.DirectoryRepository, logsink *slog.Logger) *Manager {
	return &Manager{repo: repo, logsink: logsink, sessions: make(map[int64]*scratch)}
}

// Stage reports where a user currently is.
func (m *Manager) Stage(userID int64) Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s.stage
	}
	return StageIdle
}

// Abort clears the user's dialog. It reports whether one existed.
func (m *Manager) Abort(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	delete(m.sessions, userID)
	return ok
}

func (m *Manager) session(userID int64) *scratch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

func (m *Manager) put(userID int64, s *scratch) {
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
}

// Start opens a dialog. Enrolling requires a public handle; update and retire
// only offer the categories the user already has records in.
func (m *Manager) Start(userID int64, userHandle string, mode Mode) (Reply, error) {
	if userHandle == "" {
		return Reply{Key: "conversation.handle_required", End: true}, nil
	}
	m.Abort(userID)

	s := &scratch{mode: mode, userHandle: userHandle}

	var options []Option
	switch mode {
	case ModeEnroll:
		categories, err := m.repo.Categories()
		if err != nil {
			return Reply{}, err
		}
		if len(categories) == 0 {
			// No categories defined: everything lands in the "other" bucket.
			s.stage = StageTypingOccupation
			m.put(userID, s)
			return Reply{Key: "conversation.ask_occupation"}, nil
		}
		for _, c := range categories {
			options = append(options, Option{ID: c.ID, Title: c.Title})
		}
		// The implicit "other" bucket is always selectable. Its title is not
		// a category row; the handler fills in the localized caption.
		options = append(options, Option{ID: directory.OtherCategoryID})
	case ModeUpdate, ModeRetire:
		records, err := m.repo.ListByUser(userID)
		if err != nil {
			return Reply{}, err
		}
		if len(records) == 0 {
			return Reply{Key: "conversation.nothing_enrolled", End: true}, nil
		}
		for _, r := range records {
			title, err := m.repo.CategoryTitle(r.CategoryID)
			if err != nil {
				return Reply{}, err
			}
			if title == "" {
				title = fmt.Sprintf("#%d", r.CategoryID)
			}
			options = append(options, Option{ID: r.CategoryID, Title: title})
		}
	default:
		return Reply{}, fmt.Errorf("unknown conversation mode %q", mode)
	}

	s.stage = StageSelectingCategory
	m.put(userID, s)
	return Reply{Key: "conversation.pick_category", Options: options}, nil
}

// PickCategory consumes the category callback.
func (m *Manager) PickCategory(userID, categoryID int64, limits Limits) (Reply, error) {
	s := m.session(userID)
	if s == nil || s.stage != StageSelectingCategory {
		m.Abort(userID)
		return Reply{Key: "conversation.aborted", End: true}, nil
	}

	title, err := m.repo.CategoryTitle(categoryID)
	if err != nil {
		return Reply{}, err
	}
	s.categoryID = categoryID
	s.categoryTitle = title

	switch s.mode {
	case ModeRetire:
		s.stage = StageConfirmingLegality
		return Reply{Key: "conversation.confirm_retire", Args: []any{title}, Confirm: true}, nil
	case ModeUpdate:
		record, err := m.repo.Get(userID, categoryID)
		if err != nil {
			return Reply{}, err
		}
		if record == nil {
			m.Abort(userID)
			return Reply{Key: "conversation.record_gone", End: true}, nil
		}
		s.occupation = record.Occupation
		s.description = record.Description
		s.location = record.Location
		s.stage = StageTypingOccupation
		return Reply{Key: "conversation.ask_occupation_update", Args: []any{record.Occupation, limits.Occupation}}, nil
	default:
		s.stage = StageTypingOccupation
		return Reply{Key: "conversation.ask_occupation"}, nil
	}
}

// overLimit renders the allowed prefix next to the overflow so the user sees
// exactly where the cut happens.
func overLimit(text string, limit int) (Reply, bool) {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return Reply{}, false
	}
	return Reply{
		Key:  "conversation.too_long",
		Args: []any{limit, string(runes[:limit]), string(runes[limit:])},
	}, true
}

// HandleText consumes free text for the typing stages.
func (m *Manager) HandleText(userID int64, text string, limits Limits) (Reply, error) {
	s := m.session(userID)
	if s == nil {
		return Reply{Key: "conversation.aborted", End: true}, nil
	}

	switch s.stage {
	case StageTypingOccupation:
		if reply, over := overLimit(text, limits.Occupation); over {
			return reply, nil
		}
		s.occupation = text
		s.stage = StageTypingDescription
		if s.mode == ModeUpdate {
			return Reply{Key: "conversation.ask_description_update", Args: []any{s.description, limits.Description}}, nil
		}
		return Reply{Key: "conversation.ask_description"}, nil

	case StageTypingDescription:
		if reply, over := overLimit(text, limits.Description); over {
			return reply, nil
		}
		s.description = text
		s.stage = StageTypingLocation
		if s.mode == ModeUpdate {
			return Reply{Key: "conversation.ask_location_update", Args: []any{s.location, limits.Location}}, nil
		}
		return Reply{Key: "conversation.ask_location"}, nil

	case StageTypingLocation:
		if reply, over := overLimit(text, limits.Location); over {
			return reply, nil
		}
		s.location = text
		s.stage = StageConfirmingLegality
		return Reply{Key: "conversation.confirm_legality", Confirm: true}, nil

	default:
		m.Abort(userID)
		return Reply{Key: "conversation.aborted", End: true}, nil
	}
}

// Confirm consumes the yes/no callback. Yes persists; no leaves the store
// untouched. With moderation enabled a new record is written suspended and
// flagged for moderator approval.
func (m *Manager) Confirm(userID int64, yes bool, moderationEnabled bool) (Reply, error) {
	s := m.session(userID)
	if s == nil || s.stage != StageConfirmingLegality {
		m.Abort(userID)
		return Reply{Key: "conversation.aborted", End: true}, nil
	}
	defer m.Abort(userID)

	if !yes {
		return Reply{Key: "conversation.cancelled", End: true}, nil
	}

	if s.mode == ModeRetire {
		if err := m.repo.Delete(userID, s.categoryID); err != nil {
			return Reply{}, err
		}
		m.logsink.Info("Directory record retired", "user_id", userID, "category_id", s.categoryID)
		return Reply{Key: "conversation.retired", End: true}, nil
	}

	record := &storage.Person{
		UserID:      userID,
		UserHandle:  s.userHandle,
		CategoryID:  s.categoryID,
		Occupation:  s.occupation,
		Description: s.description,
		Location:    s.location,
		Suspended:   moderationEnabled,
	}
	if err := m.repo.Upsert(record); err != nil {
		return Reply{}, err
	}
	m.logsink.Info("Directory record saved",
		"user_id", userID, "category_id", s.categoryID, "mode", s.mode, "suspended", moderationEnabled)

	if moderationEnabled {
		return Reply{Key: "conversation.saved_pending", End: true, NeedsModeration: true, CategoryID: s.categoryID}, nil
	}
	return Reply{Key: "conversation.saved", End: true}, nil
}
