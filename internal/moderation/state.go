package moderation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"diaspora-bot/internal/fileswap"
)

const stateVersion = 1

// Complaint aggregates who complained about one main-chat message and why.
// At most one reason counts per complainant, the first one.
type Complaint struct {
	OriginalMessageID int    `json:"original_message_id"`
	TargetUserID      int64  `json:"target_user_id"`
	TargetName        string `json:"target_name"`
	// Users maps complainant id to the reason they gave.
	Users map[int64]string `json:"users"`
	// PollID is set once the complaint graduated to a poll.
	PollID string `json:"poll_id,omitempty"`
}

// Count is the number of distinct complainants.
func (c *Complaint) Count() int { return len(c.Users) }

// Reasons is the per-reason histogram derived from Users.
func (c *Complaint) Reasons() map[string]int {
	reasons := make(map[string]int)
	for _, reason := range c.Users {
		reasons[reason]++
	}
	return reasons
}

// Poll records an open moderation poll.
type Poll struct {
	OriginalMessageID int    `json:"original_message_id"`
	ChatID            int64  `json:"chat_id"`
	PollMessageID     int    `json:"poll_message_id"`
	PollID            string `json:"poll_id"`
}

type stateFile struct {
	Version    int                   `json:"version"`
	Complaints map[string]*Complaint `json:"complaints"`
	Polls      map[string]*Poll      `json:"polls"`
}

// StateStore persists complaints and polls across restarts. The file is
// rewritten after every mutation.
type StateStore struct {
	path    string
	logsink *slog.Logger

	mu         sync.Mutex
	complaints map[string]*Complaint // keyed by original message id
	polls      map[string]*Poll      // keyed by poll id
}

func NewStateStore(path string, logsink *slog.Logger) *StateStore {
	return &StateStore{
		path:       path,
		logsink:    logsink,
		complaints: make(map[string]*Complaint),
		polls:      make(map[string]*Poll),
	}
}

// Load reads the state file. A missing file is an empty state.
func (s *StateStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read moderation state: %w", err)
	}
	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse moderation state: %w", err)
	}
	if file.Version != stateVersion {
		return fmt.Errorf("moderation state version %d, expected %d", file.Version, stateVersion)
	}
	if file.Complaints != nil {
		s.complaints = file.Complaints
	}
	if file.Polls != nil {
		s.polls = file.Polls
	}
	s.logsink.Info("Moderation state loaded", "complaints", len(s.complaints), "polls", len(s.polls))
	return nil
}

// save rewrites the file. Callers hold the lock.
func (s *StateStore) save() error {
	data, err := json.MarshalIndent(stateFile{
		Version:    stateVersion,
		Complaints: s.complaints,
		Polls:      s.polls,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize moderation state: %w", err)
	}
	return fileswap.ReplaceWithBackup(s.path, data, func(data []byte) error {
		var file stateFile
		return json.Unmarshal(data, &file)
	})
}

// Wipe drops everything, used on restart while moderation is in dry-run mode.
func (s *StateStore) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints = make(map[string]*Complaint)
	s.polls = make(map[string]*Poll)
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return s.save()
}

func key(originalMessageID int) string { return fmt.Sprintf("%d", originalMessageID) }

// Complaint returns the complaint for a message, or nil.
func (s *StateStore) Complaint(originalMessageID int) *Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complaints[key(originalMessageID)]
}

// AddReason records one complainant's reason, first one wins. It returns the
// complaint and whether the complainant was new.
func (s *StateStore) AddReason(originalMessageID int, targetUserID int64, targetName string, complainantID int64, reason string) (*Complaint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.complaints[key(originalMessageID)]
	if c == nil {
		c = &Complaint{
			OriginalMessageID: originalMessageID,
			TargetUserID:      targetUserID,
			TargetName:        targetName,
			Users:             make(map[int64]string),
		}
		s.complaints[key(originalMessageID)] = c
	}
	if _, ok := c.Users[complainantID]; ok {
		return c, false, nil
	}
	c.Users[complainantID] = reason
	return c, true, s.save()
}

// HasComplained reports whether this user already complained about a message.
func (s *StateStore) HasComplained(originalMessageID int, complainantID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.complaints[key(originalMessageID)]
	if c == nil {
		return false
	}
	_, ok := c.Users[complainantID]
	return ok
}

// AttachPoll registers an opened poll for a complaint. Registering a second
// poll for the same complaint is a programming error.
func (s *StateStore) AttachPoll(originalMessageID int, poll *Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.complaints[key(originalMessageID)]
	if c == nil {
		return fmt.Errorf("no complaint for message %d", originalMessageID)
	}
	if c.PollID != "" {
		return fmt.Errorf("complaint for message %d already has poll %s", originalMessageID, c.PollID)
	}
	c.PollID = poll.PollID
	s.polls[poll.PollID] = poll
	return s.save()
}

// Poll returns the open poll with the given platform id, or nil.
func (s *StateStore) Poll(pollID string) *Poll {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls[pollID]
}

// Resolve removes a poll and its complaint after the verdict is applied.
func (s *StateStore) Resolve(pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll := s.polls[pollID]
	if poll == nil {
		return nil
	}
	delete(s.polls, pollID)
	delete(s.complaints, key(poll.OriginalMessageID))
	return s.save()
}
