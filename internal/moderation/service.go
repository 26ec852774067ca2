// Package moderation implements the public-moderation protocol: complaints
// about main-chat messages are aggregated until a threshold, voted on by the
// moderators in an anonymous poll, and enforced through an escalating
// restriction ladder.
package moderation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"diaspora-bot/internal/config"
	"diaspora-bot/internal/i18n"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/msgbus"
	"diaspora-bot/internal/storage"
)

// ReasonIDs are the complaint reasons offered to users, in keyboard order.
var ReasonIDs = []string{"fraud", "offense", "racism", "spam", "toxic"}

// Forward origin types as delivered by the platform.
const (
	OriginUser       = "user"
	OriginHiddenUser = "hidden_user"
)

var (
	ErrUnsupportedOrigin = errors.New("unsupported forward origin")
	ErrMessageNotFound   = errors.New("forwarded message not found in the log")
	ErrNotMember         = errors.New("complainant is not a main chat member")
	ErrAlreadyComplained = errors.New("user already complained about this message")
)

// ForwardOrigin describes the forward header of a complaint message.
type ForwardOrigin struct {
	Type       string
	Timestamp  time.Time
	Text       string
	SenderID   int64
	SenderName string
}

// Messenger is the slice of the bus the moderation service talks through.
type Messenger interface {
	Send(chatID int64, text string, opts *msgbus.Options) (msgbus.MessageRef, error)
	Forward(toChatID int64, from msgbus.MessageRef) (msgbus.MessageRef, error)
	SendPoll(chatID int64, question string, options []string) (msgbus.MessageRef, string, error)
	StopPoll(ref msgbus.MessageRef) error
	RestrictMember(chatID, userID int64, until time.Time) error
	MemberStatus(chatID, userID int64) (string, error)
	MemberCount(chatID int64) (int, error)
}

// Params is the moderation slice of the settings.
type Params struct {
	MainChatID         int64
	ModerationChatID   int64
	ComplaintThreshold int
	BotCount           int
	QuorumThreshold    float64
	WinningThreshold   float64
	IsReal             bool
	Ladder             []config.LadderRung
	LogMaxAge          time.Duration
}

// Service orchestrates the complaint lifecycle.
type Service struct {
	params  Params
	repo    storage.ModerationRepository
	state   *StateStore
	bus     Messenger
	tr      *i18n.Translator
	logsink *slog.Logger
	now     func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

func NewService(params Params, repo storage.ModerationRepository, state *StateStore, bus Messenger, tr *i18n.Translator, logsink *slog.Logger) *Service {
	return &Service{
		params:  params,
		repo:    repo,
		state:   state,
		bus:     bus,
		tr:      tr,
		logsink: logsink,
		now:     time.Now,
	}
}

// LogIngress records a main-chat message and, at most once per hour, sweeps
// entries older than the retention horizon.
func (s *Service) LogIngress(msg *storage.MainChatMessage) error {
	if err := s.repo.LogMainChatMessage(msg); err != nil {
		return err
	}

	s.sweepMu.Lock()
	due := s.now().Sub(s.lastSweep) >= time.Hour
	if due {
		s.lastSweep = s.now()
	}
	s.sweepMu.Unlock()
	if !due {
		return nil
	}

	purged, err := s.repo.PurgeMainChatLogBefore(s.now().Add(-s.params.LogMaxAge))
	if err != nil {
		s.logsink.Warn("Main chat log sweep failed", "error", err)
		return nil
	}
	if purged > 0 {
		s.logsink.Info("Main chat log swept", "purged", purged)
	}
	return nil
}

// StartComplaint matches a forwarded message back to the log and checks that
// the complainant may complain. It returns the original message.
func (s *Service) StartComplaint(complainantID int64, origin ForwardOrigin) (*storage.MainChatMessage, error) {
	var original *storage.MainChatMessage
	var err error
	switch origin.Type {
	case OriginUser:
		original, err = s.repo.FindBySender(origin.Timestamp, origin.Text, origin.SenderID)
	case OriginHiddenUser:
		original, err = s.repo.FindBySenderName(origin.Timestamp, origin.Text, origin.SenderName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOrigin, origin.Type)
	}
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrMessageNotFound
	}

	status, err := s.bus.MemberStatus(s.params.MainChatID, complainantID)
	if err != nil {
		return nil, err
	}
	if status == "left" || status == "kicked" {
		return nil, ErrNotMember
	}

	if s.state.HasComplained(original.MessageID, complainantID) {
		return nil, ErrAlreadyComplained
	}
	return original, nil
}

// AcceptReason records a complainant's reason. Crossing the complaint
// threshold publishes the case to the moderators.
func (s *Service) AcceptReason(originalMessageID int, complainantID int64, reason string) error {
	original, err := s.repo.GetMainChatMessage(originalMessageID)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrMessageNotFound
	}

	complaint, added, err := s.state.AddReason(originalMessageID, original.SenderID, original.SenderName, complainantID, reason)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyComplained
	}
	s.logsink.Info("Complaint recorded",
		"original_message_id", originalMessageID, "reason", reason, "count", complaint.Count())

	if complaint.Count() < s.params.ComplaintThreshold || complaint.PollID != "" {
		return nil
	}
	return s.publish(complaint, original)
}

// summary renders the per-reason histogram, pluralized and sorted by reason.
func (s *Service) summary(complaint *Complaint) string {
	reasons := complaint.Reasons()
	ids := make([]string, 0, len(reasons))
	for id := range reasons {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var lines []string
	lines = append(lines, s.tr.Getf("", "moderation.summary_header", complaint.TargetName, complaint.Count()))
	for _, id := range ids {
		count := reasons[id]
		label := s.tr.Get("", "moderation.reason."+id)
		if count == 1 {
			lines = append(lines, s.tr.Getf("", "moderation.summary_line_one", label))
		} else {
			lines = append(lines, s.tr.Getf("", "moderation.summary_line_many", label, count))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Service) publish(complaint *Complaint, original *storage.MainChatMessage) error {
	chatID := s.params.ModerationChatID

	if _, err := s.bus.Send(chatID, s.summary(complaint), nil); err != nil {
		return err
	}
	if _, err := s.bus.Forward(chatID, msgbus.MessageRef{ChatID: s.params.MainChatID, MessageID: original.MessageID}); err != nil {
		return err
	}

	ref, pollID, err := s.bus.SendPoll(chatID,
		s.tr.Getf("", "moderation.poll_question", complaint.TargetName),
		[]string{s.tr.Get("", "moderation.poll_accept"), s.tr.Get("", "moderation.poll_reject")})
	if err != nil {
		return err
	}
	s.logsink.Info("Moderation poll opened",
		"original_message_id", complaint.OriginalMessageID, "poll_id", pollID)
	return s.state.AttachPoll(complaint.OriginalMessageID, &Poll{
		OriginalMessageID: complaint.OriginalMessageID,
		ChatID:            ref.ChatID,
		PollMessageID:     ref.MessageID,
		PollID:            pollID,
	})
}

// Verdict is the decision of a finished poll.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictAccept
	VerdictReject
)

// decide applies the quorum and winning thresholds. Once all moderators have
// voted the higher tally wins, with ties going to reject.
func decide(accept, reject, moderators int, quorumThreshold, winningThreshold float64) Verdict {
	quorum := int(math.Ceil(float64(moderators) * quorumThreshold))
	winning := int(math.Ceil(float64(quorum) * winningThreshold))
	total := accept + reject

	if total < quorum {
		return VerdictNone
	}
	if accept >= winning {
		return VerdictAccept
	}
	if reject >= winning {
		return VerdictReject
	}
	if total >= moderators {
		if accept > reject {
			return VerdictAccept
		}
		return VerdictReject
	}
	return VerdictNone
}

// HandlePollUpdate consumes one poll update from the platform. Updates for
// unknown or closed polls are ignored.
func (s *Service) HandlePollUpdate(pollID string, closed bool, accept, reject int) error {
	poll := s.state.Poll(pollID)
	if poll == nil || closed {
		return nil
	}

	memberCount, err := s.bus.MemberCount(s.params.ModerationChatID)
	if err != nil {
		return err
	}
	moderators := memberCount - s.params.BotCount

	verdict := decide(accept, reject, moderators, s.params.QuorumThreshold, s.params.WinningThreshold)
	if verdict == VerdictNone {
		return nil
	}

	complaint := s.state.Complaint(poll.OriginalMessageID)
	if complaint == nil {
		return fmt.Errorf("poll %s has no complaint for message %d", pollID, poll.OriginalMessageID)
	}

	if err := s.bus.StopPoll(msgbus.MessageRef{ChatID: poll.ChatID, MessageID: poll.PollMessageID}); err != nil {
		s.logsink.Warn("Failed to stop finished poll", "poll_id", pollID, "error", err)
	}

	switch verdict {
	case VerdictReject:
		s.logsink.Info("Complaint rejected", "original_message_id", poll.OriginalMessageID)
		metrics.IncPollResolved("reject")
		if _, err := s.bus.Send(poll.ChatID, s.tr.Getf("", "moderation.rejected", complaint.TargetName), nil); err != nil {
			return err
		}
	case VerdictAccept:
		metrics.IncPollResolved("accept")
		if err := s.applyVerdict(poll.ChatID, complaint); err != nil {
			return err
		}
	}
	return s.state.Resolve(pollID)
}

func (s *Service) applyVerdict(announceChatID int64, complaint *Complaint) error {
	restriction, err := s.repo.GetOrCreateRestriction(complaint.TargetUserID)
	if err != nil {
		return err
	}
	rung, err := Elevate(restriction, s.params.Ladder, s.now())
	if err != nil {
		return err
	}

	if !s.params.IsReal {
		s.logsink.Info("Dry-run verdict", "user_id", complaint.TargetUserID, "action", rung.Action)
		_, err := s.bus.Send(announceChatID,
			s.tr.Getf("", "moderation.accepted_dry_run", complaint.TargetName, rung.Action), nil)
		return err
	}

	if err := s.repo.SaveRestriction(restriction); err != nil {
		return err
	}
	switch rung.Action {
	case ActionRestrict, ActionBan:
		if err := s.bus.RestrictMember(s.params.MainChatID, complaint.TargetUserID, restriction.ActiveUntil); err != nil {
			return err
		}
	}
	s.logsink.Info("Restriction applied",
		"user_id", complaint.TargetUserID, "action", rung.Action, "level", restriction.Level)
	metrics.IncRestriction(rung.Action)
	_, err = s.bus.Send(announceChatID,
		s.tr.Getf("", "moderation.accepted."+rung.Action, complaint.TargetName), nil)
	return err
}

// WipeDryRunState clears persisted complaints and polls, called on startup
// when moderation runs in dry-run mode.
func (s *Service) WipeDryRunState() error {
	if s.params.IsReal {
		return nil
	}
	s.logsink.Info("Wiping dry-run moderation state")
	return s.state.Wipe()
}
