package moderation

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"diaspora-bot/internal/config"
	"diaspora-bot/internal/i18n"
	"diaspora-bot/internal/msgbus"
	"diaspora-bot/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecide(t *testing.T) {
	// 10 moderators at 0.75/0.75: quorum 8, winning 6.
	tests := []struct {
		name           string
		accept, reject int
		moderators     int
		want           Verdict
	}{
		{"Below quorum", 5, 2, 10, VerdictNone},
		{"Accept reaches winning", 6, 2, 10, VerdictAccept},
		{"Reject reaches winning", 2, 6, 10, VerdictReject},
		{"Quorum without winner", 4, 4, 10, VerdictNone},
		{"All voted, higher tally wins", 6, 4, 10, VerdictAccept},
		{"All voted, exact tie rejects", 5, 5, 10, VerdictReject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.accept, tt.reject, tt.moderators, 0.75, 0.75)
			if got != tt.want {
				t.Errorf("decide(%d, %d, %d) = %v, want %v", tt.accept, tt.reject, tt.moderators, got, tt.want)
			}
		})
	}
}

func testLadder() []config.LadderRung {
	return []config.LadderRung{
		{Action: ActionWarn, CooldownMinutes: 60},
		{Action: ActionRestrict, DurationMinutes: 120, CooldownMinutes: 60},
		{Action: ActionBan},
	}
}

func TestElevate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Fresh restriction lands on the first rung", func(t *testing.T) {
		r := &storage.Restriction{UserID: 1, Level: -1}
		rung, err := Elevate(r, testLadder(), now)
		if err != nil {
			t.Fatal(err)
		}
		if rung.Action != ActionWarn || r.Level != 0 {
			t.Errorf("rung = %v, level = %d", rung, r.Level)
		}
		if !r.CooldownUntil.Equal(now.Add(time.Hour)) {
			t.Errorf("cooldown = %v", r.CooldownUntil)
		}
	})

	t.Run("Restrict mutes and cooldown starts after the mute", func(t *testing.T) {
		r := &storage.Restriction{UserID: 1, Level: 0}
		if _, err := Elevate(r, testLadder(), now); err != nil {
			t.Fatal(err)
		}
		if !r.ActiveUntil.Equal(now.Add(2 * time.Hour)) {
			t.Errorf("active until = %v", r.ActiveUntil)
		}
		if !r.CooldownUntil.Equal(now.Add(3 * time.Hour)) {
			t.Errorf("cooldown until = %v", r.CooldownUntil)
		}
	})

	t.Run("Past the last rung stays on the last rung", func(t *testing.T) {
		r := &storage.Restriction{UserID: 1, Level: 2}
		rung, err := Elevate(r, testLadder(), now)
		if err != nil {
			t.Fatal(err)
		}
		if rung.Action != ActionBan || r.Level != 2 {
			t.Errorf("rung = %v, level = %d", rung, r.Level)
		}
	})

	t.Run("Active never exceeds cooldown", func(t *testing.T) {
		for level := -1; level < 3; level++ {
			r := &storage.Restriction{UserID: 1, Level: level}
			if _, err := Elevate(r, testLadder(), now); err != nil {
				t.Fatal(err)
			}
			if r.ActiveUntil.After(r.CooldownUntil) {
				t.Errorf("level %d: active %v after cooldown %v", level, r.ActiveUntil, r.CooldownUntil)
			}
		}
	})

	t.Run("Empty ladder is an error", func(t *testing.T) {
		if _, err := Elevate(&storage.Restriction{Level: -1}, nil, now); err == nil {
			t.Error("expected error")
		}
	})
}

func TestStateStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moderation_state.json")

	store := NewStateStore(path, testLogger())
	if err := store.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	complaint, added, err := store.AddReason(100, 7, "Eve", 1, "spam")
	if err != nil || !added {
		t.Fatalf("AddReason() = %v, %v", added, err)
	}
	// First reason wins; the same user cannot complain twice.
	if _, added, _ := store.AddReason(100, 7, "Eve", 1, "toxic"); added {
		t.Error("duplicate complainant was counted")
	}
	if _, added, _ := store.AddReason(100, 7, "Eve", 2, "spam"); !added {
		t.Error("second complainant was refused")
	}
	if complaint.Count() != 2 {
		t.Errorf("count = %d", complaint.Count())
	}
	if reasons := complaint.Reasons(); reasons["spam"] != 2 || reasons["toxic"] != 0 {
		t.Errorf("reasons = %v", reasons)
	}

	poll := &Poll{OriginalMessageID: 100, ChatID: -5, PollMessageID: 9, PollID: "p1"}
	if err := store.AttachPoll(100, poll); err != nil {
		t.Fatal(err)
	}
	if err := store.AttachPoll(100, poll); err == nil {
		t.Error("duplicate poll registration was accepted")
	}

	// Survives a reload.
	reloaded := NewStateStore(path, testLogger())
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Complaint(100) == nil || reloaded.Poll("p1") == nil {
		t.Fatal("state lost on reload")
	}
	if !reloaded.HasComplained(100, 1) {
		t.Error("complainant lost on reload")
	}

	if err := reloaded.Resolve("p1"); err != nil {
		t.Fatal(err)
	}
	if reloaded.Complaint(100) != nil || reloaded.Poll("p1") != nil {
		t.Error("Resolve left records behind")
	}
}

func TestStateStoreWipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moderation_state.json")
	store := NewStateStore(path, testLogger())
	if _, _, err := store.AddReason(100, 7, "Eve", 1, "spam"); err != nil {
		t.Fatal(err)
	}
	if err := store.Wipe(); err != nil {
		t.Fatal(err)
	}
	if store.Complaint(100) != nil {
		t.Error("complaint survived wipe")
	}

	reloaded := NewStateStore(path, testLogger())
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Complaint(100) != nil {
		t.Error("complaint survived wipe on disk")
	}
}

type mockMessenger struct {
	sent        []string
	forwards    int
	polls       int
	stopped     int
	restricted  []int64
	memberCount int
	status      string
}

func (m *mockMessenger) Send(chatID int64, text string, _ *msgbus.Options) (msgbus.MessageRef, error) {
	m.sent = append(m.sent, text)
	return msgbus.MessageRef{ChatID: chatID, MessageID: len(m.sent)}, nil
}

func (m *mockMessenger) Forward(toChatID int64, _ msgbus.MessageRef) (msgbus.MessageRef, error) {
	m.forwards++
	return msgbus.MessageRef{ChatID: toChatID, MessageID: 1000 + m.forwards}, nil
}

func (m *mockMessenger) SendPoll(chatID int64, _ string, _ []string) (msgbus.MessageRef, string, error) {
	m.polls++
	return msgbus.MessageRef{ChatID: chatID, MessageID: 2000 + m.polls}, "poll-1", nil
}

func (m *mockMessenger) StopPoll(msgbus.MessageRef) error {
	m.stopped++
	return nil
}

func (m *mockMessenger) RestrictMember(_ int64, userID int64, _ time.Time) error {
	m.restricted = append(m.restricted, userID)
	return nil
}

func (m *mockMessenger) MemberStatus(int64, int64) (string, error) {
	if m.status == "" {
		return "member", nil
	}
	return m.status, nil
}

func (m *mockMessenger) MemberCount(int64) (int, error) { return m.memberCount, nil }

func setupService(t *testing.T, bus *mockMessenger) (*Service, storage.ModerationRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.MainChatMessage{}, &storage.Restriction{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	repo := storage.NewModerationRepository(db, testLogger())

	catalogDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(catalogDir, "en.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tr, err := i18n.NewTranslator(catalogDir, "en")
	if err != nil {
		t.Fatal(err)
	}

	state := NewStateStore(filepath.Join(t.TempDir(), "moderation_state.json"), testLogger())
	params := Params{
		MainChatID:         -1,
		ModerationChatID:   -2,
		ComplaintThreshold: 3,
		BotCount:           1,
		QuorumThreshold:    0.75,
		WinningThreshold:   0.75,
		IsReal:             true,
		Ladder:             testLadder(),
		LogMaxAge:          48 * time.Hour,
	}
	return NewService(params, repo, state, bus, tr, testLogger()), repo
}

func logOriginal(t *testing.T, repo storage.ModerationRepository, ts time.Time) {
	t.Helper()
	err := repo.LogMainChatMessage(&storage.MainChatMessage{
		MessageID: 100, Timestamp: ts, Text: "offending", SenderID: 7, SenderName: "Eve",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestStartComplaint(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Visible origin matches by sender id", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, repo := setupService(t, bus)
		logOriginal(t, repo, ts)

		original, err := svc.StartComplaint(1, ForwardOrigin{Type: OriginUser, Timestamp: ts, Text: "offending", SenderID: 7})
		if err != nil {
			t.Fatal(err)
		}
		if original.MessageID != 100 {
			t.Errorf("message id = %d", original.MessageID)
		}
	})

	t.Run("Hidden origin matches by sender name", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, repo := setupService(t, bus)
		logOriginal(t, repo, ts)

		if _, err := svc.StartComplaint(1, ForwardOrigin{Type: OriginHiddenUser, Timestamp: ts, Text: "offending", SenderName: "Eve"}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("Unsupported origin", func(t *testing.T) {
		svc, _ := setupService(t, &mockMessenger{})
		_, err := svc.StartComplaint(1, ForwardOrigin{Type: "channel"})
		if !errors.Is(err, ErrUnsupportedOrigin) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("Unknown message", func(t *testing.T) {
		svc, _ := setupService(t, &mockMessenger{})
		_, err := svc.StartComplaint(1, ForwardOrigin{Type: OriginUser, Timestamp: ts, Text: "never seen", SenderID: 7})
		if !errors.Is(err, ErrMessageNotFound) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("Non-member is refused", func(t *testing.T) {
		bus := &mockMessenger{status: "left"}
		svc, repo := setupService(t, bus)
		logOriginal(t, repo, ts)

		_, err := svc.StartComplaint(1, ForwardOrigin{Type: OriginUser, Timestamp: ts, Text: "offending", SenderID: 7})
		if !errors.Is(err, ErrNotMember) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestComplaintThresholdOpensPoll(t *testing.T) {
	bus := &mockMessenger{memberCount: 11}
	svc, repo := setupService(t, bus)
	logOriginal(t, repo, time.Now())

	for i, complainant := range []int64{1, 2} {
		if err := svc.AcceptReason(100, complainant, "spam"); err != nil {
			t.Fatalf("complaint %d: %v", i, err)
		}
	}
	if bus.polls != 0 {
		t.Fatal("poll opened before the threshold")
	}

	if err := svc.AcceptReason(100, 3, "toxic"); err != nil {
		t.Fatal(err)
	}
	if bus.polls != 1 {
		t.Fatalf("polls = %d, want 1", bus.polls)
	}
	if bus.forwards != 1 {
		t.Errorf("forwards = %d, want 1", bus.forwards)
	}

	// Further complaints do not reopen the poll.
	if err := svc.AcceptReason(100, 4, "spam"); err != nil {
		t.Fatal(err)
	}
	if bus.polls != 1 {
		t.Errorf("polls = %d after extra complaint", bus.polls)
	}
}

func TestPollResolution(t *testing.T) {
	open := func(t *testing.T, bus *mockMessenger) (*Service, storage.ModerationRepository) {
		svc, repo := setupService(t, bus)
		logOriginal(t, repo, time.Now())
		for _, complainant := range []int64{1, 2, 3} {
			if err := svc.AcceptReason(100, complainant, "spam"); err != nil {
				t.Fatal(err)
			}
		}
		return svc, repo
	}

	t.Run("Accept elevates the sender", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11} // 10 moderators
		svc, repo := open(t, bus)

		// Quorum 8, winning 6.
		if err := svc.HandlePollUpdate("poll-1", false, 6, 2); err != nil {
			t.Fatal(err)
		}
		restriction, err := repo.GetOrCreateRestriction(7)
		if err != nil {
			t.Fatal(err)
		}
		if restriction.Level != 0 {
			t.Errorf("level = %d, want 0 (warn)", restriction.Level)
		}
		if len(bus.restricted) != 0 {
			t.Error("warn must not mute")
		}
		if bus.stopped != 1 {
			t.Errorf("stopped = %d", bus.stopped)
		}
		// Records are cleaned up.
		if err := svc.HandlePollUpdate("poll-1", false, 7, 2); err != nil {
			t.Errorf("stale poll update: %v", err)
		}
	})

	t.Run("Reject cleans up without restriction", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, repo := open(t, bus)

		if err := svc.HandlePollUpdate("poll-1", false, 2, 6); err != nil {
			t.Fatal(err)
		}
		restriction, _ := repo.GetOrCreateRestriction(7)
		if restriction.Level != -1 {
			t.Errorf("level = %d, want fresh -1", restriction.Level)
		}
	})

	t.Run("Below quorum keeps the poll open", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, _ := open(t, bus)

		if err := svc.HandlePollUpdate("poll-1", false, 3, 2); err != nil {
			t.Fatal(err)
		}
		if bus.stopped != 0 {
			t.Error("poll stopped below quorum")
		}
	})

	t.Run("Closed poll is ignored", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, _ := open(t, bus)

		if err := svc.HandlePollUpdate("poll-1", true, 10, 0); err != nil {
			t.Fatal(err)
		}
		if bus.stopped != 0 {
			t.Error("closed poll was acted on")
		}
	})

	t.Run("Second accepted verdict mutes", func(t *testing.T) {
		bus := &mockMessenger{memberCount: 11}
		svc, repo := open(t, bus)

		restriction, err := repo.GetOrCreateRestriction(7)
		if err != nil {
			t.Fatal(err)
		}
		restriction.Level = 0
		restriction.ActiveUntil = time.Now()
		restriction.CooldownUntil = time.Now().Add(time.Hour)
		if err := repo.SaveRestriction(restriction); err != nil {
			t.Fatal(err)
		}

		if err := svc.HandlePollUpdate("poll-1", false, 6, 2); err != nil {
			t.Fatal(err)
		}
		if len(bus.restricted) != 1 || bus.restricted[0] != 7 {
			t.Errorf("restricted = %v", bus.restricted)
		}
	})
}

func TestIngressSweepIsThrottled(t *testing.T) {
	bus := &mockMessenger{memberCount: 11}
	svc, _ := setupService(t, bus)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	stale := &storage.MainChatMessage{MessageID: 1, Timestamp: clock.Add(-72 * time.Hour), Text: "old", SenderID: 2}
	if err := svc.LogIngress(stale); err != nil {
		t.Fatal(err)
	}

	// First ingress swept; within the hour nothing else is purged.
	stale2 := &storage.MainChatMessage{MessageID: 2, Timestamp: clock.Add(-72 * time.Hour), Text: "old too", SenderID: 2}
	if err := svc.LogIngress(stale2); err != nil {
		t.Fatal(err)
	}
	if msg, _ := svc.repo.GetMainChatMessage(2); msg == nil {
		t.Fatal("message purged inside the throttle window")
	}

	clock = clock.Add(2 * time.Hour)
	fresh := &storage.MainChatMessage{MessageID: 3, Timestamp: clock, Text: "new", SenderID: 2}
	if err := svc.LogIngress(fresh); err != nil {
		t.Fatal(err)
	}
	if msg, _ := svc.repo.GetMainChatMessage(2); msg != nil {
		t.Error("stale message survived the next sweep")
	}
	if msg, _ := svc.repo.GetMainChatMessage(3); msg == nil {
		t.Error("fresh message was purged")
	}
}
