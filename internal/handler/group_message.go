package handler

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diaspora-bot/internal/antispam"
	"diaspora-bot/internal/glossary"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/msgbus"
	"diaspora-bot/internal/storage"
)

const eyesEmoji = "\U0001F440"

// noticeTTL is how long self-destructing notices stay in the main chat.
const noticeTTL = time.Minute

func messageRef(msg *tgbotapi.Message) msgbus.MessageRef {
	return msgbus.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.MessageID}
}

func messageText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func senderName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}

// handleGroupMessage runs the main-chat pipeline: spam gate first, then the
// moderation ingress log, then the glossary.
func (h *Handler) handleGroupMessage(ctx context.Context, upd tgbotapi.Update) (bool, error) {
	msg := upd.Message
	if msg == nil || msg.Chat.ID != h.cfg.Settings.MainChatID {
		return false, nil
	}
	if msg.From != nil && msg.From.ID == h.bus.BotID() {
		return true, nil
	}
	if msg.IsCommand() {
		return true, nil
	}

	text := messageText(msg)

	deleted, err := h.gateNewcomer(ctx, msg, text)
	if err != nil {
		// Classification failure admits the message but is still reported.
		h.HandleError(ctx, upd, err)
	}
	if deleted {
		return true, nil
	}

	if text != "" {
		entry := &storage.MainChatMessage{
			MessageID:  msg.MessageID,
			Timestamp:  time.Unix(int64(msg.Date), 0).UTC(),
			Text:       text,
			SenderName: senderName(msg.From),
		}
		if msg.From != nil {
			entry.SenderID = msg.From.ID
			entry.SenderHandle = msg.From.UserName
		}
		if err := h.mod.LogIngress(entry); err != nil {
			return true, err
		}
	}

	mention := "@" + h.bus.BotUsername()
	if strings.HasPrefix(text, mention) {
		return true, h.handleMention(msg, strings.TrimSpace(strings.TrimPrefix(text, mention)))
	}
	return true, h.scanGlossary(msg, text)
}

// gateNewcomer classifies the first message of a user not yet on the
// allowlist. It reports whether the message was removed.
func (h *Handler) gateNewcomer(ctx context.Context, msg *tgbotapi.Message, text string) (bool, error) {
	from := msg.From
	if from == nil || from.IsBot {
		return false, nil
	}
	allowed, err := h.antispamDB.IsAllowlisted(from.ID)
	if err != nil {
		return false, err
	}
	if allowed {
		return false, nil
	}

	emojiCount := 0
	for _, entity := range append(msg.Entities, msg.CaptionEntities...) {
		if entity.Type == "custom_emoji" {
			emojiCount++
		}
	}

	result, classifyErr := h.detector.Classify(ctx, antispam.Message{Text: text, CustomEmojiCount: emojiCount})
	if !result.Spam {
		if classifyErr != nil {
			return false, classifyErr
		}
		return false, h.antispamDB.Allowlist(from.ID)
	}

	if classifyErr != nil {
		h.logsink.Warn("Partial classification", "error", classifyErr)
	}
	h.logsink.Info("Spam removed",
		"user_id", from.ID, "trigger", result.Trigger(), "confidence", result.Confidence)
	for _, layer := range result.Layers {
		metrics.IncSpamDetection(layer)
	}
	metrics.IncDeletedMessages("spam")

	if err := h.bus.SafeDelete(messageRef(msg)); err != nil {
		return true, err
	}
	noticeKey := "antispam.removed_female"
	if h.cfg.Settings.BotIsMale {
		noticeKey = "antispam.removed_male"
	}
	h.sendSelfDestructing(msg.Chat.ID, h.tr.Getf("", noticeKey, senderName(from)), noticeTTL)

	return true, h.antispamDB.AddSpamReport(&storage.SpamReport{
		UserID:     from.ID,
		Text:       text,
		Trigger:    result.Trigger(),
		Confidence: result.Confidence,
	})
}

// sendSelfDestructing posts a notice and schedules its removal.
func (h *Handler) sendSelfDestructing(chatID int64, text string, ttl time.Duration) {
	ref, err := h.bus.Send(chatID, text, nil)
	if err != nil {
		h.logsink.Warn("Failed to send notice", "chat_id", chatID, "error", err)
		return
	}
	h.scheduleDelete(ref, ttl)
}

func (h *Handler) scheduleDelete(ref msgbus.MessageRef, ttl time.Duration) {
	h.sched.After(ttl, "delete message", func(context.Context) error {
		return h.bus.SafeDelete(ref)
	})
}

func (h *Handler) renderTerms(terms []*glossary.Term) string {
	lines := make([]string, 0, len(terms))
	for _, term := range terms {
		lines = append(lines, h.tr.Getf("", "glossary.term_line", term.Canonical, term.Foreign, term.Explanation))
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) scanGlossary(msg *tgbotapi.Message, text string) error {
	if text == "" {
		return nil
	}
	matched, err := h.gloss.Scan(text)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}
	metrics.GlossaryTriggers.Add(float64(len(matched)))

	s := h.cfg.Settings
	if s.GlossaryReplyToTrigger && len(matched) >= s.GlossaryReplyToMinTriggerCount {
		ref, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.renderTerms(matched), nil)
		if err != nil {
			return err
		}
		h.scheduleDelete(ref, h.cfg.GlossaryReplyTimeout())
	}
	if s.GlossaryReactToTrigger {
		ref := messageRef(msg)
		if err := h.bus.SetReaction(ref, eyesEmoji); err != nil {
			return err
		}
		h.sched.After(h.cfg.GlossaryMaxTriggerAge(), "clear reaction", func(context.Context) error {
			return h.bus.SafeClearReaction(ref)
		})
	}
	return nil
}

// handleMention answers "@bot explain" and "@bot whatisit <term>".
func (h *Handler) handleMention(msg *tgbotapi.Message, request string) error {
	verb, rest, _ := strings.Cut(request, " ")
	switch strings.ToLower(verb) {
	case "explain":
		terms := h.gloss.Recent()
		if len(terms) == 0 {
			_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get("", "glossary.nothing_to_explain"), nil)
			return err
		}
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.renderTerms(terms), nil)
		return err

	case "whatisit":
		query := strings.TrimSpace(rest)
		if query == "" {
			_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get("", "glossary.dont_know"), nil)
			return err
		}
		exact, candidates, err := h.gloss.Lookup(query)
		if err != nil {
			return err
		}
		var reply string
		switch {
		case exact != nil:
			reply = h.renderTerms([]*glossary.Term{exact})
		case len(candidates) == 1:
			reply = h.renderTerms(candidates)
		case len(candidates) > 1:
			names := make([]string, 0, len(candidates))
			for _, term := range candidates {
				names = append(names, term.Canonical)
			}
			reply = h.tr.Getf("", "glossary.did_you_mean", strings.Join(names, ", "))
		default:
			reply = h.tr.Get("", "glossary.dont_know")
		}
		_, err = h.bus.Reply(msg.Chat.ID, msg.MessageID, reply, nil)
		return err
	}
	return nil
}
