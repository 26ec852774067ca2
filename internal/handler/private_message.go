package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diaspora-bot/internal/conversation"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/moderation"
	"diaspora-bot/internal/msgbus"
)

func (h *Handler) limits() conversation.Limits {
	s := h.cfg.Settings
	return conversation.Limits{
		Occupation:  s.OccupationMaxLength,
		Description: s.DescriptionMaxLength,
		Location:    s.LocationMaxLength,
	}
}

func (h *Handler) handlePrivateMessage(ctx context.Context, upd tgbotapi.Update) (bool, error) {
	msg := upd.Message
	if msg == nil || msg.Chat.Type != "private" || msg.From == nil {
		return false, nil
	}
	userLang := lang(msg.From)

	if msg.IsCommand() {
		return true, h.handlePrivateCommand(msg, userLang)
	}

	if msg.Document != nil && h.cfg.IsAdministrator(msg.From.ID) {
		return true, h.handleAdminUpload(ctx, msg, userLang)
	}

	if msg.ForwardOrigin != nil {
		return true, h.startComplaint(msg, userLang)
	}

	switch h.conv.Stage(msg.From.ID) {
	case conversation.StageTypingOccupation, conversation.StageTypingDescription, conversation.StageTypingLocation:
		reply, err := h.conv.HandleText(msg.From.ID, msg.Text, h.limits())
		if err != nil {
			return true, err
		}
		return true, h.sendDialogReply(msg.Chat.ID, userLang, reply)
	}

	// Anything else returns the user to the menu.
	h.conv.Abort(msg.From.ID)
	return true, h.sendMenu(msg.Chat.ID, userLang)
}

// servicesKeyboard is the entry point of every dialog.
func (h *Handler) servicesKeyboard(userLang string) msgbus.Keyboard {
	return msgbus.Keyboard{
		{
			{Text: h.tr.Get(userLang, "menu.enroll"), Data: "enroll"},
			{Text: h.tr.Get(userLang, "menu.update"), Data: "update"},
		},
		{
			{Text: h.tr.Get(userLang, "menu.retire"), Data: "retire"},
			{Text: h.tr.Get(userLang, "menu.who"), Data: "who"},
		},
	}
}

func (h *Handler) sendMenu(chatID int64, userLang string) error {
	_, err := h.bus.Send(chatID, h.tr.Get(userLang, "menu.text"), &msgbus.Options{
		Keyboard: h.servicesKeyboard(userLang),
	})
	return err
}

func (h *Handler) handlePrivateCommand(msg *tgbotapi.Message, userLang string) error {
	switch msg.Command() {
	case "start", "help", "services":
		h.conv.Abort(msg.From.ID)
		return h.sendMenu(msg.Chat.ID, userLang)

	case "stats":
		if !h.cfg.IsAdministrator(msg.From.ID) {
			return h.sendMenu(msg.Chat.ID, userLang)
		}
		return h.sendStats(msg.Chat.ID)

	case "export":
		if !h.cfg.IsAdministrator(msg.From.ID) {
			return h.sendMenu(msg.Chat.ID, userLang)
		}
		data, err := h.dir.Export()
		if err != nil {
			return err
		}
		return h.bus.SendDocument(msg.Chat.ID, "directory.json", data, "")

	case "download":
		if !h.cfg.IsAdministrator(msg.From.ID) {
			return h.sendMenu(msg.Chat.ID, userLang)
		}
		return h.sendDataFile(msg, userLang, strings.TrimSpace(msg.CommandArguments()))

	case "addcategory":
		if !h.cfg.IsAdministrator(msg.From.ID) {
			return h.sendMenu(msg.Chat.ID, userLang)
		}
		return h.addCategory(msg, userLang, msg.CommandArguments())

	case "sql":
		if !h.cfg.IsAdministrator(msg.From.ID) {
			return h.sendMenu(msg.Chat.ID, userLang)
		}
		return h.runQuery(msg, userLang, msg.CommandArguments())

	default:
		return h.sendMenu(msg.Chat.ID, userLang)
	}
}

func (h *Handler) sendStats(chatID int64) error {
	activeRestrictions, err := h.modDB.CountActiveRestrictions()
	if err != nil {
		return err
	}
	metrics.SetActiveRestrictions(float64(activeRestrictions))
	spamToday, err := h.antispamDB.CountSpamSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return err
	}
	text := h.tr.Getf("", "admin.stats",
		h.cfg.Uptime().Round(time.Second), activeRestrictions, spamToday, h.sched.Pending())
	_, err = h.bus.Send(chatID, text, nil)
	return err
}

// sendDialogReply renders a conversation step: the catalog text plus, when
// requested, a category or yes/no keyboard.
func (h *Handler) sendDialogReply(chatID int64, userLang string, reply conversation.Reply) error {
	opts := &msgbus.Options{}
	if len(reply.Options) > 0 {
		for _, option := range reply.Options {
			title := option.Title
			if title == "" {
				// The implicit "other" category carries no stored title.
				title = h.tr.Get(userLang, "directory.other")
			}
			opts.Keyboard = append(opts.Keyboard, []msgbus.Button{
				{Text: title, Data: strconv.FormatInt(option.ID, 10)},
			})
		}
	}
	if reply.Confirm {
		opts.Keyboard = msgbus.Keyboard{{
			{Text: h.tr.Get(userLang, "conversation.yes"), Data: "yes"},
			{Text: h.tr.Get(userLang, "conversation.no"), Data: "no"},
		}}
	}
	if _, err := h.bus.Send(chatID, h.tr.Getf(userLang, reply.Key, reply.Args...), opts); err != nil {
		return err
	}
	if reply.NeedsModeration {
		return h.announcePendingRecord(chatID, reply)
	}
	return nil
}

// announcePendingRecord asks the moderators to approve a suspended record.
func (h *Handler) announcePendingRecord(userChatID int64, reply conversation.Reply) error {
	userID := userChatID // private chat ids equal user ids
	record, err := h.dirDB.Get(userID, reply.CategoryID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("pending record for user %d category %d vanished", userID, reply.CategoryID)
	}
	text := h.tr.Getf("", "moderation.pending_record",
		record.UserHandle, record.Occupation, record.Description, record.Location)
	_, err = h.bus.Send(h.cfg.Settings.ModerationChatID, text, &msgbus.Options{
		Keyboard: msgbus.Keyboard{{
			{Text: h.tr.Get("", "moderation.approve"), Data: fmt.Sprintf("approve:%d:%d", userID, reply.CategoryID)},
			{Text: h.tr.Get("", "moderation.decline"), Data: fmt.Sprintf("decline:%d:%d", userID, reply.CategoryID)},
		}},
	})
	return err
}

// startComplaint handles a forwarded main-chat message in private.
func (h *Handler) startComplaint(msg *tgbotapi.Message, userLang string) error {
	origin := moderation.ForwardOrigin{
		Type:      msg.ForwardOrigin.Type,
		Timestamp: time.Unix(msg.ForwardOrigin.Date, 0).UTC(),
		Text:      messageText(msg),
	}
	switch msg.ForwardOrigin.Type {
	case moderation.OriginUser:
		if msg.ForwardOrigin.SenderUser != nil {
			origin.SenderID = msg.ForwardOrigin.SenderUser.ID
		}
	case moderation.OriginHiddenUser:
		origin.SenderName = msg.ForwardOrigin.SenderUserName
	}

	original, err := h.mod.StartComplaint(msg.From.ID, origin)
	if err != nil {
		key := ""
		switch {
		case errors.Is(err, moderation.ErrUnsupportedOrigin):
			key = "moderation.unsupported_origin"
		case errors.Is(err, moderation.ErrMessageNotFound):
			key = "moderation.message_not_found"
		case errors.Is(err, moderation.ErrNotMember):
			key = "moderation.not_member"
		case errors.Is(err, moderation.ErrAlreadyComplained):
			key = "moderation.already_complained"
		default:
			return err
		}
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get(userLang, key), nil)
		return err
	}

	var rows msgbus.Keyboard
	for _, reason := range moderation.ReasonIDs {
		rows = append(rows, []msgbus.Button{{
			Text: h.tr.Get(userLang, "moderation.reason."+reason),
			Data: fmt.Sprintf("%d:%d:%s", original.MessageID, original.SenderID, reason),
		}})
	}
	rows = append(rows, []msgbus.Button{{Text: h.tr.Get(userLang, "moderation.cancel"), Data: "cancel"}})
	_, err = h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get(userLang, "moderation.pick_reason"), &msgbus.Options{Keyboard: rows})
	return err
}
