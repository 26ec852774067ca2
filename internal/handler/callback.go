package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diaspora-bot/internal/conversation"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/moderation"
	"diaspora-bot/internal/msgbus"
)

// handleCallback routes callback data. The grammar is flat: a service name,
// a bare category id, yes/no, a moderator verdict, or a complaint reason.
func (h *Handler) handleCallback(_ context.Context, upd tgbotapi.Update) (bool, error) {
	cb := upd.CallbackQuery
	if cb == nil {
		return false, nil
	}
	h.bus.AnswerCallback(cb.ID, "")
	if cb.Message == nil || cb.From == nil {
		return true, nil
	}
	chatID := cb.Message.Chat.ID
	userLang := lang(cb.From)
	data := cb.Data

	switch data {
	case "enroll", "update", "retire":
		reply, err := h.conv.Start(cb.From.ID, cb.From.UserName, conversation.Mode(data))
		if err != nil {
			return true, err
		}
		return true, h.sendDialogReply(chatID, userLang, reply)

	case "who":
		return true, h.sendDirectory(chatID, userLang)

	case "yes", "no":
		reply, err := h.conv.Confirm(cb.From.ID, data == "yes", h.cfg.Settings.DirectoryModerationEnabled)
		if err != nil {
			return true, err
		}
		return true, h.sendDialogReply(chatID, userLang, reply)

	case "cancel":
		return true, h.bus.EditReplyMarkup(msgbus.MessageRef{ChatID: chatID, MessageID: cb.Message.MessageID}, nil)
	}

	var userID, categoryID int64
	if n, _ := fmt.Sscanf(data, "approve:%d:%d", &userID, &categoryID); n == 2 {
		return true, h.resolvePendingRecord(cb, userID, categoryID, true)
	}
	if n, _ := fmt.Sscanf(data, "decline:%d:%d", &userID, &categoryID); n == 2 {
		return true, h.resolvePendingRecord(cb, userID, categoryID, false)
	}

	var originalMessageID int
	var targetUserID int64
	var reason string
	if n, _ := fmt.Sscanf(data, "%d:%d:%s", &originalMessageID, &targetUserID, &reason); n == 3 {
		return true, h.acceptComplaintReason(cb, originalMessageID, reason, userLang)
	}

	if id, err := strconv.ParseInt(data, 10, 64); err == nil {
		if h.conv.Stage(cb.From.ID) == conversation.StageSelectingCategory {
			reply, err := h.conv.PickCategory(cb.From.ID, id, h.limits())
			if err != nil {
				return true, err
			}
			return true, h.sendDialogReply(chatID, userLang, reply)
		}
		// Two-step directory view: a picked category.
		text, err := h.dir.RenderCategory(id, h.tr.Get(userLang, "directory.other"))
		if err != nil {
			return true, err
		}
		if text == "" {
			_, err = h.bus.Send(chatID, h.tr.Get(userLang, "directory.empty"), nil)
			return true, err
		}
		_, err = h.bus.Send(chatID, text, &msgbus.Options{ParseMode: tgbotapi.ModeMarkdown, DisablePreview: true})
		return true, err
	}

	h.logsink.Warn("Unknown callback data", "data", data)
	return true, nil
}

// sendDirectory renders the who-listing, or its category picker when the
// listing is too large.
func (h *Handler) sendDirectory(chatID int64, userLang string) error {
	listing, err := h.dir.BuildListing(h.tr.Get(userLang, "directory.other"),
		h.cfg.Settings.MaxMessageLength, h.cfg.Settings.ShowCategoriesAlways)
	if err != nil {
		return err
	}
	if len(listing.Picker) > 0 {
		var rows msgbus.Keyboard
		for _, option := range listing.Picker {
			rows = append(rows, []msgbus.Button{
				{Text: option.Caption, Data: strconv.FormatInt(option.ID, 10)},
			})
		}
		_, err := h.bus.Send(chatID, h.tr.Get(userLang, "directory.pick_category"), &msgbus.Options{Keyboard: rows})
		return err
	}
	if listing.Text == "" {
		_, err = h.bus.Send(chatID, h.tr.Get(userLang, "directory.empty"), nil)
		return err
	}
	_, err = h.bus.Send(chatID, listing.Text, &msgbus.Options{ParseMode: tgbotapi.ModeMarkdown, DisablePreview: true})
	return err
}

// acceptComplaintReason records the complainant's picked reason and retires
// the keyboard.
func (h *Handler) acceptComplaintReason(cb *tgbotapi.CallbackQuery, originalMessageID int, reason string, userLang string) error {
	err := h.mod.AcceptReason(originalMessageID, cb.From.ID, reason)
	switch {
	case errors.Is(err, moderation.ErrAlreadyComplained):
		_, err = h.bus.Send(cb.Message.Chat.ID, h.tr.Get(userLang, "moderation.already_complained"), nil)
		return err
	case errors.Is(err, moderation.ErrMessageNotFound):
		_, err = h.bus.Send(cb.Message.Chat.ID, h.tr.Get(userLang, "moderation.message_not_found"), nil)
		return err
	case err != nil:
		return err
	}
	metrics.ComplaintsRecorded.Inc()

	ref := msgbus.MessageRef{ChatID: cb.Message.Chat.ID, MessageID: cb.Message.MessageID}
	if err := h.bus.EditReplyMarkup(ref, nil); err != nil {
		h.logsink.Warn("Failed to retire reason keyboard", "error", err)
	}
	_, err = h.bus.Send(cb.Message.Chat.ID, h.tr.Get(userLang, "moderation.reason_accepted"), nil)
	return err
}

// resolvePendingRecord applies a moderator's verdict on a suspended
// directory record.
func (h *Handler) resolvePendingRecord(cb *tgbotapi.CallbackQuery, userID, categoryID int64, approved bool) error {
	if approved {
		if err := h.dirDB.SetSuspended(userID, categoryID, false); err != nil {
			return err
		}
	} else {
		if err := h.dirDB.Delete(userID, categoryID); err != nil {
			return err
		}
	}
	h.logsink.Info("Pending record resolved",
		"user_id", userID, "category_id", categoryID, "approved", approved)

	ref := msgbus.MessageRef{ChatID: cb.Message.Chat.ID, MessageID: cb.Message.MessageID}
	if err := h.bus.EditReplyMarkup(ref, nil); err != nil {
		h.logsink.Warn("Failed to retire verdict keyboard", "error", err)
	}

	userKey := "directory.declined"
	if approved {
		userKey = "directory.approved"
	}
	if _, err := h.bus.Send(userID, h.tr.Get("", userKey), nil); err != nil {
		// The user may have never opened a private chat with the bot.
		h.logsink.Warn("Failed to notify record owner", "user_id", userID, "error", err)
	}
	return nil
}
