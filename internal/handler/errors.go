package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"diaspora-bot/internal/msgbus"
)

// privateOrigin finds the private chat an update came from, if any.
func privateOrigin(upd tgbotapi.Update) (chatID int64, replyTo int, user *tgbotapi.User, ok bool) {
	msg := upd.Message
	if msg == nil && upd.CallbackQuery != nil {
		msg = upd.CallbackQuery.Message
	}
	if msg == nil || msg.Chat.Type != "private" {
		return 0, 0, nil, false
	}
	user = msg.From
	if upd.CallbackQuery != nil {
		user = upd.CallbackQuery.From
	}
	return msg.Chat.ID, msg.MessageID, user, true
}

// HandleError is the dispatcher's error sink. Transient platform errors are
// logged and swallowed; everything else gets a UUID, a dump in the developer
// chat, and, for private-chat errors, a reply carrying the UUID.
func (h *Handler) HandleError(_ context.Context, upd tgbotapi.Update, err error) {
	if msgbus.IsTransient(err) {
		h.logsink.Warn("Transient platform error", "error", err, "update_id", upd.UpdateID)
		return
	}

	id := uuid.New().String()
	h.logsink.Error("Update handling failed", "error_id", id, "error", err, "update_id", upd.UpdateID)

	payload, marshalErr := json.MarshalIndent(upd, "", "  ")
	if marshalErr != nil {
		payload = []byte(fmt.Sprintf("unmarshalable update: %v", marshalErr))
	}
	dump := fmt.Sprintf("error id: %s\n\nerror:\n%v\n\nstack:\n%s\nupdate:\n%s\n",
		id, err, debug.Stack(), payload)

	sendErr := h.bus.SendDocument(h.cfg.Settings.DeveloperChatID, "error-"+id+".txt", []byte(dump), id)
	if sendErr != nil {
		h.logsink.Error("Failed to deliver error report", "error_id", id, "error", sendErr)
	}

	if chatID, replyTo, user, ok := privateOrigin(upd); ok {
		_, replyErr := h.bus.Reply(chatID, replyTo, h.tr.Getf(lang(user), "errors.reported", id), nil)
		if replyErr != nil {
			h.logsink.Warn("Failed to tell the user about the error", "error_id", id, "error", replyErr)
		}
	}
}
