// Package msgbus is the thin adapter over the bot API client. Everything the
// rest of the bot needs from the platform goes through here, so the client
// surface stays in one place.
package msgbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageRef identifies a message the bot may later edit, delete or react to.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Button is one inline-keyboard button. Data and URL are mutually exclusive.
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is rows of buttons.
type Keyboard [][]Button

// Options tweak a single outgoing message.
type Options struct {
	ParseMode      string
	ReplyTo        int
	Keyboard       Keyboard
	DisablePreview bool
}

// Command is an entry of the bot's command list.
type Command struct {
	Name        string
	Description string
}

// Bus wraps the API client.
type Bus struct {
	api     *tgbotapi.BotAPI
	logsink *slog.Logger
}

func New(api *tgbotapi.BotAPI, logsink *slog.Logger) *Bus {
	return &Bus{api: api, logsink: logsink}
}

// BotUsername returns the authorized bot's handle without the leading @.
func (b *Bus) BotUsername() string { return b.api.Self.UserName }

// BotID returns the authorized bot's user id.
func (b *Bus) BotID() int64 { return b.api.Self.ID }

func buildMarkup(kb Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
			}
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Send posts a message and returns its reference.
func (b *Bus) Send(chatID int64, text string, opts *Options) (MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if opts != nil {
		msg.ParseMode = opts.ParseMode
		if opts.ReplyTo != 0 {
			msg.ReplyParameters.MessageID = opts.ReplyTo
		}
		if len(opts.Keyboard) > 0 {
			msg.ReplyMarkup = buildMarkup(opts.Keyboard)
		}
		if opts.DisablePreview {
			msg.LinkPreviewOptions.IsDisabled = true
		}
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		return MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Reply posts a message replying to another one in the same chat.
func (b *Bus) Reply(chatID int64, replyTo int, text string, opts *Options) (MessageRef, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.ReplyTo = replyTo
	return b.Send(chatID, text, opts)
}

// EditReplyMarkup replaces the inline keyboard of an existing message. A nil
// keyboard removes it.
func (b *Bus) EditReplyMarkup(ref MessageRef, kb Keyboard) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(ref.ChatID, ref.MessageID, buildMarkup(kb))
	if _, err := b.api.Request(edit); err != nil {
		return fmt.Errorf("failed to edit reply markup: %w", err)
	}
	return nil
}

// Forward copies a message into another chat, keeping the forward header.
func (b *Bus) Forward(toChatID int64, from MessageRef) (MessageRef, error) {
	sent, err := b.api.Send(tgbotapi.NewForward(toChatID, from.ChatID, from.MessageID))
	if err != nil {
		return MessageRef{}, fmt.Errorf("failed to forward message: %w", err)
	}
	return MessageRef{ChatID: toChatID, MessageID: sent.MessageID}, nil
}

// Delete removes a message.
func (b *Bus) Delete(ref MessageRef) error {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// SafeDelete removes a message, downgrading "already gone" errors to a
// warning. Other errors propagate.
func (b *Bus) SafeDelete(ref MessageRef) error {
	err := b.Delete(ref)
	if err == nil {
		return nil
	}
	if isAlreadyGone(err) {
		b.logsink.Warn("Message already gone", "chat_id", ref.ChatID, "message_id", ref.MessageID)
		return nil
	}
	return err
}

// SetReaction puts a single emoji reaction on a message.
func (b *Bus) SetReaction(ref MessageRef, emoji string) error {
	react := tgbotapi.NewSetMessageReaction(ref.ChatID, ref.MessageID,
		[]tgbotapi.ReactionType{{Type: "emoji", Emoji: emoji}}, false)
	if _, err := b.api.Request(react); err != nil {
		return fmt.Errorf("failed to set reaction: %w", err)
	}
	return nil
}

// SafeClearReaction removes the bot's reactions, downgrading "already gone"
// errors to a warning.
func (b *Bus) SafeClearReaction(ref MessageRef) error {
	react := tgbotapi.NewSetMessageReaction(ref.ChatID, ref.MessageID, nil, false)
	if _, err := b.api.Request(react); err != nil {
		if isAlreadyGone(err) {
			b.logsink.Warn("Reaction target already gone", "chat_id", ref.ChatID, "message_id", ref.MessageID)
			return nil
		}
		return fmt.Errorf("failed to clear reaction: %w", err)
	}
	return nil
}

// SendPoll opens an anonymous poll and returns both the poll message and the
// platform poll id.
func (b *Bus) SendPoll(chatID int64, question string, options []string) (MessageRef, string, error) {
	pollOptions := make([]tgbotapi.InputPollOption, 0, len(options))
	for _, option := range options {
		pollOptions = append(pollOptions, tgbotapi.NewPollOption(option))
	}
	poll := tgbotapi.NewPoll(chatID, question, pollOptions...)
	poll.IsAnonymous = true
	sent, err := b.api.Send(poll)
	if err != nil {
		return MessageRef{}, "", fmt.Errorf("failed to send poll: %w", err)
	}
	pollID := ""
	if sent.Poll != nil {
		pollID = sent.Poll.ID
	}
	return MessageRef{ChatID: chatID, MessageID: sent.MessageID}, pollID, nil
}

// StopPoll closes a poll.
func (b *Bus) StopPoll(ref MessageRef) error {
	if _, err := b.api.StopPoll(tgbotapi.NewStopPoll(ref.ChatID, ref.MessageID)); err != nil {
		return fmt.Errorf("failed to stop poll: %w", err)
	}
	return nil
}

// RestrictMember revokes a member's send permissions until the given time.
func (b *Bus) RestrictMember(chatID, userID int64, until time.Time) error {
	restrict := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
		UntilDate:   until.Unix(),
		Permissions: &tgbotapi.ChatPermissions{},
	}
	if _, err := b.api.Request(restrict); err != nil {
		return fmt.Errorf("failed to restrict member: %w", err)
	}
	return nil
}

// MemberStatus returns the user's status in a chat: creator, administrator,
// member, restricted, left or kicked.
func (b *Bus) MemberStatus(chatID, userID int64) (string, error) {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat member: %w", err)
	}
	return member.Status, nil
}

// MemberCount returns the number of members in a chat, bots included.
func (b *Bus) MemberCount(chatID int64) (int, error) {
	count, err := b.api.GetChatMembersCount(tgbotapi.ChatMemberCountConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get chat member count: %w", err)
	}
	return count, nil
}

// AnswerCallback acknowledges a callback query, optionally with a toast.
func (b *Bus) AnswerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logsink.Warn("Failed to answer callback", "error", err)
	}
}

// SendDocument uploads a named byte blob as a document.
func (b *Bus) SendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// DownloadDocument fetches an uploaded file's contents.
func (b *Bus) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			b.logsink.Warn("Failed to close download body", "error", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// SetCommands publishes the bot's command list.
func (b *Bus) SetCommands(commands []Command) error {
	list := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		list = append(list, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(list...)); err != nil {
		return fmt.Errorf("failed to set commands: %w", err)
	}
	return nil
}

func isAlreadyGone(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "can't be deleted") ||
		strings.Contains(msg, "message to delete")
}

// IsTransient reports whether an error is a network hiccup or a bad request
// on a stale object, the kinds the dispatcher only logs.
func IsTransient(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusBadRequest ||
			apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code >= http.StatusInternalServerError
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "temporary failure")
}
