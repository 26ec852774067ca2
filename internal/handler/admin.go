package handler

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diaspora-bot/internal/antispam"
	"diaspora-bot/internal/fileswap"
	"diaspora-bot/internal/glossary"
	"diaspora-bot/internal/storage"
)

// Administrator-editable data files, addressed by upload filename.
const (
	keywordsFileName   = "antispam_keywords.txt"
	classifierFileName = "antispam_openai.json"
	glossaryFileName   = "glossary_terms.csv"
	directoryFileName  = "directory.json"
)

// handleAdminUpload replaces a data file from an administrator's document.
// Validation failures are answered in chat, not raised.
func (h *Handler) handleAdminUpload(ctx context.Context, msg *tgbotapi.Message, userLang string) error {
	name := msg.Document.FileName
	data, err := h.bus.DownloadDocument(ctx, msg.Document.FileID)
	if err != nil {
		return err
	}

	var swapErr error
	switch name {
	case keywordsFileName:
		swapErr = fileswap.ReplaceWithBackup(h.cfg.DataFile(name), data, func(data []byte) error {
			if len(antispam.ParseKeywords(data)) == 0 {
				return fmt.Errorf("no keywords found")
			}
			return nil
		})
		if swapErr == nil {
			h.keywords.Invalidate()
		}

	case classifierFileName:
		swapErr = fileswap.ReplaceWithBackup(h.cfg.DataFile(name), data, func(data []byte) error {
			_, err := antispam.ParseModel(data)
			return err
		})
		if swapErr == nil {
			h.classifier.Invalidate()
		}

	case glossaryFileName:
		swapErr = fileswap.ReplaceWithBackup(h.cfg.DataFile(name), data, func(data []byte) error {
			if len(glossary.ParseTerms(data, h.logsink)) == 0 {
				return fmt.Errorf("no usable glossary rows")
			}
			return nil
		})
		if swapErr == nil {
			h.gloss.Invalidate()
		}

	case directoryFileName:
		count, err := h.dir.Import(data)
		if err != nil {
			swapErr = err
			break
		}
		h.logsink.Info("Administrator replaced data file", "file", name, "user_id", msg.From.ID)
		_, err = h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.directory_imported", count), nil)
		return err

	default:
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.unknown_file", name), nil)
		return err
	}

	if swapErr != nil {
		h.logsink.Warn("Rejected data file upload", "file", name, "error", swapErr)
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.file_rejected", name, swapErr), nil)
		return err
	}

	h.logsink.Info("Administrator replaced data file", "file", name, "user_id", msg.From.ID)
	_, err = h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.file_updated", name), nil)
	return err
}

// sendDataFile returns the current copy of an administrator-editable data
// file as a document.
func (h *Handler) sendDataFile(msg *tgbotapi.Message, userLang, name string) error {
	switch name {
	case keywordsFileName, classifierFileName, glossaryFileName:
	default:
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.unknown_file", name), nil)
		return err
	}
	data, err := os.ReadFile(h.cfg.DataFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.file_missing", name), nil)
			return err
		}
		return err
	}
	return h.bus.SendDocument(msg.Chat.ID, name, data, "")
}

// addCategory creates a directory category from "/addcategory <title>".
func (h *Handler) addCategory(msg *tgbotapi.Message, userLang, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get(userLang, "admin.category_usage"), nil)
		return err
	}
	category := &storage.Category{Title: title}
	if err := h.dirDB.SaveCategory(category); err != nil {
		return err
	}
	h.logsink.Info("Category added", "id", category.ID, "title", title, "user_id", msg.From.ID)
	_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.category_added", category.ID, title), nil)
	return err
}

// runQuery is the administrator escape hatch into the store. Failures are
// answered in chat so a typo does not end up in the developer chat.
func (h *Handler) runQuery(msg *tgbotapi.Message, userLang, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get(userLang, "admin.query_usage"), nil)
		return err
	}
	h.logsink.Info("Administrator query", "user_id", msg.From.ID, "query", query)
	rows, err := storage.RawQuery(h.db, h.logsink, query)
	if err != nil {
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Getf(userLang, "admin.query_failed", err), nil)
		return err
	}
	if len(rows) == 0 {
		_, err := h.bus.Reply(msg.Chat.ID, msg.MessageID, h.tr.Get(userLang, "admin.query_empty"), nil)
		return err
	}
	text := renderRows(rows)
	if len(text) > h.cfg.Settings.MaxMessageLength {
		return h.bus.SendDocument(msg.Chat.ID, "query.txt", []byte(text), "")
	}
	_, err = h.bus.Reply(msg.Chat.ID, msg.MessageID, text, nil)
	return err
}

func renderRows(rows []map[string]any) string {
	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var b strings.Builder
	b.WriteString(strings.Join(columns, " | "))
	for _, row := range rows {
		b.WriteString("\n")
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = fmt.Sprintf("%v", row[column])
		}
		b.WriteString(strings.Join(cells, " | "))
	}
	return b.String()
}
