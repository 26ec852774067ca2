// Package handler wires incoming platform updates to the bot's services: the
// private dialogs, the spam gate, the glossary, and the moderation protocol.
package handler

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"log/slog"

	"diaspora-bot/internal/antispam"
	"diaspora-bot/internal/config"
	"diaspora-bot/internal/conversation"
	"diaspora-bot/internal/directory"
	"diaspora-bot/internal/glossary"
	"diaspora-bot/internal/i18n"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/moderation"
	"diaspora-bot/internal/msgbus"
	"diaspora-bot/internal/scheduler"
	"diaspora-bot/internal/storage"
)

// Bus is the slice of the message bus the handler uses.
type Bus interface {
	Send(chatID int64, text string, opts *msgbus.Options) (msgbus.MessageRef, error)
	Reply(chatID int64, replyTo int, text string, opts *msgbus.Options) (msgbus.MessageRef, error)
	EditReplyMarkup(ref msgbus.MessageRef, kb msgbus.Keyboard) error
	SafeDelete(ref msgbus.MessageRef) error
	SetReaction(ref msgbus.MessageRef, emoji string) error
	SafeClearReaction(ref msgbus.MessageRef) error
	SendDocument(chatID int64, name string, data []byte, caption string) error
	DownloadDocument(ctx context.Context, fileID string) ([]byte, error)
	AnswerCallback(callbackID, text string)
	BotUsername() string
	BotID() int64
}

// Handler owns the dispatcher and all per-update logic.
type Handler struct {
	logsink    *slog.Logger
	cfg        *config.Config
	bus        Bus
	tr         *i18n.Translator
	detector   *antispam.Detector
	keywords   *antispam.KeywordsLayer
	classifier *antispam.OpenAILayer
	gloss      *glossary.Glossary
	dir        *directory.Service
	conv       *conversation.Manager
	mod        *moderation.Service
	dirDB      storage.DirectoryRepository
	antispamDB storage.AntispamRepository
	modDB      storage.ModerationRepository
	db         *gorm.DB
	sched      *scheduler.Scheduler
	tracer     trace.Tracer
	dispatcher *Dispatcher
}

// Deps collects the handler's collaborators.
type Deps struct {
	Config      *config.Config
	Bus         Bus
	Translator  *i18n.Translator
	Detector    *antispam.Detector
	Keywords    *antispam.KeywordsLayer
	Classifier  *antispam.OpenAILayer
	Glossary    *glossary.Glossary
	Directory   *directory.Service
	Dialogs     *conversation.Manager
	Moderation  *moderation.Service
	DirectoryDB storage.DirectoryRepository
	AntispamDB  storage.AntispamRepository
	ModDB       storage.ModerationRepository
	DB          *gorm.DB
	Scheduler   *scheduler.Scheduler
}

func NewHandler(logsink *slog.Logger, deps Deps) *Handler {
	h := &Handler{
		logsink:    logsink,
		cfg:        deps.Config,
		bus:        deps.Bus,
		tr:         deps.Translator,
		detector:   deps.Detector,
		keywords:   deps.Keywords,
		classifier: deps.Classifier,
		gloss:      deps.Glossary,
		dir:        deps.Directory,
		conv:       deps.Dialogs,
		mod:        deps.Moderation,
		dirDB:      deps.DirectoryDB,
		antispamDB: deps.AntispamDB,
		modDB:      deps.ModDB,
		db:         deps.DB,
		sched:      deps.Scheduler,
		tracer:     otel.Tracer("handler"),
	}
	h.dispatcher = NewDispatcher(h)

	// Group 0: structured updates with unambiguous owners.
	h.dispatcher.Register(0, h.handleCallback)
	h.dispatcher.Register(0, h.handlePollUpdate)
	// Group 1: private chat traffic (dialogs, complaints, administration).
	h.dispatcher.Register(1, h.handlePrivateMessage)
	// Group 2: the main chat pipeline (spam gate, ingress log, glossary).
	h.dispatcher.Register(2, h.handleGroupMessage)

	return h
}

func updateType(upd tgbotapi.Update) string {
	switch {
	case upd.CallbackQuery != nil:
		return "callback"
	case upd.Poll != nil:
		return "poll"
	case upd.Message != nil:
		return "message"
	case upd.EditedMessage != nil:
		return "edited_message"
	default:
		return "other"
	}
}

// HandleUpdate is the entry point for one polled update.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	start := time.Now()
	kind := updateType(upd)
	var dispatchErr error
	defer func() {
		metrics.ObserveUpdateProcessing(kind, time.Since(start).Seconds(), dispatchErr)
	}()

	var span trace.Span
	if h.cfg.Env.EnableTelemetry {
		ctx, span = h.tracer.Start(ctx, "HandleUpdate")
		span.SetAttributes(attribute.String("update_type", kind))
		defer span.End()
	}

	h.logsink.Debug("Dispatching update", "type", kind, "update_id", upd.UpdateID)
	dispatchErr = h.dispatcher.Dispatch(ctx, upd)
}

// handlePollUpdate feeds poll tallies to the moderation protocol.
func (h *Handler) handlePollUpdate(_ context.Context, upd tgbotapi.Update) (bool, error) {
	if upd.Poll == nil {
		return false, nil
	}
	accept, reject := 0, 0
	if len(upd.Poll.Options) >= 2 {
		accept = upd.Poll.Options[0].VoterCount
		reject = upd.Poll.Options[1].VoterCount
	}
	return true, h.mod.HandlePollUpdate(upd.Poll.ID, upd.Poll.IsClosed, accept, reject)
}

// lang picks the catalog for a user.
func lang(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	return user.LanguageCode
}
