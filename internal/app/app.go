// Package app assembles the bot: configuration, storage, services, handler
// and the long-polling loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"diaspora-bot/internal/antispam"
	"diaspora-bot/internal/config"
	"diaspora-bot/internal/conversation"
	"diaspora-bot/internal/directory"
	"diaspora-bot/internal/glossary"
	"diaspora-bot/internal/handler"
	"diaspora-bot/internal/i18n"
	"diaspora-bot/internal/metrics"
	"diaspora-bot/internal/moderation"
	"diaspora-bot/internal/msgbus"
	"diaspora-bot/internal/scheduler"
	"diaspora-bot/internal/storage"
)

// schedulerInterval is how often overdue cleanup jobs are dispatched.
const schedulerInterval = 5 * time.Second

type App struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		tracer: otel.Tracer("diaspora-bot"),
	}
}

func (a *App) buildDetector(keywords *antispam.KeywordsLayer, classifier *antispam.OpenAILayer) *antispam.Detector {
	var layers []antispam.Layer
	for _, name := range a.cfg.Settings.AntispamEnabled {
		switch name {
		case "keywords":
			layers = append(layers, keywords)
		case "emojis":
			layers = append(layers, antispam.NewEmojisLayer(a.cfg.Settings.AntispamEmojisMaxCustomEmojiCount))
		case "openai":
			layers = append(layers, classifier)
		default:
			a.logger.Warn("Unknown antispam layer ignored", "layer", name)
		}
	}
	return antispam.NewDetector(a.logger, layers...)
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting diaspora bot")

	api, err := tgbotapi.NewBotAPI(a.cfg.Settings.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create bot client: %w", err)
	}
	a.logger.Info("Bot connected", "username", api.Self.UserName, "id", api.Self.ID)
	bus := msgbus.New(api, a.logger)

	db, err := storage.NewDB(a.cfg.DataFile("people.db"))
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	if err := storage.RunMigrations(db, a.logger, a.cfg.DataFile("migrations")); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dirRepo := storage.NewDirectoryRepository(db, a.logger)
	antispamRepo := storage.NewAntispamRepository(db, a.logger)
	modRepo := storage.NewModerationRepository(db, a.logger)

	tr, err := i18n.NewTranslator(a.cfg.ConfDir()+"/i18n", a.cfg.Settings.SpeakLanguageDefault)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	keywords := antispam.NewKeywordsLayer(a.cfg.DataFile("antispam_keywords.txt"), a.logger)
	embedder := antispam.NewOpenAIEmbedder(a.cfg.Settings.OpenAIAPIKey, openai.SmallEmbedding3)
	classifier := antispam.NewOpenAILayer(a.cfg.DataFile("antispam_openai.json"),
		a.cfg.Settings.AntispamOpenAIConfidenceThreshold, embedder, a.logger)
	detector := a.buildDetector(keywords, classifier)

	gloss := glossary.New(a.cfg.DataFile("glossary_terms.csv"), a.cfg.GlossaryMaxTriggerAge(), a.logger)
	dirService := directory.NewService(dirRepo, bus.BotUsername(), a.logger)
	dialogs := conversation.NewManager(dirRepo, a.logger)

	modState := moderation.NewStateStore(a.cfg.DataFile("moderation_state.json"), a.logger)
	if err := modState.Load(); err != nil {
		return fmt.Errorf("failed to load moderation state: %w", err)
	}
	modService := moderation.NewService(moderation.Params{
		MainChatID:         a.cfg.Settings.MainChatID,
		ModerationChatID:   a.cfg.Settings.ModerationChatID,
		ComplaintThreshold: a.cfg.Settings.ModerationComplaintThreshold,
		BotCount:           a.cfg.Settings.ModerationChatBotCount,
		QuorumThreshold:    a.cfg.Settings.ModerationQuorumThreshold,
		WinningThreshold:   a.cfg.Settings.ModerationWinningThreshold,
		IsReal:             a.cfg.Settings.ModerationIsReal,
		Ladder:             a.cfg.Settings.ModerationRestrictionLadder,
		LogMaxAge:          a.cfg.MainChatLogMaxAge(),
	}, modRepo, modState, bus, tr, a.logger)
	if err := modService.WipeDryRunState(); err != nil {
		return fmt.Errorf("failed to wipe dry-run state: %w", err)
	}

	sched := scheduler.New(schedulerInterval, a.logger)
	go sched.Run(ctx)

	h := handler.NewHandler(a.logger, handler.Deps{
		Config:      a.cfg,
		Bus:         bus,
		Translator:  tr,
		Detector:    detector,
		Keywords:    keywords,
		Classifier:  classifier,
		Glossary:    gloss,
		Directory:   dirService,
		Dialogs:     dialogs,
		Moderation:  modService,
		DirectoryDB: dirRepo,
		AntispamDB:  antispamRepo,
		ModDB:       modRepo,
		DB:          db,
		Scheduler:   sched,
	})

	if err := bus.SetCommands([]msgbus.Command{
		{Name: "start", Description: tr.Get("", "commands.start")},
		{Name: "services", Description: tr.Get("", "commands.services")},
		{Name: "help", Description: tr.Get("", "commands.help")},
	}); err != nil {
		a.logger.Warn("Failed to publish command list", "error", err)
	}

	metricsSrv := metrics.NewServer(a.logger, a.cfg.Env.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updateConfig.AllowedUpdates = []string{"message", "edited_message", "callback_query", "poll", "message_reaction"}
	updates := api.GetUpdatesChan(updateConfig)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				h.HandleUpdate(ctx, upd)
			}
		}
	}()

	<-ctx.Done()
	a.logger.Info("Shutting down...")
	api.StopReceivingUpdates()
	return nil
}
