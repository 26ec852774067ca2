package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"diaspora-bot/internal/app"
	"diaspora-bot/internal/config"
	"diaspora-bot/internal/i18n"
	"diaspora-bot/internal/storage"
	"diaspora-bot/pkg/telemetry"
)

func main() {

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	var err error
	switch command {
	case "run":
		err = run(logger)
	case "setup":
		err = setup(logger)
	case "migrate":
		err = migrate(logger)
	case "updatemessages":
		err = updateMessages(logger)
	case "compilemessages":
		err = compileMessages(logger)
	default:
		logger.Error("Unknown command", "command", command)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Env.EnableTelemetry {
		shutdown, err := telemetry.InitTracer("diaspora-bot", os.Stderr)
		if err != nil {
			logger.Error("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("Failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	return app.NewApp(cfg, logger).Run(context.Background())
}

// setup interactively collects the mandatory settings, then rewrites
// settings.yaml so every other key is present as a commented default.
func setup(logger *slog.Logger) error {
	confDir, dataDir, err := config.Dirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{confDir, dataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	path := filepath.Join(confDir, "settings.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, edit it instead", path)
	}

	in := bufio.NewReader(os.Stdin)
	token, err := prompt(in, "Bot API token")
	if err != nil {
		return err
	}
	developerChatID, err := promptInt(in, "Developer chat id")
	if err != nil {
		return err
	}
	mainChatID, err := promptInt(in, "Main chat id")
	if err != nil {
		return err
	}

	initial, err := yaml.Marshal(map[string]any{
		"BOT_TOKEN":         token,
		"DEVELOPER_CHAT_ID": developerChatID,
		"MAIN_CHAT_ID":      mainChatID,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(path, initial, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load fresh settings: %w", err)
	}
	if err := cfg.RewriteSettingsFile(); err != nil {
		return err
	}
	logger.Info("Settings file created", "path", path)
	return nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s must not be empty", label)
	}
	return value, nil
}

func promptInt(in *bufio.Reader, label string) (int64, error) {
	value, err := prompt(in, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", label, err)
	}
	return n, nil
}

func migrate(logger *slog.Logger) error {
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := storage.NewDB(cfg.DataFile("people.db"))
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	return storage.RunMigrations(db, logger, cfg.DataFile("migrations"))
}

func updateMessages(logger *slog.Logger) error {
	confDir, _, err := config.Dirs()
	if err != nil {
		return err
	}
	added, err := i18n.SyncCatalogs(filepath.Join(confDir, "i18n"), config.Defaults().SpeakLanguageDefault)
	if err != nil {
		return err
	}
	logger.Info("Catalogs synchronized", "keys_added", added)
	return nil
}

func compileMessages(logger *slog.Logger) error {
	confDir, _, err := config.Dirs()
	if err != nil {
		return err
	}
	count, err := i18n.CompileCatalogs(filepath.Join(confDir, "i18n"), config.Defaults().SpeakLanguageDefault)
	if err != nil {
		return err
	}
	logger.Info("Catalogs validated", "catalogs", count)
	return nil
}
