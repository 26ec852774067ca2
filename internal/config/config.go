// Package config loads the bot configuration: a small environment bootstrap
// (service mode, directories, metrics address) and the settings file
// ${CONF_DIR}/settings.yaml overlaid on typed defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Env is the process-level bootstrap read from the environment before the
// settings file is located.
type Env struct {
	ServiceMode     bool   `env:"SERVICE_MODE" envDefault:"false"`
	ConfDir         string `env:"CONF_DIR"`
	DataDir         string `env:"DATA_DIR"`
	MetricsAddr     string `env:"METRICS_ADDR" envDefault:":9090"`
	EnableTelemetry bool   `env:"ENABLE_TELEMETRY" envDefault:"false"`
}

// Administrator identifies a user allowed to curate data files and view stats.
type Administrator struct {
	ID       int64  `yaml:"id"`
	Username string `yaml:"username"`
}

// LadderRung is one step of the escalating restriction ladder.
type LadderRung struct {
	Action          string `yaml:"action"` // warn, restrict or ban
	DurationMinutes int    `yaml:"duration_minutes"`
	CooldownMinutes int    `yaml:"cooldown_minutes"`
}

// Settings mirrors settings.yaml. Field order here drives the order of the
// rewritten file.
type Settings struct {
	BotToken        string `yaml:"BOT_TOKEN"`
	BotIsMale       bool   `yaml:"BOT_IS_MALE"`
	DeveloperChatID int64  `yaml:"DEVELOPER_CHAT_ID"`
	MainChatID      int64  `yaml:"MAIN_CHAT_ID"`

	Administrators []Administrator `yaml:"ADMINISTRATORS"`

	MaxMessageLength     int  `yaml:"MAX_MESSAGE_LENGTH"`
	ShowCategoriesAlways bool `yaml:"SHOW_CATEGORIES_ALWAYS"`

	OccupationMaxLength  int `yaml:"OCCUPATION_MAX_LENGTH"`
	DescriptionMaxLength int `yaml:"DESCRIPTION_MAX_LENGTH"`
	LocationMaxLength    int `yaml:"LOCATION_MAX_LENGTH"`

	DirectoryModerationEnabled bool `yaml:"DIRECTORY_MODERATION_ENABLED"`

	AntispamEnabled                   []string `yaml:"ANTISPAM_ENABLED"`
	AntispamEmojisMaxCustomEmojiCount int      `yaml:"ANTISPAM_EMOJIS_MAX_CUSTOM_EMOJI_COUNT"`
	AntispamOpenAIConfidenceThreshold float64  `yaml:"ANTISPAM_OPENAI_CONFIDENCE_THRESHOLD"`
	OpenAIAPIKey                      string   `yaml:"OPENAI_API_KEY"`

	GlossaryMaxTriggerAgeSeconds         int  `yaml:"GLOSSARY_MAX_TRIGGER_AGE"`
	GlossaryReplyToTrigger               bool `yaml:"GLOSSARY_REPLY_TO_TRIGGER"`
	GlossaryReplyToMinTriggerCount       int  `yaml:"GLOSSARY_REPLY_TO_MIN_TRIGGER_COUNT"`
	GlossaryReplyToTriggerTimeoutSeconds int  `yaml:"GLOSSARY_REPLY_TO_TRIGGER_TIMEOUT"`
	GlossaryReactToTrigger               bool `yaml:"GLOSSARY_REACT_TO_TRIGGER"`

	ModerationIsReal                 bool         `yaml:"MODERATION_IS_REAL"`
	ModerationChatID                 int64        `yaml:"MODERATION_CHAT_ID"`
	ModerationChatBotCount           int          `yaml:"MODERATION_CHAT_BOT_COUNT"`
	ModerationComplaintThreshold     int          `yaml:"MODERATION_COMPLAINT_THRESHOLD"`
	ModerationQuorumThreshold        float64      `yaml:"MODERATION_QUORUM_THRESHOLD"`
	ModerationWinningThreshold       float64      `yaml:"MODERATION_WINNING_THRESHOLD"`
	ModerationMainChatLogMaxAgeHours int          `yaml:"MODERATION_MAIN_CHAT_LOG_MAX_AGE_HOURS"`
	ModerationRestrictionLadder      []LadderRung `yaml:"MODERATION_RESTRICTION_LADDER"`

	SpeakLanguageDefault string `yaml:"SPEAK_LANGUAGE_DEFAULT"`
}

// comments documents every settings key for the rewritten file.
var comments = map[string]string{
	"BOT_TOKEN":                              "Bot API token. Mandatory.",
	"BOT_IS_MALE":                            "Gender of the bot persona, used to pick message variants.",
	"DEVELOPER_CHAT_ID":                      "Chat that receives error reports. Mandatory.",
	"MAIN_CHAT_ID":                           "The community group the bot polices. Mandatory.",
	"ADMINISTRATORS":                         "Users allowed to curate data files, as {id, username} objects.",
	"MAX_MESSAGE_LENGTH":                     "Longest message the bot composes before switching to the category picker.",
	"SHOW_CATEGORIES_ALWAYS":                 "Always use the two-step category view when more than one category has records.",
	"OCCUPATION_MAX_LENGTH":                  "Per-field input limit, 0 disables.",
	"DESCRIPTION_MAX_LENGTH":                 "Per-field input limit, 0 disables.",
	"LOCATION_MAX_LENGTH":                    "Per-field input limit, 0 disables.",
	"DIRECTORY_MODERATION_ENABLED":           "New and updated records stay suspended until a moderator approves.",
	"ANTISPAM_ENABLED":                       "Enabled classifier layers: keywords, emojis, openai.",
	"ANTISPAM_EMOJIS_MAX_CUSTOM_EMOJI_COUNT": "Custom emoji count above which the emojis layer fires.",
	"ANTISPAM_OPENAI_CONFIDENCE_THRESHOLD":   "Positive-class probability above which the openai layer fires.",
	"OPENAI_API_KEY":                         "API key for the embedding service.",
	"GLOSSARY_MAX_TRIGGER_AGE":               "Seconds a trigger stays in the rolling window. Also the eye-reaction TTL.",
	"GLOSSARY_REPLY_TO_TRIGGER":              "Reply with explanations when enough distinct terms trigger at once.",
	"GLOSSARY_REPLY_TO_MIN_TRIGGER_COUNT":    "Distinct terms in one message needed for an automatic reply.",
	"GLOSSARY_REPLY_TO_TRIGGER_TIMEOUT":      "Seconds before the automatic reply self-destructs.",
	"GLOSSARY_REACT_TO_TRIGGER":              "Set an eye reaction on messages that trigger glossary terms.",
	"MODERATION_IS_REAL":                     "Apply restrictions for real. When false, outcomes are announced only and state is wiped on restart.",
	"MODERATION_CHAT_ID":                     "The moderators' chat where complaints are voted on.",
	"MODERATION_CHAT_BOT_COUNT":              "Bots present in the moderators' chat, excluded from the member count.",
	"MODERATION_COMPLAINT_THRESHOLD":         "Distinct complainants needed before a poll is opened.",
	"MODERATION_QUORUM_THRESHOLD":            "Fraction of moderators whose votes make the poll decidable.",
	"MODERATION_WINNING_THRESHOLD":           "Fraction of the quorum an option needs to win outright.",
	"MODERATION_MAIN_CHAT_LOG_MAX_AGE_HOURS": "Retention of the main-chat message log.",
	"MODERATION_RESTRICTION_LADDER":          "Escalating actions as {action, duration_minutes, cooldown_minutes}.",
	"SPEAK_LANGUAGE_DEFAULT":                 "Catalog used when the platform reports no language for a user.",
}

// Defaults returns the built-in value for every setting.
func Defaults() Settings {
	return Settings{
		BotIsMale:                         true,
		MaxMessageLength:                  4096,
		AntispamEnabled:                   []string{"keywords", "emojis"},
		AntispamEmojisMaxCustomEmojiCount: 5,
		AntispamOpenAIConfidenceThreshold: 0.9,

		GlossaryMaxTriggerAgeSeconds:         300,
		GlossaryReplyToTrigger:               true,
		GlossaryReplyToMinTriggerCount:       3,
		GlossaryReplyToTriggerTimeoutSeconds: 60,
		GlossaryReactToTrigger:               true,

		ModerationChatBotCount:           1,
		ModerationComplaintThreshold:     5,
		ModerationQuorumThreshold:        0.75,
		ModerationWinningThreshold:       0.75,
		ModerationMainChatLogMaxAgeHours: 48,
		ModerationRestrictionLadder: []LadderRung{
			{Action: "warn", CooldownMinutes: 1440},
			{Action: "restrict", DurationMinutes: 1440, CooldownMinutes: 1440},
			{Action: "ban"},
		},

		SpeakLanguageDefault: "en",
	}
}

// Config is the merged runtime configuration.
type Config struct {
	Env      Env
	Settings Settings

	startedAt time.Time
	confDir   string
	dataDir   string
}

// Dirs resolves the configuration and data directories the way Load does,
// without requiring a complete configuration. Used by the setup command.
func Dirs() (confDir, dataDir string, err error) {
	e := Env{}
	if err := env.Parse(&e); err != nil {
		return "", "", fmt.Errorf("failed to parse environment: %w", err)
	}
	confDir, dataDir = e.ConfDir, e.DataDir
	if confDir == "" {
		if e.ServiceMode {
			confDir = "/usr/local/etc/diaspora-bot"
		} else {
			confDir = "conf"
		}
	}
	if dataDir == "" {
		if e.ServiceMode {
			dataDir = "/var/lib/diaspora-bot"
		} else {
			dataDir = "data"
		}
	}
	return confDir, dataDir, nil
}

// Load reads the environment bootstrap and overlays settings.yaml on the
// defaults. A missing settings file is tolerated; unknown keys are warned
// about and skipped.
func Load(logger *slog.Logger) (*Config, error) {
	e := Env{}
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg := &Config{
		Env:       e,
		Settings:  Defaults(),
		startedAt: time.Now(),
		confDir:   e.ConfDir,
		dataDir:   e.DataDir,
	}
	if cfg.confDir == "" {
		if e.ServiceMode {
			cfg.confDir = "/usr/local/etc/diaspora-bot"
		} else {
			cfg.confDir = "conf"
		}
	}
	if cfg.dataDir == "" {
		if e.ServiceMode {
			cfg.dataDir = "/var/lib/diaspora-bot"
		} else {
			cfg.dataDir = "data"
		}
	}

	path := cfg.SettingsPath()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Settings file not found, running on defaults", "path", path)
		} else {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		warnUnknownKeys(logger, raw)
		if err := yaml.Unmarshal(raw, &cfg.Settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Settings.BotToken = token
	}

	if cfg.Settings.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	if cfg.Settings.DeveloperChatID == 0 {
		return nil, fmt.Errorf("DEVELOPER_CHAT_ID is not set")
	}
	if cfg.Settings.MainChatID == 0 {
		return nil, fmt.Errorf("MAIN_CHAT_ID is not set")
	}
	return cfg, nil
}

func warnUnknownKeys(logger *slog.Logger, raw []byte) {
	var all map[string]any
	if err := yaml.Unmarshal(raw, &all); err != nil {
		return
	}
	for key := range all {
		if _, ok := comments[key]; !ok {
			logger.Warn("Unknown settings key ignored", "key", key)
		}
	}
}

// SettingsPath returns the settings file path for the current service mode.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.confDir, settingsFileName)
}

// ConfDir returns the configuration directory.
func (c *Config) ConfDir() string { return c.confDir }

// DataDir returns the directory holding the database and data files.
func (c *Config) DataDir() string { return c.dataDir }

// DataFile returns the path of a file under the data directory.
func (c *Config) DataFile(name string) string { return filepath.Join(c.dataDir, name) }

// StartedAt reports when this process loaded its configuration.
func (c *Config) StartedAt() time.Time { return c.startedAt }

// Uptime reports how long the process has been running.
func (c *Config) Uptime() time.Duration { return time.Since(c.startedAt) }

// IsAdministrator reports whether the user is in the ADMINISTRATORS list.
func (c *Config) IsAdministrator(userID int64) bool {
	for _, a := range c.Settings.Administrators {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// GlossaryMaxTriggerAge converts the configured seconds to a duration.
func (c *Config) GlossaryMaxTriggerAge() time.Duration {
	return time.Duration(c.Settings.GlossaryMaxTriggerAgeSeconds) * time.Second
}

// GlossaryReplyTimeout converts the configured seconds to a duration.
func (c *Config) GlossaryReplyTimeout() time.Duration {
	return time.Duration(c.Settings.GlossaryReplyToTriggerTimeoutSeconds) * time.Second
}

// MainChatLogMaxAge converts the configured hours to a duration.
func (c *Config) MainChatLogMaxAge() time.Duration {
	return time.Duration(c.Settings.ModerationMainChatLogMaxAgeHours) * time.Hour
}
