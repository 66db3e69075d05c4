package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

const (
	defaultTickSeconds  = 10
	defaultOffsetHours  = -3
	defaultAPIPort      = 9876
	defaultOperatorID   = 97802694302896128
	defaultConfigPath   = "BotConfig.json"
	defaultPublicData   = "../web/static/resources/json/PublicData.json"
	defaultSQLitePath   = "kava.db"
	defaultMySQLAddress = "localhost:3306"
)

// Config represents application configuration
type Config struct {
	Discord   DiscordConfig
	Database  DatabaseConfig
	Bot       BotConfig
	API       APIConfig
	Templates *TemplatesConfig
}

// DiscordConfig contains Discord credentials and channel routing
type DiscordConfig struct {
	Token          string
	GuildID        domain.Snowflake
	ErrorChannelID domain.Snowflake // error log channel
	LogChannelID   domain.Snowflake // generic log/notification channel
	OperatorID     domain.Snowflake // only user allowed to force cycles/resets
}

// DatabaseConfig selects the queue/schedule database
type DatabaseConfig struct {
	Driver   string // "sqlite" or "mysql"
	DSN      string
	Password string
}

// BotConfig contains tick scheduler and document settings
type BotConfig struct {
	ConfigPath     string
	PublicDataPath string
	TickInterval   time.Duration
	OffsetHours    int
	CycleDay       time.Weekday
}

// APIConfig contains the local admin API settings
type APIConfig struct {
	Port int
}

// LoadFromEnv loads configuration from environment variables.
// Parse problems are collected and reported by Validate.
func LoadFromEnv() *Config {
	cfg := &Config{
		Discord: DiscordConfig{
			Token:      os.Getenv("BOT_TOKEN"),
			OperatorID: defaultOperatorID,
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(envOr("DB_DRIVER", "sqlite")),
			DSN:      os.Getenv("DB_DSN"),
			Password: os.Getenv("MYSQL_PASS"),
		},
		Bot: BotConfig{
			ConfigPath:     envOr("BOT_CONFIG_PATH", defaultConfigPath),
			PublicDataPath: envOr("PUBLIC_DATA_PATH", defaultPublicData),
			TickInterval:   time.Duration(envInt("TICK_SECONDS", defaultTickSeconds)) * time.Second,
			OffsetHours:    envInt("OFFSET_HOURS", defaultOffsetHours),
			CycleDay:       time.Saturday,
		},
		API: APIConfig{
			Port: envInt("ADMIN_API_PORT", defaultAPIPort),
		},
	}

	cfg.Discord.GuildID, _ = domain.ParseSnowflake(os.Getenv("DISCORD_GUILD_ID"))
	cfg.Discord.ErrorChannelID, _ = domain.ParseSnowflake(os.Getenv("DISCORD_ERROR_CHANNEL_ID"))
	cfg.Discord.LogChannelID, _ = domain.ParseSnowflake(os.Getenv("DISCORD_LOG_CHANNEL_ID"))
	if val := os.Getenv("OPERATOR_USER_ID"); val != "" {
		if id, err := domain.ParseSnowflake(val); err == nil {
			cfg.Discord.OperatorID = id
		}
	}
	if val := os.Getenv("CYCLE_WEEKDAY"); val != "" {
		if day, ok := ParseWeekday(val); ok {
			cfg.Bot.CycleDay = day
		}
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.Database.defaultDSN()
	}

	templates, err := LoadTemplatesConfig(os.Getenv("TEMPLATES_CONFIG_PATH"))
	if err != nil {
		fmt.Printf("[Config] %v, using default templates\n", err)
		templates = DefaultTemplatesConfig()
	}
	cfg.Templates = templates

	return cfg
}

func (d *DatabaseConfig) defaultDSN() string {
	if d.Driver == "mysql" {
		return fmt.Sprintf("kava:%s@tcp(%s)/kava", d.Password, defaultMySQLAddress)
	}
	return defaultSQLitePath
}

// Validate validates the configuration needed to run the bot
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return &ConfigError{Field: "BOT_TOKEN", Message: "required"}
	}
	if c.Discord.GuildID.IsZero() {
		return &ConfigError{Field: "DISCORD_GUILD_ID", Message: "required"}
	}
	if c.Discord.ErrorChannelID.IsZero() {
		return &ConfigError{Field: "DISCORD_ERROR_CHANNEL_ID", Message: "required"}
	}
	if c.Discord.LogChannelID.IsZero() {
		return &ConfigError{Field: "DISCORD_LOG_CHANNEL_ID", Message: "required"}
	}
	return c.ValidateDatabase()
}

// ValidateDatabase validates only the database settings, for tools that
// never connect to Discord
func (c *Config) ValidateDatabase() error {
	switch c.Database.Driver {
	case "sqlite":
	case "mysql":
		if c.Database.Password == "" && os.Getenv("DB_DSN") == "" {
			return &ConfigError{Field: "MYSQL_PASS", Message: "required for mysql driver"}
		}
	default:
		return &ConfigError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", c.Database.Driver)}
	}
	if c.Bot.TickInterval <= 0 {
		return &ConfigError{Field: "TICK_SECONDS", Message: "must be positive"}
	}
	return nil
}

// APIURLFromEnv returns the admin API base URL for local clients.
// KAVA_API_URL wins over ADMIN_API_PORT.
func APIURLFromEnv() string {
	if url := os.Getenv("KAVA_API_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return fmt.Sprintf("http://127.0.0.1:%d", envInt("ADMIN_API_PORT", defaultAPIPort))
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseWeekday accepts full or three-letter English day names, any case
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return time.Sunday, false
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}
