package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/api-learning-hub/internal/particles"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	Telegram         Telegram  `mapstructure:"telegram"`
	HTTP             HTTP      `mapstructure:"http"`
	DB               DB        `mapstructure:"database"` // database configuration section
	Quiz             Quiz      `mapstructure:"quiz"`
	Particles        Particles `mapstructure:"particles"`
}

// Telegram contains bot settings.
type Telegram struct {
	Debug       bool   `mapstructure:"debug"`        // log raw Bot API traffic
	MetricsAddr string `mapstructure:"metrics_addr"` // address of the bot's /metrics endpoint, empty disables it
}

// HTTP contains web server settings.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	FrameInterval   time.Duration `mapstructure:"frame_interval"` // particle stream frame period
}

// DB contains database-related configuration parameters.
type DB struct {
	Driver          string        `mapstructure:"driver"`            // postgres or sqlite
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Quiz contains quiz engine and session registry settings.
type Quiz struct {
	QuestionsPath string        `mapstructure:"questions_path"` // optional override of the embedded question bank
	CardsPath     string        `mapstructure:"cards_path"`     // optional override of the embedded flashcards
	DefaultCount  int           `mapstructure:"default_count"`
	CountOptions  []int         `mapstructure:"count_options"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`    // idle sessions older than this are evicted
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for the idle session sweeper
}

// Particles contains the background simulation tuning.
type Particles struct {
	Tiers          []particles.Tier `mapstructure:"tiers"`
	GridThreshold  int              `mapstructure:"grid_threshold"`
	ResizeDebounce time.Duration    `mapstructure:"resize_debounce"`
}

// Simulation returns the simulation settings.
func (p Particles) Simulation() particles.Config {
	return particles.Config{Tiers: p.Tiers, GridThreshold: p.GridThreshold}
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file if one exists.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if len(cfg.Particles.Tiers) == 0 {
		cfg.Particles.Tiers = particles.DefaultTiers()
	}

	return &cfg, nil
}

// RequireTelegram checks the settings the bot cannot start without.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return ErrMissingEnvironmentVariables
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.metrics_addr", ":9091")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.frame_interval", "33ms")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.count_options", []int{5, 10, 15, 20})
	v.SetDefault("quiz.tick_interval", "1s")
	v.SetDefault("quiz.session_ttl", "2h")
	v.SetDefault("quiz.sweep_schedule", "*/10 * * * *")

	v.SetDefault("particles.grid_threshold", 150)
	v.SetDefault("particles.resize_debounce", "250ms")
}
