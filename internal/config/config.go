// Package config loads gateway configuration from the environment, with an
// optional YAML file for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`

	RedisAddr     string `mapstructure:"redis_addr" validate:"required"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	LedgerBaseURL string `mapstructure:"ledger_base_url" validate:"required,url"`
	LedgerToken   string `mapstructure:"ledger_token" validate:"required"`

	IdentitySecret string        `mapstructure:"identity_secret" validate:"required"`
	JWTSecret      string        `mapstructure:"jwt_secret" validate:"required"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`

	AdminUnlockPassword string `mapstructure:"admin_unlock_password" validate:"required"`

	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	RoundTTL time.Duration `mapstructure:"round_ttl"`

	MinBet int64 `mapstructure:"min_bet" validate:"min=1"`

	// BlackjackPushIsWin controls whether a push counts as a win in the
	// outcome report. The payout is 1x either way.
	BlackjackPushIsWin bool `mapstructure:"blackjack_push_is_win"`
}

// Load reads .env files, environment variables and an optional YAML file,
// applies defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; real deployments set the environment.
		_ = err
	}

	v := viper.New()
	v.SetEnvPrefix("CASINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("round_ttl", time.Hour)
	v.SetDefault("min_bet", 1)
	v.SetDefault("blackjack_push_is_win", false)

	// Viper only reports env-provided keys after BindEnv for keys
	// without file values.
	for _, key := range []string{
		"env", "port", "redis_addr", "redis_password", "redis_db",
		"ledger_base_url", "ledger_token", "identity_secret",
		"jwt_secret", "session_ttl", "admin_unlock_password",
		"cache_ttl", "round_ttl", "min_bet", "blackjack_push_is_win",
	} {
		_ = v.BindEnv(key)
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
