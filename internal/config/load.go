package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_GAME_PAIR_COUNT.
const EnvPrefix = "SCRY"

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence over
// values from the config file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path looks
// for config.yaml in the working directory and tolerates its absence; an
// explicit path must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags on a loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("game.pair_count", 8)
	v.SetDefault("game.tick_interval", "1s")
	v.SetDefault("game.match_delay", "500ms")
	v.SetDefault("game.mismatch_delay", "1s")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.session_ttl", "1h")
	v.SetDefault("game.content_path", "")

	v.SetDefault("scoring.base_score", 1000)
	v.SetDefault("scoring.move_penalty", 10)
	v.SetDefault("scoring.time_step_seconds", 5)
	v.SetDefault("scoring.time_step_penalty", 5)

	v.SetDefault("leaderboard.key", "mlMemoryHighScores")
	v.SetDefault("leaderboard.capacity", 5)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.database_url", "")
}
