package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Game        GameConfig        `mapstructure:"game" validate:"required"`
	Scoring     ScoringConfig     `mapstructure:"scoring" validate:"required"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard" validate:"required"`
	Storage     StorageConfig     `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// GameConfig contains the session state machine settings.
type GameConfig struct {
	PairCount     int           `mapstructure:"pair_count" validate:"required,gt=0"`
	TickInterval  time.Duration `mapstructure:"tick_interval" validate:"required,gt=0"`
	MatchDelay    time.Duration `mapstructure:"match_delay" validate:"required,gt=0"`
	MismatchDelay time.Duration `mapstructure:"mismatch_delay" validate:"required,gtfield=MatchDelay"`
	// Seed fixes the shuffle for every session; 0 seeds each session randomly.
	Seed        int64         `mapstructure:"seed"`
	SessionTTL  time.Duration `mapstructure:"session_ttl" validate:"required,gt=0"`
	ContentPath string        `mapstructure:"content_path"`
}

// ScoringConfig contains the scoring formula constants.
type ScoringConfig struct {
	BaseScore       int `mapstructure:"base_score" validate:"required,gt=0"`
	MovePenalty     int `mapstructure:"move_penalty" validate:"required,gt=0"`
	TimeStepSeconds int `mapstructure:"time_step_seconds" validate:"required,gt=0"`
	TimeStepPenalty int `mapstructure:"time_step_penalty" validate:"required,gt=0"`
}

// LeaderboardConfig contains the leaderboard persistence settings.
type LeaderboardConfig struct {
	Key      string `mapstructure:"key" validate:"required"`
	Capacity int    `mapstructure:"capacity" validate:"required,gt=0,lte=100"`
}

// StorageConfig selects and configures the blob store backend.
type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=memory file sqlite postgres"`
	Path        string `mapstructure:"path" validate:"required_if=Driver file,required_if=Driver sqlite"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres,omitempty,url"`
}
