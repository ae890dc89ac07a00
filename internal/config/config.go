// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Triage holds the initial engine settings. Runtime changes go
	// through the settings API; the environment only seeds the
	// first snapshot.
	Triage TriageConfig

	// Audit configures the optional SQLite audit trail.
	Audit AuditConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP port to listen on.
	Port string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
}

// TriageConfig seeds the engine's AISettings.
type TriageConfig struct {
	// Enabled switches the whole engine on; when off every notification
	// comes back neutral.
	Enabled bool

	// PriorityWeight blends computed priority against the neutral
	// baseline, 0-100.
	PriorityWeight int

	// SmartGrouping enables batch collapsing of similar notifications.
	SmartGrouping bool

	// GroupSimilarThreshold is carried into settings but advisory only.
	GroupSimilarThreshold int

	// LearningMode/AdaptToBehavior gate the static behavior profile.
	LearningMode    bool
	AdaptToBehavior bool

	// RoleFilteringEnabled and UserRoles seed role-based filtering.
	RoleFilteringEnabled bool
	UserRoles            []string
}

// AuditConfig contains audit store settings.
type AuditConfig struct {
	// DBPath is the SQLite file path. Empty disables the audit trail.
	DBPath string

	// HistoryLimit caps how many records the history endpoint returns.
	HistoryLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Triage: TriageConfig{
			Enabled:               getBoolOrDefault("TRIAGE_ENABLED", true),
			PriorityWeight:        getIntOrDefault("TRIAGE_PRIORITY_WEIGHT", 70),
			SmartGrouping:         getBoolOrDefault("TRIAGE_SMART_GROUPING", true),
			GroupSimilarThreshold: getIntOrDefault("TRIAGE_GROUP_THRESHOLD", 75),
			LearningMode:          getBoolOrDefault("TRIAGE_LEARNING_MODE", true),
			AdaptToBehavior:       getBoolOrDefault("TRIAGE_ADAPT_TO_BEHAVIOR", true),
			RoleFilteringEnabled:  getBoolOrDefault("TRIAGE_ROLE_FILTERING", false),
			UserRoles:             getSliceOrDefault("TRIAGE_USER_ROLES", nil),
		},
		Audit: AuditConfig{
			DBPath:       os.Getenv("AUDIT_DB_PATH"),
			HistoryLimit: getIntOrDefault("AUDIT_HISTORY_LIMIT", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: PORT must not be empty", domain.ErrInvalidConfig)
	}

	if c.Triage.PriorityWeight < 0 || c.Triage.PriorityWeight > 100 {
		return fmt.Errorf("%w: TRIAGE_PRIORITY_WEIGHT must be between 0 and 100", domain.ErrInvalidConfig)
	}

	if c.Triage.GroupSimilarThreshold < 0 || c.Triage.GroupSimilarThreshold > 100 {
		return fmt.Errorf("%w: TRIAGE_GROUP_THRESHOLD must be between 0 and 100", domain.ErrInvalidConfig)
	}

	if c.Audit.HistoryLimit < 1 {
		return fmt.Errorf("%w: AUDIT_HISTORY_LIMIT must be at least 1", domain.ErrInvalidConfig)
	}

	return nil
}

// EngineSettings builds the initial AISettings snapshot for the engine:
// the built-in defaults with the environment's overrides applied.
func (c *Config) EngineSettings() domain.AISettings {
	s := domain.DefaultAISettings()
	s.Enabled = c.Triage.Enabled
	s.PriorityWeight = c.Triage.PriorityWeight
	s.SmartGrouping = c.Triage.SmartGrouping
	s.GroupSimilarThreshold = c.Triage.GroupSimilarThreshold
	s.LearningMode.Enabled = c.Triage.LearningMode
	s.LearningMode.AdaptToBehavior = c.Triage.AdaptToBehavior
	s.RoleFiltering.Enabled = c.Triage.RoleFilteringEnabled
	s.RoleFiltering.UserRoles = append([]string(nil), c.Triage.UserRoles...)
	return s
}

// Helper functions for reading environment variables

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Try parsing as seconds first (e.g., "15")
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		// Try parsing as duration string (e.g., "15s", "1m")
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getSliceOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
