package config

import (
	"errors"
	"testing"
	"time"

	"github.com/ssmith129/Medico-2.0-sub000/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if !cfg.Triage.Enabled {
		t.Error("triage should default to enabled")
	}
	if cfg.Triage.PriorityWeight != 70 {
		t.Errorf("priority weight = %d, want 70", cfg.Triage.PriorityWeight)
	}
	if cfg.Audit.DBPath != "" {
		t.Errorf("audit db path = %q, want empty (disabled)", cfg.Audit.DBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRIAGE_PRIORITY_WEIGHT", "55")
	t.Setenv("TRIAGE_SMART_GROUPING", "false")
	t.Setenv("TRIAGE_USER_ROLES", "doctor, nurse,")
	t.Setenv("SERVER_READ_TIMEOUT", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("read timeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Triage.PriorityWeight != 55 {
		t.Errorf("priority weight = %d, want 55", cfg.Triage.PriorityWeight)
	}
	if cfg.Triage.SmartGrouping {
		t.Error("smart grouping should be off")
	}
	if len(cfg.Triage.UserRoles) != 2 || cfg.Triage.UserRoles[0] != "doctor" || cfg.Triage.UserRoles[1] != "nurse" {
		t.Errorf("user roles = %v, want [doctor nurse]", cfg.Triage.UserRoles)
	}
}

func TestLoad_InvalidWeight(t *testing.T) {
	t.Setenv("TRIAGE_PRIORITY_WEIGHT", "150")

	_, err := Load()
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestEngineSettings(t *testing.T) {
	t.Setenv("TRIAGE_ENABLED", "false")
	t.Setenv("TRIAGE_ROLE_FILTERING", "true")
	t.Setenv("TRIAGE_USER_ROLES", "nurse")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := cfg.EngineSettings()
	if s.Enabled {
		t.Error("settings should be seeded disabled")
	}
	if !s.RoleFiltering.Enabled || len(s.RoleFiltering.UserRoles) != 1 {
		t.Errorf("role filtering = %+v, want enabled with [nurse]", s.RoleFiltering)
	}
	// Category weights come from the built-in defaults.
	if s.CategoryWeights[domain.CategoryEmergency] != 100 {
		t.Errorf("emergency weight = %d, want 100", s.CategoryWeights[domain.CategoryEmergency])
	}
}
