package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a config for correctness. Referenced files are resolved
// relative to baseDir and must exist, except the archive which is created
// on first use.
func Validate(cfg *Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}

	if strings.TrimSpace(cfg.Campaign.Sheet) == "" {
		add("campaign.sheet", "is required")
	} else if !fileExists(baseDir, cfg.Campaign.Sheet) {
		add("campaign.sheet", fmt.Sprintf("file not found: %s", cfg.Campaign.Sheet))
	}
	if strings.TrimSpace(cfg.Campaign.Questions) == "" {
		add("campaign.questions", "is required")
	} else if !fileExists(baseDir, cfg.Campaign.Questions) {
		add("campaign.questions", fmt.Sprintf("file not found: %s", cfg.Campaign.Questions))
	}

	if strings.TrimSpace(cfg.Dialer.BaseURL) == "" {
		add("dialer.base_url", "is required")
	}

	if strings.TrimSpace(cfg.Agent.Model) == "" {
		add("agent.model", "is required")
	}
	if cfg.Agent.Provider != "openai" {
		add("agent.provider", fmt.Sprintf("unsupported provider %q", cfg.Agent.Provider))
	}
	if strings.TrimSpace(cfg.Agent.Instructions) == "" {
		add("agent.instructions", "is required")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func fileExists(baseDir, path string) bool {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ResolvePath resolves a config-relative path against the config directory.
func ResolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
