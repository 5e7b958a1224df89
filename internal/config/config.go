package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the triage configuration.
type Config struct {
	Model                 string        `json:"model"`
	BaseURL               string        `json:"baseUrl,omitempty"`
	Language              string        `json:"language"`
	ValidateAllSeverities bool          `json:"validateAllSeverities"`
	Concurrency           int           `json:"concurrency"`
	Format                string        `json:"format"`
	FailOnValid           bool          `json:"failOnValid"`
	TimeoutSeconds        int           `json:"timeoutSeconds"`
	OrgID                 string        `json:"orgId,omitempty"`
	ProjectID             string        `json:"projectId,omitempty"`
	Privacy               PrivacyConfig `json:"privacy"`
}

// PrivacyConfig controls redaction of file content before it is sent.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:       "gpt-3.5-turbo",
		Language:    "auto",
		Concurrency: 4,
		Format:      "text",
		Privacy: PrivacyConfig{
			RedactPaths: []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for triage.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "triage"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "triage"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "triage"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "triage"), nil
	default:
		return filepath.Join(home, ".config", "triage"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.Concurrency > 0 {
		dst.Concurrency = src.Concurrency
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.OrgID != "" {
		dst.OrgID = src.OrgID
	}
	if src.ProjectID != "" {
		dst.ProjectID = src.ProjectID
	}
	// Defaults for the bools are false, so a true in the file always wins.
	dst.ValidateAllSeverities = src.ValidateAllSeverities || dst.ValidateAllSeverities
	dst.FailOnValid = src.FailOnValid || dst.FailOnValid
	dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets || dst.Privacy.RedactSecrets
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("TRIAGE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TRIAGE_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("TRIAGE_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("TRIAGE_OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TRIAGE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv("TRIAGE_VALIDATE_ALL_SEVERITIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ValidateAllSeverities = b
		}
	}
	if v := os.Getenv("OPENAI_ORG_ID"); v != "" {
		cfg.OrgID = v
	}
	if v := os.Getenv("OPENAI_PROJECT_ID"); v != "" {
		cfg.ProjectID = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "baseUrl":
		cfg.BaseURL = value
	case "language":
		cfg.Language = value
	case "format":
		cfg.Format = value
	case "orgId":
		cfg.OrgID = value
	case "projectId":
		cfg.ProjectID = value
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer: %q", value)
		}
		cfg.Concurrency = n
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("timeoutSeconds must be a non-negative integer: %q", value)
		}
		cfg.TimeoutSeconds = n
	case "validateAllSeverities":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("validateAllSeverities must be a boolean: %w", err)
		}
		cfg.ValidateAllSeverities = b
	case "failOnValid":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failOnValid must be a boolean: %w", err)
		}
		cfg.FailOnValid = b
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
