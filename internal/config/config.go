// Package config loads tokenledger configuration, pricing and credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all tokenledger configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Moonshot MoonshotConfig `toml:"moonshot"`
	Notify   NotifyConfig   `toml:"notify"`
	Server   ServerConfig   `toml:"server"`
}

// GeneralConfig holds paths shared by every command.
type GeneralConfig struct {
	RootDir  string `toml:"root_dir"`
	DataPath string `toml:"data_path,omitempty"`
	LogLevel string `toml:"log_level"`
}

// OpenAIConfig holds organization usage/cost API settings.
type OpenAIConfig struct {
	BaseURL        string `toml:"base_url"`
	ProjectID      string `toml:"project_id,omitempty"`
	CredentialPath string `toml:"credential_path,omitempty"`
}

// MoonshotConfig holds session CLI and pricing settings.
type MoonshotConfig struct {
	SessionCommand string  `toml:"session_command"`
	SessionLimit   int     `toml:"session_limit"`
	PricingPath    string  `toml:"pricing_path,omitempty"`
	InputShare     float64 `toml:"input_share"`
	OutputShare    float64 `toml:"output_share"`
}

// NotifyConfig holds messaging CLI settings.
type NotifyConfig struct {
	Command string `toml:"command"`
	Channel string `toml:"channel"`
	Target  string `toml:"target,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	HTMLPath string `toml:"html_path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			RootDir:  ".",
			LogLevel: "info",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Moonshot: MoonshotConfig{
			SessionCommand: "openclaw",
			SessionLimit:   100,
			InputShare:     0.9,
			OutputShare:    0.1,
		},
		Notify: NotifyConfig{
			Command: "openclaw",
			Channel: "telegram",
		},
		Server: ServerConfig{
			Addr: "0.0.0.0:18888",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tokenledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tokenledger")
}

// StateDir returns the directory for runtime files such as the server pid.
func StateDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tokenledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "tokenledger")
}

// Path returns the full path to the config file.
func Path() string {
	if p := os.Getenv("TOKENLEDGER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist,
// then applies .env files and environment overrides.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the local user
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	loadDotEnv(cfg.General.RootDir)
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config to path.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists reports whether a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DataPath returns the store file location.
func (c Config) DataPath() string {
	if c.General.DataPath != "" {
		return c.General.DataPath
	}
	return filepath.Join(c.General.RootDir, "data", "token_usage.json")
}

// CredentialPath returns the admin key file location.
func (c Config) CredentialPath() string {
	if c.OpenAI.CredentialPath != "" {
		return c.OpenAI.CredentialPath
	}
	return filepath.Join(c.General.RootDir, "credentials", "openai_admin_key")
}

// PricingPath returns the secondary provider pricing file location.
func (c Config) PricingPath() string {
	if c.Moonshot.PricingPath != "" {
		return c.Moonshot.PricingPath
	}
	return filepath.Join(c.General.RootDir, "config", "moonshot_pricing.json")
}

// loadDotEnv loads the first .env found. Existing environment variables win.
func loadDotEnv(rootDir string) {
	paths := []string{filepath.Join(rootDir, ".env")}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	paths = append(paths, filepath.Join(Dir(), ".env"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyEnv(cfg *Config) {
	cfg.General.DataPath = getEnvString("TOKEN_DATA_PATH", cfg.General.DataPath)
	cfg.General.LogLevel = getEnvString("TOKENLEDGER_LOG_LEVEL", cfg.General.LogLevel)
	cfg.OpenAI.ProjectID = getEnvString("OPENAI_PROJECT_ID", cfg.OpenAI.ProjectID)
	cfg.OpenAI.BaseURL = getEnvString("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.Moonshot.InputShare = getEnvFloat("MOONSHOT_INPUT_SHARE", cfg.Moonshot.InputShare)
	cfg.Moonshot.OutputShare = getEnvFloat("MOONSHOT_OUTPUT_SHARE", cfg.Moonshot.OutputShare)
	cfg.Notify.Channel = getEnvString("NOTIFY_CHANNEL", cfg.Notify.Channel)
	cfg.Notify.Target = getEnvString("TELEGRAM_TARGET", cfg.Notify.Target)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
