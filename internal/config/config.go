// Package config loads jira-tools settings from ~/.jira-tools/config.json
// with environment variable overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jira-tools/internal/account"

	"github.com/charmbracelet/huh"
	"github.com/spf13/viper"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

type Config struct {
	JiraURL             string `json:"jira_url" mapstructure:"jira_url"`
	JiraEmail           string `json:"jira_email" mapstructure:"jira_email"`
	JiraAPIToken        string `json:"jira_api_token" mapstructure:"jira_api_token"`
	GeminiAPIKey        string `json:"gemini_api_key" mapstructure:"gemini_api_key"`
	GeminiModel         string `json:"gemini_model" mapstructure:"gemini_model"`
	AccountMappings     string `json:"account_mappings,omitempty" mapstructure:"account_mappings"`
	AccountMappingsFile string `json:"account_mappings_file,omitempty" mapstructure:"account_mappings_file"`
	LogLevel            string `json:"log_level,omitempty" mapstructure:"log_level"`
	LogFormat           string `json:"log_format,omitempty" mapstructure:"log_format"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"jira_url":              "JIRA_URL",
	"jira_email":            "JIRA_EMAIL",
	"jira_api_token":        "JIRA_API_TOKEN",
	"gemini_api_key":        "GEMINI_API_KEY",
	"gemini_model":          "GEMINI_MODEL",
	"account_mappings":      "ACCOUNT_MAPPINGS",
	"account_mappings_file": "ACCOUNT_MAPPINGS_FILE",
	"log_level":             "LOG_LEVEL",
	"log_format":            "LOG_FORMAT",
}

var ErrIncomplete = errors.New("configuration incomplete")

func GeminiModelOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Gemini 3 Flash", "gemini-3-flash-preview"),
		huh.NewOption("Gemini 2.5 Flash", "gemini-2.5-flash"),
		huh.NewOption("Gemini 2.5 Flash Lite", "gemini-2.5-flash-lite"),
	}
}

func configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jira-tools")
}

// Path is the location of the config file.
func Path() string {
	return filepath.Join(configDir(), "config.json")
}

func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file, when present, and applies environment
// overrides and defaults. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(Path())
	v.SetConfigType("json")
	v.SetDefault("gemini_model", DefaultGeminiModel)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if Exists() {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")
	return &cfg, nil
}

// Validate reports the settings needed to talk to Jira that are missing.
func (c *Config) Validate() error {
	var missing []string
	if c.JiraURL == "" {
		missing = append(missing, "jira_url")
	}
	if c.JiraAPIToken == "" {
		missing = append(missing, "jira_api_token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(configDir(), 0700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0600)
}

func validateURL(s string) error {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

func validateMappings(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	reg := account.ParseMappings(s)
	if skipped := reg.Skipped(); len(skipped) > 0 {
		return errors.New(skipped[0])
	}
	if reg.Len() == 0 {
		return fmt.Errorf("expected name:KEY1,KEY2;name2:KEY3")
	}
	return nil
}

func RunSetup() (*Config, error) {
	var existing Config
	if cfg, err := Load(); err == nil {
		existing = *cfg
	}
	if existing.GeminiModel == "" {
		existing.GeminiModel = DefaultGeminiModel
	}

	cfg := existing

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira URL").
				Placeholder("https://your-org.atlassian.net").
				Value(&cfg.JiraURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Jira Email").
				Description("Leave empty to authenticate with a bearer token").
				Placeholder("you@company.com").
				Value(&cfg.JiraEmail),
		).Title("Jira Connection"),

		huh.NewGroup(
			huh.NewInput().
				Title("Jira API Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.JiraAPIToken),
			huh.NewInput().
				Title("Gemini API Key").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.GeminiAPIKey),
		).Title("API Tokens"),

		huh.NewGroup(
			huh.NewInput().
				Title("Account mappings").
				Description("name:KEY1,KEY2;name2:KEY3. Empty means one default account with every project").
				Placeholder("team-alpha:PROJ,DEV;team-beta:SUPPORT").
				Value(&cfg.AccountMappings).
				Validate(validateMappings),
		).Title("Accounts"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Gemini Model").
				Options(GeminiModelOptions()...).
				Value(&cfg.GeminiModel),
		).Title("AI Model"),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")

	if err := Save(&cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\nConfig saved to %s\n", Path())
	return &cfg, nil
}
