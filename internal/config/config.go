package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the gitwrap configuration loaded from file, env and flags.
type Config struct {
	Interactive   string `mapstructure:"interactive"`
	PromptStyle   string `mapstructure:"prompt_style"`
	DefaultBranch string `mapstructure:"default_branch"`
	AuthorName    string `mapstructure:"author_name"`
	AuthorEmail   string `mapstructure:"author_email"`
	Output        string `mapstructure:"output"`
	LogFile       string `mapstructure:"log_file"`
}

const (
	DefaultConfigName    = "config"
	DefaultConfigDir     = "gitwrap"
	DefaultInteractive   = InteractiveAuto
	DefaultPromptStyle   = PromptStylePlain
	DefaultBranch        = "main"
	DefaultOutput        = OutputTable
	EnvPrefix            = "GITWRAP"
	configFilePermission = 0600
)

// Interactive modes.
const (
	InteractiveAuto   = "auto"
	InteractiveAlways = "always"
	InteractiveNever  = "never"
)

// Prompt styles.
const (
	PromptStylePlain = "plain"
	PromptStyleForm  = "form"
)

// Output formats.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

var (
	ErrInvalidInteractive = errors.New("invalid interactive mode")
	ErrInvalidPromptStyle = errors.New("invalid prompt style")
	ErrInvalidOutput      = errors.New("invalid output format")
)

var configKeys = []string{
	"interactive",
	"prompt_style",
	"default_branch",
	"author_name",
	"author_email",
	"output",
	"log_file",
}

// InitConfig wires viper to the config file, the environment and defaults.
// A missing config file is created with default values.
func InitConfig(cfgFile string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	configPath := cfgFile
	if configPath == "" {
		if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
			configPath = env
		} else {
			dir, err := configDir()
			if err != nil {
				return err
			}
			configPath = filepath.Join(dir, DefaultConfigName+".yaml")
		}
	}
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("failed to create configuration directory: %w", err)
		}
		if err := viper.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
	}

	if err := os.Chmod(configPath, configFilePermission); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to set configuration file permissions: %w", err)
	}
	return nil
}

var defaultValues = map[string]string{
	"interactive":    DefaultInteractive,
	"prompt_style":   DefaultPromptStyle,
	"default_branch": DefaultBranch,
	"author_name":    "",
	"author_email":   "",
	"output":         DefaultOutput,
	"log_file":       "",
}

func setDefaults() {
	for key, value := range defaultValues {
		viper.SetDefault(key, value)
	}
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultConfigDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir), nil
}

// Load returns the current configuration without validating it.
func Load() (*Config, error) {
	setDefaults()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// GetConfig returns the current configuration after validating enum values.
func GetConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustGetConfig returns the configuration or the defaults when it is invalid.
func MustGetConfig() *Config {
	cfg, err := GetConfig()
	if err != nil {
		return &Config{
			Interactive:   DefaultInteractive,
			PromptStyle:   DefaultPromptStyle,
			DefaultBranch: DefaultBranch,
			Output:        DefaultOutput,
		}
	}
	return cfg
}

func (c *Config) Validate() error {
	if err := validateInteractive(c.Interactive); err != nil {
		return err
	}
	if err := validatePromptStyle(c.PromptStyle); err != nil {
		return err
	}
	return ValidateOutput(c.Output)
}

// Repaired returns a copy of c with invalid enum values replaced by their
// defaults.
func (c *Config) Repaired() *Config {
	out := *c
	if validateInteractive(out.Interactive) != nil {
		out.Interactive = DefaultInteractive
	}
	if validatePromptStyle(out.PromptStyle) != nil {
		out.PromptStyle = DefaultPromptStyle
	}
	if ValidateOutput(out.Output) != nil {
		out.Output = DefaultOutput
	}
	return &out
}

// ValidateValue checks a single setting, leaving the others alone.
func ValidateValue(key, value string) error {
	switch key {
	case "interactive":
		return validateInteractive(value)
	case "prompt_style":
		return validatePromptStyle(value)
	case "output":
		return ValidateOutput(value)
	}
	return nil
}

func validateInteractive(mode string) error {
	switch mode {
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
		return nil
	default:
		return fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidInteractive, mode)
	}
}

func validatePromptStyle(style string) error {
	switch style {
	case PromptStylePlain, PromptStyleForm:
		return nil
	default:
		return fmt.Errorf("%w: %q (want plain or form)", ErrInvalidPromptStyle, style)
	}
}

// ValidateOutput checks an output format name.
func ValidateOutput(output string) error {
	switch output {
	case OutputTable, OutputYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (want table or yaml)", ErrInvalidOutput, output)
	}
}

// IsValidKey reports whether key is a known gitwrap configuration key.
func IsValidKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns the known configuration keys.
func Keys() []string {
	keys := make([]string, len(configKeys))
	copy(keys, configKeys)
	return keys
}

func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}

// Value returns the effective value of key as a string.
func Value(key string) string {
	return viper.GetString(key)
}

// ResetConfigValue puts key back to its default value.
func ResetConfigValue(key string) {
	viper.Set(key, defaultValues[key])
}

// SaveConfig writes the current configuration back to the config file.
func SaveConfig() error {
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if path := viper.ConfigFileUsed(); path != "" {
		if err := os.Chmod(path, configFilePermission); err != nil {
			return fmt.Errorf("failed to set configuration file permissions: %w", err)
		}
	}
	return nil
}
