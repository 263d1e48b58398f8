package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "RAPTRAINER"

// Default values applied before any file or environment override.
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultWordsRoot      = "assets/words"
	DefaultExtension      = ".csv"
	DefaultThemesFile     = "assets/themes.csv"
	DefaultDisplayDelayMS = 5000
)

// Load reads configuration from an optional raptrainer.yaml in the working
// directory and from RAPTRAINER_* environment variables.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the config file at path when path is
// not empty. A missing file at an explicit path is an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("raptrainer")
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

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)

	v.SetDefault("words.root", DefaultWordsRoot)
	v.SetDefault("words.extension", DefaultExtension)
	v.SetDefault("words.themes_file", DefaultThemesFile)
	v.SetDefault("words.normalize", true)

	v.SetDefault("playback.display_delay_ms", DefaultDisplayDelayMS)
	v.SetDefault("playback.repeat", false)
	v.SetDefault("playback.autostart", false)
}
