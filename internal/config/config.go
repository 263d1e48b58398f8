package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Words    WordsConfig    `mapstructure:"words"    validate:"required"`
	Playback PlaybackConfig `mapstructure:"playback" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// WordsConfig describes where the category and theme word files live.
type WordsConfig struct {
	// Root is the directory walked for category files.
	Root string `mapstructure:"root" validate:"required"`

	// Extension marks category files, including the leading dot.
	Extension string `mapstructure:"extension" validate:"required,startswith=."`

	// ThemesFile is the single file holding the themes list.
	ThemesFile string `mapstructure:"themes_file" validate:"required"`

	// Normalize applies Unicode NFC normalization to every loaded word.
	Normalize bool `mapstructure:"normalize"`
}

// PlaybackConfig holds the initial display cadence and repeat behaviour.
type PlaybackConfig struct {
	DisplayDelayMS int  `mapstructure:"display_delay_ms" validate:"required,min=1000,max=30000"`
	Repeat         bool `mapstructure:"repeat"`
	Autostart      bool `mapstructure:"autostart"`
}
