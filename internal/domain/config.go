package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains the configuration surface consumed by the
// orchestration engine.
type DownloadConfig struct {
	TempDir       string        `mapstructure:"temp_dir"`
	DatabasePath  string        `mapstructure:"database_path"`
	MaxFileSizeMB int           `mapstructure:"max_file_size_mb"`
	TargetQuality int           `mapstructure:"target_quality"` // maximum resolution height
	Budget        time.Duration `mapstructure:"budget"`         // extraction wall-clock budget
	SocketTimeout time.Duration `mapstructure:"socket_timeout"`
	FFmpegBinary  string        `mapstructure:"ffmpeg_binary"`
	CookieFile    string        `mapstructure:"cookie_file"` // used only for platforms whose profile permits cookies
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send, etc.
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			TempDir:       "$HOME/.clipfetch/downloads",
			DatabasePath:  "$HOME/.clipfetch/clipfetch.db",
			MaxFileSizeMB: 50,
			TargetQuality: 720,
			Budget:        180 * time.Second,
			SocketTimeout: 30 * time.Second,
			FFmpegBinary:  "ffmpeg",
		},
		Notification: NotificationConfig{
			Enabled: true,
			Sound:   true,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
