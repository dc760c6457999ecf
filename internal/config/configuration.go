package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int    `mapstructure:"WEBSERVER_PORT" validate:"min=1,max=65535"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Upload caps, human readable ("15MiB", "20 MB", "5242880")
	StandardMaxUpload string `mapstructure:"STANDARD_MAX_UPLOAD" validate:"required"`
	AdvancedMaxUpload string `mapstructure:"ADVANCED_MAX_UPLOAD" validate:"required"`

	// Export Configuration
	FFmpegPath    string        `mapstructure:"FFMPEG_PATH" validate:"required"`
	FFprobePath   string        `mapstructure:"FFPROBE_PATH" validate:"required"`
	ExportTimeout time.Duration `mapstructure:"EXPORT_TIMEOUT" validate:"min=0"`

	// Editing sessions
	SessionIdleTimeout time.Duration `mapstructure:"SESSION_IDLE_TIMEOUT" validate:"min=0"`

	// Parsed from the upload cap strings
	StandardMaxUploadBytes int64 `mapstructure:"-"`
	AdvancedMaxUploadBytes int64 `mapstructure:"-"`
}

// LogValue keeps the session secret out of the logs.
func (c Config) LogValue() slog.Value {
	secret := "unset"
	if c.SessionSecret != "" {
		secret = "set"
	}
	return slog.GroupValue(
		slog.Int("webserver_port", c.WebServerPort),
		slog.String("session_secret", secret),
		slog.String("log_level", c.LogLevel),
		slog.String("standard_max_upload", c.StandardMaxUpload),
		slog.String("advanced_max_upload", c.AdvancedMaxUpload),
		slog.String("ffmpeg_path", c.FFmpegPath),
		slog.String("ffprobe_path", c.FFprobePath),
		slog.Duration("export_timeout", c.ExportTimeout),
		slog.Duration("session_idle_timeout", c.SessionIdleTimeout),
	)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" && tag != "-" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" && nestedTag != "-" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Debug("Environment variables bound")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STANDARD_MAX_UPLOAD", "15MiB")
	viper.SetDefault("ADVANCED_MAX_UPLOAD", "20MiB")
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")
	viper.SetDefault("EXPORT_TIMEOUT", "60s")
	viper.SetDefault("SESSION_IDLE_TIMEOUT", "30m")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	var err error
	if cfg.StandardMaxUploadBytes, err = parseSize("STANDARD_MAX_UPLOAD", cfg.StandardMaxUpload); err != nil {
		return nil, err
	}
	if cfg.AdvancedMaxUploadBytes, err = parseSize("ADVANCED_MAX_UPLOAD", cfg.AdvancedMaxUpload); err != nil {
		return nil, err
	}

	slog.Info("Loaded configuration", "config", cfg)

	return &cfg, nil
}

func parseSize(key, s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("parse %s: must be greater than zero", key)
	}
	return int64(n), nil
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
