// Package config loads settings into the global viper instance.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	defaultHandlerTimeout = "2m"
	defaultOutputDir      = "outputs"
)

// SetDefaults registers fallback values for every optional key.
func SetDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("telegram.allowed_chat_ids", []int64{})
	viper.SetDefault("telegram.daily_request_limit", 0)
	viper.SetDefault("handler.timeout", defaultHandlerTimeout)
	viper.SetDefault("unsharp.radius", 2.0)
	viper.SetDefault("unsharp.strength", 50.0)
	viper.SetDefault("storage.output_dir", defaultOutputDir)
	viper.SetDefault("storage.keep_outputs", false)
}

// Load reads the TOML config. An explicit file takes precedence, otherwise config.toml is looked up in the
// working directory. A missing file is only an error when required is set.
func Load(file string, required bool) error {
	SetDefaults()

	viper.SetConfigType("toml")
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
	}

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && file == "" && errors.As(err, &notFound) {
			log.Info().Msg("no config file found, using defaults")
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config")

	return nil
}

// LogLevel maps bot.log_level to a zerolog level, defaulting to info.
func LogLevel() zerolog.Level {
	switch strings.ToLower(viper.GetString("bot.log_level")) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// HandlerTimeout parses handler.timeout.
func HandlerTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout for handler in config: %w", err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("invalid timeout for handler in config: %s", timeout)
	}

	return timeout, nil
}
