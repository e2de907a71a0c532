package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the snapshot mirror configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Countdown holds the launch countdown configuration.
	Countdown CountdownConfig `mapstructure:",squash"`

	// Scroll holds the sticky banner configuration.
	Scroll ScrollConfig `mapstructure:",squash"`
}

// RedisConfig holds the Redis connection used to mirror countdown snapshots.
type RedisConfig struct {
	// URL enables the mirror when set, e.g. redis://localhost:6379/0.
	URL string `mapstructure:"REDIS_URL"`
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// CountdownConfig holds the initial duration and tick settings.
type CountdownConfig struct {
	// Name identifies the countdown in the snapshot mirror key.
	Name string `mapstructure:"COUNTDOWN_NAME" default:"launch"`
	// Hours is the initial hours value.
	Hours int `mapstructure:"COUNTDOWN_HOURS" default:"2"`
	// Minutes is the initial minutes value.
	Minutes int `mapstructure:"COUNTDOWN_MINUTES" default:"45"`
	// Seconds is the initial seconds value.
	Seconds int `mapstructure:"COUNTDOWN_SECONDS" default:"0"`
	// TickInterval is the wall-clock period of one tick.
	TickInterval time.Duration `mapstructure:"COUNTDOWN_TICK_INTERVAL" default:"1s"`
	// CatchUp applies missed ticks when the host falls behind.
	CatchUp bool `mapstructure:"COUNTDOWN_CATCH_UP" default:"false"`
}

// ScrollConfig holds the scroll visibility settings.
type ScrollConfig struct {
	// Threshold is the scroll offset in pixels past which the banner shows.
	Threshold float64 `mapstructure:"SCROLL_THRESHOLD" default:"100"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Countdown.TickInterval <= 0 {
		return nil, fmt.Errorf("invalid configuration: COUNTDOWN_TICK_INTERVAL must be positive, got %s", config.Countdown.TickInterval)
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	default:
		return v.IsZero()
	}
}
