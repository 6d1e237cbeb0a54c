package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "EVENTBUS"

type Config struct {
	Bus struct {
		// MutexPolicy is "default" for a goroutine-safe bus or "none" for a
		// bus confined to one goroutine.
		MutexPolicy string `mapstructure:"mutex_policy" validate:"oneof=default none"`
	} `mapstructure:"bus"`

	Log struct {
		Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
		Format string `mapstructure:"format" validate:"oneof=json console"`
	} `mapstructure:"log"`

	Demo struct {
		Publishers         int `mapstructure:"publishers" validate:"gte=1,lte=64"`
		EventsPerPublisher int `mapstructure:"events_per_publisher" validate:"gte=1,lte=100000"`
		RecursionDepth     int `mapstructure:"recursion_depth" validate:"gte=0,lte=64"`
	} `mapstructure:"demo"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bus.mutex_policy", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("demo.publishers", 4)
	v.SetDefault("demo.events_per_publisher", 1000)
	v.SetDefault("demo.recursion_depth", 5)
}

// Load reads configuration from path, or from configs/config.yaml when path
// is empty. A missing default file is not an error. EVENTBUS_* environment
// variables override file values, e.g. EVENTBUS_BUS_MUTEX_POLICY=none.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
