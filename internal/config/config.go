package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/restaurant/internal/constants"
)

type Application struct {
	Env  string `mapstructure:"env"  json:"env"`
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Api struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"  json:"timeout"`
}

type Cart struct {
	TaxRate string `mapstructure:"tax_rate" json:"tax_rate"`
	Locale  string `mapstructure:"locale"   json:"locale"`
}

type Storage struct {
	Driver         string `mapstructure:"driver"          json:"driver"`
	Path           string `mapstructure:"path"            json:"path"`
	Namespace      string `mapstructure:"namespace"       json:"namespace"`
	InstallationID string `mapstructure:"installation_id" json:"installation_id"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Host    string `mapstructure:"host"    json:"host"`
	Port    int    `mapstructure:"port"    json:"port"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level"`
	Path  string `mapstructure:"path"  json:"path"`
}

type Config struct {
	Application `mapstructure:"application" json:"application"`
	Api         `mapstructure:"api"         json:"api"`
	Cart        `mapstructure:"cart"        json:"cart"`
	Storage     `mapstructure:"storage"     json:"storage"`
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Log         `mapstructure:"log"         json:"log"`
}

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "production")
	v.SetDefault("application.host", "localhost")
	v.SetDefault("application.port", 8080)

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 15*time.Second)

	v.SetDefault("cart.tax_rate", "0.12")
	v.SetDefault("cart.locale", "es")

	v.SetDefault("storage.driver", constants.STORAGE_DRIVER_FILE)
	v.SetDefault("storage.path", "restaurant-store.json")
	v.SetDefault("storage.namespace", constants.APP_MAIN_RESTAURANT)
	v.SetDefault("storage.installation_id", "")

	v.SetDefault("db.name", "restaurant")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.username", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.max_connections", 4)
	v.SetDefault("db.min_connections", 1)

	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.database", 0)

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "restaurant.log")
}

// Load reads filename (without extension) from ./env or $HOME/.restaurant.
// A missing file is not an error, every key has a default and can be
// overridden with a RESTAURANT_ prefixed environment variable.
func Load(c context.Context, filename string) (*Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "config Load").
		Str("filename", filename).
		Logger()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("./env")
	v.AddConfigPath("$HOME/.restaurant")
	v.SetEnvPrefix("RESTAURANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger = logger.With().Str(constants.KEY_PROCESS, "reading config").Logger()
	logger.Debug().Msg("reading config")
	err := v.ReadInConfig()
	if err != nil {
		notFound := viper.ConfigFileNotFoundError{}
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("failed reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Debug().Msg("config file not found, using defaults")
	}
	logger.Debug().Msg("read config")

	logger = logger.With().Str(constants.KEY_PROCESS, "unmarshaling config").Logger()
	logger.Debug().Msg("unmarshaling config")
	cfg := Config{}
	if err = v.Unmarshal(&cfg); err != nil {
		err = fmt.Errorf("failed unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Debug().Any(constants.KEY_CONFIG, cfg).Msg("unmarshaled config")

	return &cfg, nil
}

// Get loads the configuration once per process.
func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		cfg, err := Load(c, filename)
		if err != nil {
			zerolog.Ctx(c).Fatal().Err(err).Msg(err.Error())
		}
		config = cfg
	})
	return config
}
