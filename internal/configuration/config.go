package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "USERDIR"

type MongoConfig struct {
	Uri             string        `mapstructure:"uri" json:"uri"`
	Database        string        `mapstructure:"database" json:"database"`
	UsersCollection string        `mapstructure:"usersCollection" json:"usersCollection"`
	ConnectTimeout  time.Duration `mapstructure:"connectTimeout" json:"connectTimeout"`

	// Reset drops the users collection on startup. Fresh environments only.
	Reset bool `mapstructure:"reset" json:"reset"`
}

type ServerConfig struct {
	AppPort         int           `mapstructure:"app_port" json:"app_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins" json:"allow_origins"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level" json:"level"`
	Development bool   `mapstructure:"development" json:"development"`
}

type Config struct {
	Mongo   MongoConfig   `mapstructure:"mongo" json:"mongo"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// LoadConfig reads the JSON config at config_path, falling back to defaults
// when the path is empty. USERDIR_* environment variables override file
// values, e.g. USERDIR_MONGO_URI or USERDIR_SERVER_APP_PORT.
func LoadConfig(config_path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if config_path != "" {
		v.SetConfigFile(config_path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "userdir")
	v.SetDefault("mongo.usersCollection", "users")
	v.SetDefault("mongo.connectTimeout", 10*time.Second)
	v.SetDefault("mongo.reset", false)

	v.SetDefault("server.app_port", 1339)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allow_origins", []string{"http://localhost:4200"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

func (c *Config) Validate() error {
	if c.Mongo.Uri == "" {
		return errors.New("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database is required")
	}
	if c.Server.AppPort < 1 || c.Server.AppPort > 65535 {
		return errors.New("server.app_port must be between 1 and 65535")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}
