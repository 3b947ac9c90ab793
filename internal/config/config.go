package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	User    UserConfig    `mapstructure:"user"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
	Stub    StubConfig    `mapstructure:"stub"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// RequestTimeout returns the per-request timeout.
func (c APIConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

type UserConfig struct {
	ID string `mapstructure:"id"`
}

type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"` // empty means the XDG data dir
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means <data_dir>/ecoquest.log
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// StubConfig configures the local stub backend.
type StubConfig struct {
	Addr string `mapstructure:"addr"`
	DB   string `mapstructure:"db"`
}

// Load reads config.yaml from . or ./config, then the environment
// (ECOQUEST_ prefix, .env honored). A missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("api.base_url", "http://127.0.0.1:8001")
	v.SetDefault("api.timeout", 10)
	v.SetDefault("user.id", "1")
	v.SetDefault("storage.data_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("stub.addr", ":8001")
	v.SetDefault("stub.db", "file:stub?mode=memory&cache=shared")

	v.BindEnv("api.base_url", "ECOQUEST_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL")
	v.BindEnv("user.id", "ECOQUEST_USER_ID")

	v.SetEnvPrefix("ECOQUEST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
