// Package config loads nanoagent's runtime configuration: a .env bootstrap
// for secrets, overlaid with a YAML file for everything else.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"

	"github.com/synthron-labs/nanoagent/pkg/utils"
)

// Config is the unified configuration for the walletd daemon and the CLI.
type Config struct {
	Upstream struct {
		BaseURL string `mapstructure:"base_url" json:"base_url"`
		APIKey  string `mapstructure:"api_key" json:"api_key"`
	} `mapstructure:"upstream" json:"upstream"`

	Work struct {
		ServerURL string `mapstructure:"server_url" json:"server_url"`
	} `mapstructure:"work" json:"work"`

	Wallet struct {
		FilePath string `mapstructure:"file_path" json:"file_path"`
	} `mapstructure:"wallet" json:"wallet"`

	HTTP struct {
		Enabled    bool   `mapstructure:"enabled" json:"enabled"`
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"http" json:"http"`

	Stdio struct {
		Enabled bool `mapstructure:"enabled" json:"enabled"`
	} `mapstructure:"stdio" json:"stdio"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded by Load.
var AppConfig Config

func setDefaults() {
	viper.SetDefault("upstream.base_url", "http://127.0.0.1:3000")
	viper.SetDefault("work.server_url", "http://127.0.0.1:4000")
	viper.SetDefault("wallet.file_path", "wallet.json")
	viper.SetDefault("http.enabled", true)
	viper.SetDefault("http.listen_addr", ":8082")
	viper.SetDefault("stdio.enabled", false)
	viper.SetDefault("logging.level", "info")
}

// Load reads a .env file (if present), a YAML config file named env (default
// "default"), and environment variable overrides, in that order of
// increasing precedence, merging the result into AppConfig.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" && env != "default" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, utils.Wrap(err, "merge "+env+" config")
			}
		}
	}

	viper.SetEnvPrefix("NANOAGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the NANOAGENT_ENV environment
// variable to select the overlay file, defaulting to "default".
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("NANOAGENT_ENV", "default"))
}
