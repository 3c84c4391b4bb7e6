/*
config.go - Service configuration

PURPOSE:
  Loads the bankd configuration from a YAML file via viper, with
  defaults for every key so the binary runs without a config file at
  all. Environment variables prefixed with BANKD_ override file values
  (BANKD_SERVER_PORT, BANKD_AUDIT_LOG_PATH, ...).

SEE ALSO:
  - cmd/bankd/main.go: consumes the loaded Config
*/
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full bankd configuration tree.
type Config struct {
	Server Server `mapstructure:"server"`
	Audit  Audit  `mapstructure:"audit"`
	Rates  Rates  `mapstructure:"rates"`
	SMTP   SMTP   `mapstructure:"smtp"`
	Report Report `mapstructure:"report"`
	Seed   bool   `mapstructure:"seed"`
}

type Server struct {
	Port int `mapstructure:"port"`
}

type Audit struct {
	LogPath    string `mapstructure:"log_path"`
	SQLitePath string `mapstructure:"sqlite_path"` // empty disables the SQLite sink
}

type Rates struct {
	FeedURL         string `mapstructure:"feed_url"` // empty disables the remote feed
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

type SMTP struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type Report struct {
	Dir string `mapstructure:"dir"`
}

// Load reads the config file at path. A missing file is not an error:
// the defaults below describe a fully working local setup.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("audit.log_path", "data/audit.log")
	v.SetDefault("audit.sqlite_path", "")
	v.SetDefault("rates.feed_url", "")
	v.SetDefault("rates.refresh_schedule", "@every 1h")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.from", "banco@example.com")
	v.SetDefault("report.dir", "data/reports")
	v.SetDefault("seed", false)

	v.SetEnvPrefix("BANKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
