package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		Driver   string `yaml:"driver"` // postgres | memory
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis | off
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
		// TTL del cache de existencia de whitelist
		WhitelistTTL string `yaml:"whitelist_ttl"`
	} `yaml:"cache"`

	Verifier struct {
		Mode string `yaml:"mode"` // jwt | static
		JWT  struct {
			Secret   string `yaml:"secret"`
			Issuer   string `yaml:"issuer"`
			Audience string `yaml:"audience"`
		} `yaml:"jwt"`
		Static struct {
			AccountName string `yaml:"account_name"`
			Provider    string `yaml:"provider"`
			ProviderID  string `yaml:"provider_id"`
		} `yaml:"static"`
	} `yaml:"verifier"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

// Default devuelve una configuración con los defaults aplicados, para
// cuando no hay archivo YAML (bootstrap por env vars).
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// sane defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Cache.WhitelistTTL == "" {
		c.Cache.WhitelistTTL = "30s"
	}
	if c.Verifier.Mode == "" {
		c.Verifier.Mode = "static"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 30
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
}
