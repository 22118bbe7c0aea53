// Package config resolves server settings from .env, the environment and an
// optional YAML file. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	keyPort           = "port"
	keyDBDriver       = "db_driver"
	keyDatabaseURL    = "database_url"
	keySessionSecret  = "session_secret"
	keyCookieDomain   = "cookie_domain"
	keyCookieSecure   = "cookie_secure"
	keyAllowedOrigins = "allowed_origins"
	keyClientURL      = "client_url"
	keyLogLevel       = "log_level"
	keyGinMode        = "gin_mode"
)

// Allowed origins in debug mode when none are configured.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	Port           string
	DBDriver       string
	DatabaseURL    string
	SessionSecret  string
	CookieDomain   string
	CookieSecure   bool
	AllowedOrigins []string
	LogLevel       string
	GinMode        string
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (if present) and then resolves every key through viper.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault(keyPort, "3000")
	v.SetDefault(keyDBDriver, "sqlite")
	v.SetDefault(keyDatabaseURL, "timelines.db")
	v.SetDefault(keyCookieSecure, false)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyGinMode, "release")

	for _, key := range []string{keySessionSecret, keyCookieDomain, keyAllowedOrigins, keyClientURL} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port:          v.GetString(keyPort),
		DBDriver:      v.GetString(keyDBDriver),
		DatabaseURL:   v.GetString(keyDatabaseURL),
		SessionSecret: v.GetString(keySessionSecret),
		CookieDomain:  v.GetString(keyCookieDomain),
		CookieSecure:  v.GetBool(keyCookieSecure),
		LogLevel:      v.GetString(keyLogLevel),
		GinMode:       v.GetString(keyGinMode),
		AllowedOrigins: allowedOrigins(
			v.GetString(keyClientURL),
			v.GetString(keyAllowedOrigins),
			v.GetString(keyGinMode) == "debug",
		),
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}

	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	return nil
}

// allowedOrigins merges CLIENT_URL and ALLOWED_ORIGINS. With neither set, a
// debug server falls back to the local dev origins and a release server
// allows none.
func allowedOrigins(clientURL, extra string, debug bool) []string {
	var origins []string

	if clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(extra, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	if len(origins) == 0 && debug {
		origins = append(origins, defaultOrigins...)
	}

	return origins
}
