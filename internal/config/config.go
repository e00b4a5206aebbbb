package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	AuthIssuer   string   `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL  string   `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience string   `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`

	// Fee-schedule holiday calendars, comma-separated YYYY-MM-DD dates.
	// Both default to empty; the billing engine treats an empty list as
	// "no holidays" and never ships built-in dates.
	StatHolidays       []string `mapstructure:"STAT_HOLIDAYS"`
	DesignatedHolidays []string `mapstructure:"DESIGNATED_STAT_HOLIDAYS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("STAT_HOLIDAYS")
	v.BindEnv("DESIGNATED_STAT_HOLIDAYS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.StatHolidays == nil {
		cfg.StatHolidays = splitDates(v.GetString("STAT_HOLIDAYS"))
	}
	if cfg.DesignatedHolidays == nil {
		cfg.DesignatedHolidays = splitDates(v.GetString("DESIGNATED_STAT_HOLIDAYS"))
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active; all requests get admin access.")
	}

	return cfg, nil
}

func splitDates(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// AUTH_ISSUER must be set so that real JWT authentication is enforced, and the
// holiday lists must parse as ISO dates.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthIssuer == "" {
		return fmt.Errorf("AUTH_ISSUER must be set when ENV=%q; refusing to start without authentication configuration", c.Env)
	}
	for _, d := range c.StatHolidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("STAT_HOLIDAYS entry %q is not a valid YYYY-MM-DD date", d)
		}
	}
	for _, d := range c.DesignatedHolidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("DESIGNATED_STAT_HOLIDAYS entry %q is not a valid YYYY-MM-DD date", d)
		}
	}
	return nil
}

// HolidaySet converts a list of YYYY-MM-DD dates into the lookup form the
// billing engine consumes.
func HolidaySet(dates []string) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
